package covidstats

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"covidwatch-backend/lib/countrylink"
	"covidwatch-backend/lib/dataset"
	"covidwatch-backend/lib/scrapers/worldometer"
	"covidwatch-backend/lib/summary"
	"covidwatch-backend/services/covidstats/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/covidstats")

type SnapshotInfo struct {
	Id        int64
	Source    string
	ScrapedAt time.Time
	Rows      int64
	Columns   int64
}

// StoredSnapshot is a snapshot restored from the database.
type StoredSnapshot struct {
	Info SnapshotInfo
	Data *dataset.Dataset
}

type Service struct {
	db   *sql.DB
	qry  *db.Queries
	site *worldometer.Client
}

func NewService(database *sql.DB, site *worldometer.Client) Service {
	return Service{
		db:   database,
		qry:  db.New(database),
		site: site,
	}
}

// scrubScrape normalizes a freshly scraped table: "N/A" markers become
// nulls, empty and duplicate rows go away, count columns become ints.
// The first column holds the location name, every other column is a
// count.
func scrubScrape(ds *dataset.Dataset) error {
	cols := ds.Columns()
	if len(cols) == 0 {
		return nil
	}
	for _, col := range cols[1:] {
		err := ds.ReplaceValue(col, dataset.String("N/A"), dataset.Null())
		if err != nil {
			return err
		}
	}
	ds.DropEmptyRows()
	ds.Deduplicate()
	for _, col := range cols[1:] {
		err := ds.CoerceType(col, dataset.KindInt)
		if err != nil {
			return err
		}
	}
	return nil
}

// autoType mirrors what a csv reader with dtype inference does: a
// text column becomes int when every value parses as one, float when
// every value parses as that, and stays text otherwise.
func autoType(ds *dataset.Dataset) error {
	for _, col := range ds.Columns() {
		kind, err := ds.InferKind(col)
		if err != nil {
			return err
		}
		if kind != dataset.KindString {
			continue
		}
		if ds.CoerceType(col, dataset.KindInt) == nil {
			continue
		}
		if ds.CoerceType(col, dataset.KindFloat) == nil {
			continue
		}
	}
	return nil
}

// ScrapeSnapshot fetches the statistics page once, extracts the
// per-country table and the global counters, scrubs the table and
// stores everything in one transaction.
func (s Service) ScrapeSnapshot(ctx context.Context, cfg worldometer.TableConfig) (SnapshotInfo, error) {
	ctx, span := tracer.Start(ctx, "ScrapeSnapshot")
	defer span.End()

	markup, err := s.site.Http.Fetch(ctx, s.site.BaseUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return SnapshotInfo{}, err
	}
	table, err := worldometer.ExtractTable(markup, cfg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return SnapshotInfo{}, err
	}
	counters, err := worldometer.ExtractGlobalStats(markup)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return SnapshotInfo{}, err
	}

	ds, err := dataset.FromTable(table.Columns, table.Rows)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return SnapshotInfo{}, err
	}
	err = scrubScrape(ds)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return SnapshotInfo{}, err
	}

	info, err := s.storeSnapshot(ctx, s.site.BaseUrl, time.Now(), ds, &counters)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return SnapshotInfo{}, err
	}

	slog.InfoContext(ctx, "stored scraped snapshot",
		"id", info.Id,
		"rows", info.Rows,
		"columns", info.Columns,
	)
	return info, nil
}

// ImportCSV loads a csv export (an owid-style country time series) and
// stores it as a snapshot.
func (s Service) ImportCSV(ctx context.Context, path string) (SnapshotInfo, error) {
	ctx, span := tracer.Start(ctx, "ImportCSV")
	defer span.End()

	span.SetAttributes(attribute.String("path", path))

	ds, err := dataset.LoadCSV(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return SnapshotInfo{}, err
	}

	if ds.HasColumn(summary.ColumnDate) {
		err = ds.CoerceDate(summary.ColumnDate)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return SnapshotInfo{}, err
		}
	} else {
		slog.WarnContext(ctx, "imported csv has no date column", "path", path)
	}
	ds.Deduplicate()
	ds.DropEmptyRows()
	err = autoType(ds)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return SnapshotInfo{}, err
	}

	info, err := s.storeSnapshot(ctx, path, time.Now(), ds, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return SnapshotInfo{}, err
	}

	slog.InfoContext(ctx, "imported csv snapshot",
		"id", info.Id,
		"path", path,
		"rows", info.Rows,
	)
	return info, nil
}

func (s Service) storeSnapshot(ctx context.Context, source string, scrapedAt time.Time, ds *dataset.Dataset, counters *worldometer.GlobalStats) (SnapshotInfo, error) {
	ctx, span := tracer.Start(ctx, "storeSnapshot")
	defer span.End()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return SnapshotInfo{}, err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	id, err := txqry.CreateSnapshot(ctx, db.CreateSnapshotParams{
		Source:    source,
		ScrapedAt: scrapedAt.Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return SnapshotInfo{}, err
	}

	for i, name := range ds.Columns() {
		err := txqry.CreateSnapshotColumn(ctx, db.CreateSnapshotColumnParams{
			SnapshotID: id,
			Idx:        int64(i),
			Name:       name,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return SnapshotInfo{}, err
		}
	}
	for r := 0; r < ds.RowCount(); r++ {
		for c := 0; c < ds.ColumnCount(); c++ {
			cell := ds.At(r, c)
			err := txqry.CreateSnapshotCell(ctx, db.CreateSnapshotCellParams{
				SnapshotID: id,
				RowIdx:     int64(r),
				ColIdx:     int64(c),
				Kind:       int64(cell.Kind()),
				Value:      cell.Format(),
			})
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return SnapshotInfo{}, err
			}
		}
	}

	if counters != nil {
		err := txqry.CreateGlobalCounters(ctx, db.CreateGlobalCountersParams{
			SnapshotID:     id,
			TotalCases:     counters.TotalCases,
			TotalDeaths:    counters.TotalDeaths,
			TotalRecovered: counters.TotalRecovered,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return SnapshotInfo{}, err
		}
	}

	err = tx.Commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return SnapshotInfo{}, err
	}

	return SnapshotInfo{
		Id:        id,
		Source:    source,
		ScrapedAt: time.Unix(scrapedAt.Unix(), 0),
		Rows:      int64(ds.RowCount()),
		Columns:   int64(ds.ColumnCount()),
	}, nil
}

// Snapshot restores a stored snapshot, cells come back with the kinds
// they were stored with.
func (s Service) Snapshot(ctx context.Context, id int64) (StoredSnapshot, error) {
	ctx, span := tracer.Start(ctx, "Snapshot")
	defer span.End()

	span.SetAttributes(attribute.Int64("id", id))

	row, err := s.qry.GetSnapshot(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return StoredSnapshot{}, err
	}
	columns, err := s.qry.GetSnapshotColumns(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return StoredSnapshot{}, err
	}
	cells, err := s.qry.GetSnapshotCells(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return StoredSnapshot{}, err
	}

	var parsed [][]dataset.Value
	lastRow := int64(-1)
	for _, cell := range cells {
		if cell.RowIdx != lastRow {
			parsed = append(parsed, make([]dataset.Value, len(columns)))
			lastRow = cell.RowIdx
		}
		if cell.ColIdx < 0 || cell.ColIdx >= int64(len(columns)) {
			err := fmt.Errorf("snapshot %d has a cell outside its columns: %d", id, cell.ColIdx)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return StoredSnapshot{}, err
		}
		value, err := dataset.ParseAs(dataset.Kind(cell.Kind), cell.Value)
		if err != nil {
			err = fmt.Errorf("snapshot %d row %d col %d: %w", id, cell.RowIdx, cell.ColIdx, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return StoredSnapshot{}, err
		}
		parsed[len(parsed)-1][cell.ColIdx] = value
	}

	ds := dataset.New(columns)
	for _, values := range parsed {
		err := ds.AppendRow(values)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return StoredSnapshot{}, err
		}
	}

	return StoredSnapshot{
		Info: SnapshotInfo{
			Id:        row.ID,
			Source:    row.Source,
			ScrapedAt: time.Unix(row.ScrapedAt, 0),
			Rows:      row.RowCount,
			Columns:   row.ColumnCount,
		},
		Data: ds,
	}, nil
}

// LatestSnapshot restores the most recently stored snapshot. Returns
// sql.ErrNoRows when nothing has been stored yet.
func (s Service) LatestSnapshot(ctx context.Context) (StoredSnapshot, error) {
	ctx, span := tracer.Start(ctx, "LatestSnapshot")
	defer span.End()

	id, err := s.qry.GetLatestSnapshotId(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return StoredSnapshot{}, err
	}
	return s.Snapshot(ctx, id)
}

// History lists every stored snapshot, oldest first.
func (s Service) History(ctx context.Context) ([]SnapshotInfo, error) {
	ctx, span := tracer.Start(ctx, "History")
	defer span.End()

	rows, err := s.qry.ListSnapshots(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	infos := make([]SnapshotInfo, len(rows))
	for i, r := range rows {
		infos[i] = SnapshotInfo{
			Id:        r.ID,
			Source:    r.Source,
			ScrapedAt: time.Unix(r.ScrapedAt, 0),
			Rows:      r.RowCount,
			Columns:   r.ColumnCount,
		}
	}
	return infos, nil
}

// GlobalCounters returns the headline counters stored alongside a
// scraped snapshot. Imported snapshots have none, which comes back as
// sql.ErrNoRows.
func (s Service) GlobalCounters(ctx context.Context, snapshotId int64) (worldometer.GlobalStats, error) {
	ctx, span := tracer.Start(ctx, "GlobalCounters")
	defer span.End()

	span.SetAttributes(attribute.Int64("snapshot_id", snapshotId))

	row, err := s.qry.GetGlobalCounters(ctx, snapshotId)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return worldometer.GlobalStats{}, err
	}

	return worldometer.GlobalStats{
		TotalCases:     row.TotalCases,
		TotalDeaths:    row.TotalDeaths,
		TotalRecovered: row.TotalRecovered,
	}, nil
}

// LinkIsoCodes returns a copy of `ds` with an iso_code column
// attached, filled by linking its location names against `reference`
// (any dataset carrying location and iso_code columns, an owid import
// works). Locations that link to nothing get a null code.
func (s Service) LinkIsoCodes(ctx context.Context, ds *dataset.Dataset, reference *dataset.Dataset) (*dataset.Dataset, error) {
	ctx, span := tracer.Start(ctx, "LinkIsoCodes")
	defer span.End()

	nameCol := "Name"
	if !ds.HasColumn(nameCol) {
		nameCol = summary.ColumnLocation
	}
	nameIdx := ds.ColumnIndex(nameCol)
	if nameIdx < 0 {
		err := &dataset.ColumnNotFoundError{Column: nameCol}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	refLocIdx := reference.ColumnIndex(summary.ColumnLocation)
	if refLocIdx < 0 {
		err := &dataset.ColumnNotFoundError{Column: summary.ColumnLocation}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	refIsoIdx := reference.ColumnIndex(summary.ColumnIsoCode)
	if refIsoIdx < 0 {
		err := &dataset.ColumnNotFoundError{Column: summary.ColumnIsoCode}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	// first-seen iso code per distinct reference location
	isoByLocation := map[string]dataset.Value{}
	var refNames []string
	for r := 0; r < reference.RowCount(); r++ {
		loc := reference.At(r, refLocIdx)
		if loc.Kind() != dataset.KindString {
			continue
		}
		if _, seen := isoByLocation[loc.Str()]; seen {
			continue
		}
		isoByLocation[loc.Str()] = reference.At(r, refIsoIdx)
		refNames = append(refNames, loc.Str())
	}

	var dsNames []string
	seen := map[string]bool{}
	for r := 0; r < ds.RowCount(); r++ {
		name := ds.At(r, nameIdx)
		if name.Kind() != dataset.KindString || seen[name.Str()] {
			continue
		}
		seen[name.Str()] = true
		dsNames = append(dsNames, name.Str())
	}

	links := countrylink.LinkNames(dsNames, refNames)
	isoByName := map[string]dataset.Value{}
	for _, link := range links {
		isoByName[link.Left] = isoByLocation[link.Right]
	}

	out := dataset.New(append(ds.Columns(), summary.ColumnIsoCode))
	unmatched := 0
	for r := 0; r < ds.RowCount(); r++ {
		row := make([]dataset.Value, 0, ds.ColumnCount()+1)
		for c := 0; c < ds.ColumnCount(); c++ {
			row = append(row, ds.At(r, c))
		}
		iso := dataset.Null()
		name := ds.At(r, nameIdx)
		if name.Kind() == dataset.KindString {
			if v, ok := isoByName[name.Str()]; ok {
				iso = v
			}
		}
		if iso.IsNull() {
			unmatched++
		}
		row = append(row, iso)
		err := out.AppendRow(row)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}

	if unmatched > 0 {
		slog.WarnContext(ctx, "some rows have no iso code", "count", unmatched)
	}
	span.SetAttributes(
		attribute.Int("links", len(links)),
		attribute.Int("unmatched_rows", unmatched),
	)
	return out, nil
}

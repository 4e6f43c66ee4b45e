package covidstats

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"covidwatch-backend/lib/dataset"
	"covidwatch-backend/lib/scrapers/worldometer"
	"covidwatch-backend/lib/testutil"
	"covidwatch-backend/services/covidstats/db"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// a page in the live site's shape, small enough to reason about: one
// header row, then USA / India with an N/A cell / a duplicate USA row
// / an all-empty row
const fixturePage = `
<html><body>
<div class="maincounter-number"><span>704,753,890</span></div>
<div class="maincounter-number"><span>7,010,681</span></div>
<div class="maincounter-number"><span>675,619,811</span></div>
<table><tbody>
<tr><td>#</td><td>Country</td><td>Cases</td></tr>
<tr><td>USA</td><td>111,820,082</td><td>+1,234</td></tr>
<tr><td>India</td><td>45,035,393</td><td>N/A</td></tr>
<tr><td>USA</td><td>111,820,082</td><td>+1,234</td></tr>
<tr><td></td><td></td><td></td></tr>
</tbody></table>
</body></html>`

var fixtureConfig = worldometer.TableConfig{
	Columns:     []string{"Name", "Total Cases", "New Cases"},
	RowStart:    1,
	RowEnd:      5,
	CellIndexes: []int{0, 1, 2},
}

func TestService(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/covidstats",
		DbSchema: db.Schema,
	})
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, fixturePage)
		},
	))
	defer server.Close()

	site, err := worldometer.NewClient(worldometer.ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)
	service := NewService(setup.DB, site)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	{
		_, err := service.LatestSnapshot(ctx)
		require.ErrorIs(t, err, sql.ErrNoRows)

		history, err := service.History(ctx)
		require.NoError(t, err)
		require.Len(t, history, 0)
	}

	var snapshotId int64
	{
		info, err := service.ScrapeSnapshot(ctx, fixtureConfig)
		require.NoError(t, err)
		// the duplicate and the empty row are scrubbed away
		require.Equal(t, int64(2), info.Rows)
		require.Equal(t, int64(3), info.Columns)
		snapshotId = info.Id

		counters, err := service.GlobalCounters(ctx, info.Id)
		require.NoError(t, err)
		require.Equal(t, "704,753,890", counters.TotalCases)
		require.Equal(t, "7,010,681", counters.TotalDeaths)
		require.Equal(t, "675,619,811", counters.TotalRecovered)
	}
	{
		stored, err := service.Snapshot(ctx, snapshotId)
		require.NoError(t, err)
		require.Equal(t, snapshotId, stored.Info.Id)
		require.Equal(t, int64(2), stored.Info.Rows)

		ds := stored.Data
		require.Equal(t, []string{"Name", "Total Cases", "New Cases"}, ds.Columns())
		require.Equal(t, 2, ds.RowCount())
		require.True(t, ds.At(0, 0).Equal(dataset.String("USA")))
		require.True(t, ds.At(0, 1).Equal(dataset.Int(111820082)))
		require.True(t, ds.At(0, 2).Equal(dataset.Int(1234)))
		require.True(t, ds.At(1, 0).Equal(dataset.String("India")))
		require.True(t, ds.At(1, 2).IsNull())
	}
	{
		latest, err := service.LatestSnapshot(ctx)
		require.NoError(t, err)
		require.Equal(t, snapshotId, latest.Info.Id)

		history, err := service.History(ctx)
		require.NoError(t, err)
		require.Len(t, history, 1)
		require.Equal(t, snapshotId, history[0].Id)
		require.Equal(t, server.URL, history[0].Source)
	}
}

func TestImportCSV(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/covidstats",
		DbSchema: db.Schema,
	})
	defer cleanup()
	service := NewService(setup.DB, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	csvPath := filepath.Join(t.TempDir(), "owid.csv")
	content := "iso_code,continent,location,date,total_cases,positive_rate\n" +
		"USA,North America,United States,2021-01-01,20000,0.093\n" +
		"USA,North America,United States,2021-01-01,20000,0.093\n" +
		"FRA,Europe,France,2021-01-02,5600,0.041\n"
	err := os.WriteFile(csvPath, []byte(content), 0644)
	require.NoError(t, err)

	info, err := service.ImportCSV(ctx, csvPath)
	require.NoError(t, err)
	// one duplicate line
	require.Equal(t, int64(2), info.Rows)
	require.Equal(t, csvPath, info.Source)

	stored, err := service.Snapshot(ctx, info.Id)
	require.NoError(t, err)
	ds := stored.Data

	dateIdx := ds.ColumnIndex("date")
	require.Equal(t, dataset.KindDate, ds.At(0, dateIdx).Kind())
	casesIdx := ds.ColumnIndex("total_cases")
	require.True(t, ds.At(0, casesIdx).Equal(dataset.Int(20000)))
	rateIdx := ds.ColumnIndex("positive_rate")
	require.True(t, ds.At(0, rateIdx).Equal(dataset.Float(0.093)))
	isoIdx := ds.ColumnIndex("iso_code")
	require.Equal(t, dataset.KindString, ds.At(0, isoIdx).Kind())

	// imports carry no global counters
	_, err = service.GlobalCounters(ctx, info.Id)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestLinkIsoCodes(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name: "services/covidstats",
	})
	defer cleanup()
	service := NewService(setup.DB, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	scraped, err := dataset.FromTable(
		[]string{"Name", "Total Cases"},
		[][]string{
			{"United States", "111820082"},
			{"S. Korea", "34571873"},
			{"S. Korea", "34571873"},
		},
	)
	require.NoError(t, err)

	reference, err := dataset.FromTable(
		[]string{"iso_code", "location"},
		[][]string{
			{"USA", "United States"},
			{"USA", "United States"},
			{"KOR", "South Korea"},
		},
	)
	require.NoError(t, err)

	linked, err := service.LinkIsoCodes(ctx, scraped, reference)
	require.NoError(t, err)

	require.Equal(t, []string{"Name", "Total Cases", "iso_code"}, linked.Columns())
	require.Equal(t, 3, linked.RowCount())

	// exact match for the states, fuzzy for korea, and the repeated
	// korea row gets the same code
	require.True(t, linked.At(0, 2).Equal(dataset.String("USA")))
	require.True(t, linked.At(1, 2).Equal(dataset.String("KOR")))
	require.True(t, linked.At(2, 2).Equal(dataset.String("KOR")))

	// the original dataset is untouched
	require.Equal(t, []string{"Name", "Total Cases"}, scraped.Columns())
}

func TestLinkIsoCodesMissingColumns(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name: "services/covidstats",
	})
	defer cleanup()
	service := NewService(setup.DB, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	ds, err := dataset.FromTable([]string{"Name"}, [][]string{{"USA"}})
	require.NoError(t, err)
	badRef, err := dataset.FromTable([]string{"location"}, [][]string{{"United States"}})
	require.NoError(t, err)

	_, err = service.LinkIsoCodes(ctx, ds, badRef)
	var notFound *dataset.ColumnNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "iso_code", notFound.Column)
}

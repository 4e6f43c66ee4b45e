package summary

import (
	"sort"

	"covidwatch-backend/lib/dataset"
)

// MeasureSummary carries the maximum reached by each canonical measure
// within a scope. A measure that is absent from the dataset or has no
// non-null cells in scope stays null, it is never reported as zero.
type MeasureSummary struct {
	Scope             string
	Rows              int
	TotalCases        dataset.Value
	TotalDeaths       dataset.Value
	TotalVaccinations dataset.Value
}

// CountrySummary aggregates the rows of one country by iso code.
func (e *Engine) CountrySummary(isoCode string) (MeasureSummary, error) {
	return e.scopedSummary(ColumnIsoCode, dataset.String(isoCode), isoCode)
}

// ContinentSummary aggregates the rows of one continent.
func (e *Engine) ContinentSummary(continent string) (MeasureSummary, error) {
	return e.scopedSummary(ColumnContinent, dataset.String(continent), continent)
}

// GlobalSummary aggregates every row.
func (e *Engine) GlobalSummary() (MeasureSummary, error) {
	return e.scopedSummary("", dataset.Null(), "global")
}

func (e *Engine) scopedSummary(scopeColumn string, scopeValue dataset.Value, scope string) (MeasureSummary, error) {
	scopeCol := -1
	if scopeColumn != "" {
		scopeCol = e.ds.ColumnIndex(scopeColumn)
		if scopeCol < 0 {
			return MeasureSummary{}, &dataset.ColumnNotFoundError{Column: scopeColumn}
		}
	}

	out := MeasureSummary{
		Scope:             scope,
		TotalCases:        dataset.Null(),
		TotalDeaths:       dataset.Null(),
		TotalVaccinations: dataset.Null(),
	}
	measures := map[string]*dataset.Value{
		MeasureTotalCases:        &out.TotalCases,
		MeasureTotalDeaths:       &out.TotalDeaths,
		MeasureTotalVaccinations: &out.TotalVaccinations,
	}

	for row := 0; row < e.ds.RowCount(); row++ {
		if scopeCol >= 0 && !e.ds.At(row, scopeCol).Equal(scopeValue) {
			continue
		}
		out.Rows++
		for name, dest := range measures {
			col := e.ds.ColumnIndex(name)
			if col < 0 {
				continue
			}
			cell := e.ds.At(row, col)
			if cell.IsNull() {
				continue
			}
			if dest.IsNull() || cell.Compare(*dest) > 0 {
				*dest = cell
			}
		}
	}
	return out, nil
}

// DateRange reports the earliest and latest non-null dates. Both
// bounds are null when no row carries a date.
func (e *Engine) DateRange() (dataset.Value, dataset.Value, error) {
	col := e.ds.ColumnIndex(ColumnDate)
	if col < 0 {
		return dataset.Null(), dataset.Null(), &dataset.ColumnNotFoundError{Column: ColumnDate}
	}
	first, last := dataset.Null(), dataset.Null()
	for row := 0; row < e.ds.RowCount(); row++ {
		v := e.ds.At(row, col)
		if v.IsNull() {
			continue
		}
		if first.IsNull() || v.Compare(first) < 0 {
			first = v
		}
		if last.IsNull() || v.Compare(last) > 0 {
			last = v
		}
	}
	return first, last, nil
}

type LocationValue struct {
	Location string
	Value    dataset.Value
}

// TopN ranks locations by their maximum value of a measure,
// descending. Ties keep first-encountered order. Locations whose
// measure is entirely null are excluded.
func (e *Engine) TopN(measure string, n int) ([]LocationValue, error) {
	if n < 1 {
		return nil, &dataset.InvalidArgumentError{Op: "TopN", Reason: "n must be at least 1"}
	}
	locCol := e.ds.ColumnIndex(ColumnLocation)
	if locCol < 0 {
		return nil, &dataset.ColumnNotFoundError{Column: ColumnLocation}
	}
	mCol := e.ds.ColumnIndex(measure)
	if mCol < 0 {
		return nil, &dataset.ColumnNotFoundError{Column: measure}
	}

	maxes := map[string]dataset.Value{}
	var order []string
	for row := 0; row < e.ds.RowCount(); row++ {
		loc := e.ds.At(row, locCol)
		if loc.IsNull() {
			continue
		}
		cell := e.ds.At(row, mCol)
		if cell.IsNull() {
			continue
		}
		name := loc.Format()
		current, ok := maxes[name]
		if !ok {
			maxes[name] = cell
			order = append(order, name)
			continue
		}
		if cell.Compare(current) > 0 {
			maxes[name] = cell
		}
	}

	out := make([]LocationValue, 0, len(order))
	for _, name := range order {
		out = append(out, LocationValue{Location: name, Value: maxes[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value.Compare(out[j].Value) > 0
	})
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

type TrendPoint struct {
	Date  dataset.Value
	Value dataset.Value
}

// Trend reports one country's measure over time, ascending by date.
// Rows without a date are skipped, null measure cells stay in as gaps.
func (e *Engine) Trend(isoCode string, measure string) ([]TrendPoint, error) {
	isoCol := e.ds.ColumnIndex(ColumnIsoCode)
	if isoCol < 0 {
		return nil, &dataset.ColumnNotFoundError{Column: ColumnIsoCode}
	}
	dateCol := e.ds.ColumnIndex(ColumnDate)
	if dateCol < 0 {
		return nil, &dataset.ColumnNotFoundError{Column: ColumnDate}
	}
	mCol := e.ds.ColumnIndex(measure)
	if mCol < 0 {
		return nil, &dataset.ColumnNotFoundError{Column: measure}
	}

	var out []TrendPoint
	for row := 0; row < e.ds.RowCount(); row++ {
		if !e.ds.At(row, isoCol).Equal(dataset.String(isoCode)) {
			continue
		}
		date := e.ds.At(row, dateCol)
		if date.IsNull() {
			continue
		}
		out = append(out, TrendPoint{Date: date, Value: e.ds.At(row, mCol)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Compare(out[j].Date) < 0
	})
	return out, nil
}

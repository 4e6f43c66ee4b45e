package summary

import (
	"fmt"
	"sort"

	"covidwatch-backend/lib/dataset"
)

// canonical column names shared by the scraped and imported datasets
const (
	ColumnIsoCode   = "iso_code"
	ColumnContinent = "continent"
	ColumnLocation  = "location"
	ColumnDate      = "date"

	MeasureTotalCases        = "total_cases"
	MeasureTotalDeaths       = "total_deaths"
	MeasureTotalVaccinations = "total_vaccinations"
)

// Engine answers aggregate questions over a dataset. It never mutates
// the dataset it holds.
type Engine struct {
	ds *dataset.Dataset
}

func NewEngine(ds *dataset.Dataset) *Engine {
	return &Engine{ds: ds}
}

type Info struct {
	Rows    int
	Columns []ColumnInfo
}

type ColumnInfo struct {
	Name string
	Kind dataset.Kind
}

// BasicInfo reports shape and per-column inferred kinds.
func (e *Engine) BasicInfo() Info {
	info := Info{Rows: e.ds.RowCount()}
	for _, name := range e.ds.Columns() {
		kind, _ := e.ds.InferKind(name)
		info.Columns = append(info.Columns, ColumnInfo{Name: name, Kind: kind})
	}
	return info
}

type ColumnCount struct {
	Column string
	Count  int
}

// MissingValueCounts reports null counts per column in schema order.
// Columns without any nulls only appear when includeZero is set.
func (e *Engine) MissingValueCounts(includeZero bool) []ColumnCount {
	var out []ColumnCount
	for col, name := range e.ds.Columns() {
		count := 0
		for row := 0; row < e.ds.RowCount(); row++ {
			if e.ds.At(row, col).IsNull() {
				count++
			}
		}
		if count == 0 && !includeZero {
			continue
		}
		out = append(out, ColumnCount{Column: name, Count: count})
	}
	return out
}

// UniqueValues reports the distinct non-null values of a column in
// first-seen order.
func (e *Engine) UniqueValues(column string) ([]dataset.Value, error) {
	col := e.ds.ColumnIndex(column)
	if col < 0 {
		return nil, &dataset.ColumnNotFoundError{Column: column}
	}
	seen := map[string]bool{}
	var out []dataset.Value
	for row := 0; row < e.ds.RowCount(); row++ {
		v := e.ds.At(row, col)
		if v.IsNull() {
			continue
		}
		key := valueKey(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out, nil
}

// UniqueValueCounts reports the number of distinct non-null values per
// named column.
func (e *Engine) UniqueValueCounts(columns []string) (map[string]int, error) {
	out := make(map[string]int, len(columns))
	for _, name := range columns {
		values, err := e.UniqueValues(name)
		if err != nil {
			return nil, err
		}
		out[name] = len(values)
	}
	return out, nil
}

type LocationCount struct {
	Location string
	Count    int
}

// LocationValueCounts reports how many rows each location has,
// descending, ties in first-seen order.
func (e *Engine) LocationValueCounts() ([]LocationCount, error) {
	col := e.ds.ColumnIndex(ColumnLocation)
	if col < 0 {
		return nil, &dataset.ColumnNotFoundError{Column: ColumnLocation}
	}
	counts := map[string]int{}
	var order []string
	for row := 0; row < e.ds.RowCount(); row++ {
		v := e.ds.At(row, col)
		if v.IsNull() {
			continue
		}
		name := v.Format()
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}

	out := make([]LocationCount, 0, len(order))
	for _, name := range order {
		out = append(out, LocationCount{Location: name, Count: counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out, nil
}

func valueKey(v dataset.Value) string {
	return fmt.Sprintf("%d\x1f%s", v.Kind(), v.Format())
}

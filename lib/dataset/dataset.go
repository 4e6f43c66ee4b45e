package dataset

import "fmt"

// Dataset is an ordered set of named columns over row-major typed
// cells. Every row always carries exactly one cell per column.
type Dataset struct {
	columns []string
	rows    [][]Value
}

func New(columns []string) *Dataset {
	return &Dataset{columns: append([]string{}, columns...)}
}

// FromTable converts raw extracted records into a dataset. Empty
// strings become nulls, everything else starts out as a string cell.
func FromTable(columns []string, rows [][]string) (*Dataset, error) {
	ds := New(columns)
	for _, row := range rows {
		err := ds.AppendStringRow(row)
		if err != nil {
			return nil, err
		}
	}
	return ds, nil
}

func (d *Dataset) Columns() []string {
	return append([]string{}, d.columns...)
}

func (d *Dataset) RowCount() int {
	return len(d.rows)
}

func (d *Dataset) ColumnCount() int {
	return len(d.columns)
}

func (d *Dataset) HasColumn(name string) bool {
	return d.ColumnIndex(name) >= 0
}

// ColumnIndex reports the position of a column, -1 when absent.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (d *Dataset) At(row, col int) Value {
	return d.rows[row][col]
}

// AppendStringRow adds a row of raw text cells, empty strings become
// nulls.
func (d *Dataset) AppendStringRow(cells []string) error {
	if len(cells) != len(d.columns) {
		return &InvalidArgumentError{
			Op:     "AppendStringRow",
			Reason: fmt.Sprintf("row has %d cells, want %d", len(cells), len(d.columns)),
		}
	}
	row := make([]Value, len(cells))
	for i, c := range cells {
		if c == "" {
			row[i] = Null()
		} else {
			row[i] = String(c)
		}
	}
	d.rows = append(d.rows, row)
	return nil
}

func (d *Dataset) AppendRow(cells []Value) error {
	if len(cells) != len(d.columns) {
		return &InvalidArgumentError{
			Op:     "AppendRow",
			Reason: fmt.Sprintf("row has %d cells, want %d", len(cells), len(d.columns)),
		}
	}
	d.rows = append(d.rows, append([]Value{}, cells...))
	return nil
}

func (d *Dataset) Clone() *Dataset {
	clone := &Dataset{
		columns: append([]string{}, d.columns...),
		rows:    make([][]Value, len(d.rows)),
	}
	for i, row := range d.rows {
		clone.rows[i] = append([]Value{}, row...)
	}
	return clone
}

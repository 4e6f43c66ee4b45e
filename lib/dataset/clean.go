package dataset

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{DateLayout, "2006/01/02", "1/2/2006", "1/2/06"}

// CoerceDate converts every non-null cell of a column to a date. The
// first cell no known layout accepts fails the whole conversion and
// leaves the dataset untouched.
func (d *Dataset) CoerceDate(column string) error {
	col := d.ColumnIndex(column)
	if col < 0 {
		return &ColumnNotFoundError{Column: column}
	}
	converted := make([]Value, len(d.rows))
	for i, row := range d.rows {
		cell := row[col]
		if cell.IsNull() || cell.Kind() == KindDate {
			converted[i] = cell
			continue
		}
		text := cell.Format()
		parsed, ok := parseDate(text)
		if !ok {
			return &TypeError{Column: column, Row: i, Value: text, Target: KindDate}
		}
		converted[i] = parsed
	}
	for i, row := range d.rows {
		row[col] = converted[i]
	}
	return nil
}

func parseDate(text string) (Value, bool) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, text)
		if err == nil {
			return Date(t), true
		}
	}
	return Null(), false
}

// FillMissing replaces nulls in the named columns. Names that aren't
// part of the schema are skipped so one fill list can serve datasets
// of different shapes.
func (d *Dataset) FillMissing(columns []string, fill Value) {
	for _, name := range columns {
		col := d.ColumnIndex(name)
		if col < 0 {
			continue
		}
		for _, row := range d.rows {
			if row[col].IsNull() {
				row[col] = fill
			}
		}
	}
}

// DropColumns removes the named columns, absent names are ignored.
func (d *Dataset) DropColumns(columns ...string) {
	drop := make(map[int]bool, len(columns))
	for _, name := range columns {
		col := d.ColumnIndex(name)
		if col >= 0 {
			drop[col] = true
		}
	}
	if len(drop) == 0 {
		return
	}

	var keptColumns []string
	for i, name := range d.columns {
		if !drop[i] {
			keptColumns = append(keptColumns, name)
		}
	}
	for r, row := range d.rows {
		var keptCells []Value
		for i, cell := range row {
			if !drop[i] {
				keptCells = append(keptCells, cell)
			}
		}
		d.rows[r] = keptCells
	}
	d.columns = keptColumns
}

// DropEmptyRows removes rows whose every cell is null.
func (d *Dataset) DropEmptyRows() {
	kept := d.rows[:0]
	for _, row := range d.rows {
		empty := true
		for _, cell := range row {
			if !cell.IsNull() {
				empty = false
				break
			}
		}
		if !empty {
			kept = append(kept, row)
		}
	}
	d.rows = kept
}

// DropRowsMissing removes rows with a null in the given column.
func (d *Dataset) DropRowsMissing(column string) error {
	col := d.ColumnIndex(column)
	if col < 0 {
		return &ColumnNotFoundError{Column: column}
	}
	kept := d.rows[:0]
	for _, row := range d.rows {
		if !row[col].IsNull() {
			kept = append(kept, row)
		}
	}
	d.rows = kept
	return nil
}

// Deduplicate removes rows whose every cell equals an earlier row,
// keeping the first occurrence. Row order is preserved.
func (d *Dataset) Deduplicate() {
	seen := make(map[string]bool, len(d.rows))
	kept := d.rows[:0]
	for _, row := range d.rows {
		key := rowFingerprint(row)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, row)
	}
	d.rows = kept
}

func rowFingerprint(row []Value) string {
	// cells are length-prefixed, a delimiter byte inside a cell's text
	// cannot fake a cell boundary
	var b strings.Builder
	for _, cell := range row {
		text := cell.Format()
		b.WriteByte(byte('0' + cell.Kind()))
		b.WriteString(strconv.Itoa(len(text)))
		b.WriteByte(':')
		b.WriteString(text)
	}
	return b.String()
}

// ReplaceValue rewrites every cell of a column equal to `from`.
func (d *Dataset) ReplaceValue(column string, from, to Value) error {
	col := d.ColumnIndex(column)
	if col < 0 {
		return &ColumnNotFoundError{Column: column}
	}
	for _, row := range d.rows {
		if row[col].Equal(from) {
			row[col] = to
		}
	}
	return nil
}

// FilterEqual copies the rows whose cell in the given column equals
// `value`. The receiver is left untouched.
func (d *Dataset) FilterEqual(column string, value Value) (*Dataset, error) {
	col := d.ColumnIndex(column)
	if col < 0 {
		return nil, &ColumnNotFoundError{Column: column}
	}
	out := New(d.columns)
	for _, row := range d.rows {
		if row[col].Equal(value) {
			out.rows = append(out.rows, append([]Value{}, row...))
		}
	}
	return out, nil
}

// Sort reorders rows by a column. The sort is stable and nulls go to
// the end regardless of direction.
func (d *Dataset) Sort(column string, ascending bool) error {
	col := d.ColumnIndex(column)
	if col < 0 {
		return &ColumnNotFoundError{Column: column}
	}
	sort.SliceStable(d.rows, func(i, j int) bool {
		l := d.rows[i][col]
		r := d.rows[j][col]
		if l.IsNull() || r.IsNull() {
			return !l.IsNull() && r.IsNull()
		}
		if ascending {
			return l.Compare(r) < 0
		}
		return l.Compare(r) > 0
	})
	return nil
}

// CoerceType converts every non-null cell of a column to the target
// kind. Numeric parsing tolerates the shape of scraped counters:
// digit-grouping commas and a leading plus sign. The first cell that
// doesn't parse fails the whole conversion and leaves the dataset
// untouched.
func (d *Dataset) CoerceType(column string, target Kind) error {
	switch target {
	case KindInt, KindFloat, KindString:
	case KindDate:
		return &InvalidArgumentError{Op: "CoerceType", Reason: "use CoerceDate for date columns"}
	default:
		return &InvalidArgumentError{Op: "CoerceType", Reason: fmt.Sprintf("cannot coerce to %s", target)}
	}

	col := d.ColumnIndex(column)
	if col < 0 {
		return &ColumnNotFoundError{Column: column}
	}

	converted := make([]Value, len(d.rows))
	for i, row := range d.rows {
		cell := row[col]
		if cell.IsNull() || cell.Kind() == target {
			converted[i] = cell
			continue
		}
		next, ok := convertCell(cell, target)
		if !ok {
			return &TypeError{Column: column, Row: i, Value: cell.Format(), Target: target}
		}
		converted[i] = next
	}
	for i, row := range d.rows {
		row[col] = converted[i]
	}
	return nil
}

func convertCell(cell Value, target Kind) (Value, bool) {
	switch target {
	case KindString:
		return String(cell.Format()), true
	case KindInt:
		if cell.Kind() == KindFloat {
			f := cell.Float64()
			n := int64(f)
			if float64(n) != f {
				return Null(), false
			}
			return Int(n), true
		}
		n, err := strconv.ParseInt(normalizeNumber(cell.Format()), 10, 64)
		if err != nil {
			return Null(), false
		}
		return Int(n), true
	case KindFloat:
		if cell.Kind() == KindInt {
			return Float(float64(cell.Int64())), true
		}
		f, err := strconv.ParseFloat(normalizeNumber(cell.Format()), 64)
		if err != nil {
			return Null(), false
		}
		return Float(f), true
	}
	return Null(), false
}

// scraped counters look like "+1,234,567"
func normalizeNumber(text string) string {
	text = strings.ReplaceAll(text, ",", "")
	text = strings.TrimPrefix(text, "+")
	return strings.TrimSpace(text)
}

// InferKind reports the single kind shared by a column's non-null
// cells, KindNull when there are none, KindMixed otherwise.
func (d *Dataset) InferKind(column string) (Kind, error) {
	col := d.ColumnIndex(column)
	if col < 0 {
		return KindNull, &ColumnNotFoundError{Column: column}
	}
	inferred := KindNull
	for _, row := range d.rows {
		k := row[col].Kind()
		if k == KindNull {
			continue
		}
		if inferred == KindNull {
			inferred = k
			continue
		}
		if inferred != k {
			return KindMixed, nil
		}
	}
	return inferred, nil
}

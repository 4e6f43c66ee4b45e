package dataset

import "fmt"

type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column not found: %s", e.Column)
}

// TypeError reports the first cell a coercion could not convert.
type TypeError struct {
	Column string
	Row    int
	Value  string
	Target Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf(
		"cannot convert %q to %s (column %q, row %d)",
		e.Value, e.Target, e.Column, e.Row,
	)
}

type InvalidArgumentError struct {
	Op     string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %s", e.Path, e.Err.Error())
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

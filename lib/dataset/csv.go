package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// LoadCSV reads a csv file into a dataset. The first row is the
// header, empty cells become nulls.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()
	return ReadCSV(f, path)
}

// ReadCSV is LoadCSV over an arbitrary reader, `source` only labels
// errors.
func ReadCSV(r io.Reader, source string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &LoadError{Path: source, Err: fmt.Errorf("file is empty")}
	}
	if err != nil {
		return nil, &LoadError{Path: source, Err: err}
	}

	ds := New(header)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Path: source, Err: err}
		}
		err = ds.AppendStringRow(record)
		if err != nil {
			return nil, &LoadError{Path: source, Err: err}
		}
	}
	return ds, nil
}

package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	input := strings.Join([]string{
		"iso_code,location,date,total_cases",
		"USA,United States,2021-04-12,31737",
		"FRA,France,2021-04-12,",
		`ITA,"Italy, Republic of",2021-04-12,3779594`,
	}, "\n")

	ds, err := ReadCSV(strings.NewReader(input), "test.csv")
	require.NoError(t, err)
	require.Equal(t, []string{"iso_code", "location", "date", "total_cases"}, ds.Columns())
	require.Equal(t, 3, ds.RowCount())

	require.True(t, ds.At(0, 3).Equal(String("31737")))
	require.True(t, ds.At(1, 3).IsNull())
	require.True(t, ds.At(2, 1).Equal(String("Italy, Republic of")))
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), "empty.csv")
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, "empty.csv", loadErr.Path)
}

func TestReadCSVRagged(t *testing.T) {
	input := "a,b,c\n1,2\n"
	_, err := ReadCSV(strings.NewReader(input), "ragged.csv")
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	err := os.WriteFile(path, []byte("location,total_cases\nIndia,45035393\n"), 0644)
	require.NoError(t, err)

	ds, err := LoadCSV(path)
	require.NoError(t, err)
	require.Equal(t, 1, ds.RowCount())
	require.True(t, ds.At(0, 0).Equal(String("India")))
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	require.ErrorIs(t, err, os.ErrNotExist)
}

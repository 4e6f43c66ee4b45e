package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromTable(t *testing.T) {
	ds, err := FromTable(
		[]string{"location", "total_cases"},
		[][]string{
			{"USA", "111820082"},
			{"France", ""},
		},
	)
	require.NoError(t, err)
	require.Equal(t, 2, ds.RowCount())
	require.Equal(t, []string{"location", "total_cases"}, ds.Columns())

	require.True(t, ds.At(0, 1).Equal(String("111820082")))
	require.True(t, ds.At(1, 1).IsNull())
}

func TestFromTableRaggedRow(t *testing.T) {
	_, err := FromTable(
		[]string{"location", "total_cases"},
		[][]string{{"USA"}},
	)
	var argErr *InvalidArgumentError
	require.ErrorAs(t, err, &argErr)
}

func TestAppendRow(t *testing.T) {
	ds := New([]string{"location", "total_cases"})
	require.NoError(t, ds.AppendRow([]Value{String("USA"), Int(111820082)}))
	require.Error(t, ds.AppendRow([]Value{String("France")}))
	require.Equal(t, 1, ds.RowCount())
}

func TestHasColumn(t *testing.T) {
	ds := New([]string{"location", "date"})
	require.True(t, ds.HasColumn("date"))
	require.False(t, ds.HasColumn("continent"))
	require.Equal(t, 1, ds.ColumnIndex("date"))
	require.Equal(t, -1, ds.ColumnIndex("continent"))
}

func TestClone(t *testing.T) {
	ds := New([]string{"location"})
	require.NoError(t, ds.AppendRow([]Value{String("USA")}))

	clone := ds.Clone()
	require.NoError(t, clone.ReplaceValue("location", String("USA"), String("Italy")))

	require.True(t, ds.At(0, 0).Equal(String("USA")))
	require.True(t, clone.At(0, 0).Equal(String("Italy")))
}

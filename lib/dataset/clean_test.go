package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustFromTable(t *testing.T, columns []string, rows [][]string) *Dataset {
	t.Helper()
	ds, err := FromTable(columns, rows)
	require.NoError(t, err)
	return ds
}

func TestCoerceDate(t *testing.T) {
	ds := mustFromTable(t,
		[]string{"date"},
		[][]string{{"2020-03-01"}, {"2020/03/02"}, {"3/3/2020"}, {"3/4/20"}, {""}},
	)
	require.NoError(t, ds.CoerceDate("date"))

	require.Equal(t, "2020-03-01", ds.At(0, 0).Format())
	require.Equal(t, "2020-03-02", ds.At(1, 0).Format())
	require.Equal(t, "2020-03-03", ds.At(2, 0).Format())
	require.Equal(t, "2020-03-04", ds.At(3, 0).Format())
	require.True(t, ds.At(4, 0).IsNull())
}

func TestCoerceDateBadValue(t *testing.T) {
	ds := mustFromTable(t, []string{"date"}, [][]string{{"2020-03-01"}, {"soon"}})
	err := ds.CoerceDate("date")

	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
	require.Equal(t, "date", typeErr.Column)
	require.Equal(t, 1, typeErr.Row)
	require.Equal(t, "soon", typeErr.Value)

	// a failed coercion leaves every cell as it was
	require.True(t, ds.At(0, 0).Equal(String("2020-03-01")))
}

func TestFillMissing(t *testing.T) {
	ds := mustFromTable(t,
		[]string{"location", "total_cases"},
		[][]string{{"USA", "100"}, {"France", ""}},
	)
	ds.FillMissing([]string{"total_cases", "no_such_column"}, String("0"))

	require.True(t, ds.At(0, 1).Equal(String("100")))
	require.True(t, ds.At(1, 1).Equal(String("0")))
}

func TestDropColumns(t *testing.T) {
	ds := mustFromTable(t,
		[]string{"location", "new_cases", "new_deaths"},
		[][]string{{"USA", "5", "1"}},
	)
	ds.DropColumns("new_cases", "not_here", "new_deaths")

	require.Equal(t, []string{"location"}, ds.Columns())
	require.Equal(t, 1, ds.ColumnCount())
	require.True(t, ds.At(0, 0).Equal(String("USA")))
}

func TestDropEmptyRows(t *testing.T) {
	ds := mustFromTable(t,
		[]string{"a", "b"},
		[][]string{{"", ""}, {"x", ""}, {"", ""}},
	)
	ds.DropEmptyRows()
	require.Equal(t, 1, ds.RowCount())
	require.True(t, ds.At(0, 0).Equal(String("x")))
}

func TestDropRowsMissing(t *testing.T) {
	ds := mustFromTable(t,
		[]string{"iso_code", "total_cases"},
		[][]string{{"USA", "100"}, {"", "50"}, {"FRA", ""}},
	)
	require.NoError(t, ds.DropRowsMissing("iso_code"))
	require.Equal(t, 2, ds.RowCount())

	err := ds.DropRowsMissing("continent")
	var notFound *ColumnNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "continent", notFound.Column)
}

func TestDeduplicate(t *testing.T) {
	ds := mustFromTable(t,
		[]string{"location", "total_cases"},
		[][]string{
			{"USA", "100"},
			{"France", "50"},
			{"USA", "100"},
			{"USA", "200"},
		},
	)
	ds.Deduplicate()
	require.Equal(t, 3, ds.RowCount())
	require.True(t, ds.At(0, 0).Equal(String("USA")))
	require.True(t, ds.At(1, 0).Equal(String("France")))
	require.True(t, ds.At(2, 1).Equal(String("200")))

	// already unique, nothing more to remove
	ds.Deduplicate()
	require.Equal(t, 3, ds.RowCount())
}

func TestDeduplicateKindSensitive(t *testing.T) {
	ds := New([]string{"v"})
	require.NoError(t, ds.AppendRow([]Value{Int(100)}))
	require.NoError(t, ds.AppendRow([]Value{String("100")}))
	ds.Deduplicate()
	require.Equal(t, 2, ds.RowCount())
}

func TestDeduplicateCellBoundaries(t *testing.T) {
	// control bytes inside a cell must not shift the boundary between
	// cells and make two distinct rows read as one
	ds := New([]string{"a", "b"})
	require.NoError(t, ds.AppendRow([]Value{String("x\x1f1y"), String("z")}))
	require.NoError(t, ds.AppendRow([]Value{String("x"), String("y\x1f1z")}))
	ds.Deduplicate()
	require.Equal(t, 2, ds.RowCount())
}

func TestReplaceValue(t *testing.T) {
	ds := mustFromTable(t,
		[]string{"total_cases"},
		[][]string{{"N/A"}, {"100"}},
	)
	require.NoError(t, ds.ReplaceValue("total_cases", String("N/A"), Null()))
	require.True(t, ds.At(0, 0).IsNull())
	require.True(t, ds.At(1, 0).Equal(String("100")))
}

func TestFilterEqual(t *testing.T) {
	ds := mustFromTable(t,
		[]string{"continent", "location"},
		[][]string{{"Europe", "France"}, {"Asia", "India"}, {"Europe", "Italy"}},
	)
	subset, err := ds.FilterEqual("continent", String("Europe"))
	require.NoError(t, err)
	require.Equal(t, 2, subset.RowCount())
	require.Equal(t, 3, ds.RowCount())

	// the subset is an independent copy
	require.NoError(t, subset.ReplaceValue("location", String("France"), String("Spain")))
	require.True(t, ds.At(0, 1).Equal(String("France")))
}

func TestSort(t *testing.T) {
	ds := New([]string{"location", "total_cases"})
	require.NoError(t, ds.AppendRow([]Value{String("USA"), Int(300)}))
	require.NoError(t, ds.AppendRow([]Value{String("France"), Null()}))
	require.NoError(t, ds.AppendRow([]Value{String("India"), Int(500)}))
	require.NoError(t, ds.AppendRow([]Value{String("Italy"), Int(100)}))

	require.NoError(t, ds.Sort("total_cases", true))
	require.Equal(t, "Italy", ds.At(0, 0).Str())
	require.Equal(t, "USA", ds.At(1, 0).Str())
	require.Equal(t, "India", ds.At(2, 0).Str())
	// nulls go last even ascending
	require.True(t, ds.At(3, 1).IsNull())

	require.NoError(t, ds.Sort("total_cases", false))
	require.Equal(t, "India", ds.At(0, 0).Str())
	require.Equal(t, "USA", ds.At(1, 0).Str())
	require.Equal(t, "Italy", ds.At(2, 0).Str())
	require.True(t, ds.At(3, 1).IsNull())
}

func TestSortStable(t *testing.T) {
	ds := New([]string{"location", "total_cases"})
	require.NoError(t, ds.AppendRow([]Value{String("USA"), Int(100)}))
	require.NoError(t, ds.AppendRow([]Value{String("France"), Int(100)}))
	require.NoError(t, ds.AppendRow([]Value{String("India"), Int(50)}))
	require.NoError(t, ds.AppendRow([]Value{String("Italy"), Int(100)}))

	require.NoError(t, ds.Sort("total_cases", true))

	// tied rows keep their original relative order
	require.Equal(t, "India", ds.At(0, 0).Str())
	require.Equal(t, "USA", ds.At(1, 0).Str())
	require.Equal(t, "France", ds.At(2, 0).Str())
	require.Equal(t, "Italy", ds.At(3, 0).Str())
	require.Equal(t, []string{"location", "total_cases"}, ds.Columns())
}

func TestCoerceTypeInt(t *testing.T) {
	ds := mustFromTable(t,
		[]string{"total_cases"},
		[][]string{{"1,234,567"}, {"+89"}, {""}, {"42"}},
	)
	require.NoError(t, ds.CoerceType("total_cases", KindInt))

	require.True(t, ds.At(0, 0).Equal(Int(1234567)))
	require.True(t, ds.At(1, 0).Equal(Int(89)))
	require.True(t, ds.At(2, 0).IsNull())
	require.True(t, ds.At(3, 0).Equal(Int(42)))
}

func TestCoerceTypeFloat(t *testing.T) {
	ds := mustFromTable(t, []string{"rate"}, [][]string{{"3.14"}, {"1,200.5"}})
	require.NoError(t, ds.CoerceType("rate", KindFloat))
	require.True(t, ds.At(0, 0).Equal(Float(3.14)))
	require.True(t, ds.At(1, 0).Equal(Float(1200.5)))
}

func TestCoerceTypeBadValue(t *testing.T) {
	ds := mustFromTable(t, []string{"total_cases"}, [][]string{{"12"}, {"many"}})
	err := ds.CoerceType("total_cases", KindInt)

	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
	require.Equal(t, 1, typeErr.Row)
	require.Equal(t, "many", typeErr.Value)
	require.Equal(t, KindInt, typeErr.Target)

	// a failed coercion leaves every cell as it was
	require.True(t, ds.At(0, 0).Equal(String("12")))
}

func TestCoerceTypeDateRejected(t *testing.T) {
	ds := mustFromTable(t, []string{"date"}, [][]string{{"2020-03-01"}})
	err := ds.CoerceType("date", KindDate)
	var argErr *InvalidArgumentError
	require.ErrorAs(t, err, &argErr)
}

func TestCoerceTypeFloatToInt(t *testing.T) {
	ds := New([]string{"v"})
	require.NoError(t, ds.AppendRow([]Value{Float(12)}))
	require.NoError(t, ds.CoerceType("v", KindInt))
	require.True(t, ds.At(0, 0).Equal(Int(12)))

	ds = New([]string{"v"})
	require.NoError(t, ds.AppendRow([]Value{Float(12.5)}))
	require.Error(t, ds.CoerceType("v", KindInt))
}

func TestInferKind(t *testing.T) {
	ds := New([]string{"a", "b", "c"})
	require.NoError(t, ds.AppendRow([]Value{Int(1), String("x"), Null()}))
	require.NoError(t, ds.AppendRow([]Value{Int(2), Int(3), Null()}))

	kind, err := ds.InferKind("a")
	require.NoError(t, err)
	require.Equal(t, KindInt, kind)

	kind, err = ds.InferKind("b")
	require.NoError(t, err)
	require.Equal(t, KindMixed, kind)

	kind, err = ds.InferKind("c")
	require.NoError(t, err)
	require.Equal(t, KindNull, kind)

	_, err = ds.InferKind("d")
	var notFound *ColumnNotFoundError
	require.ErrorAs(t, err, &notFound)
}

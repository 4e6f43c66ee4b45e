package commands

import (
	"os"

	"covidwatch-backend/lib/dataset"
	"covidwatch-backend/lib/summary"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

// null cells render as empty strings
func renderDataset(ds *dataset.Dataset) {
	t := newTable()
	header := table.Row{}
	for _, col := range ds.Columns() {
		header = append(header, col)
	}
	t.AppendHeader(header)
	for r := 0; r < ds.RowCount(); r++ {
		row := table.Row{}
		for c := 0; c < ds.ColumnCount(); c++ {
			row = append(row, ds.At(r, c).Format())
		}
		t.AppendRow(row)
	}
	t.Render()
}

func renderMeasureSummary(s summary.MeasureSummary) {
	t := newTable()
	t.AppendHeader(table.Row{"Scope", "Rows", "Total Cases", "Total Deaths", "Total Vaccinations"})
	t.AppendRow(table.Row{
		s.Scope,
		s.Rows,
		s.TotalCases.Format(),
		s.TotalDeaths.Format(),
		s.TotalVaccinations.Format(),
	})
	t.Render()
}

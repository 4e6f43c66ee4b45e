package commands

import (
	"errors"

	"covidwatch-backend/lib/dataset"
	"covidwatch-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var errNoNumericColumns = errors.New("the snapshot has no numeric columns")

func init() {
	summaryCmd.AddCommand(summaryDescribeCmd)
}

var summaryDescribeCmd = &cobra.Command{
	Use:   "describe [columns...]",
	Short: "Numeric profile (count/mean/std/quartiles) of columns, all numeric ones by default.",
	Run: func(cmd *cobra.Command, args []string) {
		engine := summaryEngine(cmd)

		columns := args
		if len(columns) == 0 {
			for _, col := range engine.BasicInfo().Columns {
				if col.Kind == dataset.KindInt || col.Kind == dataset.KindFloat {
					columns = append(columns, col.Name)
				}
			}
		}
		if len(columns) == 0 {
			serviceutil.Fatal("describe", errNoNumericColumns)
		}

		profiles, err := engine.Describe(columns)
		if err != nil {
			serviceutil.Fatal("failed to describe columns", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Column", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"})
		for _, p := range profiles {
			t.AppendRow(table.Row{
				p.Column,
				p.Count,
				p.Mean.Format(),
				p.Std.Format(),
				p.Min.Format(),
				p.Q25.Format(),
				p.Median.Format(),
				p.Q75.Format(),
				p.Max.Format(),
			})
		}
		t.Render()
	},
}

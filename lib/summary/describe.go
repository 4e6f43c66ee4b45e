package summary

import (
	"covidwatch-backend/lib/dataset"

	"github.com/mazen160/go-random"
	"github.com/montanaflynn/stats"
)

// ColumnStats is the numeric profile of one column. Columns without
// numeric cells report Count 0 and null stats.
type ColumnStats struct {
	Column string
	Count  int
	Mean   dataset.Value
	Std    dataset.Value
	Min    dataset.Value
	Q25    dataset.Value
	Median dataset.Value
	Q75    dataset.Value
	Max    dataset.Value
}

// Describe profiles the named columns: count, mean, sample standard
// deviation, min, quartiles and max over the non-null numeric cells.
func (e *Engine) Describe(columns []string) ([]ColumnStats, error) {
	out := make([]ColumnStats, 0, len(columns))
	for _, name := range columns {
		col := e.ds.ColumnIndex(name)
		if col < 0 {
			return nil, &dataset.ColumnNotFoundError{Column: name}
		}

		var samples stats.Float64Data
		for row := 0; row < e.ds.RowCount(); row++ {
			f, ok := e.ds.At(row, col).AsFloat()
			if ok {
				samples = append(samples, f)
			}
		}

		cs := ColumnStats{
			Column: name,
			Count:  len(samples),
			Mean:   dataset.Null(),
			Std:    dataset.Null(),
			Min:    dataset.Null(),
			Q25:    dataset.Null(),
			Median: dataset.Null(),
			Q75:    dataset.Null(),
			Max:    dataset.Null(),
		}
		if len(samples) > 0 {
			cs.Mean = floatStat(samples.Mean())
			cs.Std = floatStat(stats.StandardDeviationSample(samples))
			cs.Min = floatStat(samples.Min())
			cs.Q25 = floatStat(stats.Percentile(samples, 25))
			cs.Median = floatStat(samples.Median())
			cs.Q75 = floatStat(stats.Percentile(samples, 75))
			cs.Max = floatStat(samples.Max())
		}
		out = append(out, cs)
	}
	return out, nil
}

func floatStat(f float64, err error) dataset.Value {
	if err != nil {
		return dataset.Null()
	}
	return dataset.Float(f)
}

// Sample copies n rows picked uniformly at random. Asking for at least
// the full row count returns a clone of the whole dataset.
func (e *Engine) Sample(n int) (*dataset.Dataset, error) {
	if n < 1 {
		return nil, &dataset.InvalidArgumentError{Op: "Sample", Reason: "n must be at least 1"}
	}
	if n >= e.ds.RowCount() {
		return e.ds.Clone(), nil
	}

	indices := make([]int, e.ds.RowCount())
	for i := range indices {
		indices[i] = i
	}
	for i := len(indices) - 1; i > 0; i-- {
		j, err := random.IntRange(0, i+1)
		if err != nil {
			return nil, err
		}
		indices[i], indices[j] = indices[j], indices[i]
	}

	out := dataset.New(e.ds.Columns())
	for _, row := range indices[:n] {
		cells := make([]dataset.Value, e.ds.ColumnCount())
		for col := range cells {
			cells[col] = e.ds.At(row, col)
		}
		err := out.AppendRow(cells)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

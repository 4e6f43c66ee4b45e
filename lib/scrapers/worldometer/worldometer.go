package worldometer

import (
	"bytes"
	"fmt"

	"covidwatch-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// DefaultFieldList names the eleven columns of the per-country
// statistics table.
var DefaultFieldList = []string{
	"Name",
	"Total Cases",
	"New Cases",
	"Total Deaths",
	"New Deaths",
	"Total Recovered",
	"New Recovered",
	"Active Cases",
	"Serious Cases",
	"Total Tests",
	"Population",
}

// TableConfig pins down where the data lives inside the page's main
// table: the half-open [RowStart, RowEnd) slice of <tbody> rows that
// holds per-country data, and the <td> position backing each output
// column.
type TableConfig struct {
	Columns     []string `json:"columns"`
	RowStart    int      `json:"row_start"`
	RowEnd      int      `json:"row_end"`
	CellIndexes []int    `json:"cell_indexes"`
}

// DefaultTableConfig matches the legacy page layout: 8 header rows, a
// country row per line up to row 229, and the interesting counters
// spread over cells 1-9, 12 and 14.
func DefaultTableConfig() TableConfig {
	return TableConfig{
		Columns:     append([]string{}, DefaultFieldList...),
		RowStart:    8,
		RowEnd:      229,
		CellIndexes: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 12, 14},
	}
}

// Table is the raw extraction result, cells are trimmed text aligned
// positionally to Columns.
type Table struct {
	Columns []string
	Rows    [][]string
}

// GlobalStats are the three headline counters of the page, verbatim as
// rendered.
type GlobalStats struct {
	TotalCases     string
	TotalDeaths    string
	TotalRecovered string
}

// ExtractError reports markup that doesn't match the expected page
// layout. Row is the offending <tbody> row index, -1 when the problem
// isn't specific to a row.
type ExtractError struct {
	Reason    string
	Row       int
	CellCount int
	Need      int
}

func (e *ExtractError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf(
			"extract: %s (row %d has %d cells, need %d)",
			e.Reason, e.Row, e.CellCount, e.Need,
		)
	}
	return fmt.Sprintf("extract: %s", e.Reason)
}

// ExtractTable pulls the per-country statistics table out of page
// markup. Rows that don't carry enough cells fail the extraction,
// they are never padded or skipped.
func ExtractTable(markup []byte, cfg TableConfig) (Table, error) {
	if len(cfg.Columns) != len(cfg.CellIndexes) {
		return Table{}, &ExtractError{
			Reason: fmt.Sprintf(
				"config maps %d columns to %d cell indexes",
				len(cfg.Columns), len(cfg.CellIndexes),
			),
			Row: -1,
		}
	}
	if cfg.RowStart < 0 || cfg.RowEnd < cfg.RowStart {
		return Table{}, &ExtractError{
			Reason: fmt.Sprintf("invalid row range [%d, %d)", cfg.RowStart, cfg.RowEnd),
			Row:    -1,
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(markup))
	if err != nil {
		return Table{}, err
	}

	tbody := doc.Find("tbody").First()
	if tbody.Length() == 0 {
		return Table{}, &ExtractError{Reason: "no tbody in page", Row: -1}
	}
	rows := tbody.Find("tr")
	if rows.Length() < cfg.RowEnd {
		return Table{}, &ExtractError{
			Reason: fmt.Sprintf("tbody has %d rows, need %d", rows.Length(), cfg.RowEnd),
			Row:    -1,
		}
	}

	need := 0
	for _, idx := range cfg.CellIndexes {
		if idx+1 > need {
			need = idx + 1
		}
	}

	table := Table{Columns: append([]string{}, cfg.Columns...)}
	var extractErr error
	rows.Slice(cfg.RowStart, cfg.RowEnd).EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := htmlutil.RowCells(row)
		if len(cells) < need {
			extractErr = &ExtractError{
				Reason:    "row has too few cells",
				Row:       cfg.RowStart + i,
				CellCount: len(cells),
				Need:      need,
			}
			return false
		}
		record := make([]string, len(cfg.CellIndexes))
		for j, idx := range cfg.CellIndexes {
			record[j] = cells[idx]
		}
		table.Rows = append(table.Rows, record)
		return true
	})
	if extractErr != nil {
		return Table{}, extractErr
	}

	return table, nil
}

// ExtractGlobalStats pulls the three headline counters (cases, deaths,
// recoveries) out of page markup.
func ExtractGlobalStats(markup []byte) (GlobalStats, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(markup))
	if err != nil {
		return GlobalStats{}, err
	}

	counters := doc.Find("div.maincounter-number")
	if counters.Length() < 3 {
		return GlobalStats{}, &ExtractError{
			Reason: fmt.Sprintf("found %d main counters, need 3", counters.Length()),
			Row:    -1,
		}
	}

	var texts []string
	counters.Slice(0, 3).Each(func(_ int, div *goquery.Selection) {
		texts = append(texts, htmlutil.CleanText(div.Nodes[0]))
	})

	return GlobalStats{
		TotalCases:     texts[0],
		TotalDeaths:    texts[1],
		TotalRecovered: texts[2],
	}, nil
}

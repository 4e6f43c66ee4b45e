package worldometer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"covidwatch-backend/lib/fetch"
	"covidwatch-backend/lib/telemetry"

	"github.com/stretchr/testify/require"
)

// buildPage renders a page shaped like the live statistics page: three
// headline counters and a main table with 8 header rows followed by
// `dataRows` country rows of 15 cells each.
func buildPage(dataRows int) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString(`<div class="maincounter-number"><span>704,753,890</span></div>`)
	b.WriteString(`<div class="maincounter-number"><span>7,010,681</span></div>`)
	b.WriteString(`<div class="maincounter-number"><span>675,619,811</span></div>`)
	b.WriteString(`<table id="main_table_countries_today"><tbody>`)
	for i := 0; i < 8; i++ {
		b.WriteString("<tr><td>header</td></tr>")
	}
	for i := 0; i < dataRows; i++ {
		b.WriteString("<tr>")
		b.WriteString(fmt.Sprintf("<td>%d</td>", i+1))
		b.WriteString(fmt.Sprintf("<td>Country %d</td>", i+1))
		for c := 2; c < 15; c++ {
			b.WriteString(fmt.Sprintf("<td>%d,%03d</td>", c, i))
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table></body></html>")
	return b.String()
}

func TestExtractTableDefaultConfig(t *testing.T) {
	cfg := DefaultTableConfig()
	table, err := ExtractTable([]byte(buildPage(221)), cfg)
	require.NoError(t, err)

	require.Equal(t, DefaultFieldList, table.Columns)
	require.Len(t, table.Rows, 221)
	require.Equal(t, []string{
		"Country 1",
		"2,000", "3,000", "4,000", "5,000",
		"6,000", "7,000", "8,000", "9,000",
		"12,000", "14,000",
	}, table.Rows[0])
	require.Equal(t, "Country 221", table.Rows[220][0])
}

const smallPage = `
<html><body>
<table><tbody>
<tr><td>#</td><td>header</td><td>header</td></tr>
<tr><td>&nbsp;USA</td><td> 111,820,082 </td><td>+1,234</td></tr>
<tr><td>India</td><td>45,035,393</td><td></td></tr>
<tr><td>World</td><td>704,753,890</td><td>+5</td></tr>
</tbody></table>
</body></html>`

func TestExtractTableCustomConfig(t *testing.T) {
	table, err := ExtractTable([]byte(smallPage), TableConfig{
		Columns:     []string{"Name", "Total Cases", "New Cases"},
		RowStart:    1,
		RowEnd:      3,
		CellIndexes: []int{0, 1, 2},
	})
	require.NoError(t, err)

	require.Equal(t, [][]string{
		{"USA", "111,820,082", "+1,234"},
		{"India", "45,035,393", ""},
	}, table.Rows)
}

func TestExtractTableErrors(t *testing.T) {
	okConfig := TableConfig{
		Columns:     []string{"Name"},
		RowStart:    0,
		RowEnd:      1,
		CellIndexes: []int{0},
	}

	for _, test := range []struct {
		name   string
		markup string
		cfg    TableConfig
	}{
		{
			name:   "config column count mismatch",
			markup: smallPage,
			cfg: TableConfig{
				Columns:     []string{"Name", "Total Cases"},
				RowStart:    0,
				RowEnd:      1,
				CellIndexes: []int{0},
			},
		},
		{
			name:   "inverted row range",
			markup: smallPage,
			cfg: TableConfig{
				Columns:     []string{"Name"},
				RowStart:    3,
				RowEnd:      1,
				CellIndexes: []int{0},
			},
		},
		{
			name:   "no tbody",
			markup: "<html><body><div>nothing here</div></body></html>",
			cfg:    okConfig,
		},
		{
			name:   "too few rows",
			markup: buildPage(10),
			cfg:    DefaultTableConfig(),
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := ExtractTable([]byte(test.markup), test.cfg)
			var extractErr *ExtractError
			require.ErrorAs(t, err, &extractErr)
		})
	}
}

func TestExtractTableShortRow(t *testing.T) {
	markup := `<table><tbody>
<tr><td>header</td></tr>
<tr><td>USA</td><td>111,820,082</td></tr>
</tbody></table>`

	_, err := ExtractTable([]byte(markup), TableConfig{
		Columns:     []string{"Name", "Total Cases", "New Cases"},
		RowStart:    1,
		RowEnd:      2,
		CellIndexes: []int{0, 1, 2},
	})

	var extractErr *ExtractError
	require.ErrorAs(t, err, &extractErr)
	require.Equal(t, 1, extractErr.Row)
	require.Equal(t, 2, extractErr.CellCount)
	require.Equal(t, 3, extractErr.Need)
}

func TestExtractGlobalStats(t *testing.T) {
	stats, err := ExtractGlobalStats([]byte(buildPage(0)))
	require.NoError(t, err)

	require.Equal(t, GlobalStats{
		TotalCases:     "704,753,890",
		TotalDeaths:    "7,010,681",
		TotalRecovered: "675,619,811",
	}, stats)
}

func TestExtractGlobalStatsMissing(t *testing.T) {
	markup := `<html><body>
<div class="maincounter-number"><span>704,753,890</span></div>
<div class="maincounter-number"><span>7,010,681</span></div>
</body></html>`

	_, err := ExtractGlobalStats([]byte(markup))
	var extractErr *ExtractError
	require.ErrorAs(t, err, &extractErr)
}

func TestClientScrape(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/worldometer")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, buildPage(221))
		},
	))
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	table, err := client.Scrape(context.Background(), DefaultTableConfig())
	require.NoError(t, err)
	require.Len(t, table.Rows, 221)
	require.Equal(t, DefaultFieldList, table.Columns)

	stats, err := client.ScrapeGlobalStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, "704,753,890", stats.TotalCases)
}

func TestClientScrapeFetchError(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/worldometer")
	defer cleanup()

	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	_, err = client.Scrape(context.Background(), DefaultTableConfig())
	var fetchErr *fetch.FetchError
	require.True(t, errors.As(err, &fetchErr))
	require.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
}

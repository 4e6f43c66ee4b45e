package worldometer

import (
	"context"
	"log/slog"
	"time"

	"covidwatch-backend/lib/fetch"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/worldometer")

// DefaultBaseUrl is the live coronavirus statistics page.
const DefaultBaseUrl = "https://www.worldometers.info/coronavirus/"

type ClientOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl   string
	UserAgent string
	Timeout   time.Duration
	// the statistics page sits behind cloudflare, enable this when
	// plain requests start coming back 403
	CloudflareBypass bool
}

// Client scrapes the worldometer coronavirus page.
type Client struct {
	BaseUrl string
	Http    *fetch.Client
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	httpClient, err := fetch.NewClient(fetch.ClientOptions{
		BaseUrl:          baseUrl,
		UserAgent:        opts.UserAgent,
		Timeout:          opts.Timeout,
		CloudflareBypass: opts.CloudflareBypass,
	})
	if err != nil {
		return nil, err
	}
	return &Client{
		BaseUrl: baseUrl,
		Http:    httpClient,
	}, nil
}

// Scrape fetches the statistics page and extracts the per-country
// table described by `cfg`.
func (c *Client) Scrape(ctx context.Context, cfg TableConfig) (Table, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	markup, err := c.Http.Fetch(ctx, c.BaseUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch page")
		return Table{}, err
	}
	slog.DebugContext(ctx, "fetched statistics page", "url", c.BaseUrl, "size", len(markup))

	table, err := ExtractTable(markup, cfg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to extract table")
		return Table{}, err
	}

	slog.InfoContext(ctx, "scraped statistics table",
		"rows", len(table.Rows),
		"columns", len(table.Columns),
	)
	return table, nil
}

// ScrapeGlobalStats fetches the statistics page and extracts the three
// headline counters.
func (c *Client) ScrapeGlobalStats(ctx context.Context) (GlobalStats, error) {
	ctx, span := tracer.Start(ctx, "ScrapeGlobalStats")
	defer span.End()

	markup, err := c.Http.Fetch(ctx, c.BaseUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch page")
		return GlobalStats{}, err
	}

	stats, err := ExtractGlobalStats(markup)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to extract counters")
		return GlobalStats{}, err
	}

	slog.InfoContext(ctx, "scraped global counters",
		"total_cases", stats.TotalCases,
		"total_deaths", stats.TotalDeaths,
		"total_recovered", stats.TotalRecovered,
	)
	return stats, nil
}

package covidstats

import "covidwatch-backend/lib/scrapers/worldometer"

// SourceConfig selects where and how the statistics page gets scraped.
// The row range tracks the page layout, which shifts as countries are
// added, so it lives in config instead of code.
type SourceConfig struct {
	// defaults to worldometer.DefaultBaseUrl
	Url       string `json:"url"`
	RowStart  int    `json:"row_start"`
	RowEnd    int    `json:"row_end"`
	UserAgent string `json:"user_agent"`
	// enable when plain requests start coming back 403
	CloudflareBypass bool `json:"cloudflare_bypass"`
}

func (c SourceConfig) ClientOptions() worldometer.ClientOptions {
	return worldometer.ClientOptions{
		BaseUrl:          c.Url,
		UserAgent:        c.UserAgent,
		CloudflareBypass: c.CloudflareBypass,
	}
}

func (c SourceConfig) TableConfig() worldometer.TableConfig {
	cfg := worldometer.DefaultTableConfig()
	// a zero RowEnd means the range is unset, RowStart alone may
	// legitimately be 0
	if c.RowEnd > 0 {
		cfg.RowStart = c.RowStart
		cfg.RowEnd = c.RowEnd
	}
	return cfg
}

type Config struct {
	// sqlite file path or libsql:// url
	Database string       `json:"database"`
	Source   SourceConfig `json:"source"`
}

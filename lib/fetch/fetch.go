package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"covidwatch-backend/lib/restyutil"
	"covidwatch-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// FetchError reports a request that failed in transit (StatusCode 0)
// or came back with a non-2xx status.
type FetchError struct {
	Url        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s", e.Url, e.Err.Error())
	}
	return fmt.Sprintf("fetch %s: status code %d", e.Url, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type ClientOptions struct {
	// optional, redirects are restricted to the base domain when set
	BaseUrl   string
	UserAgent string
	// defaults to 30 seconds
	Timeout time.Duration
	// routes requests through a transport that passes cloudflare
	// browser checks
	CloudflareBypass bool
}

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

func NewClient(opts ClientOptions) (*Client, error) {
	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)

	var baseUrl *url.URL
	if opts.BaseUrl != "" {
		baseUrl, err = url.Parse(opts.BaseUrl)
		if err != nil {
			return nil, err
		}
		client.SetBaseURL(opts.BaseUrl)
		client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	}

	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	client.SetHeader("user-agent", userAgent)

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}
	client.SetTimeout(timeout)

	if restyInstrumentOutput != nil {
		restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)
	} else {
		telemetry.InstrumentResty(client, "fetch/http")
	}

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}, nil
}

// Fetch GETs a url and returns the raw response body. `rawUrl` is
// resolved against the client's base url when relative.
func (c *Client) Fetch(ctx context.Context, rawUrl string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "Fetch")
	defer span.End()

	res, err := c.Http.R().SetContext(ctx).Get(rawUrl)
	if err != nil {
		ferr := &FetchError{Url: rawUrl, Err: err}
		span.RecordError(ferr)
		span.SetStatus(codes.Error, "request failed")
		return nil, ferr
	}
	if !res.IsSuccess() {
		err := &FetchError{Url: res.Request.URL, StatusCode: res.StatusCode()}
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		return nil, err
	}

	return res.Body(), nil
}

// Download fetches a url and writes the body under `dir`. When
// `filename` is empty it is derived from the last segment of the url
// path. Returns the path of the written file.
func (c *Client) Download(ctx context.Context, rawUrl string, dir string, filename string) (string, error) {
	ctx, span := tracer.Start(ctx, "Download")
	defer span.End()

	if filename == "" {
		parsed, err := url.Parse(rawUrl)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "invalid url")
			return "", err
		}
		filename = path.Base(parsed.Path)
		if filename == "." || filename == "/" {
			err := fmt.Errorf("cannot derive a filename from url: %s", rawUrl)
			span.RecordError(err)
			span.SetStatus(codes.Error, "invalid url")
			return "", err
		}
	}

	body, err := c.Fetch(ctx, rawUrl)
	if err != nil {
		return "", err
	}

	err = os.MkdirAll(dir, 0777)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create output directory")
		return "", err
	}

	// write to a temp file first so a failed download never leaves a
	// truncated file behind
	dest := filepath.Join(dir, filename)
	tmp := dest + ".tmp"
	err = os.WriteFile(tmp, body, 0644)
	if err != nil {
		os.Remove(tmp)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write file")
		return "", err
	}
	err = os.Rename(tmp, dest)
	if err != nil {
		os.Remove(tmp)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write file")
		return "", err
	}

	slog.InfoContext(ctx, "downloaded file", "url", rawUrl, "path", dest, "size", len(body))
	return dest, nil
}

// Package fetch retrieves news pages with a browser-like client.
package fetch

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"

	"github.com/kittclouds/pollfinder/internal/config"
	"github.com/kittclouds/pollfinder/internal/logger"
)

var (
	// ErrBlacklisted marks URLs on hosts that never carry articles.
	ErrBlacklisted = errors.New("blacklisted url")
	// ErrStatus wraps non-2xx responses.
	ErrStatus = errors.New("unexpected status")
	// ErrTLS wraps certificate and handshake failures.
	ErrTLS = errors.New("tls failure")
)

// MinExpandedLen is the length under which a URL is treated as a short link.
const MinExpandedLen = 30

// DefaultBlacklist holds hosts whose pages are never worth labelling.
var DefaultBlacklist = []string{"twitter.com", "youtube.com"}

// Document is a fetched page.
type Document struct {
	URL         string
	FinalURL    string
	StatusCode  int
	ContentType string
	Body        []byte
	Truncated   bool
}

// Getter is the part of Fetcher the pipelines depend on.
type Getter interface {
	Get(ctx context.Context, url string) (*Document, error)
}

type Options struct {
	UserAgent   string
	Timeout     time.Duration
	Retries     uint64
	MaxBody     int64
	BaseBackoff time.Duration
	Blacklist   []string
}

// OptionsFromConfig maps the http section of the configuration.
func OptionsFromConfig(cfg config.HTTPConfig) Options {
	return Options{
		UserAgent:   cfg.UserAgent,
		Timeout:     cfg.Timeout,
		Retries:     cfg.Retries,
		MaxBody:     cfg.MaxBody,
		BaseBackoff: 500 * time.Millisecond,
		Blacklist:   DefaultBlacklist,
	}
}

// Fetcher issues GET requests with a fixed user agent, retrying transient
// failures with exponential backoff.
type Fetcher struct {
	client *resty.Client
	opts   Options
	log    logger.Logger
}

// New creates a Fetcher. A nil logger uses the default logger.
func New(opts Options, log logger.Logger) *Fetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = config.UserAgent
	}
	if opts.MaxBody <= 0 {
		opts.MaxBody = 10 << 20
	}
	if opts.BaseBackoff <= 0 {
		opts.BaseBackoff = 500 * time.Millisecond
	}
	if opts.Blacklist == nil {
		opts.Blacklist = DefaultBlacklist
	}
	if log == nil {
		log = logger.GetDefault()
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent).
		SetDoNotParseResponse(true)

	return &Fetcher{client: client, opts: opts, log: log.With("component", "fetch")}
}

// Get downloads a page. Bodies larger than MaxBody are truncated.
func (f *Fetcher) Get(ctx context.Context, url string) (*Document, error) {
	var doc *Document

	err := retry.Do(ctx, f.backoff(), func(ctx context.Context) error {
		d, err := f.get(ctx, url)
		if err != nil {
			if isTransient(err) {
				f.log.Debug("Retrying fetch", "url", url, "error", err)
				return retry.RetryableError(err)
			}
			return err
		}
		doc = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	if doc.Truncated {
		f.log.Warn("Response body truncated", "url", url, "limit", f.opts.MaxBody)
	}
	return doc, nil
}

func (f *Fetcher) get(ctx context.Context, url string) (*Document, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, classify(url, err)
	}
	body := resp.RawBody()
	defer body.Close()

	doc := &Document{
		URL:         url,
		FinalURL:    finalURL(resp, url),
		StatusCode:  resp.StatusCode(),
		ContentType: resp.Header().Get("Content-Type"),
	}

	if doc.StatusCode < 200 || doc.StatusCode > 299 {
		return nil, &StatusError{URL: url, Code: doc.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(body, f.opts.MaxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read body of %s: %w", url, err)
	}
	if int64(len(data)) > f.opts.MaxBody {
		data = data[:f.opts.MaxBody]
		doc.Truncated = true
	}
	doc.Body = data
	return doc, nil
}

func (f *Fetcher) backoff() retry.Backoff {
	return retry.WithMaxRetries(f.opts.Retries, retry.NewExponential(f.opts.BaseBackoff))
}

func finalURL(resp *resty.Response, fallback string) string {
	if resp.RawResponse != nil && resp.RawResponse.Request != nil && resp.RawResponse.Request.URL != nil {
		return resp.RawResponse.Request.URL.String()
	}
	return fallback
}

// =============================================================================
// Errors
// =============================================================================

// StatusError reports a non-2xx response. It matches ErrStatus.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}

func classify(url string, err error) error {
	var (
		verr  *tls.CertificateVerificationError
		uaerr x509.UnknownAuthorityError
		herr  x509.HostnameError
		cerr  x509.CertificateInvalidError
		rerr  tls.RecordHeaderError
	)
	if errors.As(err, &verr) || errors.As(err, &uaerr) || errors.As(err, &herr) ||
		errors.As(err, &cerr) || errors.As(err, &rerr) {
		return fmt.Errorf("%w: %s: %w", ErrTLS, url, err)
	}
	return fmt.Errorf("failed to fetch %s: %w", url, err)
}

// isTransient reports failures worth another attempt: network errors and
// 408/429/5xx responses. TLS failures and cancellation are final.
func isTransient(err error) bool {
	if errors.Is(err, ErrTLS) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= 500 || se.Code == http.StatusTooManyRequests || se.Code == http.StatusRequestTimeout
	}
	return true
}

// IsRecoverable reports whether a batch should log the error and move on to
// the next document rather than abort. Only cancellation of the batch itself
// is fatal.
func IsRecoverable(err error) bool {
	return !errors.Is(err, context.Canceled)
}

package fetch

import (
	"context"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/go-resty/resty/v2"
)

// IsBlacklisted reports whether any blacklist entry occurs in the URL.
func (f *Fetcher) IsBlacklisted(url string) bool {
	for _, b := range f.opts.Blacklist {
		if strings.Contains(url, b) {
			return true
		}
	}
	return false
}

// ExpandURL follows redirects of a short link. URLs of at least
// MinExpandedLen characters are returned untouched. A HEAD request is tried
// first; shorteners that reject HEAD are retried with GET, whose body is
// discarded.
func (f *Fetcher) ExpandURL(ctx context.Context, url string) (string, error) {
	if len(url) >= MinExpandedLen {
		return url, nil
	}

	resp, err := f.client.R().SetContext(ctx).Head(url)
	if err != nil {
		return "", classify(url, err)
	}
	closeBody(resp)

	if !resp.IsSuccess() {
		f.log.Debug("HEAD rejected, retrying with GET", "url", url, "status", resp.StatusCode())
		resp, err = f.client.R().SetContext(ctx).Get(url)
		if err != nil {
			return "", classify(url, err)
		}
		closeBody(resp)
	}

	expanded := finalURL(resp, url)
	if len(expanded) < MinExpandedLen {
		f.log.Warn("Expanded URL is still short", "url", url, "expanded", expanded)
	}
	return expanded, nil
}

func closeBody(resp *resty.Response) {
	if body := resp.RawBody(); body != nil {
		body.Close()
	}
}

// FilterURLs expands every URL and drops the blacklisted ones. Failures are
// logged and skipped. Order is preserved.
func (f *Fetcher) FilterURLs(ctx context.Context, urls []string) ([]string, error) {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		expanded, err := f.ExpandURL(ctx, u)
		if err != nil {
			if !IsRecoverable(err) {
				return out, err
			}
			f.log.Warn("Skipping URL", "url", u, "error", err)
			continue
		}
		if f.IsBlacklisted(expanded) {
			f.log.Debug("Blacklisted URL", "url", expanded)
			continue
		}
		out = append(out, expanded)
	}
	return out, nil
}

// Markdown renders an HTML document as markdown.
func Markdown(doc *Document) (string, error) {
	md, err := htmltomarkdown.ConvertString(string(doc.Body))
	if err != nil {
		return "", fmt.Errorf("failed to convert %s: %w", doc.URL, err)
	}
	return md, nil
}

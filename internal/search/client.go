package search

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/kittclouds/pollfinder/internal/config"
)

var (
	// ErrMissingCredentials is returned when no bearer token is configured.
	ErrMissingCredentials = errors.New("missing search credentials")
	// ErrAPI wraps non-2xx responses from the search endpoint.
	ErrAPI = errors.New("search api error")
)

// Query selects statuses. Since and Until are YYYY-MM-DD dates; zero MaxID
// starts from the newest status.
type Query struct {
	Term  string
	Since string
	Until string
	MaxID int64
	Count int
}

// Client fetches one page of results.
type Client interface {
	Search(ctx context.Context, q Query) ([]Status, error)
}

type searchResponse struct {
	Statuses []Status `json:"statuses"`
}

type apiError struct {
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// APIClient talks to the v1.1 search endpoint with an app-only bearer token.
type APIClient struct {
	client *resty.Client
}

// NewAPIClient creates a client rooted at baseURL.
func NewAPIClient(baseURL, bearerToken string, timeout time.Duration) (*APIClient, error) {
	if bearerToken == "" {
		return nil, ErrMissingCredentials
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetAuthToken(bearerToken).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", config.UserAgent)

	return &APIClient{client: client}, nil
}

// NewAPIClientFromConfig creates a client from the search and http sections.
// A token in secrets takes precedence over the configured one.
func NewAPIClientFromConfig(cfg *config.Config, secrets *config.Secrets) (*APIClient, error) {
	token := cfg.Search.BearerToken
	if secrets != nil {
		if t, err := secrets.Bearer(); err == nil {
			token = t
		}
	}
	return NewAPIClient(cfg.Search.BaseURL, token, cfg.HTTP.Timeout)
}

func (c *APIClient) Search(ctx context.Context, q Query) ([]Status, error) {
	params := map[string]string{"q": q.Term}
	if q.Count > 0 {
		params["count"] = strconv.Itoa(q.Count)
	}
	if q.Since != "" {
		params["since"] = q.Since
	}
	if q.Until != "" {
		params["until"] = q.Until
	}
	if q.MaxID > 0 {
		params["max_id"] = strconv.FormatInt(q.MaxID, 10)
	}

	var result searchResponse
	var failure apiError

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&result).
		SetError(&failure).
		Get("/search/tweets.json")
	if err != nil {
		return nil, fmt.Errorf("failed to search %q: %w", q.Term, err)
	}

	if resp.IsError() {
		if len(failure.Errors) > 0 {
			return nil, fmt.Errorf("%w: %d: %s", ErrAPI, failure.Errors[0].Code, failure.Errors[0].Message)
		}
		return nil, fmt.Errorf("%w: status %d", ErrAPI, resp.StatusCode())
	}

	return result.Statuses, nil
}

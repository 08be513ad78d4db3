// Package config loads pollfinder settings from defaults, an optional .env
// file and POLLFINDER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"time"
)

// EnvPrefix marks the environment variables read by Load.
const EnvPrefix = "POLLFINDER_"

// UserAgent is sent on every document request. Some news sites refuse
// requests that do not look like a desktop browser.
const UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_10_1) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/39.0.2171.95 Safari/537.36"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Log     LogConfig    `koanf:"log"`
	HTTP    HTTPConfig   `koanf:"http"`
	Search  SearchConfig `koanf:"search"`
	Text    TextConfig   `koanf:"text"`
	Store   StoreConfig  `koanf:"store"`
	Workers int          `koanf:"workers"`
}

type LogConfig struct {
	Level string `koanf:"level"`
	JSON  bool   `koanf:"json"`
}

type HTTPConfig struct {
	UserAgent string        `koanf:"user_agent"`
	Timeout   time.Duration `koanf:"timeout"`
	Retries   uint64        `koanf:"retries"`
	MaxBody   int64         `koanf:"max_body"`
}

// SearchConfig drives status pagination.
type SearchConfig struct {
	BaseURL     string        `koanf:"base_url"`
	BearerToken string        `koanf:"bearer_token"`
	PageSize    int           `koanf:"page_size"`
	MaxResults  int           `koanf:"max_results"`
	CacheDir    string        `koanf:"cache_dir"`
	Delay       time.Duration `koanf:"delay"`
	MinRetweets int           `koanf:"min_retweets"`
}

// TextConfig bounds the text blocks considered for extraction and labelling.
type TextConfig struct {
	MinBlockLen int    `koanf:"min_block_len"`
	MaxBlockLen int    `koanf:"max_block_len"`
	Trigger     string `koanf:"trigger"`
}

type StoreConfig struct {
	DSN string `koanf:"dsn"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		HTTP: HTTPConfig{
			UserAgent: UserAgent,
			Timeout:   30 * time.Second,
			Retries:   3,
			MaxBody:   10 << 20,
		},
		Search: SearchConfig{
			BaseURL:     "https://api.twitter.com/1.1",
			PageSize:    100,
			MaxResults:  700,
			CacheDir:    ".",
			MinRetweets: 2,
		},
		Text: TextConfig{
			MinBlockLen: 100,
			MaxBlockLen: 1000,
			Trigger:     "poll",
		},
		Workers: runtime.GOMAXPROCS(0),
	}
}

// Validate checks ranges that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	switch {
	case c.HTTP.Timeout <= 0:
		return fmt.Errorf("%w: http.timeout must be positive", ErrInvalid)
	case c.HTTP.MaxBody <= 0:
		return fmt.Errorf("%w: http.max_body must be positive", ErrInvalid)
	case c.Search.PageSize < 1 || c.Search.PageSize > 100:
		return fmt.Errorf("%w: search.page_size must be between 1 and 100", ErrInvalid)
	case c.Search.MaxResults < 1:
		return fmt.Errorf("%w: search.max_results must be positive", ErrInvalid)
	case c.Search.Delay < 0:
		return fmt.Errorf("%w: search.delay must not be negative", ErrInvalid)
	case c.Text.MinBlockLen < 0 || c.Text.MaxBlockLen <= c.Text.MinBlockLen:
		return fmt.Errorf("%w: text.max_block_len must exceed text.min_block_len", ErrInvalid)
	case c.Text.Trigger == "":
		return fmt.Errorf("%w: text.trigger must not be empty", ErrInvalid)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1", ErrInvalid)
	}
	return nil
}

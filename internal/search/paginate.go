package search

import (
	"context"
	"time"

	"github.com/kittclouds/pollfinder/internal/config"
	"github.com/kittclouds/pollfinder/internal/logger"
)

// Options bound a paginated query.
type Options struct {
	PageSize   int
	MaxResults int
	// Delay is slept before every page after the first.
	Delay  time.Duration
	Logger logger.Logger
}

// OptionsFromConfig maps the search section of the configuration.
func OptionsFromConfig(cfg config.SearchConfig, log logger.Logger) Options {
	return Options{
		PageSize:   cfg.PageSize,
		MaxResults: cfg.MaxResults,
		Delay:      cfg.Delay,
		Logger:     log,
	}
}

func (o Options) withDefaults() Options {
	if o.PageSize <= 0 {
		o.PageSize = 100
	}
	if o.MaxResults <= 0 {
		o.MaxResults = 700
	}
	if o.Logger == nil {
		o.Logger = logger.GetDefault()
	}
	return o
}

// Paginate keeps requesting older pages until one comes back empty or at
// least MaxResults statuses have been gathered. A first page shorter than
// PageSize is returned as is.
func Paginate(ctx context.Context, c Client, q Query, opts Options) ([]Status, error) {
	opts = opts.withDefaults()
	log := opts.Logger.With("term", q.Term)

	q.Count = opts.PageSize
	q.MaxID = 0

	page, err := c.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(page) < opts.PageSize {
		return page, nil
	}

	all := page
	log.Info("Processed results", "count", len(all))

	for len(all) < opts.MaxResults {
		if err := sleep(ctx, opts.Delay); err != nil {
			return all, err
		}

		q.MaxID = all[len(all)-1].ID - 1
		page, err = c.Search(ctx, q)
		if err != nil {
			return all, err
		}
		if len(page) == 0 {
			break
		}
		all = append(all, page...)
		log.Info("Processed results", "count", len(all))
	}

	if len(all) >= opts.MaxResults {
		log.Warn("Hit max results, stopping", "max", opts.MaxResults)
	}
	return all, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

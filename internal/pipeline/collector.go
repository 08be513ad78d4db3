package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kittclouds/pollfinder/internal/dataset"
	"github.com/kittclouds/pollfinder/internal/fetch"
	"github.com/kittclouds/pollfinder/internal/logger"
	"github.com/kittclouds/pollfinder/internal/search"
	"github.com/kittclouds/pollfinder/internal/store"
	"github.com/kittclouds/pollfinder/internal/text"
	"github.com/kittclouds/pollfinder/pkg/roster"
)

// URLFetcher is the part of fetch.Fetcher the collector needs.
type URLFetcher interface {
	fetch.Getter
	FilterURLs(ctx context.Context, urls []string) ([]string, error)
}

// Collection holds the labelled blocks gathered from one query.
type Collection struct {
	Positive  []dataset.Positive
	Negative  []string
	Statuses  int
	Documents int
}

// Collector turns search results into labelled training cases.
type Collector struct {
	Search        search.Client
	Fetcher       URLFetcher
	Roster        *roster.Roster
	SearchOptions search.Options
	// CacheDir enables the query cache when non-empty.
	CacheDir    string
	MinRetweets int
	MaxBlockLen int
	// Store receives every labelled case when set.
	Store store.Storer
	// Progress is called after each interesting status is processed.
	Progress func(done, total int)
	Logger   logger.Logger
}

// Collect paginates the query, follows links of interesting statuses and
// labels each visible text block. Cases are deduplicated in first-seen order.
func (c *Collector) Collect(ctx context.Context, q search.Query) (*Collection, error) {
	log := c.logger()

	statuses, err := search.CachedPaginate(ctx, c.Search, q, c.SearchOptions, c.CacheDir)
	if err != nil {
		return nil, err
	}

	var interesting []*search.Status
	for i := range statuses {
		if search.Interesting(&statuses[i], c.MinRetweets) {
			interesting = append(interesting, &statuses[i])
		}
	}
	log.Info("Search done", "statuses", len(statuses), "interesting", len(interesting))

	acc := newAccumulator()
	out := &Collection{Statuses: len(statuses)}

	for i, s := range interesting {
		urls, err := c.Fetcher.FilterURLs(ctx, s.ExpandedURLs())
		if err != nil {
			return nil, err
		}

		for _, u := range urls {
			if err := c.collectDocument(ctx, u, acc); err != nil {
				if !fetch.IsRecoverable(err) {
					return nil, err
				}
				log.Warn("Request failed", "url", u, "error", err)
				continue
			}
			out.Documents++
		}

		if len(urls) > 0 {
			log.Debug("Processed status",
				"id", s.ID,
				"user", s.User.Name,
				"retweets", s.RetweetCount,
				"urls", len(urls),
			)
		}
		if c.Progress != nil {
			c.Progress(i+1, len(interesting))
		}
	}

	out.Positive = acc.positive
	out.Negative = acc.negative
	log.Info("Collected cases", "positive", len(out.Positive), "negative", len(out.Negative))

	if err := c.persist(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Collector) collectDocument(ctx context.Context, url string, acc *accumulator) error {
	doc, err := c.Fetcher.Get(ctx, url)
	if err != nil {
		return err
	}
	blocks, err := text.VisibleText(bytes.NewReader(doc.Body))
	if err != nil {
		return fmt.Errorf("failed to read text of %s: %w", url, err)
	}
	for _, b := range blocks {
		c.label(b, acc)
	}
	return nil
}

// label classifies one block. Long blocks and blocks that never say poll
// or survey are ignored.
func (c *Collector) label(block string, acc *accumulator) {
	if c.MaxBlockLen > 0 && len(block) > c.MaxBlockLen {
		return
	}
	if !strings.Contains(block, "poll") && !strings.Contains(block, "survey") {
		return
	}

	positives, negative := c.Roster.Label(block)
	if negative {
		acc.addNegative(block)
		return
	}
	for _, p := range positives {
		acc.addPositive(dataset.Positive{Text: block, Pollster: p})
	}
}

func (c *Collector) persist(col *Collection) error {
	if c.Store == nil {
		return nil
	}
	now := time.Now().UnixMilli()
	for _, p := range col.Positive {
		cs := &store.Case{ID: store.CaseID(p.Text, p.Pollster), Text: p.Text, Pollster: p.Pollster, Positive: true, CreatedAt: now}
		if err := c.Store.UpsertCase(cs); err != nil {
			return fmt.Errorf("failed to store case: %w", err)
		}
	}
	for _, t := range col.Negative {
		cs := &store.Case{ID: store.CaseID(t, ""), Text: t, CreatedAt: now}
		if err := c.Store.UpsertCase(cs); err != nil {
			return fmt.Errorf("failed to store case: %w", err)
		}
	}
	return nil
}

func (c *Collector) logger() logger.Logger {
	if c.Logger == nil {
		return logger.GetDefault()
	}
	return c.Logger
}

type accumulator struct {
	positive []dataset.Positive
	negative []string
	seenPos  map[dataset.Positive]struct{}
	seenNeg  map[string]struct{}
}

func newAccumulator() *accumulator {
	return &accumulator{
		seenPos: make(map[dataset.Positive]struct{}),
		seenNeg: make(map[string]struct{}),
	}
}

func (a *accumulator) addPositive(p dataset.Positive) {
	if _, ok := a.seenPos[p]; ok {
		return
	}
	a.seenPos[p] = struct{}{}
	a.positive = append(a.positive, p)
}

func (a *accumulator) addNegative(t string) {
	if _, ok := a.seenNeg[t]; ok {
		return
	}
	a.seenNeg[t] = struct{}{}
	a.negative = append(a.negative, t)
}

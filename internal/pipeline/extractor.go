// Package pipeline wires fetching, sentence selection, extraction and
// persistence into the batch jobs run by the CLI.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kittclouds/pollfinder/internal/config"
	"github.com/kittclouds/pollfinder/internal/fetch"
	"github.com/kittclouds/pollfinder/internal/logger"
	"github.com/kittclouds/pollfinder/internal/store"
	"github.com/kittclouds/pollfinder/internal/text"
	"github.com/kittclouds/pollfinder/pkg/scanner/pollster"
	"github.com/kittclouds/pollfinder/pkg/scanner/syntax"
)

// Result is the outcome for one candidate sentence.
type Result struct {
	URL      string `json:"url,omitempty"`
	Sentence string `json:"sentence"`
	// Pollster is empty when the chunk scanner found nothing.
	Pollster string `json:"pollster"`
	// Regex holds the first regex capture, if a syntax scanner is set.
	Regex string `json:"regex,omitempty"`
}

// Found reports whether either extraction path produced a name.
func (r Result) Found() bool {
	return r.Pollster != "" || r.Regex != ""
}

// Extractor pulls pollsters out of documents.
type Extractor struct {
	Fetcher fetch.Getter
	Finder  *pollster.Finder
	// Syntax runs the regex path alongside the chunk scanner when set.
	Syntax *syntax.SyntaxScanner
	// Store receives every found pollster when set.
	Store   store.Storer
	Text    config.TextConfig
	Workers int
	Logger  logger.Logger
}

// NewExtractor builds an Extractor from configuration. st may be nil.
func NewExtractor(cfg *config.Config, g fetch.Getter, st store.Storer, log logger.Logger) *Extractor {
	if log == nil {
		log = logger.GetDefault()
	}
	return &Extractor{
		Fetcher: g,
		Finder:  pollster.NewFinder(),
		Syntax:  syntax.New(),
		Store:   st,
		Text:    cfg.Text,
		Workers: cfg.Workers,
		Logger:  log,
	}
}

// ExtractDocument fetches a page and runs every candidate sentence of its
// visible text. Results keep sentence order.
func (e *Extractor) ExtractDocument(ctx context.Context, url string) ([]Result, error) {
	doc, err := e.Fetcher.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	blocks, err := text.VisibleText(bytes.NewReader(doc.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to read text of %s: %w", url, err)
	}

	cands := text.CandidateSentences(blocks, e.Text.MinBlockLen, e.trigger())
	e.Logger.Debug("Candidate sentences", "url", url, "blocks", len(blocks), "sentences", len(cands))
	return e.run(ctx, url, cands)
}

// ExtractDocuments processes urls in order. Fetch failures are logged and
// the document skipped.
func (e *Extractor) ExtractDocuments(ctx context.Context, urls []string) ([]Result, error) {
	var all []Result
	for _, u := range urls {
		res, err := e.ExtractDocument(ctx, u)
		if err != nil {
			if !fetch.IsRecoverable(err) {
				return all, err
			}
			e.Logger.Warn("Skipping document", "url", u, "error", err)
			continue
		}
		all = append(all, res...)
	}
	return all, nil
}

// ExtractText runs raw text through the same sentence selection, without
// the minimum block length.
func (e *Extractor) ExtractText(ctx context.Context, raw string) ([]Result, error) {
	cands := text.CandidateSentences([]string{raw}, 0, e.trigger())
	return e.run(ctx, "", cands)
}

func (e *Extractor) run(ctx context.Context, url string, cands []text.Candidate) ([]Result, error) {
	if len(cands) == 0 {
		return nil, nil
	}

	results := make([]Result, len(cands))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(e.Workers, 1))

	for i, c := range cands {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := Result{URL: url, Sentence: c.Text}
			if name, ok := e.Finder.FindWords(c.Words); ok {
				r.Pollster = name
			}
			if e.Syntax != nil {
				if m, ok := e.Syntax.First(c.Text); ok {
					r.Regex = strings.TrimSpace(m.Pollster)
				}
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := e.persist(results); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Extractor) persist(results []Result) error {
	if e.Store == nil {
		return nil
	}
	now := time.Now().UnixMilli()
	for _, r := range results {
		for method, name := range map[string]string{store.MethodChunk: r.Pollster, store.MethodRegex: r.Regex} {
			if name == "" {
				continue
			}
			x := &store.Extraction{
				ID:        store.ExtractionID(r.URL, r.Sentence, method),
				URL:       r.URL,
				Sentence:  r.Sentence,
				Pollster:  name,
				Method:    method,
				CreatedAt: now,
			}
			if err := e.Store.UpsertExtraction(x); err != nil {
				return fmt.Errorf("failed to store extraction: %w", err)
			}
		}
	}
	return nil
}

func (e *Extractor) trigger() string {
	if e.Text.Trigger == "" {
		return "poll"
	}
	return e.Text.Trigger
}

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/pollfinder/internal/config"
	"github.com/kittclouds/pollfinder/internal/dataset"
	"github.com/kittclouds/pollfinder/internal/fetch"
	"github.com/kittclouds/pollfinder/internal/logger"
	"github.com/kittclouds/pollfinder/internal/search"
	"github.com/kittclouds/pollfinder/internal/store"
	"github.com/kittclouds/pollfinder/pkg/roster"
)

// pages is a fetch.Getter and URLFetcher over canned HTML.
type pages struct {
	html  map[string]string
	gets  atomic.Int32
	block []string
}

func (p *pages) Get(_ context.Context, url string) (*fetch.Document, error) {
	p.gets.Add(1)
	body, ok := p.html[url]
	if !ok {
		return nil, &fetch.StatusError{URL: url, Code: 404}
	}
	return &fetch.Document{URL: url, FinalURL: url, StatusCode: 200, Body: []byte(body)}, nil
}

func (p *pages) FilterURLs(_ context.Context, urls []string) ([]string, error) {
	var out []string
	for _, u := range urls {
		blocked := false
		for _, b := range p.block {
			if strings.Contains(u, b) {
				blocked = true
			}
		}
		if !blocked {
			out = append(out, u)
		}
	}
	return out, nil
}

type staticSearch struct {
	statuses []search.Status
}

func (s *staticSearch) Search(context.Context, search.Query) ([]search.Status, error) {
	return s.statuses, nil
}

func testLogger() logger.Logger {
	return logger.NewLogger(logger.TestConfig())
}

const article = `<html><head><title>Poll roundup</title></head><body>
<p>In the Quinnipiac University poll, Democrats lead. Trump trails in a new poll from Monmouth University. Voters remain split on most other questions this week.</p>
<p>Short poll note.</p>
</body></html>`

func newTestExtractor(g fetch.Getter, st store.Storer) *Extractor {
	cfg := config.Default()
	cfg.Workers = 4
	return NewExtractor(cfg, g, st, testLogger())
}

func TestExtractDocument(t *testing.T) {
	g := &pages{html: map[string]string{"http://news/a": article}}
	st := store.NewMemStore()
	e := newTestExtractor(g, st)

	res, err := e.ExtractDocument(context.Background(), "http://news/a")
	require.NoError(t, err)
	require.Len(t, res, 2, "short block and sentence without the trigger are dropped")

	assert.Equal(t, "In the Quinnipiac University poll, Democrats lead.", res[0].Sentence)
	assert.Equal(t, "Quinnipiac University", res[0].Pollster)
	assert.Equal(t, "Quinnipiac University", res[0].Regex)
	assert.Equal(t, "Monmouth University", res[1].Pollster)
	for _, r := range res {
		assert.Equal(t, "http://news/a", r.URL)
		assert.True(t, r.Found())
	}

	n, err := st.CountExtractions()
	require.NoError(t, err)
	assert.Equal(t, 4, n, "one chunk and one regex row per sentence")

	// Rerunning upserts in place.
	_, err = e.ExtractDocument(context.Background(), "http://news/a")
	require.NoError(t, err)
	n, err = st.CountExtractions()
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	rows, err := st.ListExtractions("http://news/a")
	require.NoError(t, err)
	var chunk []string
	for _, r := range rows {
		if r.Method == store.MethodChunk {
			chunk = append(chunk, r.Pollster)
		}
	}
	assert.ElementsMatch(t, []string{"Quinnipiac University", "Monmouth University"}, chunk)
}

func TestExtractDocumentsSkipsFailures(t *testing.T) {
	g := &pages{html: map[string]string{"http://news/a": article}}
	e := newTestExtractor(g, nil)

	res, err := e.ExtractDocuments(context.Background(), []string{"http://news/missing", "http://news/a"})
	require.NoError(t, err)
	assert.Len(t, res, 2)
}

func TestExtractText(t *testing.T) {
	e := newTestExtractor(&pages{}, nil)

	res, err := e.ExtractText(context.Background(), "Trump trails in a new poll from Monmouth University.")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Monmouth University", res[0].Pollster)
	assert.Empty(t, res[0].URL)

	res, err = e.ExtractText(context.Background(), "Nothing to see here.")
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestExtractTextNoPollster(t *testing.T) {
	e := newTestExtractor(&pages{}, nil)
	e.Syntax = nil

	res, err := e.ExtractText(context.Background(), "A new poll from Gallup shows support slipping.")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.False(t, res[0].Found())
}

func TestExtractCanceled(t *testing.T) {
	e := newTestExtractor(&pages{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.ExtractText(ctx, "Trump trails in a new poll from Monmouth University.")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollect(t *testing.T) {
	long := "A poll " + strings.Repeat("x", 1000)
	g := &pages{
		block: []string{"twitter.com"},
		html: map[string]string{
			"http://news/1": `<body>
				<p>A new Gallup poll shows a close race.</p>
				<p>The survey found little change.</p>
				<p>Weather is fine today.</p>
				<p>` + long + `</p>
				<script>var poll = "Gallup";</script>
			</body>`,
			"http://news/2": `<body><p>Monmouth University and Gallup released a poll.</p></body>`,
		},
	}

	statuses := []search.Status{
		{ID: 5, RetweetCount: 5, Entities: search.Entities{URLs: []search.URL{{ExpandedURL: "http://news/1"}}}},
		{ID: 4, RetweetCount: 1, Entities: search.Entities{URLs: []search.URL{{ExpandedURL: "http://news/2"}}}},
		{ID: 3, RetweetCount: 9, RetweetedStatus: &search.Status{ID: 1}},
		{ID: 2, RetweetCount: 3, Entities: search.Entities{URLs: []search.URL{
			{ExpandedURL: "http://news/gone"},
			{ExpandedURL: "https://twitter.com/x/status/1"},
		}}},
		{ID: 1, RetweetCount: 3, Entities: search.Entities{URLs: []search.URL{
			{ExpandedURL: "http://news/1"},
			{ExpandedURL: "http://news/2"},
		}}},
	}

	r, err := roster.Compile([]string{"Gallup", "Monmouth University"})
	require.NoError(t, err)

	var progress []int
	st := store.NewMemStore()
	c := &Collector{
		Search:        &staticSearch{statuses: statuses},
		Fetcher:       g,
		Roster:        r,
		SearchOptions: search.Options{PageSize: 100, MaxResults: 700, Logger: testLogger()},
		MinRetweets:   2,
		MaxBlockLen:   1000,
		Store:         st,
		Progress:      func(done, total int) { progress = append(progress, done*10+total) },
		Logger:        testLogger(),
	}

	col, err := c.Collect(context.Background(), search.Query{Term: "new poll"})
	require.NoError(t, err)

	assert.Equal(t, 5, col.Statuses)
	assert.Equal(t, 3, col.Documents)
	assert.Equal(t, []dataset.Positive{
		{Text: "A new Gallup poll shows a close race.", Pollster: "Gallup"},
		{Text: "Monmouth University and Gallup released a poll.", Pollster: "Monmouth University"},
		{Text: "Monmouth University and Gallup released a poll.", Pollster: "Gallup"},
	}, col.Positive)
	assert.Equal(t, []string{"The survey found little change."}, col.Negative)
	assert.Equal(t, []int{13, 23, 33}, progress)

	n, err := st.CountCases()
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	neg, err := st.ListCases(false)
	require.NoError(t, err)
	require.Len(t, neg, 1)
	assert.Empty(t, neg[0].Pollster)
}

func TestCompare(t *testing.T) {
	c := NewClassifier()
	report := c.Compare(
		[]dataset.Positive{
			{Text: "In the Quinnipiac University poll, Democrats lead.", Pollster: "Quinnipiac University"},
			{Text: "Trump trails in a new poll from Monmouth University.", Pollster: "Monmouth University"},
		},
		[]string{"Voters went to the polls."},
	)

	require.Len(t, report.Cases, 2)
	assert.True(t, report.Cases[0].RegexHit())
	assert.True(t, report.Cases[0].ChunkHit())
	assert.False(t, report.Cases[1].RegexHit(), fmt.Sprint(report.Cases[1].Regex))
	assert.True(t, report.Cases[1].ChunkHit())

	assert.Equal(t, 1, report.RegexHits)
	assert.Equal(t, 2, report.ChunkHits)
	assert.Equal(t, 1, report.Negatives)
	assert.Zero(t, report.RegexFalse)
	assert.Zero(t, report.ChunkFalse)
}

package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

type cacheFile struct {
	Statuses []Status `json:"statuses"`
}

// CacheFile names the cache entry for a query.
func CacheFile(dir string, q Query, maxResults int) string {
	name := fmt.Sprintf("cache_%s_%s_%s_%d.json", q.Term, q.Since, q.Until, maxResults)
	return filepath.Join(dir, name)
}

// ReadCache loads cached statuses. A missing file reports false.
func ReadCache(path string) ([]Status, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache: %w", err)
	}

	var f cacheFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, false, fmt.Errorf("failed to parse cache %s: %w", path, err)
	}
	return f.Statuses, true, nil
}

// WriteCache stores statuses as {"statuses": [...]}.
func WriteCache(path string, statuses []Status) error {
	if statuses == nil {
		statuses = []Status{}
	}
	data, err := json.MarshalIndent(cacheFile{Statuses: statuses}, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// CachedPaginate serves the query from dir when a cache entry exists and
// otherwise paginates and writes the entry. An empty dir disables caching.
func CachedPaginate(ctx context.Context, c Client, q Query, opts Options, dir string) ([]Status, error) {
	opts = opts.withDefaults()
	if dir == "" {
		return Paginate(ctx, c, q, opts)
	}

	path := CacheFile(dir, q, opts.MaxResults)
	statuses, ok, err := ReadCache(path)
	if err != nil {
		return nil, err
	}
	if ok {
		opts.Logger.Info("Reading results from cache", "path", path, "count", len(statuses))
		return statuses, nil
	}

	statuses, err = Paginate(ctx, c, q, opts)
	if err != nil {
		return nil, err
	}
	if err := WriteCache(path, statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

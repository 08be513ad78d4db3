package main

import (
	"fmt"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"

	"github.com/kittclouds/pollfinder/internal/config"
	"github.com/kittclouds/pollfinder/internal/dataset"
	"github.com/kittclouds/pollfinder/internal/fetch"
	"github.com/kittclouds/pollfinder/internal/pipeline"
	"github.com/kittclouds/pollfinder/internal/search"
	"github.com/kittclouds/pollfinder/pkg/roster"
)

// niceDelay keeps paging under the search API rate limit.
const niceDelay = 6 * time.Second

func newCollectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Build labelled training cases from search results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runCollect(cmd)
		},
	}
	cmd.Flags().String("secret-file", "", "JSON file with API credentials")
	cmd.Flags().String("pollster-csv", "", "CSV whose first column lists known pollsters")
	cmd.Flags().String("positive-output", "", "CSV to write text,pollster cases to")
	cmd.Flags().String("negative-output", "", "CSV to write negative cases to")
	cmd.Flags().String("term", "new poll", "Search term")
	cmd.Flags().String("since", "", "Earliest date, YYYY-MM-DD")
	cmd.Flags().String("until", "", "Latest date, YYYY-MM-DD")
	cmd.Flags().Bool("cache", false, "Read and write the query cache in search.cache_dir")
	cmd.Flags().Bool("be-nice", false, "Pause between result pages")
	cmd.Flags().String("store", "", `Store DSN ("memory" or a SQLite file)`)
	cmd.Flags().Bool("progress", true, "Show a progress bar")
	for _, f := range []string{"pollster-csv", "positive-output", "negative-output"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func (a *app) runCollect(cmd *cobra.Command) error {
	flags := cmd.Flags()
	secretFile, _ := flags.GetString("secret-file")
	rosterPath, _ := flags.GetString("pollster-csv")
	posOut, _ := flags.GetString("positive-output")
	negOut, _ := flags.GetString("negative-output")
	term, _ := flags.GetString("term")
	since, _ := flags.GetString("since")
	until, _ := flags.GetString("until")
	useCache, _ := flags.GetBool("cache")
	beNice, _ := flags.GetBool("be-nice")
	showProgress, _ := flags.GetBool("progress")

	var secrets *config.Secrets
	if secretFile != "" {
		s, err := config.LoadSecrets(secretFile)
		if err != nil {
			return err
		}
		secrets = s
	}

	client, err := search.NewAPIClientFromConfig(a.cfg, secrets)
	if err != nil {
		return err
	}

	names, err := dataset.ReadFile(rosterPath, dataset.ReadRoster)
	if err != nil {
		return err
	}
	r, err := roster.Compile(roster.Expand(names))
	if err != nil {
		return fmt.Errorf("failed to build roster: %w", err)
	}
	a.log.Info("Loaded roster", "names", len(names), "expanded", r.Len())

	st, err := openStore(a.storeFlag(cmd))
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	opts := search.OptionsFromConfig(a.cfg.Search, a.log)
	if beNice && opts.Delay == 0 {
		opts.Delay = niceDelay
	}
	cacheDir := ""
	if useCache {
		cacheDir = a.cfg.Search.CacheDir
	}

	c := &pipeline.Collector{
		Search:        client,
		Fetcher:       fetch.New(fetch.OptionsFromConfig(a.cfg.HTTP), a.log),
		Roster:        r,
		SearchOptions: opts,
		CacheDir:      cacheDir,
		MinRetweets:   a.cfg.Search.MinRetweets,
		MaxBlockLen:   a.cfg.Text.MaxBlockLen,
		Store:         st,
		Logger:        a.log,
	}

	if showProgress {
		var bar *uiprogress.Bar
		uiprogress.Start()
		defer uiprogress.Stop()
		c.Progress = func(done, total int) {
			if bar == nil {
				bar = uiprogress.AddBar(total)
				bar.AppendCompleted()
				bar.PrependElapsed()
			}
			_ = bar.Set(done)
		}
	}

	q := search.Query{Term: term, Since: since, Until: until}
	col, err := c.Collect(cmd.Context(), q)
	if err != nil {
		return err
	}

	if err := dataset.WriteFile(posOut, col.Positive, dataset.WritePositive); err != nil {
		return err
	}
	if err := dataset.WriteFile(negOut, col.Negative, dataset.WriteNegative); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "statuses: %d, documents: %d, positive: %d, negative: %d\n",
		col.Statuses, col.Documents, len(col.Positive), len(col.Negative))
	return nil
}

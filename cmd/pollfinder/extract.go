package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kittclouds/pollfinder/internal/fetch"
	"github.com/kittclouds/pollfinder/internal/logger"
	"github.com/kittclouds/pollfinder/internal/pipeline"
	"github.com/kittclouds/pollfinder/pkg/scanner/pollster"
)

func newExtractCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract pollsters from web pages or text",
		Example: `  pollfinder extract --url https://example.com/story
  pollfinder extract --text "In the Quinnipiac University poll, Democrats lead." --explain`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runExtract(cmd)
		},
	}
	cmd.Flags().StringSlice("url", nil, "Page to extract from (repeatable)")
	cmd.Flags().String("text", "", "Raw text to extract from")
	cmd.Flags().Bool("explain", false, "Log every scanner decision")
	cmd.Flags().String("store", "", `Store DSN ("memory" or a SQLite file)`)
	return cmd
}

func (a *app) runExtract(cmd *cobra.Command) error {
	urls, _ := cmd.Flags().GetStringSlice("url")
	raw, _ := cmd.Flags().GetString("text")
	explain, _ := cmd.Flags().GetBool("explain")
	if len(urls) == 0 && raw == "" {
		return errors.New("one of --url or --text is required")
	}

	st, err := openStore(a.storeFlag(cmd))
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	f := fetch.New(fetch.OptionsFromConfig(a.cfg.HTTP), a.log)
	e := pipeline.NewExtractor(a.cfg, f, st, a.log)
	if explain {
		e.Finder.Trace = explainTrace(a.log)
	}

	ctx := cmd.Context()
	var results []pipeline.Result
	if raw != "" {
		res, err := e.ExtractText(ctx, raw)
		if err != nil {
			return err
		}
		results = append(results, res...)
	}
	if len(urls) > 0 {
		res, err := e.ExtractDocuments(ctx, urls)
		if err != nil {
			return err
		}
		results = append(results, res...)
	}

	printResults(cmd.OutOrStdout(), results)
	return nil
}

func explainTrace(log logger.Logger) pollster.TraceFunc {
	return func(s pollster.Step) {
		log.Info("Scan step",
			"direction", s.Direction.String(),
			"index", s.Index,
			"element", s.Element.String(),
			"phase", s.Phase.String(),
			"action", string(s.Action),
		)
	}
}

func printResults(w io.Writer, results []pipeline.Result) {
	for _, r := range results {
		name := r.Pollster
		if name == "" {
			name = "-"
		}
		regex := r.Regex
		if regex == "" {
			regex = "-"
		}
		if r.URL != "" {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, regex, r.URL, r.Sentence)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, regex, r.Sentence)
	}
}

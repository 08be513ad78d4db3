package main

import (
	"github.com/spf13/cobra"

	"github.com/kittclouds/pollfinder/internal/dataset"
	"github.com/kittclouds/pollfinder/internal/fetch"
	"github.com/kittclouds/pollfinder/internal/ratings"
)

func newRatingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ratings",
		Short: "Scrape a pollster ratings table to CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, _ := cmd.Flags().GetString("url")
			out, _ := cmd.Flags().GetString("output-csv")

			f := fetch.New(fetch.OptionsFromConfig(a.cfg.HTTP), a.log)
			rs, err := ratings.Fetch(cmd.Context(), f, url)
			if err != nil {
				return err
			}
			a.log.Info("Parsed ratings", "count", len(rs))

			if out == "" {
				return dataset.WriteRatings(cmd.OutOrStdout(), rs)
			}
			return dataset.WriteFile(out, rs, dataset.WriteRatings)
		},
	}
	cmd.Flags().String("url", "", "Ratings page URL")
	cmd.Flags().String("output-csv", "", "CSV to write name,grade rows to (stdout when empty)")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

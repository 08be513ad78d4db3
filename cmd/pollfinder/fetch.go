package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kittclouds/pollfinder/internal/fetch"
	"github.com/kittclouds/pollfinder/internal/text"
)

func newFetchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download a page and print its visible text",
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, _ := cmd.Flags().GetString("url")
			markdown, _ := cmd.Flags().GetBool("markdown")

			f := fetch.New(fetch.OptionsFromConfig(a.cfg.HTTP), a.log)
			expanded, err := f.ExpandURL(cmd.Context(), url)
			if err != nil {
				return err
			}
			doc, err := f.Get(cmd.Context(), expanded)
			if err != nil {
				return err
			}
			a.log.Info("Fetched", "url", doc.FinalURL, "status", doc.StatusCode, "bytes", len(doc.Body))

			out := cmd.OutOrStdout()
			if markdown {
				md, err := fetch.Markdown(doc)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, md)
				return nil
			}

			blocks, err := text.VisibleText(bytes.NewReader(doc.Body))
			if err != nil {
				return err
			}
			for _, b := range blocks {
				fmt.Fprintln(out, b)
			}
			return nil
		},
	}
	cmd.Flags().String("url", "", "Page URL")
	cmd.Flags().Bool("markdown", false, "Render the page as markdown instead of text blocks")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

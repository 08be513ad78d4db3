package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kittclouds/pollfinder/internal/dataset"
	"github.com/kittclouds/pollfinder/internal/pipeline"
)

func newClassifyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Compare the regex and chunk extractors on labelled cases",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runClassify(cmd)
		},
	}
	cmd.Flags().String("positive-csv", "", "CSV of text,pollster cases")
	cmd.Flags().String("negative-csv", "", "CSV of text cases without a pollster")
	cmd.Flags().Bool("cases", false, "Print every positive case")
	_ = cmd.MarkFlagRequired("positive-csv")
	return cmd
}

func (a *app) runClassify(cmd *cobra.Command) error {
	posPath, _ := cmd.Flags().GetString("positive-csv")
	negPath, _ := cmd.Flags().GetString("negative-csv")
	showCases, _ := cmd.Flags().GetBool("cases")

	positive, err := dataset.ReadFile(posPath, dataset.ReadPositive)
	if err != nil {
		return err
	}
	var negative []string
	if negPath != "" {
		if negative, err = dataset.ReadFile(negPath, dataset.ReadNegative); err != nil {
			return err
		}
	}
	a.log.Info("Loaded cases", "positive", len(positive), "negative", len(negative))

	report := pipeline.NewClassifier().Compare(positive, negative)

	out := cmd.OutOrStdout()
	if showCases {
		for _, c := range report.Cases {
			fmt.Fprintf(out, "%s\n\texpected: %s\n\tregex:    [%s]\n\tchunk:    %s\n",
				c.Text, c.Expected, strings.Join(c.Regex, ", "), c.Chunk)
		}
	}
	fmt.Fprintf(out, "positive: %d\n", len(report.Cases))
	fmt.Fprintf(out, "  regex hits: %d\n", report.RegexHits)
	fmt.Fprintf(out, "  chunk hits: %d\n", report.ChunkHits)
	if report.Negatives > 0 {
		fmt.Fprintf(out, "negative: %d\n", report.Negatives)
		fmt.Fprintf(out, "  regex false positives: %d\n", report.RegexFalse)
		fmt.Fprintf(out, "  chunk false positives: %d\n", report.ChunkFalse)
	}
	return nil
}

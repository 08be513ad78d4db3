package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newStoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect stored extractions and cases",
	}
	cmd.PersistentFlags().String("store", "", "SQLite store DSN (defaults to store.dsn)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "stats",
			Short: "Count stored rows",
			RunE: func(cmd *cobra.Command, _ []string) error {
				st, err := openStore(a.storeFlag(cmd))
				if err != nil {
					return err
				}
				if st == nil {
					return errors.New("no store configured")
				}
				defer st.Close()

				extractions, err := st.CountExtractions()
				if err != nil {
					return err
				}
				cases, err := st.CountCases()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "extractions: %d\ncases: %d\n", extractions, cases)
				return nil
			},
		},
		newStoreListCmd(a),
	)
	return cmd
}

func newStoreListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored extractions, optionally for one URL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, _ := cmd.Flags().GetString("url")

			st, err := openStore(a.storeFlag(cmd))
			if err != nil {
				return err
			}
			if st == nil {
				return errors.New("no store configured")
			}
			defer st.Close()

			rows, err := st.ListExtractions(url)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range rows {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", r.Method, r.Pollster, r.URL, r.Sentence)
			}
			return nil
		},
	}
	cmd.Flags().String("url", "", "Only list extractions from this URL")
	return cmd
}

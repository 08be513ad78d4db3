package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kittclouds/pollfinder/internal/config"
	"github.com/kittclouds/pollfinder/internal/logger"
	"github.com/kittclouds/pollfinder/internal/store"
)

// Version info
const Version = "0.3.0"

// app carries state shared by all subcommands once the root has run.
type app struct {
	cfg *config.Config
	log logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "pollfinder",
		Short:         "Find the organisations behind polls cited in news text",
		Version:       Version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().Bool("log-json", false, "Log as JSON")
	root.PersistentFlags().String("env-file", ".env", "Path to a .env file")

	root.AddCommand(
		newExtractCmd(a),
		newClassifyCmd(a),
		newCollectCmd(a),
		newRatingsCmd(a),
		newFetchCmd(a),
		newStoreCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return fmt.Errorf("failed to get env-file flag: %w", err)
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("log-json") {
		cfg.Log.JSON, _ = cmd.Flags().GetBool("log-json")
	}

	lc := logger.DefaultConfig()
	lc.Level = logger.ParseLevel(cfg.Log.Level)
	lc.JSON = cfg.Log.JSON
	lc.Output = cmd.ErrOrStderr()
	logger.Init(lc)

	a.cfg = cfg
	a.log = logger.GetDefault()
	cmd.SetContext(logger.ContextWithLogger(cmd.Context(), a.log))
	return nil
}

// openStore opens the store named by dsn. An empty dsn disables storage and
// "memory" keeps results for the lifetime of the process.
func openStore(dsn string) (store.Storer, error) {
	switch dsn {
	case "":
		return nil, nil
	case "memory":
		return store.NewMemStore(), nil
	default:
		return store.NewSQLiteStoreWithDSN(dsn)
	}
}

// storeFlag resolves the --store flag against store.dsn.
func (a *app) storeFlag(cmd *cobra.Command) string {
	if cmd.Flags().Changed("store") {
		dsn, _ := cmd.Flags().GetString("store")
		return dsn
	}
	return a.cfg.Store.DSN
}

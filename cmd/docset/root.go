// Part of the docset CLI - root command wiring and store construction shared
// by the subcommands.
package main

import (
	"context"
	"fmt"

	"github.com/arthur-debert/docset/docset"
	"github.com/arthur-debert/docset/docset/stores"
	"github.com/spf13/cobra"
)

var (
	configPath string
	storeKey   string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "docset",
	Short: "Docset CLI",
	Long:  "Docset is an ordered, identity-indexed document collection library. This tool inspects and validates persisted document-set blobs.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging(logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML store config (required)")
	rootCmd.PersistentFlags().StringVarP(&storeKey, "key", "k", "", "store key holding the document set (required)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	_ = rootCmd.MarkPersistentFlagRequired("config")
	_ = rootCmd.MarkPersistentFlagRequired("key")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(validateCmd)
}

// openStore builds the configured store backend.
func openStore(ctx context.Context) (stores.Store, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return cfg.open(ctx)
}

// loadSet loads the document set under the configured key.
func loadSet(ctx context.Context) (*docset.Set, error) {
	st, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	set := docset.New()
	if err := set.Load(ctx, st, storeKey); err != nil {
		return nil, fmt.Errorf("failed to load key %q: %w", storeKey, err)
	}
	return set, nil
}

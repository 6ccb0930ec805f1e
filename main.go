package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"freegames/internal/config"
	"freegames/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configDir string

	rootCmd := &cobra.Command{
		Use:   "freegames",
		Short: "Catalog of free-to-claim games",
		Long: `freegames tracks time-limited free game offers across storefronts.

  serve   Start the HTTP API (default)
  list    Query the catalog from the terminal`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configDir)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory containing an optional .env file")

	rootCmd.AddCommand(newServeCmd(&configDir))
	rootCmd.AddCommand(newListCmd(&configDir))
	return rootCmd
}

func newServeCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configDir)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}
}

func loadConfig(dir string) (*config.Config, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg)
	return cfg, nil
}

package main

import (
	"fmt"
	"os"

	"CryptoSentinel/internal/collector"
	"CryptoSentinel/internal/config"
	"CryptoSentinel/internal/logger"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:          "sentinel",
		Short:        "CryptoSentinel - technical indicator watchlist for Binance pairs",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath(), "configuration file path")

	root.AddCommand(newRunCmd(&cfgPath))
	root.AddCommand(newAnalyzeCmd(&cfgPath))
	root.AddCommand(newVersionCmd())
	return root
}

func defaultConfigPath() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

// loadConfig reads and validates config, then initializes the logger.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Environment); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newFetcher(cfg *config.Config) collector.Fetcher {
	return collector.NewBinanceFetcher(cfg.Market.BaseURL, cfg.Proxy, cfg.Market.Timeout)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "CryptoSentinel %s\n", version)
		},
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dmnbraulio/mapa-clientes/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "mapa-clientes",
	Short: "Client-location dataset tools for the distribution map",
	Long:  "Converts Google MyMaps CSV exports into a clean client dataset, stores it, and serves it with zone/botica filtering for the map front-end.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/terraincognita07/lunara/internal/config"
	"github.com/terraincognita07/lunara/internal/logging"
)

var (
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lunara",
	Short: "Lunara - self-hosted cycle, pregnancy and safety tracker",
	Long: `Lunara keeps period entries, pregnancy milestones, emergency contacts and a
health profile in local storage and predicts upcoming cycle dates.

Run "lunara serve" to start the JSON API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			if err := os.Setenv("CONFIG_PATH", configPath); err != nil {
				return fmt.Errorf("set config path: %w", err)
			}
		}

		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded

		logger, err = logging.New(cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (overrides CONFIG_PATH)")

	rootCmd.AddCommand(serveCmd, exportCmd, importCmd, clearCmd, predictCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		if logger != nil {
			logger.Warn("invalid TZ, falling back to UTC", zap.String("tz", name))
		}
		return time.UTC
	}
	return location
}

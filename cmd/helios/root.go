package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/helioscommand/helios"
	"github.com/helioscommand/helios/internal/config"
	"github.com/helioscommand/helios/internal/logging"
	"github.com/helioscommand/helios/pkg/orchestrate"
)

const defaultConfigPath = "helios.yaml"

var rootCmd = &cobra.Command{
	Use:   "helios",
	Short: "Helios is a conversational healthcare assistant",
	Long: `Helios answers healthcare queries in plain language: it finds the nearest
hospital, locates nearby pharmacies and medical shops, and sends urgent
emails on the user's behalf.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", defaultConfigPath, "Path to the configuration file")
	rootCmd.PersistentFlags().String("mode", "", "Execution mode: 'direct' or 'graph' (overrides config)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
}

// loadConfig resolves the configuration honoring the persistent flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags().Changed("config"))
	if err != nil {
		return cfg, err
	}
	if mode, _ := cmd.Flags().GetString("mode"); mode != "" {
		cfg.ExecutionMode = mode
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return logging.New(level)
}

// buildAssistant wires an Assistant from the resolved configuration.
func buildAssistant(cmd *cobra.Command) (*helios.Assistant, config.Config, *slog.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, cfg, nil, err
	}
	logger := newLogger(cfg)

	assistant, err := helios.NewFromConfig(cfg, logger)
	if err != nil {
		return nil, cfg, logger, err
	}
	if assistant.Mode() != orchestrate.ExecutionMode(cfg.ExecutionMode) {
		logger.Warn("execution mode fell back", "requested", cfg.ExecutionMode, "effective", assistant.Mode())
	}
	return assistant, cfg, logger, nil
}

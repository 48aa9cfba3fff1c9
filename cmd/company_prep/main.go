// Package main provides the company_prep CLI: the HTTP server and a terminal client for it.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonathan/company-prep/internal/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	configPath   string
	logLevelFlag string

	appConfig *config.Config
	logger    = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "company_prep",
	Short: "Company research for interview preparation",
	Long: "company_prep researches companies with an AI provider, stores the results, and serves them " +
		"through a REST API and web pages. The client commands talk to a running server.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (trace, debug, info, warn, error)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevelFlag != "" {
		cfg.Log.Level = logLevelFlag
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	appConfig = cfg
	logger = newLogger(cfg.Log, cmd.ErrOrStderr())
	return nil
}

// newLogger builds the process logger from the log config
func newLogger(cfg config.LogConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/company-prep/internal/companies"
	"github.com/jonathan/company-prep/internal/db"
	"github.com/jonathan/company-prep/internal/research"
	"github.com/jonathan/company-prep/internal/server"
	"github.com/jonathan/company-prep/internal/web"
	"github.com/spf13/cobra"
)

var (
	servePort    int
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API and web server",
	Long:  `Start an HTTP server that exposes the company REST endpoints and the web pages.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 5000)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply database migrations before starting")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if servePort > 0 {
		appConfig.Server.Port = servePort
	}
	if err := appConfig.RequireDatabase(); err != nil {
		return err
	}

	if serveMigrate || appConfig.Database.MigrateOnStart {
		if err := db.Migrate(ctx, appConfig.Database.URL); err != nil {
			return err
		}
		logger.Info().Msg("migrations applied")
	}

	database, err := db.Connect(ctx, appConfig.Database.URL)
	if err != nil {
		return err
	}
	defer database.Close()

	researcher, err := research.NewFromAPIKey(ctx, appConfig.LLM(), appConfig.Gemini.APIKey, logger)
	if err != nil {
		return err
	}
	defer func() { _ = researcher.Close() }()

	svc := companies.NewService(database, researcher, logger)
	pages, err := web.New(svc, logger)
	if err != nil {
		return fmt.Errorf("failed to load web pages: %w", err)
	}

	srv := server.New(server.Config{
		Host: appConfig.Server.Host,
		Port: appConfig.Server.Port,
	}, svc, pages, logger)

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

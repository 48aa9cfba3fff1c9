package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jonathan/company-prep/internal/bookmarks"
	"github.com/jonathan/company-prep/internal/client"
	"github.com/jonathan/company-prep/internal/observability"
	"github.com/jonathan/company-prep/internal/web"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	listLimit       int
	recentLimit     int
	feedbackRating  string
	feedbackComment string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Look up a stored company by name",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var researchCmd = &cobra.Command{
	Use:   "research <company>",
	Short: "Research a company and store the result",
	Long:  "Research returns the stored record when the company is already known and asks the AI provider otherwise.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runResearch,
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <company>",
	Short: "Search for a company, researching it once when it is not stored yet",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLookup,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recently updated companies",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show recent searches and saved companies",
	Args:  cobra.NoArgs,
	RunE:  runRecent,
}

var feedbackCmd = &cobra.Command{
	Use:   "feedback <company>",
	Short: "Rate a company report as helpful or not helpful",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFeedback,
}

var exportCmd = &cobra.Command{
	Use:   "export <company>",
	Short: "Export a company report as PDF",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExport,
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 10, "Number of companies to list (max 100)")
	recentCmd.Flags().IntVarP(&recentLimit, "limit", "n", 5, "Number of recent searches to show (max 50)")

	feedbackCmd.Flags().StringVarP(&feedbackRating, "rating", "r", "", "helpful or not-helpful (required)")
	feedbackCmd.Flags().StringVarP(&feedbackComment, "comment", "m", "", "Optional comment")
	if err := feedbackCmd.MarkFlagRequired("rating"); err != nil {
		panic(fmt.Sprintf("failed to mark rating flag as required: %v", err))
	}

	rootCmd.AddCommand(searchCmd, researchCmd, lookupCmd, listCmd, recentCmd, feedbackCmd, exportCmd)
}

// newAPIClient creates a client for the configured API with a query cache that lives until ctx ends
func newAPIClient(ctx context.Context) (*client.Client, error) {
	cache, err := client.NewQueryCache(ctx, client.DefaultCacheTTL)
	if err != nil {
		return nil, err
	}
	return client.New(appConfig.Client.APIURL, client.WithCache(cache))
}

func nameArg(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func runSearch(cmd *cobra.Command, args []string) error {
	api, err := newAPIClient(cmd.Context())
	if err != nil {
		return err
	}
	query := nameArg(args)
	p := observability.NewPrinter(cmd.OutOrStdout())

	company, err := api.Search(cmd.Context(), query)
	if errors.Is(err, client.ErrNotFound) {
		p.PrintNotice("NOT FOUND", fmt.Sprintf(
			"Company information not found for %q.\nRun `company_prep lookup %s` to research it.", query, query))
		return nil
	}
	if err != nil {
		return err
	}
	p.PrintCompany(web.NewCompanyView(company, time.Now()))
	return nil
}

func runResearch(cmd *cobra.Command, args []string) error {
	api, err := newAPIClient(cmd.Context())
	if err != nil {
		return err
	}
	name := nameArg(args)
	logger.Info().Str("company", name).Msg("researching company")

	company, created, err := api.Research(cmd.Context(), name)
	if err != nil {
		return err
	}

	p := observability.NewPrinter(cmd.OutOrStdout())
	if created {
		p.PrintNotice("RESEARCH", "Stored a new record for "+company.Name)
	} else {
		p.PrintNotice("RESEARCH", company.Name+" was already researched")
	}
	p.PrintCompany(web.NewCompanyView(company, time.Now()))
	return nil
}

func runLookup(cmd *cobra.Command, args []string) error {
	api, err := newAPIClient(cmd.Context())
	if err != nil {
		return err
	}
	name := nameArg(args)
	p := observability.NewPrinter(cmd.OutOrStdout())
	status := cmd.ErrOrStderr()

	l := client.NewLookup(api, name)
	l.OnTransition = func(_, to client.State) {
		switch to {
		case client.StateSearching:
			_, _ = fmt.Fprintf(status, "Searching for %s...\n", name)
		case client.StateResearching:
			_, _ = fmt.Fprintf(status, "Researching %s. This may take a moment...\n", name)
		}
		logger.Debug().Str("company", name).Str("state", string(to)).Msg("lookup state")
	}

	company, err := l.Run(cmd.Context())
	if errors.Is(err, client.ErrResearchFailed) {
		p.PrintNotice("COMPANY INFORMATION NOT AVAILABLE", fmt.Sprintf(
			"We couldn't find information about %q.\n\n"+
				"• Check the spelling of the company name\n"+
				"• Try the full official name\n"+
				"• Search the web: %s", name, web.WebSearchURL(name)))
		return err
	}
	if err != nil {
		return err
	}

	p.PrintCompany(web.NewCompanyView(company, time.Now()))
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	api, err := newAPIClient(cmd.Context())
	if err != nil {
		return err
	}
	list, err := api.List(cmd.Context(), listLimit)
	if err != nil {
		return err
	}

	entries := make([]string, len(list))
	for i, c := range list {
		entries[i] = fmt.Sprintf("%s (updated %s)", c.Name, humanize.Time(c.UpdatedAt))
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintList("COMPANIES", entries, "No companies researched yet")
	return nil
}

// runRecent fetches recent searches from the API and reads saved companies from disk concurrently
func runRecent(cmd *cobra.Command, _ []string) error {
	api, err := newAPIClient(cmd.Context())
	if err != nil {
		return err
	}

	var searches []string
	var saved []bookmarks.Bookmark
	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		var err error
		searches, err = api.RecentSearches(ctx, recentLimit)
		return err
	})
	g.Go(func() error {
		store, err := openBookmarks(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		saved, err = store.List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	p := observability.NewPrinter(cmd.OutOrStdout())
	p.PrintList("RECENT SEARCHES", searches, "No searches yet")
	p.PrintList("SAVED COMPANIES", bookmarkNames(saved), "No saved companies")
	return nil
}

func runFeedback(cmd *cobra.Command, args []string) error {
	ack, err := client.Feedback{
		Company: nameArg(args),
		Rating:  feedbackRating,
		Comment: feedbackComment,
	}.Submit()
	if err != nil {
		return fmt.Errorf("invalid feedback: %w", err)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintNotice("FEEDBACK", ack)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	api, err := newAPIClient(cmd.Context())
	if err != nil {
		return err
	}
	company, err := api.Get(cmd.Context(), nameArg(args))
	if err != nil {
		return err
	}

	if err := client.Export(company); err != nil {
		observability.NewPrinter(cmd.OutOrStdout()).PrintNotice("EXPORT", err.Error())
	}
	return nil
}

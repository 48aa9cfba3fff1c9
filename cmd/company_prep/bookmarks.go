package main

import (
	"context"
	"fmt"

	"github.com/jonathan/company-prep/internal/bookmarks"
	"github.com/jonathan/company-prep/internal/observability"
	"github.com/spf13/cobra"
)

var bookmarksCmd = &cobra.Command{
	Use:     "bookmarks",
	Aliases: []string{"saved"},
	Short:   "Manage saved companies",
}

var bookmarksAddCmd = &cobra.Command{
	Use:   "add <company>",
	Short: "Save a company",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBookmarksAdd,
}

var bookmarksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved companies",
	Args:  cobra.NoArgs,
	RunE:  runBookmarksList,
}

var bookmarksRemoveCmd = &cobra.Command{
	Use:   "remove <company>",
	Short: "Remove a saved company",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBookmarksRemove,
}

func init() {
	bookmarksCmd.AddCommand(bookmarksAddCmd, bookmarksListCmd, bookmarksRemoveCmd)
	rootCmd.AddCommand(bookmarksCmd)
}

func openBookmarks(ctx context.Context) (*bookmarks.Store, error) {
	path := appConfig.Bookmarks.Path
	if path == "" {
		var err error
		if path, err = bookmarks.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return bookmarks.Open(ctx, path)
}

func bookmarkNames(list []bookmarks.Bookmark) []string {
	names := make([]string, len(list))
	for i, b := range list {
		names[i] = b.Name
	}
	return names
}

func runBookmarksAdd(cmd *cobra.Command, args []string) error {
	store, err := openBookmarks(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	name := nameArg(args)
	added, err := store.Add(cmd.Context(), name)
	if err != nil {
		return err
	}
	msg := "Company saved to your list"
	if !added {
		msg = "Company already saved to your list"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", msg, name)
	return nil
}

func runBookmarksList(cmd *cobra.Command, _ []string) error {
	store, err := openBookmarks(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	list, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintList("SAVED COMPANIES", bookmarkNames(list), "No saved companies")
	return nil
}

func runBookmarksRemove(cmd *cobra.Command, args []string) error {
	store, err := openBookmarks(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	name := nameArg(args)
	removed, err := store.Remove(cmd.Context(), name)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%q is not in your saved companies", name)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed: %s\n", name)
	return nil
}

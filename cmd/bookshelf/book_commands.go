package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookshelf/internal/catalog"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var book catalog.Book

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			if err := store.Create(book); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Book added successfully!")
			return nil
		},
	}

	cmd.Flags().StringVarP(&book.Title, "title", "t", "", "Book title")
	cmd.Flags().StringVarP(&book.Author, "author", "a", "", "Author")
	cmd.Flags().StringVarP((*string)(&book.Year), "year", "y", "", "Publication year")
	cmd.Flags().StringVarP(&book.Genre, "genre", "g", "", "Genre")
	cmd.Flags().BoolVarP(&book.Read, "read", "r", false, "Mark the book as read")
	return cmd
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <title>",
		Aliases: []string{"rm"},
		Short:   "Remove every book with the given title (case-insensitive)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			removed, err := store.Delete(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if removed == 0 {
				fmt.Fprintf(out, "No book titled %q found.\n", args[0])
				return nil
			}
			fmt.Fprintln(out, "Book removed successfully!")
			if removed > 1 {
				fmt.Fprintf(out, "Removed %d books titled %q.\n", removed, args[0])
			}
			return nil
		},
	}
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var plain bool

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Find books whose title or author contains the query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			var query string
			if len(args) == 1 {
				query = args[0]
			}
			results := store.Search(query)
			if jsonOutput {
				return writeJSON(cmd, results)
			}
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No matching books found.")
				return nil
			}
			renderBooks(out, results, plain, ctx.colorize(out))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&plain, "plain", false, "One line per book instead of a table")
	return cmd
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var plain bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every book in insertion order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			books := store.List()
			if jsonOutput {
				return writeJSON(cmd, books)
			}
			out := cmd.OutOrStdout()
			if len(books) == 0 {
				fmt.Fprintln(out, "Your book collection is empty.")
				return nil
			}
			renderBooks(out, books, plain, ctx.colorize(out))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&plain, "plain", false, "One line per book instead of a table")
	return cmd
}

type progressReport struct {
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

func newProgressCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show how much of the catalog has been read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			total, percent := store.Progress()
			if jsonOutput {
				return writeJSON(cmd, progressReport{Total: total, Percent: percent})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total books in collection: %d\n", total)
			fmt.Fprintf(out, "Reading Progress: %.2f%%\n", percent)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

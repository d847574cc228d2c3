// file: cmd/books.go
// version: 1.0.0
// guid: 4e6a8c0d-2f4b-4e6a-9c0d-2f4b6e8a0c2d

package cmd

import (
	"errors"
	"fmt"

	"github.com/jdfalk/library-catalog/internal/catalog"
	"github.com/jdfalk/library-catalog/internal/config"
	"github.com/jdfalk/library-catalog/internal/ui"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	addCmd = &cobra.Command{
		Use:   "add <id> <title> <author> <year>",
		Short: "Add a book",
		Long:  `Add a book to the catalog. The id must not already be in use; an empty year is allowed.`,
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, title, author, year := args[0], args[1], args[2], args[3]
			if msg := ui.ValidateBook(id, year); msg != "" {
				return errors.New(msg)
			}
			return withCatalog(cmd, func(c *catalog.Catalog) (catalog.Result, error) {
				return c.Add(id, title, author, year)
			})
		},
	}

	listCmd = &cobra.Command{
		Use:     "list",
		Aliases: []string{"view", "ls"},
		Short:   "List all books",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, func(c *catalog.Catalog) (catalog.Result, error) {
				return c.View(), nil
			})
		},
	}

	updateCmd = &cobra.Command{
		Use:   "update <id>",
		Short: "Update a book's title, author or year",
		Long:  `Update the book with the given id. Fields not given (or given empty) keep their current value.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			author, _ := cmd.Flags().GetString("author")
			year, _ := cmd.Flags().GetString("year")
			if msg := ui.ValidateBook(args[0], year); msg != "" {
				return errors.New(msg)
			}
			return withCatalog(cmd, func(c *catalog.Catalog) (catalog.Result, error) {
				return c.Update(args[0], title, author, year)
			})
		},
	}

	deleteCmd = &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a book",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !ui.IsNonEmpty(args[0]) {
				return errors.New(ui.MsgEmptyID)
			}
			return withCatalog(cmd, func(c *catalog.Catalog) (catalog.Result, error) {
				return c.Delete(args[0])
			})
		},
	}

	searchCmd = &cobra.Command{
		Use:   "search <keyword>",
		Short: "Find books by title or author",
		Long:  `List books whose title or author contains the keyword, ignoring case.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := args[0]
			if !ui.IsNonEmpty(keyword) {
				return errors.New(ui.MsgEmptyKeyword)
			}
			suggest, _ := cmd.Flags().GetBool("suggest")

			c, err := openCatalog()
			if err != nil {
				return err
			}
			res := c.Search(keyword)
			printResult(cmd, res)

			if suggest && res.Outcome == catalog.NoMatches {
				printSuggestions(cmd, c, keyword, config.AppConfig.SuggestLimit)
			}
			return nil
		},
	}

	suggestCmd = &cobra.Command{
		Use:   "suggest <keyword>",
		Short: "Show books that loosely match a keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			if limit <= 0 {
				limit = config.AppConfig.SuggestLimit
			}

			c, err := openCatalog()
			if err != nil {
				return err
			}
			printSuggestions(cmd, c, args[0], limit)
			return nil
		},
	}

	sortCmd = &cobra.Command{
		Use:       "sort <title|year>",
		Short:     "Sort the catalog and save the new order",
		Long:      `Sort the catalog by title or by year. Years are compared as text. Books with equal keys keep their order.`,
		ValidArgs: []string{"title", "year"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, func(c *catalog.Catalog) (catalog.Result, error) {
				if args[0] == "year" {
					return c.SortByYear()
				}
				return c.SortByTitle()
			})
		},
	}

	importCmd = &cobra.Command{
		Use:   "import <file>",
		Short: "Import books from a CSV file",
		Long: `Import books from a CSV file with an id,title,author,year header.
Rows whose id is already in the catalog are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			showProgress, _ := cmd.Flags().GetBool("progress")

			var opts []catalog.Option
			var bar *progressbar.ProgressBar
			if showProgress {
				opts = append(opts, catalog.WithImportProgress(func(done, total int) {
					if bar == nil {
						bar = progressbar.NewOptions(total,
							progressbar.OptionSetWriter(cmd.ErrOrStderr()),
							progressbar.OptionSetDescription("importing"),
							progressbar.OptionShowCount(),
						)
					}
					_ = bar.Set(done)
				}))
			}

			c, err := openCatalog(opts...)
			if err != nil {
				return err
			}
			res, err := c.ImportFrom(args[0])
			if bar != nil {
				_ = bar.Finish()
				fmt.Fprintln(cmd.ErrOrStderr())
			}
			if err != nil {
				return err
			}
			printResult(cmd, res)
			return nil
		},
	}
)

func init() {
	updateCmd.Flags().String("title", "", "New title (empty keeps the current one)")
	updateCmd.Flags().String("author", "", "New author (empty keeps the current one)")
	updateCmd.Flags().String("year", "", "New year (empty keeps the current one)")

	searchCmd.Flags().Bool("suggest", false, "Show close matches when nothing matches exactly")

	suggestCmd.Flags().Int("limit", 0, "Maximum number of suggestions (default from suggest_limit)")

	importCmd.Flags().Bool("progress", false, "Show a progress bar on stderr")
}

// withCatalog opens the catalog, runs op and prints its result.
func withCatalog(cmd *cobra.Command, op func(c *catalog.Catalog) (catalog.Result, error)) error {
	c, err := openCatalog()
	if err != nil {
		return err
	}
	res, err := op(c)
	if err != nil {
		return err
	}
	printResult(cmd, res)
	return nil
}

func printSuggestions(cmd *cobra.Command, c *catalog.Catalog, keyword string, limit int) {
	out := cmd.OutOrStdout()
	books := c.Suggest(keyword, limit)
	if len(books) == 0 {
		fmt.Fprintln(out, "No suggestions.")
		return
	}
	fmt.Fprintln(out, "Did you mean:")
	for _, b := range books {
		fmt.Fprintf(out, "  %s\n", b)
	}
}

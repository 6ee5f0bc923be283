package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Lixing-Zhang/menu-board/internal/menu"
	"github.com/Lixing-Zhang/menu-board/internal/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// options shared by every subcommand
type options struct {
	source   string
	timeout  time.Duration
	maxBytes int64
	asJSON   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "menuctl",
		Short:         "Inspect and validate restaurant menu files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultSource := os.Getenv("MENU_SOURCE")
	if defaultSource == "" {
		defaultSource = "menu.json"
	}

	root.PersistentFlags().StringVarP(&opts.source, "source", "s", defaultSource, "menu location (URL, file:// URL or path)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "time allowed for loading the menu")
	root.PersistentFlags().Int64Var(&opts.maxBytes, "max-bytes", menu.DefaultMaxBytes, "largest accepted menu document")
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print JSON instead of a table")

	root.AddCommand(
		newCategoriesCmd(opts),
		newListCmd(opts),
		newShowCmd(opts),
		newValidateCmd(opts),
	)

	return root
}

func newCategoriesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List menu categories, \"All\" first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := load(cmd.Context(), opts)
			if err != nil {
				return err
			}

			categories := menu.BuildCategories(items)
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), categories)
			}
			for _, c := range categories {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func newListCmd(opts *options) *cobra.Command {
	var filter menu.FilterState

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List menu items, optionally filtered by category and search text",
		Long: `Lists menu items in source order.

The search text is matched case-insensitively against name, description and
category, and applies within the selected category.

Examples:
  menuctl list --category Drinks
  menuctl list --query cold
  menuctl list -c Drinks -q tea --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := load(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if strings.TrimSpace(filter.Category) == "" {
				filter.Category = menu.AllCategory
			}
			selected := filter.Apply(items)
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), selected)
			}
			if len(selected) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No items found.")
				return nil
			}
			return writeTable(cmd.OutOrStdout(), selected)
		},
	}

	cmd.Flags().StringVarP(&filter.Category, "category", "c", menu.AllCategory, "category to show")
	cmd.Flags().StringVarP(&filter.Query, "query", "q", "", "search text")

	return cmd
}

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the first item with the given id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			if id == "" {
				return fmt.Errorf("no item selected")
			}

			items, err := load(cmd.Context(), opts)
			if err != nil {
				return err
			}

			for _, item := range items {
				if item.ID != id {
					continue
				}
				if opts.asJSON {
					return writeJSON(cmd.OutOrStdout(), item)
				}
				writeDetail(cmd.OutOrStdout(), item)
				return nil
			}

			return fmt.Errorf("item %q not found", id)
		},
	}
}

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that the menu loads and report what it contains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := load(cmd.Context(), opts)
			if err != nil {
				return err
			}

			categories := menu.BuildCategories(items)
			duplicates := duplicateIDs(items)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ok: %d items, %d categories\n", len(items), len(categories)-1)
			for _, id := range duplicates {
				fmt.Fprintf(out, "warning: id %q is used more than once, lookups return the first\n", id)
			}
			return nil
		},
	}
}

func load(ctx context.Context, opts *options) ([]models.MenuItem, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	source, err := menu.NewSource(opts.source, opts.timeout, opts.maxBytes)
	if err != nil {
		return nil, err
	}

	items, err := menu.NewLoader(source).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	return items, nil
}

func duplicateIDs(items []models.MenuItem) []string {
	counts := make(map[string]int, len(items))
	var dups []string
	for _, item := range items {
		counts[item.ID]++
		if counts[item.ID] == 2 {
			dups = append(dups, item.ID)
		}
	}
	return dups
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(w io.Writer, items []models.MenuItem) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", item.ID, item.Name, item.Category, formatPrice(item.Price))
	}
	return tw.Flush()
}

func writeDetail(w io.Writer, item models.MenuItem) {
	fmt.Fprintf(w, "%s\n", item.Name)
	fmt.Fprintf(w, "%s • %s\n", item.Category, formatPrice(item.Price))
	if item.Description != "" {
		fmt.Fprintf(w, "\n%s\n", item.Description)
	}

	fmt.Fprintln(w, "\nIngredients")
	if len(item.Ingredients) == 0 {
		fmt.Fprintln(w, "  Not listed")
	}
	for _, ing := range item.Ingredients {
		fmt.Fprintf(w, "  - %s\n", ing)
	}

	if item.More != "" {
		fmt.Fprintf(w, "\nMore info\n  %s\n", item.More)
	}
	fmt.Fprintf(w, "\nImage: %s\n", item.ImageRef)
}

func formatPrice(p float64) string {
	return "₹" + decimal.NewFromFloat(p).String()
}

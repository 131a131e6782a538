package main

import (
	"errors"
	"fmt"
	"os"

	"kloth-be/internal/config"
	"kloth-be/internal/storefront"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cfg := config.LoadConfig()
	opts := options{}

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Browse the Kloth catalog from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api", cfg.APIURL, "catalog API base URL")
	root.PersistentFlags().StringVar(&opts.cartPath, "cart", cfg.CartDB, "path of the local cart database")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log requests to stderr")

	// withApp opens a session for the duration of one command.
	withApp := func(fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), cfg, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()
			return fn(cmd, a, args)
		}
	}

	root.AddCommand(
		newBrowseCmd(withApp),
		newFilterCmd(withApp),
		newAddCmd(withApp),
		newCartCmd(withApp),
		newImageCmd(withApp),
		newCategoriesCmd(withApp),
		newPricesCmd(),
	)
	return root
}

type appRunner func(fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error

func newBrowseCmd(withApp appRunner) *cobra.Command {
	var pages int

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "List products page by page",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			if pages < 1 {
				return fmt.Errorf("--pages must be at least 1")
			}

			a.ctrl.Mount(cmd.Context())
			for i := 1; i < pages; i++ {
				err := a.ctrl.LoadMore(cmd.Context())
				if errors.Is(err, storefront.ErrNoMorePages) {
					break
				}
				if err != nil {
					return err
				}
			}

			renderPage(cmd.OutOrStdout(), a.ctrl.View())
			return nil
		}),
	}
	cmd.Flags().IntVarP(&pages, "pages", "p", 1, "number of pages to load")
	return cmd
}

func newFilterCmd(withApp appRunner) *cobra.Command {
	var categories []string
	var price string

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Query products by category and price range",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			ctx := cmd.Context()
			a.ctrl.Mount(ctx)

			for _, id := range categories {
				if err := a.ctrl.ToggleCategory(ctx, id, true); err != nil {
					return err
				}
			}
			if price != "" {
				r, err := storefront.LookupPrice(price)
				if err != nil {
					return fmt.Errorf("%w: %q (see `storefront prices`)", err, price)
				}
				if err := a.ctrl.SelectPriceRange(ctx, r); err != nil {
					return err
				}
			}
			a.ctrl.FlushFilters()

			renderPage(cmd.OutOrStdout(), a.ctrl.View())
			return nil
		}),
	}
	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "category id (repeatable)")
	cmd.Flags().StringVar(&price, "price", "", "price range id or name")
	return cmd
}

func newAddCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "add <slug>",
		Short: "Add a product to the local cart",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			p, err := a.client.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.ctrl.AddToCart(cmd.Context(), p)
		}),
	}
}

func newCartCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "cart",
		Short: "Show the local cart",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			renderCart(cmd.OutOrStdout(), a.cart.Entries())
			return nil
		}),
	}
}

func newImageCmd(withApp appRunner) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "image <product-id>",
		Short: "Download a product image",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			data, contentType, err := a.client.FetchProductImage(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				path = args[0] + extensionFor(contentType)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write image: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%d bytes, %s)\n", path, len(data), contentType)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file")
	return cmd
}

func newCategoriesCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List category facets",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			cats, err := a.client.ListCategories(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, c := range cats {
				fmt.Fprintf(w, "%-38s %s\n", c.ID, c.Name)
			}
			return nil
		}),
	}
}

func newPricesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prices",
		Short: "List price range facets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			for _, p := range storefront.Prices {
				fmt.Fprintf(w, "%s  %-14s %s - %s\n", p.ID, p.Name, p.Min, p.Max)
			}
			return nil
		},
	}
}

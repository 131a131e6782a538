package main

import (
	"fmt"
	"io"
	"mime"
	"strings"

	"kloth-be/internal/product"
	"kloth-be/internal/storefront"

	"github.com/shopspring/decimal"
)

func renderPage(w io.Writer, v storefront.PageView) {
	fmt.Fprintln(w, strings.Repeat("═", 60))
	if v.Banner != "" {
		fmt.Fprintf(w, "🖼  %s\n", v.Banner)
	} else {
		for _, s := range v.Slides {
			fmt.Fprintf(w, "🖼  %s\n", s.ImageURL)
		}
	}

	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "Categories: %s\n", facetLine(v.Categories))
	fmt.Fprintf(w, "Prices:     %s\n", facetLine(v.Prices))
	fmt.Fprintln(w, strings.Repeat("─", 60))

	switch {
	case v.Placeholders > 0:
		for i := 0; i < v.Placeholders; i++ {
			fmt.Fprintln(w, "  ░░░░░░░░░░░░░░░░░░░░")
		}
	case v.EmptyMessage != "":
		fmt.Fprintln(w, v.EmptyMessage)
	default:
		for i, c := range v.Cards {
			fmt.Fprintf(w, "%2d. %-28s %12s\n", i+1, c.Name, c.Price)
			fmt.Fprintf(w, "    %s\n", c.Description)
			fmt.Fprintf(w, "    More Details: %s", c.DetailPath)
			if c.InCart > 0 {
				fmt.Fprintf(w, "  (in cart: %d)", c.InCart)
			}
			fmt.Fprintln(w)
		}
	}

	if v.ShowLoadMore {
		fmt.Fprintf(w, "[ %s ]\n", v.LoadMoreLabel)
	}
	fmt.Fprintln(w, strings.Repeat("═", 60))
	fmt.Fprintf(w, "%s · %s · cart: %d\n", v.Mode, v.State, v.CartCount)
}

func facetLine(opts []storefront.FilterOption) string {
	if len(opts) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(opts))
	for _, o := range opts {
		mark := "[ ]"
		if o.Selected {
			mark = "[x]"
		}
		parts = append(parts, fmt.Sprintf("%s %s (%s)", mark, o.Name, o.ID))
	}
	return strings.Join(parts, "  ")
}

func renderCart(w io.Writer, entries []*product.Product) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "Your cart is empty")
		return
	}
	for i, p := range entries {
		fmt.Fprintf(w, "%2d. %-28s %12s\n", i+1, p.Name, storefront.FormatINR(p.Price))
	}
	fmt.Fprintf(w, "Total (%d items): %s\n", len(entries), storefront.FormatINR(cartTotal(entries)))
}

func cartTotal(entries []*product.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range entries {
		total = total.Add(p.Price)
	}
	return total
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	}
	exts, err := mime.ExtensionsByType(contentType)
	if err != nil || len(exts) == 0 {
		return ".img"
	}
	return exts[0]
}

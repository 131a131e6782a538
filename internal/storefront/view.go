package storefront

import (
	"hash/fnv"
	"io"
	"strings"
	"sync"

	"kloth-be/internal/product"

	"github.com/shopspring/decimal"
)

const (
	descriptionPreviewRunes = 50
	SkeletonCount           = 6
	EmptyMessage            = "No products found"
	BannerImage             = "/images/banner.png"
)

// ProductCard is the render model of one product tile.
type ProductCard struct {
	ID          string
	Name        string
	Price       string
	Description string
	DetailPath  string
	ImageURL    string
	InCart      int
}

type CarouselSlide struct {
	ID       string
	ImageURL string
}

type FilterOption struct {
	ID       string
	Name     string
	Selected bool
}

// PageView is everything the catalog page renders.
type PageView struct {
	State string
	Mode  string

	Slides []CarouselSlide
	Banner string

	Categories []FilterOption
	Prices     []FilterOption

	Cards        []ProductCard
	Placeholders int
	EmptyMessage string

	ShowLoadMore     bool
	LoadMoreDisabled bool
	LoadMoreLabel    string

	CartCount int
}

// BuildCards maps products and the cart to product cards. It has no side effects.
func BuildCards(products, cart []*product.Product, imageURL func(id string) string) []ProductCard {
	inCart := make(map[string]int, len(cart))
	for _, p := range cart {
		inCart[p.ID]++
	}

	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, ProductCard{
			ID:          p.ID,
			Name:        p.Name,
			Price:       FormatINR(p.Price),
			Description: Preview(p.Description),
			DetailPath:  "/product/" + p.Slug,
			ImageURL:    imageURL(p.ID),
			InCart:      inCart[p.ID],
		})
	}
	return cards
}

// ViewBuilder memoizes BuildCards on the structure of its inputs.
type ViewBuilder struct {
	imageURL func(id string) string

	mu     sync.Mutex
	valid  bool
	key    uint64
	cards  []ProductCard
	builds int
}

func NewViewBuilder(imageURL func(id string) string) *ViewBuilder {
	return &ViewBuilder{imageURL: imageURL}
}

// Cards returns the cached cards when products and cart are structurally unchanged.
func (b *ViewBuilder) Cards(products, cart []*product.Product) []ProductCard {
	key := fingerprint(products, cart)

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.valid || b.key != key {
		b.cards = BuildCards(products, cart, b.imageURL)
		b.key = key
		b.valid = true
		b.builds++
	}
	return b.cards
}

// Builds counts how many times cards were recomputed.
func (b *ViewBuilder) Builds() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.builds
}

func fingerprint(products, cart []*product.Product) uint64 {
	h := fnv.New64a()
	for _, p := range products {
		writeFields(h, p.ID, p.Name, p.Slug, p.Description, p.Price.String())
	}
	_, _ = io.WriteString(h, "\x1e")
	for _, p := range cart {
		writeFields(h, p.ID)
	}
	return h.Sum64()
}

func writeFields(w io.Writer, fields ...string) {
	for _, f := range fields {
		_, _ = io.WriteString(w, f)
		_, _ = w.Write([]byte{0x1f})
	}
}

// Preview truncates a description for card display.
func Preview(desc string) string {
	r := []rune(desc)
	if len(r) > descriptionPreviewRunes {
		r = r[:descriptionPreviewRunes]
	}
	return string(r) + "..."
}

// FormatINR formats an amount in rupees with Indian digit grouping, e.g. ₹12,34,567.5.
func FormatINR(d decimal.Decimal) string {
	d = d.Round(3)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	intPart, frac, _ := strings.Cut(d.String(), ".")
	out := sign + "₹" + groupIndian(intPart)
	if frac != "" {
		out += "." + frac
	}
	return out
}

// groupIndian groups the last three digits, then pairs: 1234567 -> 12,34,567.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}

package storefront

import (
	"slices"

	"kloth-be/internal/product"

	"github.com/shopspring/decimal"
)

// State is the catalog view's loading state.
type State int

const (
	StateIdle State = iota
	StateLoadingInitial
	StateLoadingMore
	StateLoadingFiltered
	StateLoaded
	StateEmpty
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoadingInitial:
		return "LoadingInitial"
	case StateLoadingMore:
		return "LoadingMore"
	case StateLoadingFiltered:
		return "LoadingFiltered"
	case StateLoaded:
		return "Loaded"
	case StateEmpty:
		return "Empty"
	default:
		return "Unknown"
	}
}

// Loading reports whether a fetch owns the product list.
func (s State) Loading() bool {
	return s == StateLoadingInitial || s == StateLoadingMore || s == StateLoadingFiltered
}

type Mode int

const (
	ModePaginated Mode = iota
	ModeFiltered
)

func (m Mode) String() string {
	if m == ModeFiltered {
		return "filtered"
	}
	return "paginated"
}

// PriceRange is a named, inclusive price bucket. At most one is selected.
type PriceRange struct {
	ID   string
	Name string
	Min  decimal.Decimal
	Max  decimal.Decimal
}

func (r PriceRange) Interval() product.PriceRange {
	return product.PriceRange{Min: r.Min, Max: r.Max}
}

// Prices are the price facet's buckets.
var Prices = []PriceRange{
	{ID: "0", Name: "₹0 to 19", Min: decimal.NewFromInt(0), Max: decimal.NewFromInt(19)},
	{ID: "1", Name: "₹20 to 39", Min: decimal.NewFromInt(20), Max: decimal.NewFromInt(39)},
	{ID: "2", Name: "₹40 to 59", Min: decimal.NewFromInt(40), Max: decimal.NewFromInt(59)},
	{ID: "3", Name: "₹60 to 79", Min: decimal.NewFromInt(60), Max: decimal.NewFromInt(79)},
	{ID: "4", Name: "₹80 to 99", Min: decimal.NewFromInt(80), Max: decimal.NewFromInt(99)},
	{ID: "5", Name: "₹100 or more", Min: decimal.NewFromInt(100), Max: decimal.NewFromInt(9999)},
}

// LookupPrice finds a bucket by id or display name.
func LookupPrice(key string) (PriceRange, error) {
	for _, p := range Prices {
		if p.ID == key || p.Name == key {
			return p, nil
		}
	}
	return PriceRange{}, ErrUnknownPriceRange
}

// FilterState holds the selected facets. Categories keep selection order.
type FilterState struct {
	categories []string
	price      *PriceRange
}

// Active reports whether filtered-query mode applies.
func (f FilterState) Active() bool {
	return len(f.categories) > 0 || f.price != nil
}

func (f FilterState) CategoryIDs() []string {
	return slices.Clone(f.categories)
}

func (f FilterState) Price() (PriceRange, bool) {
	if f.price == nil {
		return PriceRange{}, false
	}
	return *f.price, true
}

func (f FilterState) HasCategory(id string) bool {
	return slices.Contains(f.categories, id)
}

// withCategory returns a copy with id selected or deselected.
func (f FilterState) withCategory(id string, selected bool) FilterState {
	out := f.clone()
	switch {
	case selected && !f.HasCategory(id):
		out.categories = append(out.categories, id)
	case !selected:
		out.categories = slices.DeleteFunc(out.categories, func(c string) bool { return c == id })
	}
	return out
}

func (f FilterState) withPrice(r *PriceRange) FilterState {
	out := f.clone()
	if r != nil {
		p := *r
		out.price = &p
	} else {
		out.price = nil
	}
	return out
}

func (f FilterState) clone() FilterState {
	out := FilterState{categories: slices.Clone(f.categories)}
	if f.price != nil {
		p := *f.price
		out.price = &p
	}
	return out
}

// PageState is the paginated product accumulation.
type PageState struct {
	Page       int
	Products   []*product.Product
	Total      int
	TotalKnown bool
}

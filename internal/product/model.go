package product

import "github.com/shopspring/decimal"

func init() {
	// Prices travel as JSON numbers on the wire.
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"category"`
	Quantity    int             `json:"quantity"`
}

type Image struct {
	Data        []byte
	ContentType string
}

// PriceRange is an inclusive price interval.
type PriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

type FilterOptions struct {
	CategoryIDs []string
	Price       *PriceRange
}

// Active reports whether any facet is set.
func (o FilterOptions) Active() bool {
	return len(o.CategoryIDs) > 0 || o.Price != nil
}

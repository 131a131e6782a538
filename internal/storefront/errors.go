package storefront

import "errors"

var (
	// -- Failures surfaced to the shopper --
	ErrNetwork     = errors.New("network failure")
	ErrPersistence = errors.New("cart storage failure")

	// -- Load more guards --
	ErrLoadInProgress = errors.New("a catalog load is already in progress")
	ErrNoMorePages    = errors.New("all products are already loaded")
	ErrFilteredMode   = errors.New("load more is unavailable while filters are active")
	ErrStaleList      = errors.New("the shown list came from a filtered query; reload the first page")

	// -- Input --
	ErrUnknownPriceRange = errors.New("unknown price range")
	ErrNotMounted        = errors.New("catalog view is not mounted")
)

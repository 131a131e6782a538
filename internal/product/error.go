package product

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidPage       = errors.New("page must be a positive integer")
	ErrInvalidPriceRange = errors.New("price range minimum exceeds maximum")
	ErrInvalidCategoryID = errors.New("category id is not a valid uuid")

	// -- Resource State --
	ErrProductNotFound = errors.New("product not found")
	ErrImageNotFound   = errors.New("product image not found")

	// -- Database & Operation Failures --
	ErrFailedListProducts   = errors.New("failed to list products")
	ErrFailedCountProducts  = errors.New("failed to count products")
	ErrFailedFilterProducts = errors.New("failed to filter products")
	ErrFailedGetProduct     = errors.New("failed to get product")
	ErrFailedGetImage       = errors.New("failed to get product image")
)

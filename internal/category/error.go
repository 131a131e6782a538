package category

import "errors"

var (
	ErrFailedListCategories = errors.New("failed to list categories")
)

package carousel

import "errors"

var (
	ErrImageNotFound   = errors.New("carousel image not found")
	ErrFailedListItems = errors.New("failed to list carousel items")
	ErrFailedGetImage  = errors.New("failed to get carousel image")
)

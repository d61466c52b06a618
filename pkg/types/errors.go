package types

import "errors"

// Domain errors for type validation
var (
	ErrMissingDishID   = errors.New("dish ID is required")
	ErrMissingDishName = errors.New("dish name is required")
	ErrInvalidRating   = errors.New("rating must be between 0 and 5")
	ErrEmptyCatalog    = errors.New("catalog has no dishes")
)

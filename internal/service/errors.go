package service

import "errors"

const maxNameLength = 128

var (
	ErrCategoryInvalidName        = errors.New("name must be between 1 and 128 characters")
	ErrCategoryInvalidDescription = errors.New("description must not be blank")
	ErrProductInvalidName         = errors.New("name must be between 1 and 128 characters")
	ErrProductInvalidDescription  = errors.New("description must not be blank")
	ErrProductInvalidPrice        = errors.New("price must be zero or greater")
	ErrProductInvalidCategory     = errors.New("categoryId must be a positive integer")
)

// IsValidationError reports whether err was produced by input validation.
func IsValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrCategoryInvalidName),
		errors.Is(err, ErrCategoryInvalidDescription),
		errors.Is(err, ErrProductInvalidName),
		errors.Is(err, ErrProductInvalidDescription),
		errors.Is(err, ErrProductInvalidPrice),
		errors.Is(err, ErrProductInvalidCategory):
		return true
	default:
		return false
	}
}

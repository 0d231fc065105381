package productform

import (
	"errors"
	"fmt"
)

// ErrMissingBanner is returned when create-mode validation finds no banner.
var ErrMissingBanner = errors.New("banner image is required")

// IncompleteVariantImagesError reports a color whose four image slots are
// not all filled.
type IncompleteVariantImagesError struct {
	Color string
}

func (e *IncompleteVariantImagesError) Error() string {
	return fmt.Sprintf("color %s has missing images", e.Color)
}

// InvalidFieldError reports a required scalar field left empty or at its
// zero default.
type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("field %s is required", e.Field)
}

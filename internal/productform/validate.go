package productform

// Validate checks the form for submission readiness. It never mutates state.
//
// Create mode requires a newly uploaded banner; edit mode also accepts an
// existing banner reference. Every active color must have all four image
// slots filled (existing reference or pending upload). Name, price, and
// category must be set.
func (f *Form) Validate() error {
	switch f.banner.Kind {
	case SlotPendingUpload:
		// always acceptable
	case SlotExistingRef:
		if f.mode == ModeCreate {
			return ErrMissingBanner
		}
	default:
		return ErrMissingBanner
	}

	for _, color := range f.colors {
		slots := f.images[color]
		for _, slot := range slots {
			if slot.Empty() {
				return &IncompleteVariantImagesError{Color: color}
			}
		}
	}

	if f.scalars.Name == "" {
		return &InvalidFieldError{Field: "name"}
	}
	if f.scalars.Price <= 0 {
		return &InvalidFieldError{Field: "price"}
	}
	if f.scalars.CategoryID == 0 || categoryNames[f.scalars.CategoryID] == "" {
		return &InvalidFieldError{Field: "category"}
	}
	return nil
}

package catalog

import (
	"errors"
	"fmt"

	"github.com/fjod/go_skincare/internal/domain"
	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidProduct = errors.New("invalid product")
	ErrDuplicateSlug  = errors.New("duplicate product slug")
	ErrDuplicateID    = errors.New("duplicate product id")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every record for the fields the search engine and variant
// resolver rely on. Array fields must be present (possibly empty).
func Validate(products []domain.Product) error {
	slugs := make(map[string]struct{}, len(products))
	ids := make(map[string]struct{}, len(products))

	for i := range products {
		p := &products[i]
		if err := validate.Struct(p); err != nil {
			return fmt.Errorf("%w: record %d (%q): %s", ErrInvalidProduct, i, p.ID, describe(err))
		}
		if _, ok := slugs[p.Slug]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateSlug, p.Slug)
		}
		if _, ok := ids[p.ID]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateID, p.ID)
		}
		slugs[p.Slug] = struct{}{}
		ids[p.ID] = struct{}{}
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	return fmt.Sprintf("field %s failed %q", fe.Namespace(), fe.Tag())
}

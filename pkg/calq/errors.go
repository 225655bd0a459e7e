package calq

import (
	"errors"
	"fmt"

	"github.com/shan2new/calq-sub001/pkg/calq/catalog"
)

// ErrInvalidArgument marks caller contract violations such as mismatched
// value/unit slice lengths. Use errors.Is to test for it.
var ErrInvalidArgument = errors.New("invalid argument")

// CategoryNotFoundError reports a category id with no registered definition.
type CategoryNotFoundError struct {
	ID catalog.CategoryID
}

func (e *CategoryNotFoundError) Error() string {
	return fmt.Sprintf("category not found: %s", e.ID)
}

// UnitNotFoundError reports a unit id that does not exist in its category.
type UnitNotFoundError struct {
	CategoryID catalog.CategoryID
	UnitID     catalog.UnitID
}

func (e *UnitNotFoundError) Error() string {
	return fmt.Sprintf("unit not found: %s in category %s", e.UnitID, e.CategoryID)
}

// IntegrityError reports a malformed catalog definition. It is a catalog bug,
// not a user error: the category is unusable and loading fails fast rather
// than converting through a wrong pivot.
type IntegrityError struct {
	CategoryID catalog.CategoryID
	Err        error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("catalog integrity error in category %s: %v", e.CategoryID, e.Err)
}

func (e *IntegrityError) Unwrap() error { return e.Err }

// ConversionError reports a failed conversion, carrying the offending ids.
// Callers must treat it as "no conversion" and never fall back to the raw
// input value.
type ConversionError struct {
	CategoryID catalog.CategoryID
	FromUnitID catalog.UnitID
	ToUnitID   catalog.UnitID
	Reason     string
	Err        error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("conversion failed (%s: %s -> %s): %s", e.CategoryID, e.FromUnitID, e.ToUnitID, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error { return e.Err }

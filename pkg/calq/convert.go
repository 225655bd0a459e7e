package calq

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/shan2new/calq-sub001/pkg/calq/catalog"
)

// RoundingMode selects how a value is truncated for display. The numeric
// result is always the full-precision computed value; rounding applies to the
// formatted string only.
type RoundingMode string

const (
	RoundHalfUp RoundingMode = "round"
	RoundCeil   RoundingMode = "ceil"
	RoundFloor  RoundingMode = "floor"
	RoundTrunc  RoundingMode = "trunc"
)

// UnitPrecision selects the target unit's default display precision.
const UnitPrecision = -1

// ConvertOptions tune display formatting for a conversion. A nil options
// value means unit-default precision, half-up rounding, formatted output.
type ConvertOptions struct {
	// Precision is the number of display digits; UnitPrecision defers to the
	// target unit's default.
	Precision int
	Rounding  RoundingMode
	// Bare renders a plain decimal value with no symbol and no grouping.
	Bare bool
}

// DefaultConvertOptions returns options with unit-default precision.
func DefaultConvertOptions() *ConvertOptions {
	return &ConvertOptions{Precision: UnitPrecision}
}

func (o *ConvertOptions) normalized() ConvertOptions {
	if o == nil {
		return ConvertOptions{Precision: UnitPrecision, Rounding: RoundHalfUp}
	}
	out := *o
	if out.Rounding == "" {
		out.Rounding = RoundHalfUp
	}
	return out
}

// Result is an immutable conversion outcome. It is never mutated after
// return, only replaced.
type Result struct {
	Value      float64
	Formatted  string
	From       *catalog.Unit
	To         *catalog.Unit
	CategoryID catalog.CategoryID
	Precision  int
	CreatedAt  time.Time
}

// Convert converts value from one unit to another within a category by
// pivoting through the category's base unit. Adding a unit therefore costs
// one transform pair, not O(n²) pairwise formulas, and non-linear scales work
// because transforms are arbitrary functions.
func (e *Engine) Convert(ctx context.Context, value float64, categoryID catalog.CategoryID, fromID, toID catalog.UnitID, opts *ConvertOptions) (*Result, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, &ConversionError{CategoryID: categoryID, FromUnitID: fromID, ToUnitID: toID, Reason: "non-finite input value"}
	}

	cat, err := e.loader.Load(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	from, ok := cat.Unit(fromID)
	if !ok {
		return nil, &UnitNotFoundError{CategoryID: categoryID, UnitID: fromID}
	}
	to, ok := cat.Unit(toID)
	if !ok {
		return nil, &UnitNotFoundError{CategoryID: categoryID, UnitID: toID}
	}

	base := from.ToBase(value)
	out := to.FromBase(base)
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return nil, &ConversionError{CategoryID: categoryID, FromUnitID: fromID, ToUnitID: toID, Reason: "transform produced a non-finite value"}
	}

	o := opts.normalized()
	precision := o.Precision
	if precision == UnitPrecision {
		precision = to.Precision
	}

	res := &Result{
		Value:      out,
		Formatted:  formatValue(out, precision, o.Rounding, to, o.Bare),
		From:       from,
		To:         to,
		CategoryID: categoryID,
		Precision:  precision,
		CreatedAt:  time.Now(),
	}

	e.events.Publish(Event{
		Type:       EventConversion,
		CategoryID: categoryID,
		Message:    res.Formatted,
		Timestamp:  res.CreatedAt,
	})
	e.log.Debug("converted",
		zap.Float64("value", value),
		zap.String("category", string(categoryID)),
		zap.String("from", string(fromID)),
		zap.String("to", string(toID)),
		zap.Float64("result", out))
	return res, nil
}

// CompatibleUnits returns every unit in the category, flattened across
// subcategories, excluding the source unit itself. It backs "convert to"
// selectors.
func (e *Engine) CompatibleUnits(ctx context.Context, categoryID catalog.CategoryID, unitID catalog.UnitID) ([]*catalog.Unit, error) {
	cat, err := e.loader.Load(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if _, ok := cat.Unit(unitID); !ok {
		return nil, &UnitNotFoundError{CategoryID: categoryID, UnitID: unitID}
	}
	var units []*catalog.Unit
	for _, u := range cat.AllUnits() {
		if u.ID != unitID {
			units = append(units, u)
		}
	}
	return units, nil
}

// popularFallbackCount bounds the fallback list when a category declares no
// popular units.
const popularFallbackCount = 5

// PopularUnits resolves the category's curated shortlist to full Unit
// objects, falling back to the first few catalog units when the list is
// empty.
func (e *Engine) PopularUnits(ctx context.Context, categoryID catalog.CategoryID) ([]*catalog.Unit, error) {
	cat, err := e.loader.Load(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	ids := cat.PopularUnits
	if len(ids) == 0 {
		all := cat.AllUnits()
		n := popularFallbackCount
		if len(all) < n {
			n = len(all)
		}
		return all[:n], nil
	}
	units := make([]*catalog.Unit, 0, len(ids))
	for _, id := range ids {
		// Validated at load time, so resolution cannot fail here.
		if u, ok := cat.Unit(id); ok {
			units = append(units, u)
		}
	}
	return units, nil
}

package calq

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shan2new/calq-sub001/pkg/calq/catalog"
)

// MeasurementComponent is one (value, unit) pair of a compound measurement.
// The Unit pointer is resolved lazily for display and is not authoritative;
// UnitID is.
type MeasurementComponent struct {
	Value  float64
	UnitID catalog.UnitID
	Unit   *catalog.Unit
}

// CompoundMeasurement is an ordered list of components, largest unit first
// (e.g. 5 ft + 10 in). All components belong to one category and, when a
// format is active, to its allowed unit set.
type CompoundMeasurement struct {
	Components []MeasurementComponent
	CategoryID catalog.CategoryID
	FormatID   catalog.FormatID
}

// Equal compares two measurements semantically, by component list rather than
// object identity. Input bindings use it to suppress re-emitting a value that
// is identical to the last emitted one, which would otherwise feed back into
// an infinite update cycle.
func (m *CompoundMeasurement) Equal(o *CompoundMeasurement) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.CategoryID != o.CategoryID || len(m.Components) != len(o.Components) {
		return false
	}
	for i := range m.Components {
		a, b := m.Components[i], o.Components[i]
		if a.UnitID != b.UnitID || a.Value != b.Value {
			return false
		}
	}
	return true
}

// CompoundResult is the immutable outcome of a compound conversion.
type CompoundResult struct {
	Components []MeasurementComponent
	Formatted  string
	// SingleUnitEquivalent expresses the whole quantity in the largest target
	// unit, for "≈ 1.78 m" style display.
	SingleUnitEquivalent *Result
	CategoryID           catalog.CategoryID
	Precision            int
	CreatedAt            time.Time
}

// carryEpsilon is the tolerance applied at carry boundaries: a remainder
// within a millionth of the next whole unit carries up, so 11.999999 inches
// becomes exactly one foot instead of 11 inches and a fraction.
const carryEpsilon = 1e-6

// ParseCompound parses free-text input against a compound format's ordered
// pattern list. The first pattern whose capture groups all parse as numbers
// wins; group i binds to the format's default "from" unit i. No pattern
// matching is the expected common case for partial input, so it yields
// (nil, nil), never an error.
func (e *Engine) ParseCompound(text string, formatID catalog.FormatID) (*CompoundMeasurement, error) {
	format, ok := catalog.LookupFormat(formatID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown compound format %q", ErrInvalidArgument, formatID)
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}

	for _, p := range format.ParsePatterns {
		groups := p.Regexp.FindStringSubmatch(trimmed)
		if groups == nil {
			continue
		}
		values := groups[1:]
		if len(values) > len(format.DefaultFromUnits) {
			continue
		}

		components := make([]MeasurementComponent, 0, len(values))
		ok := true
		for i, raw := range values {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				ok = false
				break
			}
			components = append(components, MeasurementComponent{
				Value:  v,
				UnitID: format.DefaultFromUnits[i],
			})
		}
		if !ok {
			continue
		}
		return &CompoundMeasurement{
			Components: components,
			CategoryID: format.CategoryID,
			FormatID:   formatID,
		}, nil
	}
	return nil, nil
}

// NewCompoundMeasurement builds a measurement directly from discrete field
// values. values and unitIDs must be the same length.
func NewCompoundMeasurement(values []float64, unitIDs []catalog.UnitID, categoryID catalog.CategoryID) (*CompoundMeasurement, error) {
	if len(values) != len(unitIDs) {
		return nil, fmt.Errorf("%w: %d values for %d units", ErrInvalidArgument, len(values), len(unitIDs))
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: empty measurement", ErrInvalidArgument)
	}
	components := make([]MeasurementComponent, len(values))
	for i := range values {
		components[i] = MeasurementComponent{Value: values[i], UnitID: unitIDs[i]}
	}
	return &CompoundMeasurement{Components: components, CategoryID: categoryID}, nil
}

// ConvertCompound reduces the measurement to a single base-unit scalar, then
// redistributes it across the target units largest-first: every target except
// the last takes a whole-number count (integer-division carry), and the last
// absorbs the fractional remainder. A zero or negative total redistributes
// with the sign applied to the most significant component only. A single
// target skips carry logic entirely.
func (e *Engine) ConvertCompound(ctx context.Context, m *CompoundMeasurement, targetUnitIDs []catalog.UnitID, opts *ConvertOptions) (*CompoundResult, error) {
	if m == nil || len(m.Components) == 0 {
		return nil, fmt.Errorf("%w: nil or empty measurement", ErrInvalidArgument)
	}
	if len(targetUnitIDs) == 0 {
		return nil, fmt.Errorf("%w: no target units", ErrInvalidArgument)
	}

	cat, err := e.loader.Load(ctx, m.CategoryID)
	if err != nil {
		return nil, err
	}

	var format *catalog.CompoundFormat
	if m.FormatID != "" {
		format, _ = catalog.LookupFormat(m.FormatID)
	}

	// Reduce to one base-unit scalar.
	var total float64
	for _, c := range m.Components {
		u, ok := cat.Unit(c.UnitID)
		if !ok {
			return nil, &UnitNotFoundError{CategoryID: m.CategoryID, UnitID: c.UnitID}
		}
		if format != nil && !format.Allows(c.UnitID) {
			return nil, fmt.Errorf("%w: unit %q is not allowed by format %q", ErrInvalidArgument, c.UnitID, m.FormatID)
		}
		if math.IsNaN(c.Value) || math.IsInf(c.Value, 0) {
			return nil, &ConversionError{CategoryID: m.CategoryID, FromUnitID: c.UnitID, Reason: "non-finite component value"}
		}
		total += u.ToBase(c.Value)
	}

	targets := make([]*catalog.Unit, len(targetUnitIDs))
	for i, id := range targetUnitIDs {
		u, ok := cat.Unit(id)
		if !ok {
			return nil, &UnitNotFoundError{CategoryID: m.CategoryID, UnitID: id}
		}
		targets[i] = u
	}

	o := opts.normalized()
	precision := o.Precision
	if precision == UnitPrecision {
		precision = targets[len(targets)-1].Precision
	}

	components := redistribute(total, targets, precision)

	largest := targets[0]
	equivalent := largest.FromBase(total)
	single := &Result{
		Value:      equivalent,
		Formatted:  formatValue(equivalent, largestPrecision(o, largest), o.Rounding, largest, o.Bare),
		From:       largest,
		To:         largest,
		CategoryID: m.CategoryID,
		Precision:  largestPrecision(o, largest),
		CreatedAt:  time.Now(),
	}

	res := &CompoundResult{
		Components:           components,
		Formatted:            formatCompound(m.FormatID, components, precision, o.Rounding),
		SingleUnitEquivalent: single,
		CategoryID:           m.CategoryID,
		Precision:            precision,
		CreatedAt:            time.Now(),
	}

	e.events.Publish(Event{
		Type:       EventConversion,
		CategoryID: m.CategoryID,
		Message:    res.Formatted,
		Timestamp:  res.CreatedAt,
	})
	return res, nil
}

func largestPrecision(o ConvertOptions, u *catalog.Unit) int {
	if o.Precision == UnitPrecision {
		return u.Precision
	}
	return o.Precision
}

// redistribute splits a base-unit scalar across target units. All targets but
// the last take epsilon-tolerant whole counts of their base-unit span; the
// last keeps the fractional remainder. The sign of a negative total lands on
// the most significant component only.
func redistribute(total float64, targets []*catalog.Unit, precision int) []MeasurementComponent {
	components := make([]MeasurementComponent, len(targets))

	if len(targets) == 1 {
		u := targets[0]
		components[0] = MeasurementComponent{Value: u.FromBase(total), UnitID: u.ID, Unit: u}
		return components
	}

	negative := total < 0
	remaining := math.Abs(total)

	for i, u := range targets {
		if i == len(targets)-1 {
			components[i] = MeasurementComponent{Value: remaining / baseSpan(u), UnitID: u.ID, Unit: u}
			break
		}
		span := baseSpan(u)
		count := math.Floor(remaining/span + carryEpsilon)
		components[i] = MeasurementComponent{Value: count, UnitID: u.ID, Unit: u}
		remaining -= count * span
		if remaining < 0 {
			// The epsilon carry consumed slightly more than was left.
			remaining = 0
		}
	}

	if negative {
		components[0].Value = -components[0].Value
	}
	return components
}

// baseSpan is the base-unit width of one target unit. Carry redistribution is
// only meaningful for linear units, where the span fully describes the
// transform.
func baseSpan(u *catalog.Unit) float64 {
	return u.ToBase(1) - u.ToBase(0)
}

// formatCompound renders a compound result. The height style only applies
// when the result actually is feet and inches; a height converted to metric
// targets falls through to the generic "value symbol" join.
func formatCompound(formatID catalog.FormatID, components []MeasurementComponent, precision int, mode RoundingMode) string {
	switch formatID {
	case catalog.FormatHeight:
		if len(components) == 2 && components[0].UnitID == "foot" && components[1].UnitID == "inch" {
			feet := formatComponentValue(components[0].Value, 0, mode)
			inches := formatComponentValue(components[1].Value, precision, mode)
			return fmt.Sprintf("%s' %s\"", feet, inches)
		}
	case catalog.FormatCooking:
		parts := make([]string, len(components))
		for i, c := range components {
			parts[i] = componentString(c, componentPrecision(i, len(components), precision), mode)
		}
		return strings.Join(parts, " + ")
	}

	parts := make([]string, len(components))
	for i, c := range components {
		parts[i] = componentString(c, componentPrecision(i, len(components), precision), mode)
	}
	return strings.Join(parts, " ")
}

// componentPrecision gives carried components whole-number rendering and the
// final component the configured precision.
func componentPrecision(i, n, precision int) int {
	if i < n-1 {
		return 0
	}
	return precision
}

func componentString(c MeasurementComponent, precision int, mode RoundingMode) string {
	v := formatComponentValue(c.Value, precision, mode)
	if c.Unit == nil || c.Unit.Symbol == "" {
		return v
	}
	return v + " " + c.Unit.Symbol
}

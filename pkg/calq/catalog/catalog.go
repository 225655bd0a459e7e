// Package catalog defines the static unit catalog: categories, subcategories,
// units and their transforms to and from each category's base unit, plus the
// compound-format configurations used for free-text measurement parsing.
//
// Catalog data is constructed once per category by a registered builder and is
// treated as immutable afterwards. Units carry arbitrary transform functions,
// so non-linear scales (temperature, Beaufort, Gas Mark) fit the same model as
// plain multiplicative units.
package catalog

import (
	"fmt"
	"math"
	"regexp"
	"sort"
)

// CategoryID identifies a category of mutually convertible units.
type CategoryID string

// UnitID identifies a unit within its category.
type UnitID string

// FormatID identifies a compound measurement format (height, cooking, ...).
type FormatID string

// Unit is a single convertible unit. ToBase and FromBase are pure functions
// pivoting through the category's base unit; Factor is informational and only
// meaningful for linear units.
type Unit struct {
	ID        UnitID
	Name      string
	Symbol    string
	Plural    string
	Aliases   []string
	Base      bool
	Factor    float64
	Precision int
	ToBase    func(float64) float64
	FromBase  func(float64) float64
	// Format overrides the default "value symbol" rendering when set.
	Format func(value string) string
}

// SubCategory groups units inside a category (e.g. Metric vs Imperial).
type SubCategory struct {
	ID           string
	Name         string
	Units        []*Unit
	PopularUnits []UnitID
}

// Category is a domain of mutually convertible units. It holds either a flat
// unit list or a list of subcategories, never both.
type Category struct {
	ID            CategoryID
	Name          string
	Icon          string
	Description   string
	BaseUnitID    UnitID
	Units         []*Unit
	SubCategories []*SubCategory
	PopularUnits  []UnitID
}

// AllUnits returns the category's units flattened across subcategories, in
// declaration order.
func (c *Category) AllUnits() []*Unit {
	if len(c.SubCategories) == 0 {
		return c.Units
	}
	var units []*Unit
	for _, sub := range c.SubCategories {
		units = append(units, sub.Units...)
	}
	return units
}

// Unit resolves a unit id anywhere in the category tree.
func (c *Category) Unit(id UnitID) (*Unit, bool) {
	for _, u := range c.AllUnits() {
		if u.ID == id {
			return u, true
		}
	}
	return nil, false
}

// BaseUnit returns the unit flagged as the category's pivot.
func (c *Category) BaseUnit() (*Unit, bool) {
	for _, u := range c.AllUnits() {
		if u.Base {
			return u, true
		}
	}
	return nil, false
}

// Validate checks the catalog invariants for a built category: exactly one
// base unit with identity transforms, a resolvable BaseUnitID, no duplicate
// unit ids, resolvable popular lists, and round-trippable transforms.
func (c *Category) Validate() error {
	units := c.AllUnits()
	if len(units) == 0 {
		return fmt.Errorf("category %q has no units", c.ID)
	}

	seen := make(map[UnitID]bool, len(units))
	baseCount := 0
	for _, u := range units {
		if seen[u.ID] {
			return fmt.Errorf("category %q declares unit %q twice", c.ID, u.ID)
		}
		seen[u.ID] = true
		if u.ToBase == nil || u.FromBase == nil {
			return fmt.Errorf("unit %q in category %q is missing a transform", u.ID, c.ID)
		}
		if u.Base {
			baseCount++
			if u.ToBase(1) != 1 || u.FromBase(1) != 1 {
				return fmt.Errorf("base unit %q in category %q does not have identity transforms", u.ID, c.ID)
			}
		}
	}
	if baseCount != 1 {
		return fmt.Errorf("category %q has %d base units, want exactly 1", c.ID, baseCount)
	}

	base, _ := c.BaseUnit()
	if c.BaseUnitID != base.ID {
		return fmt.Errorf("category %q declares base unit id %q but %q carries the base flag", c.ID, c.BaseUnitID, base.ID)
	}

	for _, id := range c.PopularUnits {
		if !seen[id] {
			return fmt.Errorf("popular unit %q does not exist in category %q", id, c.ID)
		}
	}
	for _, sub := range c.SubCategories {
		for _, id := range sub.PopularUnits {
			if !seen[id] {
				return fmt.Errorf("popular unit %q does not exist in category %q (subcategory %q)", id, c.ID, sub.ID)
			}
		}
	}

	// Spot-check transform invertibility at a handful of magnitudes.
	for _, u := range units {
		for _, x := range []float64{0, 1, -1, 12.5, 1e6} {
			got := u.FromBase(u.ToBase(x))
			if math.Abs(got-x) > 1e-6*math.Max(1, math.Abs(x)) {
				return fmt.Errorf("unit %q in category %q does not round-trip: %g -> %g", u.ID, c.ID, x, got)
			}
		}
	}
	return nil
}

// ParsePattern is one alternative in a compound format's ordered grammar.
// Capture group i binds positionally to the format's default "from" unit i;
// patterns with fewer groups bind a prefix of that sequence.
type ParsePattern struct {
	Regexp *regexp.Regexp
}

// CompoundFormat configures parsing and display of one compound measurement
// kind. Patterns are data, matched in order, first full numeric match wins.
type CompoundFormat struct {
	ID               FormatID
	CategoryID       CategoryID
	DefaultFromUnits []UnitID
	DefaultToUnits   []UnitID
	AllowedUnits     []UnitID
	ParsePatterns    []ParsePattern
}

// Allows reports whether the format admits the given unit.
func (f *CompoundFormat) Allows(id UnitID) bool {
	for _, a := range f.AllowedUnits {
		if a == id {
			return true
		}
	}
	return false
}

// Builder constructs a category on first use. Builders must be cheap enough
// to run on the caller's goroutine and must return a fresh, fully wired tree.
type Builder func() *Category

var (
	builders = map[CategoryID]Builder{}
	formats  = map[FormatID]*CompoundFormat{}
)

func register(id CategoryID, b Builder) {
	builders[id] = b
}

func registerFormat(f *CompoundFormat) {
	formats[f.ID] = f
}

// LookupBuilder returns the registered builder for a category id.
func LookupBuilder(id CategoryID) (Builder, bool) {
	b, ok := builders[id]
	return b, ok
}

// CategoryIDs lists every registered category, sorted for determinism.
func CategoryIDs() []CategoryID {
	ids := make([]CategoryID, 0, len(builders))
	for id := range builders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// LookupFormat returns the compound format configuration for an id.
func LookupFormat(id FormatID) (*CompoundFormat, bool) {
	f, ok := formats[id]
	return f, ok
}

// FormatIDs lists every registered compound format, sorted.
func FormatIDs() []FormatID {
	ids := make([]FormatID, 0, len(formats))
	for id := range formats {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// linear builds the transform pair for a unit worth factor base units.
func linear(factor float64) (func(float64) float64, func(float64) float64) {
	toBase := func(v float64) float64 { return v * factor }
	fromBase := func(v float64) float64 { return v / factor }
	return toBase, fromBase
}

func identity(v float64) float64 { return v }

// unit declares a linear unit; precision is the default display precision.
func unit(id UnitID, name, symbol, plural string, factor float64, precision int, aliases ...string) *Unit {
	toBase, fromBase := linear(factor)
	return &Unit{
		ID:        id,
		Name:      name,
		Symbol:    symbol,
		Plural:    plural,
		Aliases:   aliases,
		Factor:    factor,
		Precision: precision,
		ToBase:    toBase,
		FromBase:  fromBase,
	}
}

// baseUnit declares the category pivot with identity transforms.
func baseUnit(id UnitID, name, symbol, plural string, precision int, aliases ...string) *Unit {
	return &Unit{
		ID:        id,
		Name:      name,
		Symbol:    symbol,
		Plural:    plural,
		Aliases:   aliases,
		Base:      true,
		Factor:    1,
		Precision: precision,
		ToBase:    identity,
		FromBase:  identity,
	}
}

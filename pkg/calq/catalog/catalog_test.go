package catalog

import (
	"math"
	"strings"
	"testing"
)

func TestCatalogIntegrity(t *testing.T) {
	t.Run("AllCategoriesValidate", testAllCategoriesValidate)
	t.Run("RoundTripTransforms", testRoundTripTransforms)
	t.Run("SingleBaseUnit", testSingleBaseUnit)
	t.Run("PopularUnitsResolve", testPopularUnitsResolve)
}

func testAllCategoriesValidate(t *testing.T) {
	ids := CategoryIDs()
	if len(ids) == 0 {
		t.Fatal("no categories registered")
	}
	for _, id := range ids {
		build, ok := LookupBuilder(id)
		if !ok {
			t.Fatalf("no builder for registered category %q", id)
		}
		if err := build().Validate(); err != nil {
			t.Errorf("category %q failed validation: %v", id, err)
		}
	}
}

func testRoundTripTransforms(t *testing.T) {
	values := []float64{0, 1, -1, 0.5, -273.15, 12.25, 1e-9, 1e12, -4.2e5}

	for _, id := range CategoryIDs() {
		build, _ := LookupBuilder(id)
		cat := build()
		for _, u := range cat.AllUnits() {
			for _, x := range values {
				got := u.FromBase(u.ToBase(x))
				tolerance := 1e-6 * math.Max(1, math.Abs(x))
				if math.Abs(got-x) > tolerance {
					t.Errorf("%s/%s: FromBase(ToBase(%g)) = %g, want %g", id, u.ID, x, got, x)
				}
			}
		}
	}
}

func testSingleBaseUnit(t *testing.T) {
	for _, id := range CategoryIDs() {
		build, _ := LookupBuilder(id)
		cat := build()

		count := 0
		for _, u := range cat.AllUnits() {
			if u.Base {
				count++
				if u.ID != cat.BaseUnitID {
					t.Errorf("category %q: base flag on %q but BaseUnitID is %q", id, u.ID, cat.BaseUnitID)
				}
				if u.ToBase(42) != 42 || u.FromBase(42) != 42 {
					t.Errorf("category %q: base unit %q transforms are not identity", id, u.ID)
				}
			}
		}
		if count != 1 {
			t.Errorf("category %q has %d base units, want 1", id, count)
		}
	}
}

func testPopularUnitsResolve(t *testing.T) {
	for _, id := range CategoryIDs() {
		build, _ := LookupBuilder(id)
		cat := build()
		for _, pid := range cat.PopularUnits {
			if _, ok := cat.Unit(pid); !ok {
				t.Errorf("category %q: popular unit %q does not resolve", id, pid)
			}
		}
		for _, sub := range cat.SubCategories {
			for _, pid := range sub.PopularUnits {
				if _, ok := cat.Unit(pid); !ok {
					t.Errorf("category %q/%s: popular unit %q does not resolve", id, sub.ID, pid)
				}
			}
		}
	}
}

func TestValidateRejectsMalformedCategories(t *testing.T) {
	cases := []struct {
		name    string
		cat     *Category
		wantErr string
	}{
		{
			name:    "NoUnits",
			cat:     &Category{ID: "empty", BaseUnitID: "x"},
			wantErr: "no units",
		},
		{
			name: "NoBaseUnit",
			cat: &Category{
				ID:         "no-base",
				BaseUnitID: "a",
				Units:      []*Unit{unit("a", "A", "a", "as", 2, 0)},
			},
			wantErr: "base units",
		},
		{
			name: "TwoBaseUnits",
			cat: &Category{
				ID:         "two-base",
				BaseUnitID: "a",
				Units: []*Unit{
					baseUnit("a", "A", "a", "as", 0),
					baseUnit("b", "B", "b", "bs", 0),
				},
			},
			wantErr: "base units",
		},
		{
			name: "DuplicateUnit",
			cat: &Category{
				ID:         "dup",
				BaseUnitID: "a",
				Units: []*Unit{
					baseUnit("a", "A", "a", "as", 0),
					unit("a", "A again", "a", "as", 2, 0),
				},
			},
			wantErr: "twice",
		},
		{
			name: "UnresolvablePopular",
			cat: &Category{
				ID:           "bad-popular",
				BaseUnitID:   "a",
				Units:        []*Unit{baseUnit("a", "A", "a", "as", 0)},
				PopularUnits: []UnitID{"missing"},
			},
			wantErr: "does not exist",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cat.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got: %v", tc.wantErr, err)
			}
		})
	}
}

func TestCompoundFormatLookup(t *testing.T) {
	for _, id := range []FormatID{FormatHeight, FormatCooking, FormatDistance} {
		f, ok := LookupFormat(id)
		if !ok {
			t.Fatalf("format %q not registered", id)
		}
		if len(f.ParsePatterns) == 0 {
			t.Errorf("format %q has no parse patterns", id)
		}
		if len(f.DefaultFromUnits) == 0 || len(f.DefaultToUnits) == 0 {
			t.Errorf("format %q is missing default unit sequences", id)
		}
		build, ok := LookupBuilder(f.CategoryID)
		if !ok {
			t.Fatalf("format %q references unknown category %q", id, f.CategoryID)
		}
		cat := build()
		for _, uid := range f.AllowedUnits {
			if _, ok := cat.Unit(uid); !ok {
				t.Errorf("format %q allows unknown unit %q", id, uid)
			}
		}
		for _, uid := range append(append([]UnitID{}, f.DefaultFromUnits...), f.DefaultToUnits...) {
			if !f.Allows(uid) {
				t.Errorf("format %q default unit %q is not in the allowed set", id, uid)
			}
		}
	}

	if _, ok := LookupFormat("bogus"); ok {
		t.Error("expected lookup of unknown format to fail")
	}
}

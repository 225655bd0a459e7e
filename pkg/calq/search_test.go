package calq

import (
	"context"
	"errors"
	"testing"
)

func TestSearchUnits(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	t.Run("ExactNameFirst", func(t *testing.T) {
		results, err := e.SearchUnits(ctx, "meter", 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(results) == 0 {
			t.Fatal("no results for \"meter\"")
		}
		if results[0].Unit.ID != "meter" {
			t.Errorf("top result = %q, want meter", results[0].Unit.ID)
		}
		if results[0].Score != scoreExactName {
			t.Errorf("top score = %d, want %d", results[0].Score, scoreExactName)
		}
		if results[0].CategoryName != "Length" {
			t.Errorf("top category = %q, want Length", results[0].CategoryName)
		}
	})

	t.Run("PrefixOutranksSubstring", func(t *testing.T) {
		results, err := e.SearchUnits(ctx, "meter", 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(results) < 2 || results[1].Unit.ID != "meter-per-second" {
			t.Fatalf("second result should be the prefix match meter-per-second, got %+v", results)
		}
	})

	t.Run("ExactSymbol", func(t *testing.T) {
		results, err := e.SearchUnits(ctx, "kg", 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(results) == 0 || results[0].Unit.ID != "kilogram" || results[0].Score != scoreExactName {
			t.Fatalf("symbol query should rank kilogram first, got %+v", results)
		}
	})

	t.Run("ExactAlias", func(t *testing.T) {
		results, err := e.SearchUnits(ctx, "kilo", 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(results) == 0 || results[0].Unit.ID != "kilogram" || results[0].Score != scoreExactAlias {
			t.Fatalf("alias query should rank kilogram first, got %+v", results)
		}
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		results, err := e.SearchUnits(ctx, "  MeTeR ", 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(results) == 0 || results[0].Unit.ID != "meter" {
			t.Fatal("query should be trimmed and case-folded")
		}
	})

	t.Run("Ordering", func(t *testing.T) {
		results, err := e.SearchUnits(ctx, "meter", 0)
		if err != nil {
			t.Fatal(err)
		}
		for i := 1; i < len(results); i++ {
			prev, cur := results[i-1], results[i]
			if prev.Score < cur.Score {
				t.Fatalf("scores not descending at %d: %d then %d", i, prev.Score, cur.Score)
			}
			if prev.Score == cur.Score && prev.Unit.ID >= cur.Unit.ID {
				t.Fatalf("tie at score %d not broken by unit id: %q then %q", cur.Score, prev.Unit.ID, cur.Unit.ID)
			}
		}
	})

	t.Run("LimitTruncates", func(t *testing.T) {
		results, err := e.SearchUnits(ctx, "meter", 2)
		if err != nil {
			t.Fatal(err)
		}
		if len(results) != 2 {
			t.Errorf("got %d results, want 2", len(results))
		}
	})

	t.Run("DefaultLimit", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.SearchLimit = 1
		scoped := newTestEngine(t, WithConfig(cfg))
		results, err := scoped.SearchUnits(ctx, "meter", 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(results) != 1 {
			t.Errorf("got %d results, want the configured limit of 1", len(results))
		}
	})

	t.Run("EmptyQuery", func(t *testing.T) {
		results, err := e.SearchUnits(ctx, "   ", 0)
		if err != nil {
			t.Fatal(err)
		}
		if results != nil {
			t.Errorf("expected nil results for empty query, got %d", len(results))
		}
	})

	t.Run("NoMatches", func(t *testing.T) {
		results, err := e.SearchUnits(ctx, "zzzzz", 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(results) != 0 {
			t.Errorf("expected no results, got %d", len(results))
		}
	})

	t.Run("CancelledContext", func(t *testing.T) {
		fresh := New()
		t.Cleanup(fresh.Close)
		cctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := fresh.SearchUnits(cctx, "meter", 0); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}

func TestSearchSharesLoaderInstances(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	results, err := e.SearchUnits(ctx, "meter", 1)
	if err != nil {
		t.Fatal(err)
	}
	cat, err := e.Category(ctx, results[0].CategoryID)
	if err != nil {
		t.Fatal(err)
	}
	u, _ := cat.Unit(results[0].Unit.ID)
	if u != results[0].Unit {
		t.Error("search result unit is not the cached catalog instance")
	}
}

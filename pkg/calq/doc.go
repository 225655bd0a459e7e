// Package calq is a unit conversion engine: a lazily loaded catalog of unit
// categories, a base-unit-pivot conversion core, a compound measurement
// parser/formatter, a ranked unit search index, and a batch conversion
// dispatcher.
//
// # Quick Start
//
// Create an engine, warm the essential categories, and convert:
//
//	engine := calq.New()
//	defer engine.Close()
//
//	if err := engine.Initialize(ctx); err != nil {
//		// catalog bug or cancelled context
//	}
//
//	res, err := engine.Convert(ctx, 100, "temperature", "celsius", "fahrenheit", nil)
//	// res.Value == 212, res.Formatted == "212 °F"
//
// # Base-unit pivot
//
// Every category declares exactly one base unit; conversions run
// to.FromBase(from.ToBase(value)). Adding a unit costs one transform pair
// instead of pairwise formulas, and because transforms are arbitrary
// functions, non-linear scales (Fahrenheit, Beaufort, Gas Mark) use the same
// machinery as plain multiplicative units.
//
// # Compound measurements
//
// Quantities that mix several units (5 ft 10 in, 1 cup + 2 tbsp) parse from
// free text via per-format pattern lists and convert by reducing to a base
// scalar and redistributing it largest-unit-first with carry:
//
//	m, _ := engine.ParseCompound(`5'10"`, catalog.FormatHeight)
//	res, _ := engine.ConvertCompound(ctx, m, []catalog.UnitID{"meter", "centimeter"}, nil)
//	// res.Formatted == "1 m 77.8 cm", res.SingleUnitEquivalent ≈ 1.778 m
//
// A failed parse is a normal nil result, not an error: malformed or partial
// user input is the expected common case.
//
// # Batches
//
// ConvertBatch runs independent conversions through a background worker with
// a synchronous fallback that produces identical results. The worker exists
// for isolation, not speed; correctness never depends on it.
//
// # Architecture
//
//   - Engine: facade owning loader, events, and dispatcher
//   - catalog: static per-category unit definitions and compound formats
//   - Loader: single-flight lazy loading and process-lifetime caching
//   - Search: flattened, relevance-ranked unit lookup
//   - Dispatcher: batch execution with injectable strategy
//   - dashboard: optional websocket playground (presentation glue)
package calq

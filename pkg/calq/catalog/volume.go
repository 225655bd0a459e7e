package catalog

// Volume pivots through the liter. US customary cooking units live here so
// the cooking compound format can draw on them.
func init() {
	register("volume", buildVolume)
}

func buildVolume() *Category {
	return &Category{
		ID:          "volume",
		Name:        "Volume",
		Icon:        "beaker",
		Description: "Volume and capacity units",
		BaseUnitID:  "liter",
		Units: []*Unit{
			baseUnit("liter", "Liter", "L", "liters", 3, "litre"),
			unit("milliliter", "Milliliter", "mL", "milliliters", 0.001, 1, "millilitre", "cc"),
			unit("cubic-meter", "Cubic Meter", "m³", "cubic meters", 1000, 4, "cu m"),
			unit("gallon", "Gallon", "gal", "gallons", 3.785411784, 3, "us gallon"),
			unit("quart", "Quart", "qt", "quarts", 0.946352946, 3),
			unit("pint", "Pint", "pt", "pints", 0.473176473, 3),
			unit("cup", "Cup", "cup", "cups", 0.2365882365, 2, "c"),
			unit("fluid-ounce", "Fluid Ounce", "fl oz", "fluid ounces", 0.0295735295625, 2, "floz"),
			unit("tablespoon", "Tablespoon", "tbsp", "tablespoons", 0.01478676478125, 1, "tbs", "T"),
			unit("teaspoon", "Teaspoon", "tsp", "teaspoons", 0.00492892159375, 1),
		},
		PopularUnits: []UnitID{"liter", "milliliter", "gallon", "cup", "tablespoon"},
	}
}

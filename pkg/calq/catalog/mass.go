package catalog

// Mass pivots through the kilogram.
func init() {
	register("mass", buildMass)
}

func buildMass() *Category {
	return &Category{
		ID:          "mass",
		Name:        "Mass",
		Icon:        "scale",
		Description: "Weight and mass units",
		BaseUnitID:  "kilogram",
		Units: []*Unit{
			baseUnit("kilogram", "Kilogram", "kg", "kilograms", 4, "kilo"),
			unit("gram", "Gram", "g", "grams", 0.001, 2),
			unit("milligram", "Milligram", "mg", "milligrams", 1e-6, 2),
			unit("tonne", "Tonne", "t", "tonnes", 1000, 4, "metric ton"),
			unit("pound", "Pound", "lb", "pounds", 0.45359237, 2, "lbs"),
			unit("ounce", "Ounce", "oz", "ounces", 0.028349523125, 2),
			unit("stone", "Stone", "st", "stones", 6.35029318, 2),
			unit("us-ton", "US Ton", "ton", "US tons", 907.18474, 4, "short ton"),
			unit("carat", "Carat", "ct", "carats", 0.0002, 2),
		},
		PopularUnits: []UnitID{"kilogram", "gram", "pound", "ounce", "stone"},
	}
}

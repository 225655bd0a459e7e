package catalog

// Area pivots through the square meter and demonstrates subcategory grouping:
// each subcategory owns its units and its own popular shortlist.
func init() {
	register("area", buildArea)
}

func buildArea() *Category {
	return &Category{
		ID:          "area",
		Name:        "Area",
		Icon:        "square",
		Description: "Surface area units",
		BaseUnitID:  "square-meter",
		SubCategories: []*SubCategory{
			{
				ID:   "metric",
				Name: "Metric",
				Units: []*Unit{
					baseUnit("square-meter", "Square Meter", "m²", "square meters", 2, "sq m"),
					unit("square-kilometer", "Square Kilometer", "km²", "square kilometers", 1e6, 4, "sq km"),
					unit("square-centimeter", "Square Centimeter", "cm²", "square centimeters", 1e-4, 2, "sq cm"),
					unit("hectare", "Hectare", "ha", "hectares", 1e4, 4),
				},
				PopularUnits: []UnitID{"square-meter", "square-kilometer", "hectare"},
			},
			{
				ID:   "imperial",
				Name: "Imperial",
				Units: []*Unit{
					unit("square-foot", "Square Foot", "ft²", "square feet", 0.09290304, 2, "sq ft"),
					unit("square-inch", "Square Inch", "in²", "square inches", 0.00064516, 2, "sq in"),
					unit("square-yard", "Square Yard", "yd²", "square yards", 0.83612736, 2, "sq yd"),
					unit("acre", "Acre", "ac", "acres", 4046.8564224, 4),
					unit("square-mile", "Square Mile", "mi²", "square miles", 2589988.110336, 4, "sq mi"),
				},
				PopularUnits: []UnitID{"square-foot", "acre", "square-mile"},
			},
		},
		PopularUnits: []UnitID{"square-meter", "square-foot", "hectare", "acre"},
	}
}

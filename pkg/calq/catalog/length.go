package catalog

// Length pivots through the meter.
func init() {
	register("length", buildLength)
}

func buildLength() *Category {
	return &Category{
		ID:          "length",
		Name:        "Length",
		Icon:        "ruler",
		Description: "Distance and length units",
		BaseUnitID:  "meter",
		Units: []*Unit{
			baseUnit("meter", "Meter", "m", "meters", 4, "metre", "metres"),
			unit("kilometer", "Kilometer", "km", "kilometers", 1000, 4, "kilometre", "klick"),
			unit("centimeter", "Centimeter", "cm", "centimeters", 0.01, 2, "centimetre"),
			unit("millimeter", "Millimeter", "mm", "millimeters", 0.001, 2, "millimetre"),
			unit("micrometer", "Micrometer", "µm", "micrometers", 1e-6, 4, "micron"),
			unit("nanometer", "Nanometer", "nm", "nanometers", 1e-9, 4),
			unit("mile", "Mile", "mi", "miles", 1609.344, 4, "statute mile"),
			unit("yard", "Yard", "yd", "yards", 0.9144, 2),
			unit("foot", "Foot", "ft", "feet", 0.3048, 2, "'"),
			unit("inch", "Inch", "in", "inches", 0.0254, 2, "\""),
			unit("nautical-mile", "Nautical Mile", "nmi", "nautical miles", 1852, 4, "sea mile"),
		},
		PopularUnits: []UnitID{"meter", "kilometer", "centimeter", "foot", "inch", "mile"},
	}
}

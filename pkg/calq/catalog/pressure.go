package catalog

// Pressure pivots through the pascal.
func init() {
	register("pressure", buildPressure)
}

func buildPressure() *Category {
	return &Category{
		ID:          "pressure",
		Name:        "Pressure",
		Icon:        "compress",
		Description: "Pressure units",
		BaseUnitID:  "pascal",
		Units: []*Unit{
			baseUnit("pascal", "Pascal", "Pa", "pascals", 2),
			unit("kilopascal", "Kilopascal", "kPa", "kilopascals", 1000, 2),
			unit("bar", "Bar", "bar", "bars", 1e5, 4),
			unit("psi", "Pound per Square Inch", "psi", "pounds per square inch", 6894.757293168, 2, "lbf/in2"),
			unit("atmosphere", "Atmosphere", "atm", "atmospheres", 101325, 4, "standard atmosphere"),
			unit("torr", "Torr", "Torr", "torrs", 101325.0/760.0, 2),
			unit("millimeter-of-mercury", "Millimeter of Mercury", "mmHg", "millimeters of mercury", 133.322387415, 2),
		},
		PopularUnits: []UnitID{"pascal", "bar", "psi", "atmosphere"},
	}
}

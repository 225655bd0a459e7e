package catalog

// Energy pivots through the joule.
func init() {
	register("energy", buildEnergy)
}

func buildEnergy() *Category {
	return &Category{
		ID:          "energy",
		Name:        "Energy",
		Icon:        "bolt",
		Description: "Energy and work units",
		BaseUnitID:  "joule",
		Units: []*Unit{
			baseUnit("joule", "Joule", "J", "joules", 2),
			unit("kilojoule", "Kilojoule", "kJ", "kilojoules", 1000, 2),
			unit("calorie", "Calorie", "cal", "calories", 4.184, 2, "small calorie"),
			unit("kilocalorie", "Kilocalorie", "kcal", "kilocalories", 4184, 2, "food calorie", "Calorie"),
			unit("watt-hour", "Watt Hour", "Wh", "watt hours", 3600, 2),
			unit("kilowatt-hour", "Kilowatt Hour", "kWh", "kilowatt hours", 3.6e6, 4),
			unit("electronvolt", "Electronvolt", "eV", "electronvolts", 1.602176634e-19, 6),
			unit("btu", "British Thermal Unit", "BTU", "BTUs", 1055.05585262, 2),
		},
		PopularUnits: []UnitID{"joule", "kilojoule", "kilocalorie", "kilowatt-hour"},
	}
}

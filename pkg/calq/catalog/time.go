package catalog

// Time pivots through the second. Months and years use civil averages.
func init() {
	register("time", buildTime)
}

func buildTime() *Category {
	return &Category{
		ID:          "time",
		Name:        "Time",
		Icon:        "clock",
		Description: "Duration units",
		BaseUnitID:  "second",
		Units: []*Unit{
			baseUnit("second", "Second", "s", "seconds", 2, "sec"),
			unit("millisecond", "Millisecond", "ms", "milliseconds", 0.001, 1),
			unit("microsecond", "Microsecond", "µs", "microseconds", 1e-6, 1),
			unit("minute", "Minute", "min", "minutes", 60, 2),
			unit("hour", "Hour", "h", "hours", 3600, 2, "hr"),
			unit("day", "Day", "d", "days", 86400, 2),
			unit("week", "Week", "wk", "weeks", 604800, 2),
			unit("month", "Month", "mo", "months", 2629746, 2),
			unit("year", "Year", "yr", "years", 31556952, 2),
		},
		PopularUnits: []UnitID{"second", "minute", "hour", "day", "week"},
	}
}

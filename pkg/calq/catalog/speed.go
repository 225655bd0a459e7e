package catalog

import "math"

// Speed pivots through meters per second. Beaufort is the genuinely
// non-linear member: v = 0.836 * B^(3/2). The transform is extended as an odd
// function so negative inputs still round-trip.
func init() {
	register("speed", buildSpeed)
}

func buildSpeed() *Category {
	return &Category{
		ID:          "speed",
		Name:        "Speed",
		Icon:        "gauge",
		Description: "Velocity units and wind scales",
		BaseUnitID:  "meter-per-second",
		Units: []*Unit{
			baseUnit("meter-per-second", "Meter per Second", "m/s", "meters per second", 2, "mps"),
			unit("kilometer-per-hour", "Kilometer per Hour", "km/h", "kilometers per hour", 1000.0/3600.0, 2, "kph", "kmh"),
			unit("mile-per-hour", "Mile per Hour", "mph", "miles per hour", 1609.344/3600.0, 2),
			unit("knot", "Knot", "kn", "knots", 1852.0/3600.0, 2, "kt"),
			unit("foot-per-second", "Foot per Second", "ft/s", "feet per second", 0.3048, 2, "fps"),
			{
				ID: "beaufort", Name: "Beaufort", Symbol: "Bft", Plural: "Beaufort",
				Aliases: []string{"wind force"}, Precision: 1,
				ToBase: func(b float64) float64 {
					return math.Copysign(0.836*math.Pow(math.Abs(b), 1.5), b)
				},
				FromBase: func(v float64) float64 {
					return math.Copysign(math.Pow(math.Abs(v)/0.836, 2.0/3.0), v)
				},
			},
		},
		PopularUnits: []UnitID{"meter-per-second", "kilometer-per-hour", "mile-per-hour", "knot"},
	}
}

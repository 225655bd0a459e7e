package catalog

import "fmt"

// Temperature pivots through Celsius. Every unit here is non-linear in the
// multiplicative sense, which is why transforms are functions rather than
// factors; Gas Mark additionally carries a custom display formatter.
func init() {
	register("temperature", buildTemperature)
}

func buildTemperature() *Category {
	return &Category{
		ID:          "temperature",
		Name:        "Temperature",
		Icon:        "thermometer",
		Description: "Temperature scales",
		BaseUnitID:  "celsius",
		Units: []*Unit{
			{
				ID: "celsius", Name: "Celsius", Symbol: "°C", Plural: "degrees Celsius",
				Aliases: []string{"centigrade"}, Base: true, Factor: 1, Precision: 1,
				ToBase:   identity,
				FromBase: identity,
			},
			{
				ID: "fahrenheit", Name: "Fahrenheit", Symbol: "°F", Plural: "degrees Fahrenheit",
				Precision: 1,
				ToBase:    func(f float64) float64 { return (f - 32) * 5 / 9 },
				FromBase:  func(c float64) float64 { return c*9/5 + 32 },
			},
			{
				ID: "kelvin", Name: "Kelvin", Symbol: "K", Plural: "kelvins",
				Precision: 2,
				ToBase:    func(k float64) float64 { return k - 273.15 },
				FromBase:  func(c float64) float64 { return c + 273.15 },
			},
			{
				ID: "rankine", Name: "Rankine", Symbol: "°R", Plural: "degrees Rankine",
				Precision: 2,
				ToBase:    func(r float64) float64 { return (r - 491.67) * 5 / 9 },
				FromBase:  func(c float64) float64 { return (c + 273.15) * 9 / 5 },
			},
			{
				ID: "gas-mark", Name: "Gas Mark", Symbol: "GM", Plural: "gas marks",
				Aliases: []string{"gas", "regulo"}, Precision: 1,
				// Gas mark 1 is 275°F and each mark adds 25°F.
				ToBase:   func(g float64) float64 { return (250 + 25*g - 32) * 5 / 9 },
				FromBase: func(c float64) float64 { return (c*9/5 + 32 - 250) / 25 },
				Format:   func(value string) string { return fmt.Sprintf("Gas Mark %s", value) },
			},
		},
		PopularUnits: []UnitID{"celsius", "fahrenheit", "kelvin"},
	}
}

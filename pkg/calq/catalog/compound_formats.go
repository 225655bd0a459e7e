package catalog

import "regexp"

// Compound format configurations. Parse patterns are data, tried in order;
// capture group i binds to the format's default "from" unit i, so a pattern
// with a single group fills only the most significant component.
func init() {
	registerFormat(&CompoundFormat{
		ID:               FormatHeight,
		CategoryID:       "length",
		DefaultFromUnits: []UnitID{"foot", "inch"},
		DefaultToUnits:   []UnitID{"meter", "centimeter"},
		AllowedUnits:     []UnitID{"foot", "inch", "meter", "centimeter"},
		ParsePatterns: []ParsePattern{
			pattern(`^(\d+(?:\.\d+)?)\s*'\s*(\d+(?:\.\d+)?)\s*(?:"|'')?$`),
			pattern(`(?i)^(\d+(?:\.\d+)?)\s*(?:ft|foot|feet)\.?\s+(\d+(?:\.\d+)?)\s*(?:in|inch|inches)?\.?$`),
			pattern(`(?i)^(\d+(?:\.\d+)?)\s*(?:ft|foot|feet|')$`),
		},
	})

	registerFormat(&CompoundFormat{
		ID:               FormatCooking,
		CategoryID:       "volume",
		DefaultFromUnits: []UnitID{"cup", "tablespoon"},
		DefaultToUnits:   []UnitID{"milliliter"},
		AllowedUnits:     []UnitID{"cup", "tablespoon", "teaspoon", "fluid-ounce", "milliliter"},
		ParsePatterns: []ParsePattern{
			pattern(`(?i)^(\d+(?:\.\d+)?)\s*(?:cups?|c)\s*(?:\+|and)?\s*(\d+(?:\.\d+)?)\s*(?:tbsp|tbs|tablespoons?)$`),
			pattern(`(?i)^(\d+(?:\.\d+)?)\s*(?:cups?|c)$`),
		},
	})

	registerFormat(&CompoundFormat{
		ID:               FormatDistance,
		CategoryID:       "length",
		DefaultFromUnits: []UnitID{"kilometer", "meter"},
		DefaultToUnits:   []UnitID{"mile", "yard"},
		AllowedUnits:     []UnitID{"kilometer", "meter", "mile", "yard"},
		ParsePatterns: []ParsePattern{
			pattern(`(?i)^(\d+(?:\.\d+)?)\s*km\s+(\d+(?:\.\d+)?)\s*m$`),
			pattern(`(?i)^(\d+(?:\.\d+)?)\s*(?:km|kilometers?|kilometres?)$`),
		},
	})
}

// Well-known compound format ids.
const (
	FormatHeight   FormatID = "height"
	FormatCooking  FormatID = "cooking"
	FormatDistance FormatID = "distance"
)

func pattern(expr string) ParsePattern {
	return ParsePattern{Regexp: regexp.MustCompile(expr)}
}

package calq

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/shan2new/calq-sub001/pkg/calq/catalog"
)

// printer renders grouped decimal numbers ("1,609.34"). Locale selection is a
// presentation concern; the engine always renders with English grouping and
// leaves localisation to callers.
var printer = message.NewPrinter(language.English)

// roundTo applies a rounding mode at the given number of decimal digits.
func roundTo(v float64, digits int, mode RoundingMode) float64 {
	shift := math.Pow(10, float64(digits))
	switch mode {
	case RoundCeil:
		return math.Ceil(v*shift) / shift
	case RoundFloor:
		return math.Floor(v*shift) / shift
	case RoundTrunc:
		return math.Trunc(v*shift) / shift
	default:
		return math.Round(v*shift) / shift
	}
}

// formatValue renders a display string for a converted value. Bare output is
// a plain decimal with no symbol and no grouping; otherwise the value is
// grouped, trimmed of trailing zeros, and suffixed with the unit symbol (or
// passed through the unit's custom formatter when it has one).
func formatValue(v float64, precision int, mode RoundingMode, u *catalog.Unit, bare bool) string {
	if precision < 0 {
		precision = 0
	}
	rounded := roundTo(v, precision, mode)

	if bare {
		return strconv.FormatFloat(rounded, 'f', -1, 64)
	}

	s := printer.Sprintf("%v", number.Decimal(rounded, number.MaxFractionDigits(precision)))
	if u == nil {
		return s
	}
	if u.Format != nil {
		return u.Format(s)
	}
	if u.Symbol == "" {
		return s
	}
	return s + " " + u.Symbol
}

// trimZeros drops a trailing fractional tail of zeros from a fixed-precision
// rendering ("5.00" -> "5", "1.50" -> "1.5").
func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// formatComponentValue renders one compound component's numeric value at the
// given precision with trailing zeros trimmed.
func formatComponentValue(v float64, precision int, mode RoundingMode) string {
	if precision < 0 {
		precision = 0
	}
	return trimZeros(strconv.FormatFloat(roundTo(v, precision, mode), 'f', precision, 64))
}

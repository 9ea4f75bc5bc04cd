package calc

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// parse reads display text as a float. Text that is a prefix of a number
// ("1.", "-0.") parses as that number; out of range text is ±Inf and
// anything unreadable is NaN.
func parse(text string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSuffix(text, "."), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return v
}

// formatNumber is the shortest round-trip decimal form of v. Negative zero
// is written as "0"; non-finite values use Go's +Inf, -Inf and NaN.
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatFixed writes v with exactly digits fractional digits.
func formatFixed(v float64, digits int) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', digits, 64)
}

// fractionDigits counts the digits after the decimal point in text.
func fractionDigits(text string) int {
	i := strings.IndexByte(text, '.')
	if i < 0 {
		return 0
	}
	return len(text) - i - 1
}

func finite(text string) bool {
	v := parse(text)
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

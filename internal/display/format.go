// Package display turns raw keypad display text into what the user sees.
package display

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// MaxFractionDigits caps the fractional digits of the grouped form.
const MaxFractionDigits = 6

var fractionTail = regexp.MustCompile(`\.(\d*?)(0*)$`)

// Formatter groups display text for one locale.
type Formatter struct {
	printer *message.Printer
	decimal string
	zero    rune
}

// New returns a formatter for tag.
func New(tag language.Tag) *Formatter {
	p := message.NewPrinter(tag)
	return &Formatter{printer: p, decimal: decimalSeparator(p), zero: []rune(p.Sprint(number.Decimal(0)))[0]}
}

// NewForLocale parses a BCP 47 locale name; an empty or unknown name falls
// back to English.
func NewForLocale(locale string) *Formatter {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil || tag == language.Und {
		tag = language.English
	}
	return New(tag)
}

// Format renders text grouped and rounded to MaxFractionDigits, then
// restores the fractional tail the user is typing: the trailing zeros after a
// non-zero fraction digit, or the whole all-zero fraction (including a bare
// dot). Non-finite or unreadable text is returned as is.
func (f *Formatter) Format(text string) string {
	v, err := strconv.ParseFloat(strings.TrimSuffix(text, "."), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return text
	}
	grouped := f.group(v)

	m := fractionTail.FindStringSubmatch(text)
	if m == nil {
		return grouped
	}
	if strings.Trim(m[1], "0") == "" {
		return grouped + f.decimal + m[0][1:]
	}
	if !strings.Contains(grouped, f.decimal) {
		// the fraction rounded away; trailing zeros would read as integer digits
		return grouped
	}
	return grouped + m[2]
}

// group renders v with locale grouping. Beyond 2^53 x/text prints the exact
// binary expansion, so its digits are swapped for the shortest round-trip
// digits ("123,456,789,012,345,680,000,000").
func (f *Formatter) group(v float64) string {
	grouped := f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(MaxFractionDigits)))
	if math.Abs(v) < 1<<53 {
		return grouped
	}
	digits := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	out := []rune(grouped)
	n := 0
	for _, r := range out {
		if unicode.IsDigit(r) {
			n++
		}
	}
	if n != len(digits) {
		return grouped
	}
	i := 0
	for j, r := range out {
		if unicode.IsDigit(r) {
			out[j] = f.zero + rune(digits[i]-'0')
			i++
		}
	}
	return string(out)
}

// DecimalSeparator is the locale's decimal mark.
func (f *Formatter) DecimalSeparator() string {
	return f.decimal
}

func decimalSeparator(p *message.Printer) string {
	s := p.Sprint(number.Decimal(1.5, number.MinFractionDigits(1)))
	sep := strings.Trim(s, "0123456789")
	if sep == "" {
		return "."
	}
	return sep
}

package faturex

import (
	"strconv"
	"strings"
)

// Normalize converts a Brazilian-locale monetary string into a canonical
// decimal string with exactly two fraction digits:
//
//	"4.189,00" -> "4189.00"
//	"373,50"   -> "373.50"
//	"1.234"    -> "1234.00"
//	"-1.040,00" -> "-1040.00"
//
// Empty input and input with no digits left after stripping currency
// symbols normalize to "0.00". Input that still fails to parse as a
// number returns an EUNPARSEABLE error; Normalize never panics.
//
// Already-canonical strings are fixed points: a value with no comma and a
// single period followed by exactly two digits is taken as dot-decimal,
// so Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "0.00", nil
	}

	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	s = stripNonNumeric(s)
	if !strings.ContainsAny(s, "0123456789") {
		return "0.00", nil
	}

	switch {
	case strings.Contains(s, ","):
		// Comma is the decimal point; every period is a thousands
		// separator.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case isDotDecimal(s):
		// Already canonical, leave the period alone.
	default:
		// No comma: periods are thousands separators.
		s = strings.ReplaceAll(s, ".", "")
	}

	if negative {
		s = "-" + s
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", Errorf(EUNPARSEABLE, "cannot parse %q as a monetary value", raw)
	}
	if f == 0 {
		f = 0 // never emit "-0.00"
	}
	return strconv.FormatFloat(f, 'f', 2, 64), nil
}

// stripNonNumeric removes every character that is not a digit, period, or
// comma (currency symbols, spaces, stray signs).
func stripNonNumeric(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isDotDecimal reports whether s contains exactly one period with exactly
// two digits after it, i.e. the period is a decimal point rather than a
// thousands separator. s must contain only digits and periods.
func isDotDecimal(s string) bool {
	i := strings.Index(s, ".")
	if i < 0 || strings.Contains(s[i+1:], ".") {
		return false
	}
	return len(s[i+1:]) == 2
}

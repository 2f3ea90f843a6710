// Package money formats and parses rupee amounts the way the application
// form shows them: en-IN digit grouping (12,34,567) with no decimals.
package money

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotANumber is returned when a string has no numeric reading.
var ErrNotANumber = errors.New("not a number")

// Parse strips everything except digits and periods. It is the inverse of
// Format for digit-only input.
func Parse(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Format renders s as a whole-rupee amount with Indian grouping. Non-numeric
// characters are discarded first; the longest leading number is used and
// rounded half away from zero. Input without any digits formats to "".
func Format(s string) string {
	lead := leadingNumber(Parse(s))
	if lead == "" {
		return ""
	}
	d, err := decimal.NewFromString(lead)
	if err != nil {
		return ""
	}
	return group(d.Round(0).StringFixed(0))
}

// FormatAmount renders a numeric amount with Indian grouping.
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	d := decimal.NewFromFloat(v).Round(0)
	if d.IsNegative() {
		return "-" + group(d.Neg().StringFixed(0))
	}
	return group(d.StringFixed(0))
}

// Number reads s like JavaScript's Number(): surrounding space is ignored,
// an empty string is zero, anything else must parse whole.
func Number(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	switch strings.ToLower(strings.TrimLeft(s, "+-")) {
	case "inf", "infinity", "nan":
		return 0, ErrNotANumber
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, ErrNotANumber
	}
	return v, nil
}

// leadingNumber keeps digits and at most one period from the front of s.
func leadingNumber(s string) string {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		if j := strings.IndexByte(s[i+1:], '.'); j >= 0 {
			s = s[:i+1+j]
		}
	}
	if strings.Trim(s, ".") == "" {
		return ""
	}
	return s
}

// group inserts separators into a run of digits: the last three digits form
// one group, every two digits before that another.
func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(append(parts, tail), ",")
}

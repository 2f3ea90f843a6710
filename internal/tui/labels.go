package tui

import (
	"strings"
	"unicode"

	"github.com/mortgagecenter/mortgage-client/internal/core/domain"
)

// PropertyTypeLabel renders "single_family" as "Single Family".
func PropertyTypeLabel(t domain.PropertyType) string {
	return titleWords(strings.ReplaceAll(string(t), "_", " "))
}

// LoanTypeLabel renders "fixed" as "Fixed Rate".
func LoanTypeLabel(t domain.LoanType) string {
	if t == "" {
		return ""
	}
	return capitalize(string(t)) + " Rate"
}

func fieldLabel(f domain.Field) string {
	return titleWords(strings.ReplaceAll(string(f), "_", " "))
}

// Option names shown by the form's choice fields. The list uses the
// shorter derived labels above.
var (
	loanOptionLabels = map[domain.LoanType]string{
		domain.LoanFixed:      "Fixed Rate",
		domain.LoanAdjustable: "Adjustable Rate",
		domain.LoanFHA:        "FHA Loan",
		domain.LoanVA:         "VA Loan",
	}
	propertyOptionLabels = map[domain.PropertyType]string{
		domain.PropertySingleFamily: "Single Family Home",
		domain.PropertyCondo:        "Condominium",
		domain.PropertyTownhouse:    "Townhouse",
		domain.PropertyMultiFamily:  "Multi-Family Home",
	}
)

func choiceLabel(f domain.Field, v string) string {
	switch f {
	case domain.FieldLoanType:
		if l, ok := loanOptionLabels[domain.LoanType(v)]; ok {
			return l
		}
		return LoanTypeLabel(domain.LoanType(v))
	case domain.FieldPropertyType:
		if l, ok := propertyOptionLabels[domain.PropertyType(v)]; ok {
			return l
		}
		return PropertyTypeLabel(domain.PropertyType(v))
	}
	return v
}

func choices(f domain.Field) []string {
	var out []string
	switch f {
	case domain.FieldLoanType:
		for _, t := range domain.LoanTypes {
			out = append(out, string(t))
		}
	case domain.FieldPropertyType:
		for _, t := range domain.PropertyTypes {
			out = append(out, string(t))
		}
	}
	return out
}

// cycle returns the option delta steps away from current, wrapping.
func cycle(options []string, current string, delta int) string {
	if len(options) == 0 {
		return current
	}
	idx := 0
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	n := len(options)
	return options[((idx+delta)%n+n)%n]
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

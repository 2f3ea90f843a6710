package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/mortgagecenter/mortgage-client/internal/core/domain"
	"github.com/mortgagecenter/mortgage-client/internal/pkg/money"
)

// ValidationErrors maps a field to its message; "" means the field is valid.
type ValidationErrors map[domain.Field]string

// Clean reports whether no field carries a message.
func (e ValidationErrors) Clean() bool {
	for _, msg := range e {
		if msg != "" {
			return false
		}
	}
	return true
}

func (e ValidationErrors) clone() ValidationErrors {
	out := make(ValidationErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// fieldRule is a numeric constraint expressed as a validator tag.
type fieldRule struct {
	tag     string
	message string
	// strip removes currency formatting before reading the number.
	strip bool
}

var fieldRules = map[domain.Field]fieldRule{
	domain.FieldCreditScore: {
		tag:     "gte=300,lte=900",
		message: "Credit score must be between 300 and 900.",
	},
	domain.FieldLoanAmount: {
		tag:     "gte=100000",
		message: "Loan amount must be at least ₹1,00,000.",
		strip:   true,
	},
	domain.FieldAnnualIncome: {
		tag:     "gte=300000",
		message: "Annual income must be at least ₹3,00,000.",
		strip:   true,
	},
	domain.FieldPropertyValue: {
		tag:     "gte=500000",
		message: "Property value must be at least ₹5,00,000.",
		strip:   true,
	},
	domain.FieldDebtAmount: {
		tag:     "gte=0",
		message: "Debt amount must be a positive number.",
		strip:   true,
	},
}

// FieldValidator applies the per-field rules of the application form.
type FieldValidator struct {
	v *validator.Validate
}

func NewFieldValidator() *FieldValidator {
	return &FieldValidator{v: validator.New()}
}

// Check returns the message for raw under field's rule, or "" when valid.
// Choice fields carry no rule and always pass.
func (fv *FieldValidator) Check(field domain.Field, raw string) string {
	rule, ok := fieldRules[field]
	if !ok {
		return ""
	}
	if rule.strip {
		raw = money.Parse(raw)
	}
	n, err := money.Number(raw)
	if err != nil {
		return rule.message
	}
	if err := fv.v.Var(n, rule.tag); err != nil {
		return rule.message
	}
	return ""
}

// payloadFromDraft coerces the draft's strings to numbers.
func payloadFromDraft(d domain.Draft) (domain.MortgagePayload, error) {
	nums := make(map[domain.Field]float64, 5)
	for _, f := range []domain.Field{
		domain.FieldCreditScore,
		domain.FieldLoanAmount,
		domain.FieldPropertyValue,
		domain.FieldAnnualIncome,
		domain.FieldDebtAmount,
	} {
		raw := d.Get(f)
		if f.IsCurrency() {
			raw = money.Parse(raw)
		}
		n, err := money.Number(raw)
		if err != nil {
			return domain.MortgagePayload{}, fmt.Errorf("coerce %s: %w", f, err)
		}
		nums[f] = n
	}
	return domain.MortgagePayload{
		ID:            d.ID,
		CreditScore:   int(nums[domain.FieldCreditScore]),
		LoanAmount:    nums[domain.FieldLoanAmount],
		PropertyValue: nums[domain.FieldPropertyValue],
		AnnualIncome:  nums[domain.FieldAnnualIncome],
		DebtAmount:    nums[domain.FieldDebtAmount],
		LoanType:      d.LoanType,
		PropertyType:  d.PropertyType,
	}, nil
}

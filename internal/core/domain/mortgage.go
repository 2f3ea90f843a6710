package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// LoanType is the kind of mortgage product applied for.
type LoanType string

const (
	LoanFixed      LoanType = "fixed"
	LoanAdjustable LoanType = "adjustable"
	LoanFHA        LoanType = "fha"
	LoanVA         LoanType = "va"
)

// LoanTypes lists the accepted loan types in display order.
var LoanTypes = []LoanType{LoanFixed, LoanAdjustable, LoanFHA, LoanVA}

// Valid reports whether t is one of the enumerated loan types.
func (t LoanType) Valid() bool {
	for _, v := range LoanTypes {
		if v == t {
			return true
		}
	}
	return false
}

// PropertyType is the kind of property securing the mortgage.
type PropertyType string

const (
	PropertySingleFamily PropertyType = "single_family"
	PropertyCondo        PropertyType = "condo"
	PropertyTownhouse    PropertyType = "townhouse"
	PropertyMultiFamily  PropertyType = "multi_family"
)

// PropertyTypes lists the accepted property types in display order.
var PropertyTypes = []PropertyType{PropertySingleFamily, PropertyCondo, PropertyTownhouse, PropertyMultiFamily}

// Valid reports whether t is one of the enumerated property types.
func (t PropertyType) Valid() bool {
	for _, v := range PropertyTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Field names a draft input. The values double as JSON keys on the wire.
type Field string

const (
	FieldCreditScore   Field = "credit_score"
	FieldLoanAmount    Field = "loan_amount"
	FieldPropertyValue Field = "property_value"
	FieldAnnualIncome  Field = "annual_income"
	FieldDebtAmount    Field = "debt_amount"
	FieldLoanType      Field = "loan_type"
	FieldPropertyType  Field = "property_type"
)

// Fields lists every draft field in form order.
var Fields = []Field{
	FieldCreditScore,
	FieldAnnualIncome,
	FieldDebtAmount,
	FieldLoanAmount,
	FieldPropertyValue,
	FieldLoanType,
	FieldPropertyType,
}

// RequiredFields must be non-empty before a draft can be submitted.
// debt_amount is optional and coerces to zero.
var RequiredFields = []Field{
	FieldCreditScore,
	FieldLoanAmount,
	FieldPropertyValue,
	FieldAnnualIncome,
	FieldLoanType,
	FieldPropertyType,
}

// IsCurrency reports whether the field holds a rupee amount.
func (f Field) IsCurrency() bool {
	switch f {
	case FieldLoanAmount, FieldPropertyValue, FieldAnnualIncome, FieldDebtAmount:
		return true
	}
	return false
}

// IsChoice reports whether the field is restricted to an enumeration.
func (f Field) IsChoice() bool {
	return f == FieldLoanType || f == FieldPropertyType
}

// Known reports whether f names a draft field.
func (f Field) Known() bool {
	for _, v := range Fields {
		if v == f {
			return true
		}
	}
	return false
}

// MortgageID is the server-assigned identifier of a persisted record. The
// backend may send it as a JSON number or string; it is carried opaquely.
type MortgageID string

// UnmarshalJSON accepts both numeric and string identifiers.
func (id *MortgageID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = MortgageID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("mortgage id: %w", err)
	}
	*id = MortgageID(n.String())
	return nil
}

// MarshalJSON emits numeric identifiers as numbers so the backend's integer
// path parameter and body field line up.
func (id MortgageID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Draft is an application as typed by the user. Currency fields hold
// digit-and-period strings; formatting is applied only on display.
type Draft struct {
	ID            MortgageID
	CreditScore   string
	LoanAmount    string
	PropertyValue string
	AnnualIncome  string
	DebtAmount    string
	LoanType      LoanType
	PropertyType  PropertyType
}

// NewDraft returns the empty defaults a fresh form starts from.
func NewDraft() Draft {
	return Draft{
		LoanType:     LoanFixed,
		PropertyType: PropertySingleFamily,
	}
}

// Get returns the raw value of a field.
func (d Draft) Get(f Field) string {
	switch f {
	case FieldCreditScore:
		return d.CreditScore
	case FieldLoanAmount:
		return d.LoanAmount
	case FieldPropertyValue:
		return d.PropertyValue
	case FieldAnnualIncome:
		return d.AnnualIncome
	case FieldDebtAmount:
		return d.DebtAmount
	case FieldLoanType:
		return string(d.LoanType)
	case FieldPropertyType:
		return string(d.PropertyType)
	}
	return ""
}

// With returns a copy of d with field f set to v. Unknown fields are ignored.
func (d Draft) With(f Field, v string) Draft {
	switch f {
	case FieldCreditScore:
		d.CreditScore = v
	case FieldLoanAmount:
		d.LoanAmount = v
	case FieldPropertyValue:
		d.PropertyValue = v
	case FieldAnnualIncome:
		d.AnnualIncome = v
	case FieldDebtAmount:
		d.DebtAmount = v
	case FieldLoanType:
		d.LoanType = LoanType(v)
	case FieldPropertyType:
		d.PropertyType = PropertyType(v)
	}
	return d
}

// Complete reports whether every required field is non-empty.
func (d Draft) Complete() bool {
	for _, f := range RequiredFields {
		if strings.TrimSpace(d.Get(f)) == "" {
			return false
		}
	}
	return true
}

// MortgagePayload is the numeric-coerced body of a create or update request.
type MortgagePayload struct {
	ID            MortgageID   `json:"id,omitempty"`
	CreditScore   int          `json:"credit_score"`
	LoanAmount    float64      `json:"loan_amount"`
	PropertyValue float64      `json:"property_value"`
	AnnualIncome  float64      `json:"annual_income"`
	DebtAmount    float64      `json:"debt_amount"`
	LoanType      LoanType     `json:"loan_type"`
	PropertyType  PropertyType `json:"property_type"`
}

// Mortgage is a record returned by the backend. Status, rates and rating are
// computed server side; the client only displays them.
type Mortgage struct {
	ID             MortgageID   `json:"id"`
	CreditScore    int          `json:"credit_score"`
	LoanAmount     float64      `json:"loan_amount"`
	PropertyValue  float64      `json:"property_value"`
	AnnualIncome   float64      `json:"annual_income"`
	DebtAmount     float64      `json:"debt_amount"`
	LoanType       LoanType     `json:"loan_type"`
	PropertyType   PropertyType `json:"property_type"`
	Status         string       `json:"status,omitempty"`
	InterestRate   float64      `json:"interestRate,omitempty"`
	MonthlyPayment float64      `json:"monthlyPayment,omitempty"`
	CreditRating   string       `json:"credit_rating,omitempty"`
}

// Persisted reports whether the record carries a server identifier.
func (m Mortgage) Persisted() bool {
	return m.ID != ""
}

// Draft converts a persisted record back into editable form values.
func (m Mortgage) Draft() Draft {
	return Draft{
		ID:            m.ID,
		CreditScore:   strconv.Itoa(m.CreditScore),
		LoanAmount:    formatAmount(m.LoanAmount),
		PropertyValue: formatAmount(m.PropertyValue),
		AnnualIncome:  formatAmount(m.AnnualIncome),
		DebtAmount:    formatAmount(m.DebtAmount),
		LoanType:      m.LoanType,
		PropertyType:  m.PropertyType,
	}
}

// PrimeRating is the top credit rating, highlighted in listings.
const PrimeRating = "AAA"

// IsPrime reports whether the record carries the top rating.
func (m Mortgage) IsPrime() bool {
	return m.CreditRating == PrimeRating
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

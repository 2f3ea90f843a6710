package handler

import "github.com/mortgagecenter/mortgage-client/internal/core/domain"

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password_hash" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type validateResponse struct {
	Username  string            `json:"username"`
	Mortgages []domain.Mortgage `json:"mortgages"`
}

// mortgageRequest is the body of create and update. An id in the body is
// accepted and ignored; the path id wins on update.
type mortgageRequest struct {
	ID            domain.MortgageID   `json:"id"`
	CreditScore   int                 `json:"credit_score" validate:"gte=300,lte=900"`
	LoanAmount    float64             `json:"loan_amount" validate:"gte=100000"`
	PropertyValue float64             `json:"property_value" validate:"gte=500000"`
	AnnualIncome  float64             `json:"annual_income" validate:"gte=300000"`
	DebtAmount    float64             `json:"debt_amount" validate:"gte=0"`
	LoanType      domain.LoanType     `json:"loan_type" validate:"oneof=fixed adjustable fha va"`
	PropertyType  domain.PropertyType `json:"property_type" validate:"oneof=single_family condo townhouse multi_family"`
}

func (r mortgageRequest) payload() domain.MortgagePayload {
	return domain.MortgagePayload{
		CreditScore:   r.CreditScore,
		LoanAmount:    r.LoanAmount,
		PropertyValue: r.PropertyValue,
		AnnualIncome:  r.AnnualIncome,
		DebtAmount:    r.DebtAmount,
		LoanType:      r.LoanType,
		PropertyType:  r.PropertyType,
	}
}

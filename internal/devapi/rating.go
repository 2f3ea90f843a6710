package devapi

import "github.com/mortgagecenter/mortgage-client/internal/core/domain"

// Rater assigns a credit rating to a stored application.
type Rater func(p domain.MortgagePayload) string

// DefaultRater rates every application the same. Tests and demos that need
// a spread of ratings inject their own Rater.
func DefaultRater(domain.MortgagePayload) string {
	return "A"
}

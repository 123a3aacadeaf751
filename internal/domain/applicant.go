package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Applicant is the user-service view of a loan applicant.
type Applicant struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	LastName     string          `json:"lastName"`
	EmailAddress string          `json:"emailAddress"`
	BaseSalary   decimal.Decimal `json:"baseSalary"`
}

// FullName joins name and last name, or returns "N/A" when both are blank.
func (a *Applicant) FullName() string {
	full := strings.TrimSpace(strings.TrimSpace(a.Name) + " " + strings.TrimSpace(a.LastName))
	if full == "" {
		return "N/A"
	}
	return full
}

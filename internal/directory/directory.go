package directory

import (
	"context"

	"github.com/segyhp/loan-origination/internal/domain"
)

// ApplicantDirectory resolves applicant profiles owned by the user service.
type ApplicantDirectory interface {
	// FindByEmail returns the applicant, or (nil, nil) when the user service has no match
	FindByEmail(ctx context.Context, email string) (*domain.Applicant, error)
}

// NoopDirectory never finds an applicant. Used when no user service is configured.
type NoopDirectory struct{}

func (NoopDirectory) FindByEmail(context.Context, string) (*domain.Applicant, error) {
	return nil, nil
}

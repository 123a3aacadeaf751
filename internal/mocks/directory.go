package mocks

import (
	"context"

	"github.com/segyhp/loan-origination/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockApplicantDirectory struct {
	mock.Mock
}

func (m *MockApplicantDirectory) FindByEmail(ctx context.Context, email string) (*domain.Applicant, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Applicant), args.Error(1)
}

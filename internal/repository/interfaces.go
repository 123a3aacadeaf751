package repository

import (
	"context"
	"iter"

	"github.com/segyhp/loan-origination/internal/domain"
)

// LoanProductRepository defines the read-only catalog of loan products
type LoanProductRepository interface {
	// FindByID retrieves a product, or (nil, nil) when it does not exist
	FindByID(ctx context.Context, id string) (*domain.LoanProduct, error)

	// ExistsByID reports whether the product exists
	ExistsByID(ctx context.Context, id string) (bool, error)

	// ListAll yields every product; each range re-runs the query
	ListAll(ctx context.Context) iter.Seq2[*domain.LoanProduct, error]
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// Save inserts or replaces the order by id and returns the stored row
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)

	// FindByID retrieves an order, or (nil, nil) when it does not exist
	FindByID(ctx context.Context, id string) (*domain.Order, error)

	// FindByEmail yields every order for the email address
	FindByEmail(ctx context.Context, email string) iter.Seq2[*domain.Order, error]

	// FindPendingStatusID resolves the PENDING status id, or "" when not provisioned
	FindPendingStatusID(ctx context.Context) (string, error)

	// FindPendingRequests returns one page of the pending-requests report
	FindPendingRequests(ctx context.Context, filter domain.PendingFilter) ([]*domain.PendingRequest, error)
}

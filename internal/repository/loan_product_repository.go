package repository

import (
	"context"
	"database/sql"
	"errors"
	"iter"

	"github.com/segyhp/loan-origination/internal/domain"
	customError "github.com/segyhp/loan-origination/pkg/errors"

	"github.com/jmoiron/sqlx"
)

const loanProductColumns = `id, name, minimum_amount, maximum_amount, interest_rate, automatic_validation`

type loanProductRepository struct {
	db *sqlx.DB
}

func NewLoanProductRepository(db *sqlx.DB) LoanProductRepository {
	return &loanProductRepository{db: db}
}

func (r *loanProductRepository) FindByID(ctx context.Context, id string) (*domain.LoanProduct, error) {
	query := `SELECT ` + loanProductColumns + ` FROM loan_type WHERE id = $1`

	var product domain.LoanProduct
	err := r.db.GetContext(ctx, &product, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &product, nil
}

func (r *loanProductRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM loan_type WHERE id = $1)`, id)
	if err != nil {
		return false, customError.WrapDatabaseError(err)
	}
	return exists, nil
}

func (r *loanProductRepository) ListAll(ctx context.Context) iter.Seq2[*domain.LoanProduct, error] {
	query := `SELECT ` + loanProductColumns + ` FROM loan_type ORDER BY name`
	return queryRows[domain.LoanProduct](ctx, r.db, query)
}

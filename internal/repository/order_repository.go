package repository

import (
	"context"
	"database/sql"
	"errors"
	"iter"

	"github.com/segyhp/loan-origination/internal/domain"
	customError "github.com/segyhp/loan-origination/pkg/errors"
	"github.com/segyhp/loan-origination/pkg/utils"

	"github.com/jmoiron/sqlx"
)

const orderColumns = `id, amount, deadline, email_address, id_loan_type, id_status, creation_date, update_date`

type orderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Save upserts by primary key in a single statement; concurrent writers to
// the same id resolve as last write wins.
func (r *orderRepository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			amount = EXCLUDED.amount,
			deadline = EXCLUDED.deadline,
			email_address = EXCLUDED.email_address,
			id_loan_type = EXCLUDED.id_loan_type,
			id_status = EXCLUDED.id_status,
			update_date = EXCLUDED.update_date
		RETURNING ` + orderColumns

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	defer tx.Rollback()

	var saved domain.Order
	err = tx.QueryRowxContext(ctx, query,
		order.ID,
		order.Amount,
		order.Deadline,
		order.EmailAddress,
		order.LoanProductID,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	).StructScan(&saved)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &saved, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var order domain.Order
	err := r.db.GetContext(ctx, &order, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &order, nil
}

func (r *orderRepository) FindByEmail(ctx context.Context, email string) iter.Seq2[*domain.Order, error] {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE email_address = $1 ORDER BY creation_date`
	return queryRows[domain.Order](ctx, r.db, query, email)
}

func (r *orderRepository) FindPendingStatusID(ctx context.Context) (string, error) {
	query := `SELECT s.id FROM status s WHERE s.name = 'PENDING'`

	var id string
	err := r.db.GetContext(ctx, &id, query)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", customError.WrapDatabaseError(err)
	}

	return id, nil
}

func (r *orderRepository) FindPendingRequests(ctx context.Context, filter domain.PendingFilter) ([]*domain.PendingRequest, error) {
	query := `
		SELECT
			o.amount,
			o.deadline,
			o.email_address,
			lt.name AS loan_type,
			lt.interest_rate,
			s.name AS status_order,
			ROUND((o.amount * lt.interest_rate) / o.deadline, 2) AS total_monthly_debt
		FROM orders o
		JOIN loan_type lt ON o.id_loan_type = lt.id
		JOIN status s ON o.id_status = s.id
		WHERE ($1::text IS NULL OR s.id = $1::text)
			AND ($2::text IS NULL OR o.email_address ILIKE '%' || $2::text || '%')
		ORDER BY o.creation_date DESC
		OFFSET $3 LIMIT $4
	`

	requests := []*domain.PendingRequest{}
	err := r.db.SelectContext(ctx, &requests, query,
		nullIfEmpty(filter.StatusID),
		nullIfEmpty(filter.Email),
		utils.Offset(filter.Page, filter.Size),
		filter.Size,
	)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return requests, nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// queryRows lazily streams struct-scanned rows. Iteration stops at the first
// error, which is yielded once.
func queryRows[T any](ctx context.Context, db *sqlx.DB, query string, args ...any) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		rows, err := db.QueryxContext(ctx, query, args...)
		if err != nil {
			yield(nil, customError.WrapDatabaseError(err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var item T
			if err := rows.StructScan(&item); err != nil {
				yield(nil, customError.WrapDatabaseError(err))
				return
			}
			if !yield(&item, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(nil, customError.WrapDatabaseError(err))
		}
	}
}

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segyhp/loan-origination/internal/domain"
	customError "github.com/segyhp/loan-origination/pkg/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderRowColumns = []string{"id", "amount", "deadline", "email_address", "id_loan_type", "id_status", "creation_date", "update_date"}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func sampleOrder(now time.Time) *domain.Order {
	return &domain.Order{
		ID:            "7d1f4c8e-0a4b-4b55-9a43-5e1f0f5c1a01",
		Amount:        decimal.RequireFromString("50000.00"),
		Deadline:      24,
		EmailAddress:  "ana@example.com",
		LoanProductID: "lt-1",
		Status:        domain.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func orderRow(rows *sqlmock.Rows, o *domain.Order) *sqlmock.Rows {
	return rows.AddRow(o.ID, o.Amount.String(), o.Deadline, o.EmailAddress, o.LoanProductID, o.Status.ID(), o.CreatedAt, o.UpdatedAt)
}

func TestOrderRepository_Save(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	order := sampleOrder(now)

	tests := []struct {
		name       string
		setupMocks func(mock sqlmock.Sqlmock)
		wantErr    bool
	}{
		{
			name: "upserts inside a transaction",
			setupMocks: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`INSERT INTO orders .* ON CONFLICT \(id\) DO UPDATE SET .* RETURNING`).
					WithArgs(order.ID, order.Amount, order.Deadline, order.EmailAddress, order.LoanProductID, domain.StatusPending.ID(), now, now).
					WillReturnRows(orderRow(sqlmock.NewRows(orderRowColumns), order))
				mock.ExpectCommit()
			},
		},
		{
			name: "rolls back on failure",
			setupMocks: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`INSERT INTO orders`).WillReturnError(errors.New("connection reset"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
		{
			name: "begin fails",
			setupMocks: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setupMocks(mock)

			saved, err := NewOrderRepository(db).Save(context.Background(), order)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, customError.ErrCodeDatabaseError, customError.CodeOf(err))
				assert.Nil(t, saved)
			} else {
				require.NoError(t, err)
				assert.Equal(t, order.ID, saved.ID)
				assert.True(t, order.Amount.Equal(saved.Amount))
				assert.Equal(t, domain.StatusPending, saved.Status)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestOrderRepository_FindByID(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	order := sampleOrder(now)

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT .* FROM orders WHERE id = \$1`).
			WithArgs(order.ID).
			WillReturnRows(orderRow(sqlmock.NewRows(orderRowColumns), order))

		got, err := NewOrderRepository(db).FindByID(context.Background(), order.ID)

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, order.EmailAddress, got.EmailAddress)
		assert.Equal(t, domain.StatusPending, got.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent yields nil without error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT .* FROM orders WHERE id = \$1`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(orderRowColumns))

		got, err := NewOrderRepository(db).FindByID(context.Background(), "missing")

		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestOrderRepository_FindByEmail(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	first := sampleOrder(now)
	second := sampleOrder(now.Add(time.Hour))
	second.ID = "7d1f4c8e-0a4b-4b55-9a43-5e1f0f5c1a02"
	second.Status = domain.StatusApproved

	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	// every range re-runs the query
	for range 2 {
		rows := sqlmock.NewRows(orderRowColumns)
		orderRow(rows, first)
		orderRow(rows, second)
		mock.ExpectQuery(`SELECT .* FROM orders WHERE email_address = \$1`).
			WithArgs("ana@example.com").
			WillReturnRows(rows)
	}

	seq := repo.FindByEmail(context.Background(), "ana@example.com")
	for range 2 {
		var ids []string
		for order, err := range seq {
			require.NoError(t, err)
			ids = append(ids, order.ID)
		}
		assert.Equal(t, []string{first.ID, second.ID}, ids)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_FindByEmail_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT .* FROM orders`).WillReturnError(errors.New("boom"))

	var errs []error
	for order, err := range NewOrderRepository(db).FindByEmail(context.Background(), "x@example.com") {
		assert.Nil(t, order)
		errs = append(errs, err)
	}

	require.Len(t, errs, 1)
	assert.Equal(t, customError.ErrCodeDatabaseError, customError.CodeOf(errs[0]))
}

func TestOrderRepository_FindPendingStatusID(t *testing.T) {
	t.Run("provisioned", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT s.id FROM status s WHERE s.name = 'PENDING'`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(domain.StatusPending.ID()))

		id, err := NewOrderRepository(db).FindPendingStatusID(context.Background())

		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending.ID(), id)
	})

	t.Run("missing row", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`FROM status`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

		id, err := NewOrderRepository(db).FindPendingStatusID(context.Background())

		require.NoError(t, err)
		assert.Empty(t, id)
	})
}

func TestOrderRepository_FindPendingRequests(t *testing.T) {
	db, mock := newMockDB(t)
	columns := []string{"amount", "deadline", "email_address", "loan_type", "interest_rate", "status_order", "total_monthly_debt"}

	mock.ExpectQuery(`FROM orders o JOIN loan_type lt .* ORDER BY o.creation_date DESC OFFSET \$3 LIMIT \$4`).
		WithArgs(nil, "ana", 20, 10).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("12000.00", 12, "ana@example.com", "PERSONAL", "0.12", "PENDING", "120.00"))

	requests, err := NewOrderRepository(db).FindPendingRequests(context.Background(), domain.PendingFilter{
		Email: "ana",
		Page:  2,
		Size:  10,
	})

	require.NoError(t, err)
	require.Len(t, requests, 1)
	got := requests[0]
	assert.Equal(t, "PERSONAL", got.LoanType)
	assert.Equal(t, "PENDING", got.Status)
	assert.True(t, decimal.RequireFromString("120").Equal(got.MonthlyAmount))
	assert.Empty(t, got.Name)
	assert.True(t, got.BaseSalary.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

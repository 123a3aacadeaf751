package repository

import (
	"bytes"
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/segyhp/loan-origination/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productColumns = []string{"id", "name", "minimum_amount", "maximum_amount", "interest_rate", "automatic_validation"}

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows(productColumns).
		AddRow("lt-1", "PERSONAL", "10000", "500000", "0.12", false)
}

func TestLoanProductRepository_FindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoanProductRepository(db)

	mock.ExpectQuery(`SELECT .* FROM loan_type WHERE id = \$1`).WithArgs("lt-1").WillReturnRows(productRows())
	mock.ExpectQuery(`SELECT .* FROM loan_type WHERE id = \$1`).WithArgs("nope").WillReturnRows(sqlmock.NewRows(productColumns))

	product, err := repo.FindByID(context.Background(), "lt-1")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "PERSONAL", product.Name)
	assert.True(t, product.MaximumAmount.Equal(decimal.NewFromInt(500000)))

	missing, err := repo.FindByID(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoanProductRepository_ExistsAndList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoanProductRepository(db)

	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("lt-1").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT .* FROM loan_type ORDER BY name`).WillReturnRows(productRows().
		AddRow("lt-2", "VEHICLE", "5000", "80000", "0.09", true))

	exists, err := repo.ExistsByID(context.Background(), "lt-1")
	require.NoError(t, err)
	assert.True(t, exists)

	var names []string
	for product, err := range repo.ListAll(context.Background()) {
		require.NoError(t, err)
		names = append(names, product.Name)
	}
	assert.Equal(t, []string{"PERSONAL", "VEHICLE"}, names)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedLoanProductRepository(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	db, mock := newMockDB(t)
	repo := NewCachedLoanProductRepository(NewLoanProductRepository(db), client, time.Minute)

	// only the first lookup reaches the database
	mock.ExpectQuery(`FROM loan_type WHERE id = \$1`).WithArgs("lt-1").WillReturnRows(productRows())

	first, err := repo.FindByID(context.Background(), "lt-1")
	require.NoError(t, err)
	second, err := repo.FindByID(context.Background(), "lt-1")
	require.NoError(t, err)

	assert.Equal(t, first.Name, second.Name)
	assert.True(t, first.InterestRate.Equal(second.InterestRate))
	assert.True(t, first.MinimumAmount.Equal(second.MinimumAmount))
	assert.True(t, mr.Exists("loan_product:lt-1"))
	assert.Equal(t, time.Minute, mr.TTL("loan_product:lt-1"))

	exists, err := repo.ExistsByID(context.Background(), "lt-1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedLoanProductRepository_FallsThroughWhenRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	var logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	db, mock := newMockDB(t)
	repo := NewCachedLoanProductRepository(NewLoanProductRepository(db), client, time.Minute)

	mock.ExpectQuery(`FROM loan_type WHERE id = \$1`).WithArgs("lt-1").WillReturnRows(productRows())
	mock.ExpectQuery(`FROM loan_type WHERE id = \$1`).WithArgs("ghost").WillReturnRows(sqlmock.NewRows(productColumns))

	product, err := repo.FindByID(context.Background(), "lt-1")
	require.NoError(t, err)
	assert.Equal(t, "PERSONAL", product.Name)

	var none *domain.LoanProduct
	none, err = repo.FindByID(context.Background(), "ghost")
	assert.NoError(t, err)
	assert.Nil(t, none)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Contains(t, logs.String(), "CACHE_ERROR")
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"iter"
	"log"
	"time"

	"github.com/segyhp/loan-origination/internal/domain"
	customError "github.com/segyhp/loan-origination/pkg/errors"

	"github.com/redis/go-redis/v9"
)

const loanProductKeyPrefix = "loan_product:"

// cachedLoanProductRepository is a read-through Redis cache in front of the
// catalog. Redis failures are logged and fall through to the next layer.
type cachedLoanProductRepository struct {
	next  LoanProductRepository
	redis *redis.Client
	ttl   time.Duration
}

func NewCachedLoanProductRepository(next LoanProductRepository, client *redis.Client, ttl time.Duration) LoanProductRepository {
	return &cachedLoanProductRepository{next: next, redis: client, ttl: ttl}
}

func (r *cachedLoanProductRepository) FindByID(ctx context.Context, id string) (*domain.LoanProduct, error) {
	key := loanProductKeyPrefix + id

	cached, err := r.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var product domain.LoanProduct
		if err := json.Unmarshal(cached, &product); err == nil {
			return &product, nil
		}
		log.Printf("Discarding unreadable cache entry %s", key)
	case !errors.Is(err, redis.Nil):
		log.Printf("Loan product cache read failed for %s: %v", key, customError.WrapCacheError(err))
	}

	product, err := r.next.FindByID(ctx, id)
	if err != nil || product == nil {
		return product, err
	}

	payload, err := json.Marshal(product)
	if err != nil {
		log.Printf("Failed to encode loan product %s for cache: %v", id, err)
		return product, nil
	}
	if err := r.redis.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		log.Printf("Loan product cache write failed for %s: %v", key, customError.WrapCacheError(err))
	}

	return product, nil
}

func (r *cachedLoanProductRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	product, err := r.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return product != nil, nil
}

func (r *cachedLoanProductRepository) ListAll(ctx context.Context) iter.Seq2[*domain.LoanProduct, error] {
	return r.next.ListAll(ctx)
}

package handler

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/segyhp/loan-origination/pkg/response"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"

	// How long a key stays locked while its first request is still running
	idempotencyLockTTL = 60 * time.Second
	maxIdempotencyKey  = 128
)

type idempotencyEntry struct {
	InProgress bool      `json:"in_progress"`
	Code       int       `json:"code"`
	Body       []byte    `json:"body"`
	BodySHA256 string    `json:"body_sha256"`
	CreatedAt  time.Time `json:"created_at"`
}

type captureWriter struct {
	http.ResponseWriter
	buf  bytes.Buffer
	code int
}

func (c *captureWriter) Write(b []byte) (int, error) {
	c.buf.Write(b)
	return c.ResponseWriter.Write(b)
}

func (c *captureWriter) WriteHeader(statusCode int) {
	c.code = statusCode
	c.ResponseWriter.WriteHeader(statusCode)
}

// IdempotencyMiddleware replays the stored response for a repeated
// Idempotency-Key. Requests without the header pass through.
func IdempotencyMiddleware(rdb *redis.Client, ttl time.Duration) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}
			if len(key) > maxIdempotencyKey {
				response.BadRequest(w, "Idempotency-Key is too long", nil)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				response.BadRequest(w, "Invalid request body", err)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
			hash := sha256.Sum256(body)
			bodyHash := hex.EncodeToString(hash[:])

			redisKey := "idemp:" + strings.ToLower(r.Method) + ":" + r.URL.Path + ":" + key
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			lock, err := json.Marshal(idempotencyEntry{InProgress: true, BodySHA256: bodyHash, CreatedAt: time.Now().UTC()})
			if err != nil {
				log.Printf("Failed to encode idempotency lock %s: %v", redisKey, err)
				response.InternalServerError(w, "internal error", nil)
				return
			}
			acquired, err := rdb.SetNX(ctx, redisKey, lock, idempotencyLockTTL).Result()
			if err != nil {
				log.Printf("Idempotency store unavailable for %s: %v", redisKey, err)
				response.Error(w, http.StatusServiceUnavailable, "idempotency store unavailable", nil)
				return
			}

			if !acquired {
				current, err := loadIdempotencyEntry(ctx, rdb, redisKey)
				switch {
				case err == nil:
					replayOrReject(w, current, bodyHash)
					return
				case errors.Is(err, errUnreadableEntry):
					// treated as a miss: drop it and take the lock again
					log.Printf("Discarding idempotency entry %s: %v", redisKey, err)
					if err := rdb.Del(ctx, redisKey).Err(); err != nil {
						log.Printf("Failed to discard idempotency entry %s: %v", redisKey, err)
					}
				case !errors.Is(err, redis.Nil):
					log.Printf("Failed to load idempotency entry %s: %v", redisKey, err)
					response.Error(w, http.StatusServiceUnavailable, "idempotency store unavailable", nil)
					return
				}

				acquired, err = rdb.SetNX(ctx, redisKey, lock, idempotencyLockTTL).Result()
				if err != nil {
					log.Printf("Idempotency store unavailable for %s: %v", redisKey, err)
					response.Error(w, http.StatusServiceUnavailable, "idempotency store unavailable", nil)
					return
				}
				if !acquired {
					response.Conflict(w, "request with this Idempotency-Key is already in progress")
					return
				}
			}

			rec := &captureWriter{ResponseWriter: w, code: http.StatusOK}
			next.ServeHTTP(rec, r)

			// Failed attempts release the key so the client can retry
			if rec.code >= http.StatusInternalServerError {
				if err := rdb.Del(context.Background(), redisKey).Err(); err != nil {
					log.Printf("Failed to release idempotency key %s: %v", redisKey, err)
				}
				return
			}

			final, err := json.Marshal(idempotencyEntry{
				Code:       rec.code,
				Body:       rec.buf.Bytes(),
				BodySHA256: bodyHash,
				CreatedAt:  time.Now().UTC(),
			})
			if err != nil {
				log.Printf("Failed to encode idempotent response %s: %v", redisKey, err)
				if err := rdb.Del(context.Background(), redisKey).Err(); err != nil {
					log.Printf("Failed to release idempotency key %s: %v", redisKey, err)
				}
				return
			}
			if err := rdb.Set(context.Background(), redisKey, final, ttl).Err(); err != nil {
				log.Printf("Failed to store idempotent response %s: %v", redisKey, err)
			}
		})
	}
}

var errUnreadableEntry = errors.New("unreadable idempotency entry")

func loadIdempotencyEntry(ctx context.Context, rdb *redis.Client, key string) (*idempotencyEntry, error) {
	raw, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}
	var entry idempotencyEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("%w: %v", errUnreadableEntry, err)
	}
	return &entry, nil
}

// replayOrReject answers a request whose key is already taken.
func replayOrReject(w http.ResponseWriter, current *idempotencyEntry, bodyHash string) {
	if current.BodySHA256 != "" && current.BodySHA256 != bodyHash {
		response.Conflict(w, "Idempotency-Key reused with a different body")
		return
	}
	if !current.InProgress && current.Code != 0 {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Idempotent-Replayed", "true")
		w.WriteHeader(current.Code)
		_, _ = w.Write(current.Body)
		return
	}
	response.Conflict(w, "request with this Idempotency-Key is already in progress")
}

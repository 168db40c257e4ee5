package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/joefazee/placement/models"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeUniqueViolation      = "23505"
)

// Transactor runs fn inside a database transaction.
type Transactor interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// TxRunner is a Transactor that retries transactions aborted by a
// serialization failure or a deadlock. Each attempt is a fresh transaction,
// so fn must not keep state between calls.
type TxRunner struct {
	db         *gorm.DB
	maxRetries int
	backoff    time.Duration
	onRetry    func(attempt int, err error)
}

// TxOption configures a TxRunner.
type TxOption func(*TxRunner)

// WithMaxRetries sets how many extra attempts follow the first one.
func WithMaxRetries(n int) TxOption {
	return func(r *TxRunner) {
		if n >= 0 {
			r.maxRetries = n
		}
	}
}

// WithBackoff sets the base delay between attempts. The delay grows linearly.
func WithBackoff(d time.Duration) TxOption {
	return func(r *TxRunner) {
		r.backoff = d
	}
}

// WithRetryHook registers fn to be called before each retry.
func WithRetryHook(fn func(attempt int, err error)) TxOption {
	return func(r *TxRunner) {
		r.onRetry = fn
	}
}

// NewTxRunner creates a TxRunner over db.
func NewTxRunner(db *gorm.DB, opts ...TxOption) *TxRunner {
	r := &TxRunner{
		db:         db,
		maxRetries: 3,
		backoff:    10 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// InTx runs fn in a transaction. Retryable failures are retried; when the
// attempts run out the error wraps models.ErrTxConflict.
func (r *TxRunner) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	for attempt := 0; ; attempt++ {
		err := r.db.WithContext(ctx).Transaction(fn)
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		if attempt >= r.maxRetries {
			return fmt.Errorf("%w: %v", models.ErrTxConflict, err)
		}
		if r.onRetry != nil {
			r.onRetry(attempt+1, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoff * time.Duration(attempt+1)):
		}
	}
}

// IsRetryable reports whether err is a serialization failure or deadlock.
func IsRetryable(err error) bool {
	code := sqlState(err)
	return code == codeSerializationFailure || code == codeDeadlockDetected
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return sqlState(err) == codeUniqueViolation || errors.Is(err, gorm.ErrDuplicatedKey)
}

func sqlState(err error) string {
	if err == nil {
		return ""
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

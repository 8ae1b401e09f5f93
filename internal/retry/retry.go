// Package retry runs store reads and deletes under bounded exponential backoff.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/fastygo/planner/domain"
)

// Policy bounds a retry loop. The n-th wait is Initial * Multiplier^(n-1).
type Policy struct {
	Attempts   int
	Initial    time.Duration
	Multiplier float64
}

// Default is three attempts, waiting 2s then 4s.
var Default = Policy{Attempts: 3, Initial: 2 * time.Second, Multiplier: 2}

// Do calls op until it succeeds, the attempts run out, ctx ends, or op fails
// with an error retrying cannot fix. The last error is returned.
func (p Policy) Do(ctx context.Context, logger *zap.Logger, name string, op func(context.Context) error) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	attempt := 0
	wrapped := func() error {
		attempt++
		err := op(ctx)
		if err != nil && !Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		logger.Warn("retrying store operation",
			zap.String("operation", name),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}

	return backoff.RetryNotify(wrapped, p.backOff(ctx, attempts), notify)
}

func (p Policy) backOff(ctx context.Context, attempts int) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.Initial
	exp.Multiplier = p.Multiplier
	if exp.Multiplier < 1 {
		exp.Multiplier = 1
	}
	exp.RandomizationFactor = 0
	exp.MaxInterval = time.Hour
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(attempts-1)), ctx)
}

// Retryable reports whether err may go away on its own. Validation, missing
// rows, conflicts and auth failures are final.
func Retryable(err error) bool {
	switch {
	case err == nil:
		return false
	case domain.IsDomainError(err, domain.ErrCodeInvalid),
		domain.IsDomainError(err, domain.ErrCodeNotFound),
		domain.IsDomainError(err, domain.ErrCodeConflict),
		domain.IsDomainError(err, domain.ErrCodeForbidden),
		domain.IsDomainError(err, domain.ErrCodeUnauthorized):
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	default:
		return true
	}
}

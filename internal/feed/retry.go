package feed

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/rook-computer/scoreboard/internal/logging"
	"github.com/rook-computer/scoreboard/internal/state"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 500 * time.Millisecond
)

// retryingProvider wraps a Provider with exponential backoff.
type retryingProvider struct {
	inner       Provider
	logger      logging.Logger
	maxAttempts int
	initial     time.Duration
}

// NewRetrying wraps inner with retries. If maxAttempts/initial are <= 0, defaults are used.
func NewRetrying(inner Provider, logger logging.Logger, maxAttempts int, initial time.Duration) Provider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logging.OrNoop(logger),
		maxAttempts: maxAttempts,
		initial:     initial,
	}
}

func (r *retryingProvider) Name() string { return r.inner.Name() }

func (r *retryingProvider) Fetch(ctx context.Context, team string) (state.GameState, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.initial
	policy.MaxElapsedTime = 0

	var (
		result  state.GameState
		attempt int
	)
	op := func() error {
		attempt++
		g, err := r.inner.Fetch(ctx, team)
		if err != nil {
			if !retryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = g
		return nil
	}
	notify := func(err error, delay time.Duration) {
		r.logger.Warnf("feed", "%s fetch attempt %d/%d failed, retrying in %s: %v", r.inner.Name(), attempt, r.maxAttempts, delay, err)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(r.maxAttempts-1)), ctx)
	if err := backoff.RetryNotify(op, b, notify); err != nil {
		return state.GameState{}, err
	}
	return result, nil
}

func retryable(err error) bool {
	if errors.Is(err, ErrUnknownTeam) || errors.Is(err, context.Canceled) {
		return false
	}
	if se, ok := AsStatusError(err); ok {
		return se.Temporary()
	}
	return true
}

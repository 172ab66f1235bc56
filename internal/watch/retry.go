package watch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"feeScope/internal/model"
)

const (
	defaultRetryBackoff = 100 * time.Millisecond
	maxRetryBackoff     = 30 * time.Second
)

// retryPolicy bounds how often a failed snapshot read is repeated. The wait
// doubles after every failure and is capped at maxRetryBackoff.
type retryPolicy struct {
	maxRetries int
	backoff    time.Duration
}

func newRetryPolicy(maxRetries int, backoff time.Duration) retryPolicy {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	return retryPolicy{maxRetries: maxRetries, backoff: backoff}
}

// wait returns the pause after the given zero-based failed attempt.
func (p retryPolicy) wait(attempt int) time.Duration {
	wait := p.backoff
	for i := 0; i < attempt && wait < maxRetryBackoff; i++ {
		wait *= 2
	}
	if wait > maxRetryBackoff {
		wait = maxRetryBackoff
	}
	return wait
}

// loadSnapshot reads the snapshot file, retrying reads that fail while the
// producer is still writing it.
func (r *Runner) loadSnapshot(ctx context.Context) (model.RawSnapshot, error) {
	policy := newRetryPolicy(r.cfg.MaxRetries, r.cfg.RetryBackoff)
	for attempt := 0; ; attempt++ {
		raw, err := r.read(r.cfg.SnapshotPath)
		if err == nil {
			return raw, nil
		}
		if attempt >= policy.maxRetries {
			return model.RawSnapshot{}, fmt.Errorf("after %d attempts: %w", attempt+1, err)
		}

		wait := policy.wait(attempt)
		r.logger.Warn("snapshot load failed",
			zap.Error(err),
			zap.String("path", r.cfg.SnapshotPath),
			zap.Int("attempt", attempt+1),
			zap.Duration("retryIn", wait),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return model.RawSnapshot{}, ctx.Err()
		case <-timer.C:
		}
	}
}

package watch

import (
	"context"
	"errors"
	"testing"
	"time"

	"feeScope/internal/model"
	"feeScope/internal/service"
	"feeScope/internal/snapshot/snapshottest"
)

func TestRetryPolicyWait(t *testing.T) {
	policy := newRetryPolicy(10, time.Second)
	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 0, want: time.Second},
		{attempt: 1, want: 2 * time.Second},
		{attempt: 4, want: 16 * time.Second},
		{attempt: 5, want: maxRetryBackoff},
		{attempt: 60, want: maxRetryBackoff},
	}
	for _, tc := range cases {
		if got := policy.wait(tc.attempt); got != tc.want {
			t.Fatalf("attempt %d: got %s, want %s", tc.attempt, got, tc.want)
		}
	}

	defaults := newRetryPolicy(-1, 0)
	if defaults.maxRetries != 0 || defaults.backoff != defaultRetryBackoff {
		t.Fatalf("defaults mismatch: %+v", defaults)
	}
}

func newLoadRunner(maxRetries int, read func(string) (model.RawSnapshot, error)) *Runner {
	runner := NewRunner(RunConfig{
		SnapshotPath: "snapshot.json",
		MaxRetries:   maxRetries,
		RetryBackoff: time.Millisecond,
	}, service.NewHolder(nil, nil), &memorySink{}, nil, nil)
	runner.read = read
	return runner
}

func TestLoadSnapshotRetriesPartialWrites(t *testing.T) {
	calls := 0
	runner := newLoadRunner(3, func(path string) (model.RawSnapshot, error) {
		calls++
		if calls < 3 {
			return model.RawSnapshot{}, errors.New("decode snapshot: unexpected EOF")
		}
		return snapshottest.Raw(), nil
	})

	raw, err := runner.loadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 || raw.Meta == nil {
		t.Fatalf("calls %d, meta %v", calls, raw.Meta)
	}
}

func TestLoadSnapshotGivesUp(t *testing.T) {
	want := errors.New("open snapshot: no such file")
	calls := 0
	runner := newLoadRunner(2, func(string) (model.RawSnapshot, error) {
		calls++
		return model.RawSnapshot{}, want
	})

	if _, err := runner.loadSnapshot(context.Background()); !errors.Is(err, want) {
		t.Fatalf("expected last error, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls mismatch: %d", calls)
	}
}

func TestLoadSnapshotStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	runner := newLoadRunner(5, func(string) (model.RawSnapshot, error) {
		calls++
		cancel()
		return model.RawSnapshot{}, errors.New("boom")
	})
	runner.cfg.RetryBackoff = time.Hour

	if _, err := runner.loadSnapshot(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls mismatch: %d", calls)
	}
}

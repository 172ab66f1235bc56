package service

import (
	"errors"
	"fmt"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"feeScope/internal/model"
)

// ErrStaleSnapshot is returned when a refresh would move back in block height.
var ErrStaleSnapshot = errors.New("service: stale snapshot")

// Holder publishes the current Service. Readers always see a complete
// service; a refresh builds a new one and swaps it in.
type Holder struct {
	current atomic.Pointer[Service]
	lastErr atomic.Error
	logger  *zap.Logger
}

// NewHolder returns a holder publishing initial, which may be nil.
func NewHolder(initial *Service, logger *zap.Logger) *Holder {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Holder{logger: logger}
	if initial != nil {
		h.current.Store(initial)
	}
	return h
}

// Load returns the published service, or nil before the first publish.
func (h *Holder) Load() *Service {
	return h.current.Load()
}

// Publish replaces the published service unless next is older than it.
func (h *Holder) Publish(next *Service) error {
	if next == nil {
		return fmt.Errorf("service is nil")
	}
	for {
		prev := h.current.Load()
		if prev != nil && next.snap.Meta.ParaBlockNumber < prev.snap.Meta.ParaBlockNumber {
			return fmt.Errorf("%w: block %d is older than %d", ErrStaleSnapshot, next.snap.Meta.ParaBlockNumber, prev.snap.Meta.ParaBlockNumber)
		}
		if h.current.CompareAndSwap(prev, next) {
			return nil
		}
	}
}

// Refresh normalizes raw, builds a service and publishes it. On failure the
// published service is kept and the error is remembered for LastError.
func (h *Holder) Refresh(raw model.RawSnapshot) (*Service, error) {
	next, err := NewFromRaw(raw, h.logger)
	if err == nil {
		err = h.Publish(next)
	}
	if err != nil {
		h.lastErr.Store(err)
		h.logger.Warn("snapshot refresh failed", zap.Error(err))
		return nil, err
	}
	h.lastErr.Store(nil)
	h.logger.Info("snapshot published",
		zap.Uint64("paraBlock", next.snap.Meta.ParaBlockNumber),
		zap.Int("rejectedPools", len(next.snap.Rejected)),
	)
	return next, nil
}

// LastError returns the error of the most recent failed refresh, or nil
// once a refresh succeeded.
func (h *Holder) LastError() error {
	return h.lastErr.Load()
}

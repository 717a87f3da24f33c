package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errSMTP = errors.New("dial tcp: connection refused")

func newTestBreaker(clock *time.Time) *CircuitBreaker {
	cb := NewCircuitBreaker("test", CircuitBreakerConfig{FailureThreshold: 2, SuccessThreshold: 1, OpenTimeout: time.Minute})
	cb.now = func() time.Time { return *clock }
	return cb
}

func TestCircuitBreaker_TripsAfterThreshold(t *testing.T) {
	clock := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	cb := newTestBreaker(&clock)
	fail := func() error { return errSMTP }

	assert.ErrorIs(t, cb.Execute(fail), errSMTP)
	assert.Equal(t, CBClosed, cb.State())
	assert.ErrorIs(t, cb.Execute(fail), errSMTP)
	assert.Equal(t, CBOpen, cb.State())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_HalfOpenProbe(t *testing.T) {
	clock := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	cb := newTestBreaker(&clock)
	fail := func() error { return errSMTP }
	_ = cb.Execute(fail)
	_ = cb.Execute(fail)

	clock = clock.Add(2 * time.Minute)
	assert.Equal(t, CBHalfOpen, cb.State())

	// failed probe reopens
	assert.ErrorIs(t, cb.Execute(fail), errSMTP)
	assert.Equal(t, CBOpen, cb.State())

	clock = clock.Add(2 * time.Minute)
	assert.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	clock := time.Now()
	cb := newTestBreaker(&clock)
	_ = cb.Execute(func() error { return errSMTP })
	_ = cb.Execute(func() error { return nil })
	_ = cb.Execute(func() error { return errSMTP })
	assert.Equal(t, CBClosed, cb.State())
}

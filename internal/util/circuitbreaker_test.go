package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerOpensAtThreshold(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(2, time.Minute, nil).WithClock(func() time.Time { return now })

	cb.RecordFailure()
	assert.True(t, cb.CanExecute())

	cb.RecordFailure()
	assert.False(t, cb.CanExecute())
	status := cb.Status()
	assert.Equal(t, CircuitStateOpen, status.State)
	require.NotNil(t, status.NextRetryTime)
	assert.Equal(t, now.Add(time.Minute), *status.NextRetryTime)
}

func TestCircuitBreakerHalfOpenTrial(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(1, time.Minute, nil).WithClock(func() time.Time { return now })

	cb.RecordFailure()
	require.Equal(t, CircuitStateOpen, cb.State())

	now = now.Add(time.Minute)
	assert.Equal(t, CircuitStateHalfOpen, cb.State())

	cb.RecordFailure()
	assert.Equal(t, CircuitStateOpen, cb.State(), "failed trial reopens")

	now = now.Add(time.Minute)
	require.True(t, cb.CanExecute())
	cb.RecordSuccess()
	assert.Equal(t, CircuitStateClosed, cb.State())
	assert.Zero(t, cb.Status().FailureCount)
}

func TestCircuitBreakerSuccessResetsCount(t *testing.T) {
	cb := NewCircuitBreaker(2, time.Minute, nil)

	cb.RecordFailure()
	cb.RecordSuccess()
	cb.RecordFailure()
	assert.True(t, cb.CanExecute())

	cb.RecordFailure()
	require.False(t, cb.CanExecute())
	cb.Reset()
	assert.True(t, cb.CanExecute())
}

package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/piresc/dispatch/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRoster = errors.New("redis: connection refused")

func newTestBreaker(clock *time.Time, transitions *[]State) *CircuitBreaker {
	cfg := DefaultConfig("roster")
	cfg.FailureThreshold = 2
	cfg.Timeout = time.Second
	cfg.OnStateChange = func(_ string, _ State, to State) { *transitions = append(*transitions, to) }
	cb := New(cfg, logger.NewNop())
	cb.now = func() time.Time { return *clock }
	return cb
}

func fail(context.Context) error { return errRoster }
func pass(context.Context) error { return nil }

func TestCircuitBreaker_OpensAndRecovers(t *testing.T) {
	// Arrange
	clock := time.Unix(1_700_000_000, 0)
	var transitions []State
	cb := newTestBreaker(&clock, &transitions)
	ctx := context.Background()

	// Act: two failures open the breaker
	assert.ErrorIs(t, cb.Execute(ctx, fail), errRoster)
	assert.ErrorIs(t, cb.Execute(ctx, fail), errRoster)
	require.Equal(t, StateOpen, cb.State())

	err := cb.Execute(ctx, pass)
	assert.ErrorIs(t, err, ErrCircuitBreakerOpen)
	assert.Contains(t, err.Error(), "roster")

	// Act: timeout elapses, one probe closes it
	clock = clock.Add(2 * time.Second)
	assert.NoError(t, cb.Execute(ctx, pass))

	// Assert
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, []State{StateOpen, StateHalfOpen, StateClosed}, transitions)
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	clock := time.Unix(1_700_000_000, 0)
	var transitions []State
	cb := newTestBreaker(&clock, &transitions)
	ctx := context.Background()

	_ = cb.Execute(ctx, fail)
	_ = cb.Execute(ctx, fail)
	clock = clock.Add(2 * time.Second)

	assert.ErrorIs(t, cb.Execute(ctx, fail), errRoster)
	assert.Equal(t, StateOpen, cb.State())
	assert.Equal(t, []State{StateOpen, StateHalfOpen, StateOpen}, transitions)
}

func TestCircuitBreaker_CancellationIsNotFailure(t *testing.T) {
	clock := time.Unix(1_700_000_000, 0)
	var transitions []State
	cb := newTestBreaker(&clock, &transitions)

	for i := 0; i < 5; i++ {
		_ = cb.Execute(context.Background(), func(context.Context) error { return context.Canceled })
	}

	assert.Equal(t, StateClosed, cb.State())
	assert.Zero(t, cb.Counts().TotalFailures)
}

func TestCall(t *testing.T) {
	cb := New(DefaultConfig("roster"), nil)

	ids, err := Call(context.Background(), cb, func(context.Context) ([]string, error) {
		return []string{"d1", "d2"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"d1", "d2"}, ids)

	ids, err = Call(context.Background(), cb, func(context.Context) ([]string, error) {
		return []string{"partial"}, errRoster
	})
	assert.ErrorIs(t, err, errRoster)
	assert.Nil(t, ids)
	assert.Equal(t, "roster", cb.Name())
}

package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryFixed(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := retryFixed(context.Background(), 5, time.Millisecond, func(context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("connection refused")
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after the configured attempts", func(t *testing.T) {
		calls := 0
		cause := errors.New("connection refused")
		err := retryFixed(context.Background(), 5, time.Millisecond, func(context.Context) error {
			calls++
			return cause
		})

		require.Error(t, err)
		assert.Equal(t, 5, calls)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "after 5 attempts")
	})

	t.Run("non-positive attempts still tries once", func(t *testing.T) {
		calls := 0
		_ = retryFixed(context.Background(), 0, time.Millisecond, func(context.Context) error {
			calls++
			return errors.New("down")
		})

		assert.Equal(t, 1, calls)
	})

	t.Run("stops waiting when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := retryFixed(ctx, 5, time.Hour, func(context.Context) error {
			calls++
			cancel()
			return errors.New("down")
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestStartSchemaBootstrap_ReportsFailureWithoutPanicking(t *testing.T) {
	cfg := Config{
		DatabaseHost:     "127.0.0.1",
		DatabasePort:     "1",
		DatabaseUser:     "nobody",
		DatabasePassword: "nothing",
		DatabaseName:     "none",
		DBInitRetries:    2,
		DBInitDelay:      time.Millisecond,
	}

	select {
	case err := <-startSchemaBootstrap(context.Background(), cfg):
		assert.Error(t, err)
	case <-time.After(30 * time.Second):
		t.Fatal("bootstrap did not finish")
	}
}

package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/campus/internal/store"
	"github.com/stretchr/testify/require"
)

var fast = store.RetryPolicy{MaxTries: 3, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}

func TestRetry(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := store.Retry(context.Background(), fast, func() error {
			calls++
			if calls < 3 {
				return fmt.Errorf("%w: database is locked", store.ErrTransient)
			}
			return nil
		})

		require.NoError(t, err)
		require.Equal(t, 3, calls)
	})

	t.Run("gives up after max tries", func(t *testing.T) {
		calls := 0
		err := store.Retry(context.Background(), fast, func() error {
			calls++
			return fmt.Errorf("%w: connection reset", store.ErrTransient)
		})

		require.ErrorIs(t, err, store.ErrTransient)
		require.Equal(t, 3, calls)
	})

	t.Run("does not retry other errors", func(t *testing.T) {
		calls := 0
		err := store.Retry(context.Background(), fast, func() error {
			calls++
			return store.ErrAlreadyExists
		})

		require.ErrorIs(t, err, store.ErrAlreadyExists)
		require.Equal(t, 1, calls)
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := store.Retry(ctx, store.RetryPolicy{MaxTries: 10, InitialInterval: time.Millisecond}, func() error {
			calls++
			cancel()
			return store.ErrTransient
		})

		require.Error(t, err)
		require.True(t, errors.Is(err, context.Canceled) || errors.Is(err, store.ErrTransient))
		require.Equal(t, 1, calls)
	})
}

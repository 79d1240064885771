package retry_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"reacji/pkg/retry"
)

var errFlaky = errors.New("flaky")

func TestWrapWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("returns nil on first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		wrapped := retry.WrapWithRetry(func() error {
			calls++
			return nil
		}, func(error, int) bool {
			return true
		}, 0)

		require.NoError(t, wrapped())
		require.Equal(t, 1, calls)
	})

	t.Run("retries until the function succeeds", func(t *testing.T) {
		t.Parallel()

		calls := 0
		wrapped := retry.WrapWithRetry(func() error {
			calls++
			if calls < 3 {
				return errFlaky
			}
			return nil
		}, func(error, int) bool {
			return true
		}, 0)

		require.NoError(t, wrapped())
		require.Equal(t, 3, calls)
	})

	t.Run("stops when shouldRetry declines", func(t *testing.T) {
		t.Parallel()

		calls := 0
		wrapped := retry.WrapWithRetry(func() error {
			calls++
			return errFlaky
		}, func(_ error, attempt int) bool {
			return attempt < 4
		}, 0)

		require.ErrorIs(t, wrapped(), errFlaky)
		require.Equal(t, 4, calls)
	})
}

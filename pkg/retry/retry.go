package retry

import (
	"time"
)

type fn func() error
type shouldRetry func(err error, attempt int) bool

// WrapWithRetry wraps the given function and retries it while shouldRetry
// returns true, sleeping delay between attempts. Returns nil as soon as the
// wrapped function succeeds.
func WrapWithRetry(f fn, shouldRetry shouldRetry, delay time.Duration) func() error {
	return func() error {
		attempt := 0

		for {
			err := f()
			if err == nil {
				return nil
			}

			attempt++

			if !shouldRetry(err, attempt) {
				return err
			}

			time.Sleep(delay)
		}
	}
}

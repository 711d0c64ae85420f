package retry

import (
	"time"
)

type fn func() error
type shouldRetry func(err error, attempt int) bool

// WrapWithRetry wraps the given function and retries it while shouldRetry
// allows. It gives up when `rate` failures land within a single second,
// which keeps a permanently broken dependency from spinning.
func WrapWithRetry(f fn, shouldRetry shouldRetry, rate float32) func() error {
	size := int(rate + 1)
	var errorTimestamps []time.Time

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

			errorTimestamps = append(errorTimestamps, time.Now())

			if len(errorTimestamps) > size {
				errorTimestamps = errorTimestamps[1:]
			}
			if len(errorTimestamps) < size {
				continue
			}

			window := errorTimestamps[len(errorTimestamps)-1].Sub(errorTimestamps[0])
			if window <= time.Second {
				return err
			}
		}
	}
}

package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/docrag"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// RetryFunc is notified before each retry with the 1-based number of the
// upcoming attempt and the error that triggered it.
type RetryFunc func(url string, attempt int, err error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry calls fetch once plus one retry per entry in delays,
// sleeping delays[i] before retry i. A nil or empty delays means a single
// attempt. Errors coded ENOTFOUND or EINVALID are permanent and returned
// without retrying. The last error is returned when every attempt fails;
// context cancellation while waiting returns the context error.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, delays []time.Duration, onRetry RetryFunc) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		if attempt > 0 {
			if onRetry != nil {
				onRetry(url, attempt+1, lastErr)
			}
			timer := time.NewTimer(delays[attempt-1])
			select {
			case <-ctx.Done():
				timer.Stop()
				return "", ctx.Err()
			case <-timer.C:
			}
		}

		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if permanent(err) {
			return "", err
		}
	}
	return "", lastErr
}

func permanent(err error) bool {
	switch docrag.ErrorCode(err) {
	case docrag.ENOTFOUND, docrag.EINVALID:
		return true
	}
	return false
}

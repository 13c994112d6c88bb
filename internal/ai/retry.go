package ai

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"google.golang.org/genai"
)

// maxAttempts bounds how many times a quota-limited call is tried in
// total (first attempt plus retries).
const maxAttempts = 8

// ErrQuotaExhausted is returned after every retry of a rate-limited call
// has failed. Handlers map it to HTTP 429.
var ErrQuotaExhausted = errors.New("generative API quota exhausted")

// QuotaBackoff returns the production backoff for quota errors: the n-th
// retry waits n*15s plus up to 5s of random jitter, for at most 7 retries.
func QuotaBackoff() retry.Backoff {
	var attempt int64
	b := retry.BackoffFunc(func() (time.Duration, bool) {
		attempt++
		jitter := time.Duration(rand.Int64N(int64(5 * time.Second)))
		return time.Duration(attempt)*15*time.Second + jitter, false
	})
	return retry.WithMaxRetries(maxAttempts-1, b)
}

// do runs fn, retrying only quota/rate-limit errors under the given
// backoff. Any other error aborts immediately. The backoff is injected so
// tests can run with zero delay.
func do(ctx context.Context, backoff retry.Backoff, fn func(context.Context) error) error {
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			if isQuotaError(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil && isQuotaError(err) {
		return fmt.Errorf("%w: %v", ErrQuotaExhausted, err)
	}
	return err
}

// isQuotaError detects rate-limit responses from the generative API.
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429 || apiErr.Status == "RESOURCE_EXHAUSTED"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "resource_exhausted") || strings.Contains(msg, "quota")
}

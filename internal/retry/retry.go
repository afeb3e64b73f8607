// Package retry wraps upstream model calls with bounded retry for transient
// quota failures. Quota errors are the one failure class worth retrying;
// everything else propagates on first occurrence.
package retry

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Invoker retries a call on quota-signaling errors with exponential backoff:
// delay before retry k is BaseDelay * 2^(k-1), up to MaxRetries retries.
// Retries are strictly sequential and scoped to one call chain.
type Invoker struct {
	MaxRetries int
	BaseDelay  time.Duration

	// Sleep waits between attempts; nil uses a timer cancelled by ctx.
	// Tests inject their own to record delays.
	Sleep func(ctx context.Context, d time.Duration) error
}

// New creates an Invoker with the given retry budget and base delay.
func New(maxRetries int, baseDelay time.Duration) *Invoker {
	return &Invoker{MaxRetries: maxRetries, BaseDelay: baseDelay}
}

func (inv *Invoker) sleep(ctx context.Context, d time.Duration) error {
	if inv.Sleep != nil {
		return inv.Sleep(ctx, d)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do executes fn, retrying only on quota signals while budget remains. The
// original error is propagated unchanged when retries are exhausted or the
// error is not a quota signal.
func Do[T any](ctx context.Context, inv *Invoker, fn func() (T, error)) (T, error) {
	var zero T
	delay := inv.BaseDelay
	for attempt := 0; ; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		if !IsQuotaSignal(err) || attempt >= inv.MaxRetries {
			return zero, err
		}
		log.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Int("max_retries", inv.MaxRetries).
			Dur("delay", delay).
			Msg("Quota signal from upstream, backing off")
		if sleepErr := inv.sleep(ctx, delay); sleepErr != nil {
			// Hosting-environment timeout fired mid-backoff.
			return zero, err
		}
		delay *= 2
	}
}

// IsQuotaSignal reports whether err indicates upstream rate/resource limiting:
// a structured HTTP 429, gRPC RESOURCE_EXHAUSTED, or a textual quota marker.
func IsQuotaSignal(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return true
	}

	if s, ok := status.FromError(err); ok && s.Code() == codes.ResourceExhausted {
		return true
	}

	msg := err.Error()
	return strings.Contains(strings.ToLower(msg), "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(msg, "429")
}

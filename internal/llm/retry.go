package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// RetryPolicy controls how transient provider errors are retried.
type RetryPolicy struct {
	// Attempts is the total number of tries, including the first.
	Attempts int
	// Base is the wait before the second try; it doubles per try.
	Base time.Duration
	// Cap bounds a single wait.
	Cap time.Duration
}

// DefaultRetryPolicy tries three times, waiting about 1s and 2s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, Base: time.Second, Cap: 10 * time.Second}
}

// wait returns the delay after the given zero-based failed attempt, with
// up to 20% jitter either way.
func (p RetryPolicy) wait(attempt int) time.Duration {
	d := p.Base << attempt
	if d > p.Cap || d <= 0 {
		d = p.Cap
	}
	jitter := time.Duration((rand.Float64()*0.4 - 0.2) * float64(d))
	return max(d+jitter, 0)
}

type retrying struct {
	inner  Provider
	policy RetryPolicy
	sleep  func(context.Context, time.Duration) error
}

// WithRetry retries rate limits and unavailable providers, and retries a
// malformed reply once. Rejected requests, truncated replies and context
// errors are returned immediately.
func WithRetry(p Provider, policy RetryPolicy) Provider {
	return &retrying{inner: p, policy: policy, sleep: sleepCtx}
}

func (r *retrying) ModelID() string { return r.inner.ModelID() }

func (r *retrying) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.policy.Attempts, 1)
	malformed := 0
	var err error
	for attempt := range attempts {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		var perr *Error
		if !errors.As(err, &perr) || ctx.Err() != nil {
			return nil, err
		}
		switch perr.Kind {
		case KindRejected, KindTruncated:
			return nil, err
		case KindMalformed:
			if malformed++; malformed > 1 {
				return nil, err
			}
		}

		if attempt == attempts-1 {
			break
		}
		if serr := r.sleep(ctx, r.policy.wait(attempt)); serr != nil {
			return nil, serr
		}
	}
	return nil, err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

package llm

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerConfig configures the circuit breaker around provider calls.
type BreakerConfig struct {
	// MaxFailures is the consecutive failure count that trips the breaker.
	MaxFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// DefaultBreakerConfig returns breaker defaults.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxFailures: 5,
		OpenTimeout: 30 * time.Second,
	}
}

// BreakerProvider is a decorator that stops calling a failing provider
// until it has had time to recover. While the breaker is open, calls fail
// fast with ErrProviderUnavailable instead of burning the caller's latency
// budget on a provider that is down.
type BreakerProvider struct {
	inner   Provider
	breaker *gobreaker.CircuitBreaker
}

// WithBreaker wraps a Provider with a circuit breaker.
func WithBreaker(p Provider, cfg BreakerConfig) Provider {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = DefaultBreakerConfig().MaxFailures
	}
	if cfg.OpenTimeout == 0 {
		cfg.OpenTimeout = DefaultBreakerConfig().OpenTimeout
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    p.ModelID(),
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		IsSuccessful: isBreakerSuccess,
	})

	return &BreakerProvider{inner: p, breaker: cb}
}

func (b *BreakerProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	out, err := b.breaker.Execute(func() (any, error) {
		return b.inner.Generate(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &ErrProviderUnavailable{Err: err}
		}
		return nil, err
	}
	return out.(*Response), nil
}

func (b *BreakerProvider) ModelID() string {
	return b.inner.ModelID()
}

// isBreakerSuccess decides which errors count against the breaker.
// Only provider-side failures should trip it: a malformed response, a
// truncated response or a cancelled caller context says nothing about
// provider availability.
func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var invResp *ErrInvalidResponse
	if errors.As(err, &invResp) {
		return true
	}
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return true
	}
	return false
}

package storage

import (
	"errors"
	"fmt"

	"github.com/sony/gobreaker/v2"

	"github.com/objgate/server/internal/shared/config"
)

// StateRecorder receives breaker state changes.
type StateRecorder interface {
	SetBreakerState(name string, state int)
}

// Breaker guards direct storage calls with a circuit breaker.
// A disabled Breaker only classifies errors.
type Breaker struct {
	name string
	cb   *gobreaker.CircuitBreaker[any]
}

// NewBreaker creates a Breaker from cfg. rec may be nil.
func NewBreaker(name string, cfg config.BreakerConfig, rec StateRecorder) *Breaker {
	b := &Breaker{name: name}
	if !cfg.Enabled {
		return b
	}

	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// Missing buckets and rejected requests say nothing about endpoint health.
		IsSuccessful: func(err error) bool {
			return err == nil || isClientFault(err)
		},
	}
	if rec != nil {
		rec.SetBreakerState(name, int(gobreaker.StateClosed))
		settings.OnStateChange = func(name string, _ gobreaker.State, to gobreaker.State) {
			rec.SetBreakerState(name, int(to))
		}
	}

	b.cb = gobreaker.NewCircuitBreaker[any](settings)
	return b
}

// Do runs fn and returns its error classified under op.
func (b *Breaker) Do(op string, fn func() error) error {
	if b == nil || b.cb == nil {
		return Classify(op, fn())
	}

	_, err := b.cb.Execute(func() (any, error) {
		return nil, Classify(op, fn())
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}
	return err
}

// State returns the breaker state. A disabled breaker is always closed.
func (b *Breaker) State() gobreaker.State {
	if b == nil || b.cb == nil {
		return gobreaker.StateClosed
	}
	return b.cb.State()
}

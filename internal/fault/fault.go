// Package fault simulates the latency and transient connectivity failures of
// a real backend on the catalog boundary. A transport failure is a distinct
// channel from a semantic rejection: the former is returned as an error and
// is safe to retry unchanged, the latter travels inside the response
// envelope.
package fault

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"
)

// TransportError is a simulated connectivity failure.
type TransportError struct {
	msg string
}

func (e *TransportError) Error() string {
	return e.msg
}

// NewTransportError builds a transport failure with a user-facing message.
func NewTransportError(msg string) *TransportError {
	return &TransportError{msg: msg}
}

// IsTransport reports whether err is a (possibly wrapped) transport failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// Profile configures injection for one endpoint family. The zero value
// injects nothing, which is what tests use.
type Profile struct {
	FailureRate float64 // probability of a transport failure per call, 0..1
	MinDelay    time.Duration
	MaxDelay    time.Duration
}

// None disables injection entirely.
var None = Profile{}

// Default profiles per endpoint family, matching the latency and failure
// rates the real transport exhibits.
var (
	Products = Profile{FailureRate: 0.05, MinDelay: 300 * time.Millisecond, MaxDelay: 1000 * time.Millisecond}
	Stores   = Profile{FailureRate: 0.03, MinDelay: 200 * time.Millisecond, MaxDelay: 600 * time.Millisecond}

	Categories = Profile{FailureRate: 0.02, MinDelay: 150 * time.Millisecond, MaxDelay: 450 * time.Millisecond}

	Auth       = Profile{FailureRate: 0.03, MinDelay: 800 * time.Millisecond, MaxDelay: 2000 * time.Millisecond}
	Engagement = Profile{FailureRate: 0.05, MinDelay: 1000 * time.Millisecond, MaxDelay: 2500 * time.Millisecond}
)

// Injector applies a Profile to each call: sleep a random duration inside
// the profile's delay range, then fail with the profile's probability.
// Safe for concurrent use.
type Injector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewInjector returns an injector with a time-seeded source.
func NewInjector() *Injector {
	return NewInjectorSeeded(time.Now().UnixNano())
}

// NewInjectorSeeded returns an injector with a fixed seed, for deterministic
// behavior in tests.
func NewInjectorSeeded(seed int64) *Injector {
	return &Injector{rng: rand.New(rand.NewSource(seed))}
}

// Inject blocks for a randomized delay and then either returns nil or a
// TransportError carrying failureMsg. Cancelling ctx cuts the delay short
// and returns the context's error.
func (in *Injector) Inject(ctx context.Context, p Profile, failureMsg string) error {
	delay := p.MinDelay
	if p.MaxDelay > p.MinDelay {
		delay += time.Duration(in.randFloat() * float64(p.MaxDelay-p.MinDelay))
	}

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	if p.FailureRate > 0 && in.randFloat() < p.FailureRate {
		return &TransportError{msg: failureMsg}
	}

	return nil
}

func (in *Injector) randFloat() float64 {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.rng.Float64()
}

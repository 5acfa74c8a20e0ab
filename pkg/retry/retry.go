// Package retry executes remote calls with a bounded number of attempts and a deterministic,
// doubling backoff between them.
//
// The n-th wait after a failed attempt lasts InitialDelay * 2^(n-1): with an initial delay of one
// second the schedule is 1s, 2s, 4s, ... No jitter is applied and no wait follows the last attempt.
//
//	blockNumber, err := retry.Execute(ctx, retry.Policy{MaxAttempts: 3, InitialDelay: time.Second},
//		func(ctx context.Context) (uint64, error) {
//			return client.BlockNumber(ctx)
//		},
//	)
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/btc-alpha-stack/alpha-stack/pkg/logger"
)

const (
	DefaultMaxAttempts  = 3
	DefaultInitialDelay = 1 * time.Second
)

// ErrInvalidPolicy is returned when a Policy would allow zero invocations.
var ErrInvalidPolicy = errors.New("retry policy requires at least one attempt")

// Policy bounds a retried call.
type Policy struct {
	// MaxAttempts is the total number of invocations, including the first one.
	MaxAttempts uint
	// InitialDelay is the wait after the first failure. It doubles after every further failure.
	InitialDelay time.Duration
}

// DefaultPolicy returns three attempts starting at a one second delay.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: DefaultMaxAttempts, InitialDelay: DefaultInitialDelay}
}

// Validate reports whether the policy allows at least one invocation with a non negative delay.
func (p Policy) Validate() error {
	if p.MaxAttempts == 0 {
		return ErrInvalidPolicy
	}
	if p.InitialDelay < 0 {
		return fmt.Errorf("retry policy initial delay must not be negative, got %s", p.InitialDelay)
	}

	return nil
}

// Backoff returns the wait that follows the n-th failed attempt (n starts at 1).
func (p Policy) Backoff(n uint) time.Duration {
	if n == 0 || p.InitialDelay <= 0 {
		return 0
	}
	shift := n - 1
	if shift >= 63 || p.InitialDelay > time.Duration(math.MaxInt64>>shift) {
		return time.Duration(math.MaxInt64)
	}

	return p.InitialDelay << shift
}

// Action is a single attempt of a retried call.
type Action[T any] func(ctx context.Context) (T, error)

// ExhaustedError is returned when every attempt of a retried call failed.
type ExhaustedError struct {
	Attempts uint
	LastErr  error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all %d attempts failed: %v", e.Attempts, e.LastErr)
}

func (e *ExhaustedError) Unwrap() error {
	return e.LastErr
}

// Unrecoverable marks err so that Execute stops retrying and returns it unchanged.
func Unrecoverable(err error) error {
	return retry.Unrecoverable(err)
}

// IsUnrecoverable reports whether err was marked with Unrecoverable.
func IsUnrecoverable(err error) bool {
	return !retry.IsRecoverable(err)
}

// Timer abstracts the wait between attempts.
type Timer interface {
	After(d time.Duration) <-chan time.Time
}

type options struct {
	lggr   logger.Logger
	timer  Timer
	opName string
}

// Option customises a single Execute call.
type Option func(*options)

// WithLogger logs every failed attempt and every scheduled backoff.
func WithLogger(lggr logger.Logger) Option {
	return func(o *options) { o.lggr = lggr }
}

// WithTimer replaces the wall clock timer used for backoff waits.
func WithTimer(t Timer) Option {
	return func(o *options) { o.timer = t }
}

// WithOperation names the retried call in log entries.
func WithOperation(name string) Option {
	return func(o *options) { o.opName = name }
}

// Execute invokes action until it succeeds or policy.MaxAttempts invocations have failed.
//
// Between attempts it waits according to policy.Backoff; the wait is interrupted when ctx is done,
// in which case the context error is returned. When all attempts fail the result is an
// *ExhaustedError wrapping the error of the last attempt. An error marked with Unrecoverable ends
// the loop immediately and is returned as is.
func Execute[T any](ctx context.Context, policy Policy, action Action[T], opts ...Option) (T, error) {
	var zero T

	if err := policy.Validate(); err != nil {
		return zero, err
	}

	o := options{lggr: logger.Nop(), opName: "call"}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		attempts uint
		lastErr  error
	)

	retryOpts := []retry.Option{
		retry.Context(ctx),
		retry.Attempts(policy.MaxAttempts),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, _ error, _ *retry.Config) time.Duration {
			d := policy.Backoff(n)
			o.lggr.Debugw("Backing off before next attempt", "op", o.opName, "attempt", n+1, "delay", d)

			return d
		}),
	}
	if o.timer != nil {
		retryOpts = append(retryOpts, retry.WithTimer(o.timer))
	}

	result, err := retry.DoWithData(func() (T, error) {
		attempts++
		res, aerr := action(ctx)
		if aerr != nil {
			lastErr = aerr
			o.lggr.Warnw("Attempt failed",
				"op", o.opName, "attempt", attempts, "maxAttempts", policy.MaxAttempts, "error", aerr)

			return res, aerr
		}

		return res, nil
	}, retryOpts...)
	if err == nil {
		return result, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return zero, fmt.Errorf("%s aborted after %d attempts: %w", o.opName, attempts, ctxErr)
	}
	if IsUnrecoverable(lastErr) {
		return zero, err
	}

	o.lggr.Errorw("Retries exhausted", "op", o.opName, "attempts", attempts, "error", lastErr)

	return zero, &ExhaustedError{Attempts: attempts, LastErr: lastErr}
}

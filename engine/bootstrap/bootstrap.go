// Package bootstrap establishes and validates the chain connections a process depends on and
// assembles them into a chain.Registry.
//
// Bootstrapping is all or nothing: the first chain that is not configured or cannot be reached
// aborts the whole run, every connection opened so far is closed and no registry is returned.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/btc-alpha-stack/alpha-stack/chain"
	"github.com/btc-alpha-stack/alpha-stack/chain/evm"
	"github.com/btc-alpha-stack/alpha-stack/pkg/logger"
	"github.com/btc-alpha-stack/alpha-stack/pkg/retry"
)

// Prober validates an open client. The selector is zero when the chain ID is not checked.
type Prober interface {
	Probe(ctx context.Context, client chain.Client, selector uint64) (evm.Status, error)
}

// Bootstrapper connects to chain endpoints. It is safe for concurrent use.
type Bootstrapper struct {
	lggr           logger.Logger
	sink           EventSink
	source         EndpointSource
	dialer         chain.Dialer
	prober         Prober
	concurrency    int
	policy         retry.Policy
	attemptTimeout time.Duration
	timer          retry.Timer
}

// Option configures a Bootstrapper.
type Option func(*Bootstrapper)

// WithLogger sets the logger. It also backs the default event sink.
func WithLogger(lggr logger.Logger) Option {
	return func(b *Bootstrapper) { b.lggr = lggr }
}

// WithEventSink replaces the logging event sink.
func WithEventSink(sink EventSink) Option {
	return func(b *Bootstrapper) { b.sink = sink }
}

// WithEndpointSource sets where BootstrapAll resolves endpoint URLs. Defaults to the process
// environment.
func WithEndpointSource(source EndpointSource) Option {
	return func(b *Bootstrapper) { b.source = source }
}

// WithDialer replaces the EVM dialer.
func WithDialer(d chain.Dialer) Option {
	return func(b *Bootstrapper) { b.dialer = d }
}

// WithProber replaces the EVM health check.
func WithProber(p Prober) Option {
	return func(b *Bootstrapper) { b.prober = p }
}

// WithConcurrency sets how many chains are connected in parallel. Values below 2 connect strictly
// in configuration order.
func WithConcurrency(n int) Option {
	return func(b *Bootstrapper) { b.concurrency = max(n, 1) }
}

// WithRetry retries each connection up to attempts times, waiting delay, 2*delay, ... in between.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(b *Bootstrapper) {
		b.policy = retry.Policy{MaxAttempts: attempts, InitialDelay: delay}
	}
}

// WithAttemptTimeout bounds every single connection attempt. Zero means unbounded.
func WithAttemptTimeout(d time.Duration) Option {
	return func(b *Bootstrapper) { b.attemptTimeout = d }
}

// WithRetryTimer replaces the timer used between retried attempts.
func WithRetryTimer(t retry.Timer) Option {
	return func(b *Bootstrapper) { b.timer = t }
}

// New returns a Bootstrapper that dials EVM endpoints once each, sequentially, without a timeout.
func New(opts ...Option) *Bootstrapper {
	b := &Bootstrapper{
		lggr:        logger.Nop(),
		source:      EnvEndpoints{},
		dialer:      evm.Dialer{},
		prober:      evm.Prober{},
		concurrency: 1,
		policy:      retry.Policy{MaxAttempts: 1, InitialDelay: retry.DefaultInitialDelay},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.sink == nil {
		b.sink = NewLogSink(b.lggr)
	}

	return b
}

// Connect opens and validates a connection to the chain described by entry at endpointURL.
//
// An empty endpointURL fails with a *ConfigError naming entry.EndpointVariable and an invalid
// retry policy fails with an error wrapping retry.ErrInvalidPolicy, both before dialing. A dial or health
// check failure, after the configured retries, fails with a *ConnectivityError. Every attempt emits
// a started event followed by a succeeded or failed event.
func (b *Bootstrapper) Connect(ctx context.Context, entry ConfigEntry, endpointURL string) (chain.Connection, error) {
	if entry.ChainName == "" {
		return chain.Connection{}, errEmptyChainName
	}
	if endpointURL == "" {
		return chain.Connection{}, &ConfigError{Variable: entry.EndpointVariable}
	}
	if err := b.policy.Validate(); err != nil {
		return chain.Connection{}, fmt.Errorf("invalid bootstrap retry policy: %w", err)
	}

	traceID := uuid.NewString()
	endpoint := evm.RedactURL(endpointURL)
	var attempt uint

	opts := []retry.Option{
		retry.WithLogger(b.lggr.With("traceID", traceID, "chain", entry.ChainName)),
		retry.WithOperation("connect"),
	}
	if b.timer != nil {
		opts = append(opts, retry.WithTimer(b.timer))
	}

	conn, err := retry.Execute(ctx, b.policy, func(ctx context.Context) (chain.Connection, error) {
		attempt++
		ev := Event{TraceID: traceID, Chain: entry.ChainName, Endpoint: endpoint, Attempt: attempt}

		ev.Kind = EventAttemptStarted
		b.sink.Emit(ev)

		start := time.Now()
		conn, err := b.attempt(ctx, entry, endpointURL)
		ev.Elapsed = time.Since(start)
		if err != nil {
			ev.Kind, ev.Err = EventAttemptFailed, err
			b.sink.Emit(ev)

			if errors.Is(err, evm.ErrChainIDMismatch) {
				return chain.Connection{}, retry.Unrecoverable(err)
			}

			return chain.Connection{}, err
		}

		ev.Kind, ev.ChainID = EventAttemptSucceeded, conn.ChainID()
		b.sink.Emit(ev)

		return conn, nil
	}, opts...)
	if err != nil {
		return chain.Connection{}, &ConnectivityError{Name: entry.ChainName, Cause: err}
	}

	return conn, nil
}

func (b *Bootstrapper) attempt(ctx context.Context, entry ConfigEntry, endpointURL string) (chain.Connection, error) {
	if b.attemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.attemptTimeout)
		defer cancel()
	}

	client, err := b.dialer.Dial(ctx, endpointURL)
	if err != nil {
		return chain.Connection{}, err
	}

	status, err := b.prober.Probe(ctx, client, entry.ChainSelector)
	if err != nil {
		client.Close()

		return chain.Connection{}, err
	}

	return chain.NewConnection(entry.ChainName, client, status.ChainID, entry.ChainSelector), nil
}

// BootstrapAll connects to every chain in entries and returns them as a registry in entry order.
//
// Endpoint URLs are resolved through the configured EndpointSource before anything is dialed, so a
// missing value fails with a *ConfigError without touching the network. The first failure aborts
// the run: outstanding attempts are cancelled, connections already opened are closed and the
// error is returned without a registry.
func (b *Bootstrapper) BootstrapAll(ctx context.Context, entries []ConfigEntry) (*chain.Registry, error) {
	if err := b.policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bootstrap retry policy: %w", err)
	}

	endpoints, err := b.resolve(entries)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	lggr := b.lggr.With("runID", runID)
	lggr.Infow("Bootstrapping chains", "count", len(entries), "concurrency", b.concurrency)

	conns := make([]chain.Connection, len(entries))
	if b.concurrency <= 1 {
		err = b.connectSequential(ctx, entries, endpoints, conns)
	} else {
		err = b.connectConcurrent(ctx, entries, endpoints, conns)
	}
	if err != nil {
		closeAll(conns)
		lggr.Errorw("Chain bootstrap failed", "error", err)

		return nil, err
	}

	reg, err := chain.NewRegistry(conns)
	if err != nil {
		closeAll(conns)

		return nil, err
	}
	lggr.Infow("Bootstrapped chains", "chains", reg.Names())

	return reg, nil
}

func (b *Bootstrapper) resolve(entries []ConfigEntry) ([]string, error) {
	seen := make(map[string]struct{}, len(entries))
	endpoints := make([]string, len(entries))

	for i, e := range entries {
		if e.ChainName == "" {
			return nil, fmt.Errorf("entry %d: %w", i, errEmptyChainName)
		}
		if _, ok := seen[e.ChainName]; ok {
			return nil, fmt.Errorf("%w: %s", chain.ErrDuplicateChain, e.ChainName)
		}
		seen[e.ChainName] = struct{}{}

		if e.EndpointVariable == "" {
			return nil, fmt.Errorf("chain %s has no endpoint variable", e.ChainName)
		}
		endpoints[i] = b.source.Endpoint(e.EndpointVariable)
		if endpoints[i] == "" {
			return nil, &ConfigError{Variable: e.EndpointVariable}
		}
	}

	return endpoints, nil
}

func (b *Bootstrapper) connectSequential(
	ctx context.Context, entries []ConfigEntry, endpoints []string, conns []chain.Connection,
) error {
	for i, e := range entries {
		conn, err := b.Connect(ctx, e, endpoints[i])
		if err != nil {
			return err
		}
		conns[i] = conn
	}

	return nil
}

// connectConcurrent writes each connection to the index of its entry, so the registry order does
// not depend on completion order.
func (b *Bootstrapper) connectConcurrent(
	ctx context.Context, entries []ConfigEntry, endpoints []string, conns []chain.Connection,
) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, e := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			conn, err := b.Connect(gctx, e, endpoints[i])
			if err != nil {
				return err
			}
			conns[i] = conn

			return nil
		})
	}

	return g.Wait()
}

func closeAll(conns []chain.Connection) {
	for _, c := range conns {
		if c.Client() != nil {
			c.Client().Close()
		}
	}
}

// Package evm connects to and validates EVM JSON-RPC endpoints.
package evm

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/btc-alpha-stack/alpha-stack/chain"
)

const (
	// DefaultDialTimeout bounds the dial when the caller's context has no deadline.
	DefaultDialTimeout = 10 * time.Second

	// DefaultHealthCheckTimeout bounds each probe call when the caller's context has no deadline.
	DefaultHealthCheckTimeout = 2 * time.Second
)

var errEmptyEndpoint = errors.New("endpoint URL is empty")

// Dialer opens ethclient connections. The zero value is ready to use.
type Dialer struct {
	// Timeout bounds a single dial. Zero means DefaultDialTimeout.
	Timeout time.Duration
}

var _ chain.Dialer = Dialer{}

// Dial opens an ethclient connection to endpoint. Supported schemes are http, https, ws and wss.
//
// Dialing an http endpoint does not touch the network; reachability is established by Probe.
func (d Dialer) Dial(ctx context.Context, endpoint string) (chain.Client, error) {
	if err := validateEndpoint(endpoint); err != nil {
		return nil, err
	}

	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	dialCtx, cancel := ensureTimeout(ctx, timeout)
	defer cancel()

	client, err := ethclient.DialContext(dialCtx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to dial endpoint %s: %w", RedactURL(endpoint), err)
	}

	return client, nil
}

func validateEndpoint(endpoint string) error {
	if endpoint == "" {
		return errEmptyEndpoint
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint URL: %w", err)
	}

	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("unsupported endpoint scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint URL %s has no host", RedactURL(endpoint))
	}

	return nil
}

// RedactURL strips credentials, path and query from an endpoint URL. Provider URLs commonly embed
// API keys in either place.
func RedactURL(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return "<invalid url>"
	}

	return u.Scheme + "://" + u.Host
}

// ensureTimeout derives a cancelable context from parent. If parent already has a deadline it is
// kept, otherwise timeout is applied.
func ensureTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := parent.Deadline(); hasDeadline {
		return context.WithCancel(parent)
	}

	return context.WithTimeout(parent, timeout)
}

package evm

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	chainsel "github.com/smartcontractkit/chain-selectors"

	"github.com/btc-alpha-stack/alpha-stack/chain"
)

// ErrChainIDMismatch is returned when an endpoint serves a different chain than the one it was
// configured for.
var ErrChainIDMismatch = errors.New("endpoint serves an unexpected chain")

// Status is the result of a successful probe.
type Status struct {
	BlockNumber uint64
	ChainID     uint64
}

// Prober checks that an open client reaches a live EVM node.
type Prober struct {
	// Timeout bounds each RPC call of the probe. Zero means DefaultHealthCheckTimeout.
	Timeout time.Duration
}

// Probe calls eth_blockNumber and eth_chainId on client. When selector is non zero the reported
// chain ID must match the selector's EVM chain ID, otherwise the error wraps ErrChainIDMismatch.
func (p Prober) Probe(ctx context.Context, client chain.Client, selector uint64) (Status, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultHealthCheckTimeout
	}

	var status Status

	blockNumber, err := callWithTimeout(ctx, timeout, client.BlockNumber)
	if err != nil {
		return Status{}, fmt.Errorf("health check failed: %w", maybeDataErr(err))
	}
	status.BlockNumber = blockNumber

	chainID, err := callWithTimeout(ctx, timeout, client.ChainID)
	if err != nil {
		return Status{}, fmt.Errorf("failed to read chain id: %w", maybeDataErr(err))
	}
	if !chainID.IsUint64() {
		return Status{}, fmt.Errorf("chain id %s does not fit in 64 bits", chainID)
	}
	status.ChainID = chainID.Uint64()

	if selector != 0 {
		if err := VerifyChainID(selector, status.ChainID); err != nil {
			return Status{}, err
		}
	}

	return status, nil
}

// VerifyChainID checks that chainID is the EVM chain ID of selector.
func VerifyChainID(selector uint64, chainID uint64) error {
	want, err := ExpectedChainID(selector)
	if err != nil {
		return err
	}
	if want != chainID {
		name := strconv.FormatUint(selector, 10)
		if details, ok := chainsel.ChainBySelector(selector); ok {
			name = details.Name
		}

		return fmt.Errorf("%w: %s expects chain id %d, got %d", ErrChainIDMismatch, name, want, chainID)
	}

	return nil
}

// ExpectedChainID returns the EVM chain ID registered for selector.
func ExpectedChainID(selector uint64) (uint64, error) {
	family, err := chainsel.GetSelectorFamily(selector)
	if err != nil {
		return 0, fmt.Errorf("unknown chain selector %d: %w", selector, err)
	}
	if family != chainsel.FamilyEVM {
		return 0, fmt.Errorf("chain selector %d belongs to family %q, not %q", selector, family, chainsel.FamilyEVM)
	}

	raw, err := chainsel.GetChainIDFromSelector(selector)
	if err != nil {
		return 0, fmt.Errorf("unknown chain selector %d: %w", selector, err)
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("chain selector %d has non numeric chain id %q: %w", selector, raw, err)
	}

	return id, nil
}

// callWithTimeout runs a single RPC call under its own timeout.
func callWithTimeout[T any](ctx context.Context, timeout time.Duration, call func(context.Context) (T, error)) (T, error) {
	callCtx, cancel := ensureTimeout(ctx, timeout)
	defer cancel()

	return call(callCtx)
}

// maybeDataErr appends the data of a JSON-RPC error to its message, keeping err in the chain.
func maybeDataErr(err error) error {
	var d rpc.DataError
	if errors.As(err, &d) && d.ErrorData() != nil {
		return fmt.Errorf("%w: %v", err, d.ErrorData())
	}

	return err
}

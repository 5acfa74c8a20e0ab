package chain

import (
	"context"
	"math/big"
)

// Client is the handle of an open connection to a single RPC endpoint. It carries the calls
// needed to validate the endpoint; callers that need more type-assert to the concrete client,
// e.g. *ethclient.Client.
type Client interface {
	BlockNumber(ctx context.Context) (uint64, error)
	ChainID(ctx context.Context) (*big.Int, error)
	Close()
}

// Dialer opens a Client bound to exactly one endpoint URL.
type Dialer interface {
	Dial(ctx context.Context, endpoint string) (Client, error)
}

// DialerFunc adapts a function to the Dialer interface.
type DialerFunc func(ctx context.Context, endpoint string) (Client, error)

func (f DialerFunc) Dial(ctx context.Context, endpoint string) (Client, error) {
	return f(ctx, endpoint)
}

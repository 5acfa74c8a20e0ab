package chain

import (
	"fmt"
)

// Connection is a validated binding between a logical chain name and an open client to its RPC
// endpoint. Connections are only produced by a successful bootstrap and never change afterwards.
type Connection struct {
	name     string
	client   Client
	chainID  uint64
	selector uint64
}

// NewConnection binds name to an already validated client. chainID is the identifier reported by
// the endpoint; selector is the chain-selectors identifier the chain was checked against, or zero.
func NewConnection(name string, client Client, chainID, selector uint64) Connection {
	return Connection{
		name:     name,
		client:   client,
		chainID:  chainID,
		selector: selector,
	}
}

// Name returns the logical chain name, e.g. "ethereum".
func (c Connection) Name() string { return c.name }

// Client returns the handle bound to the chain endpoint.
func (c Connection) Client() Client { return c.client }

// ChainID returns the chain ID reported by the endpoint during validation.
func (c Connection) ChainID() uint64 { return c.chainID }

// ChainSelector returns the selector the chain ID was verified against, zero when unchecked.
func (c Connection) ChainSelector() uint64 { return c.selector }

// String returns "<name> (<chain id>)".
func (c Connection) String() string {
	return fmt.Sprintf("%s (%d)", c.name, c.chainID)
}

/*
Package chain holds the validated chain connections a process runs against.

# Connections

A Connection binds a logical chain name such as "ethereum" to an open Client for its RPC endpoint,
together with the chain ID the endpoint reported when it was validated. Connections are produced by
the bootstrapper (see engine/bootstrap) and are immutable:

	conn, err := registry.Get("ethereum")
	if err != nil {
		return err // wraps chain.ErrChainNotFound
	}
	head, err := conn.Client().BlockNumber(ctx)

# Registry

A Registry is the ordered collection of every connection of a run. It is either complete or absent:
the bootstrapper never hands out a registry with a chain that failed validation. Iteration order is
the configured order:

	for conn := range registry.All() {
		fmt.Println(conn) // "ethereum (1)"
	}

Registries never change after construction and can be read from multiple goroutines. Close releases
every client handle when the process is done with them.

# Clients and dialers

Client is the small subset of an RPC client needed to validate an endpoint. Dialer opens a Client
for an endpoint URL; the EVM implementation lives in chain/evm.
*/
package chain

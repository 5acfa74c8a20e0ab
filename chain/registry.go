package chain

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

var (
	ErrChainNotFound  = errors.New("chain not found")
	ErrDuplicateChain = errors.New("duplicate chain name")
)

// Registry is the ordered collection of validated chain connections of a process run.
//
// A Registry is built once by the bootstrapper and is read-only afterwards, so it can be shared
// between goroutines without synchronization. Iteration follows the order in which chains were
// configured.
type Registry struct {
	conns []Connection
	index map[string]int
}

// NewRegistry builds a Registry from conns, keeping their order. Names must be unique and
// non-empty. The slice is copied.
func NewRegistry(conns []Connection) (*Registry, error) {
	index := make(map[string]int, len(conns))
	for i, c := range conns {
		if c.Name() == "" {
			return nil, fmt.Errorf("connection at position %d has no name", i)
		}
		if _, ok := index[c.Name()]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateChain, c.Name())
		}
		index[c.Name()] = i
	}

	return &Registry{
		conns: slices.Clone(conns),
		index: index,
	}, nil
}

// Len returns the number of chains in the registry.
func (r *Registry) Len() int {
	return len(r.conns)
}

// Get returns the connection registered under name.
func (r *Registry) Get(name string) (Connection, error) {
	i, ok := r.index[name]
	if !ok {
		return Connection{}, fmt.Errorf("%w: %s", ErrChainNotFound, name)
	}

	return r.conns[i], nil
}

// Exists reports whether a chain is registered under name.
func (r *Registry) Exists(name string) bool {
	_, ok := r.index[name]

	return ok
}

// Names returns the chain names in registry order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.conns))
	for _, c := range r.conns {
		names = append(names, c.Name())
	}

	return names
}

// Connections returns a copy of the connections in registry order.
func (r *Registry) Connections() []Connection {
	return slices.Clone(r.conns)
}

// All returns an iterator over the connections in registry order.
func (r *Registry) All() iter.Seq[Connection] {
	return slices.Values(r.conns)
}

// Close closes every client handle. The registry must not be used afterwards.
func (r *Registry) Close() {
	for _, c := range r.conns {
		if c.Client() != nil {
			c.Client().Close()
		}
	}
}

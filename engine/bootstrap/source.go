package bootstrap

import (
	"os"
)

// EndpointSource resolves the configuration variable of a chain to its endpoint URL. An empty
// result means the value is not configured.
type EndpointSource interface {
	Endpoint(variable string) string
}

// EndpointSourceFunc adapts a function to the EndpointSource interface.
type EndpointSourceFunc func(variable string) string

func (f EndpointSourceFunc) Endpoint(variable string) string { return f(variable) }

// StaticEndpoints maps configuration variables to endpoint URLs.
type StaticEndpoints map[string]string

func (s StaticEndpoints) Endpoint(variable string) string { return s[variable] }

// EnvEndpoints reads endpoint URLs directly from the process environment.
type EnvEndpoints struct{}

func (EnvEndpoints) Endpoint(variable string) string { return os.Getenv(variable) }

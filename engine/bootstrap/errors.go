package bootstrap

import (
	"errors"
	"fmt"
)

var errEmptyChainName = errors.New("chain name is empty")

// ConfigError reports a required configuration value that is missing.
type ConfigError struct {
	// Variable is the configuration key that holds the value, e.g. ETH_RPC_URL.
	Variable string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required configuration value %s", e.Variable)
}

// ConnectivityError reports a chain whose endpoint could not be reached or validated.
type ConnectivityError struct {
	Name  string
	Cause error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("failed to connect to chain %s: %v", e.Name, e.Cause)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Cause
}

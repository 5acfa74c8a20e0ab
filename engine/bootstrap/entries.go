package bootstrap

import (
	chainsel "github.com/smartcontractkit/chain-selectors"
)

// ConfigEntry pairs a logical chain name with the configuration variable holding its endpoint URL.
type ConfigEntry struct {
	ChainName        string `mapstructure:"name" yaml:"name" json:"name"`
	EndpointVariable string `mapstructure:"endpoint_variable" yaml:"endpoint_variable" json:"endpoint_variable"`
	// ChainSelector is optional. When set the endpoint must report the selector's chain ID.
	ChainSelector uint64 `mapstructure:"chain_selector" yaml:"chain_selector,omitempty" json:"chain_selector,omitempty"`
}

// DefaultEntries returns the chains a trading process connects to when none are configured.
func DefaultEntries() []ConfigEntry {
	return []ConfigEntry{
		{ChainName: "ethereum", EndpointVariable: "ETH_RPC_URL", ChainSelector: chainsel.ETHEREUM_MAINNET.Selector},
		{ChainName: "polygon", EndpointVariable: "POLYGON_RPC_URL", ChainSelector: chainsel.POLYGON_MAINNET.Selector},
		{ChainName: "arbitrum", EndpointVariable: "ARBITRUM_RPC_URL", ChainSelector: chainsel.ETHEREUM_MAINNET_ARBITRUM_1.Selector},
		{ChainName: "optimism", EndpointVariable: "OPTIMISM_RPC_URL", ChainSelector: chainsel.ETHEREUM_MAINNET_OPTIMISM_1.Selector},
		{ChainName: "bsc", EndpointVariable: "BSC_RPC_URL", ChainSelector: chainsel.BINANCE_SMART_CHAIN_MAINNET.Selector},
	}
}

// Package config loads the runner configuration from an optional YAML file, an optional .env file
// and the process environment.
//
// Values are resolved in this order, later sources winning: defaults, the config file, the .env
// file, the process environment. Endpoint URLs are never read from defaults; a chain whose URL is
// not configured fails the bootstrap.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/btc-alpha-stack/alpha-stack/engine/bootstrap"
	"github.com/btc-alpha-stack/alpha-stack/pkg/logger"
)

// LogConfig configures the process logger.
type LogConfig struct {
	Level    string `mapstructure:"level" yaml:"level"`       // debug, info, warn, error
	Encoding string `mapstructure:"encoding" yaml:"encoding"` // json or console
}

// RetryConfig configures how often a chain connection is attempted.
type RetryConfig struct {
	Attempts uint          `mapstructure:"attempts" yaml:"attempts"` // Total attempts per chain, including the first
	Delay    time.Duration `mapstructure:"delay" yaml:"delay"`       // Wait after the first failure, doubled after each further one
}

// BootstrapConfig configures the chain bootstrap.
type BootstrapConfig struct {
	Concurrency    int           `mapstructure:"concurrency" yaml:"concurrency"`         // Chains connected in parallel, 1 is sequential
	Retry          RetryConfig   `mapstructure:"retry" yaml:"retry"`                     // Retry policy of a single chain
	AttemptTimeout time.Duration `mapstructure:"attempt_timeout" yaml:"attempt_timeout"` // Bound of a single attempt, 0 is unbounded
}

// Config wraps the entire runner configuration.
//
// WARNING: Endpoints commonly embed provider API keys and should not be logged.
type Config struct {
	Log       LogConfig               `mapstructure:"log" yaml:"log"`
	Bootstrap BootstrapConfig         `mapstructure:"bootstrap" yaml:"bootstrap"`
	Chains    []bootstrap.ConfigEntry `mapstructure:"chains" yaml:"chains"`
	// Endpoints holds the endpoint URL of every chain, keyed by the lower cased endpoint variable.
	Endpoints map[string]string `mapstructure:"endpoints" yaml:"endpoints,omitempty"`
}

var _ bootstrap.EndpointSource = (*Config)(nil)

// Endpoint returns the URL configured for the endpoint variable, e.g. ETH_RPC_URL.
func (c *Config) Endpoint(variable string) string {
	return c.Endpoints[strings.ToLower(variable)]
}

// LoggerConfig converts the log section into a logger configuration.
func (c *Config) LoggerConfig() (logger.Config, error) {
	return logger.ParseConfig(c.Log.Level, c.Log.Encoding)
}

// BootstrapOptions converts the bootstrap section into bootstrapper options. The config itself
// is the endpoint source.
func (c *Config) BootstrapOptions() []bootstrap.Option {
	return []bootstrap.Option{
		bootstrap.WithEndpointSource(c),
		bootstrap.WithConcurrency(c.Bootstrap.Concurrency),
		bootstrap.WithRetry(c.Bootstrap.Retry.Attempts, c.Bootstrap.Retry.Delay),
		bootstrap.WithAttemptTimeout(c.Bootstrap.AttemptTimeout),
	}
}

// Validate checks the values that cannot be checked by decoding alone.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.LoggerConfig(); err != nil {
		errs = append(errs, err)
	}
	if c.Bootstrap.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("bootstrap.concurrency must be at least 1, got %d", c.Bootstrap.Concurrency))
	}
	if c.Bootstrap.Retry.Attempts < 1 {
		errs = append(errs, errors.New("bootstrap.retry.attempts must be at least 1"))
	}
	if c.Bootstrap.Retry.Delay < 0 {
		errs = append(errs, fmt.Errorf("bootstrap.retry.delay must not be negative, got %s", c.Bootstrap.Retry.Delay))
	}
	if c.Bootstrap.AttemptTimeout < 0 {
		errs = append(errs, fmt.Errorf("bootstrap.attempt_timeout must not be negative, got %s", c.Bootstrap.AttemptTimeout))
	}

	seen := make(map[string]struct{}, len(c.Chains))
	for i, e := range c.Chains {
		switch {
		case e.ChainName == "":
			errs = append(errs, fmt.Errorf("chains[%d]: name is required", i))
		case e.EndpointVariable == "":
			errs = append(errs, fmt.Errorf("chains[%d] %s: endpoint_variable is required", i, e.ChainName))
		}
		if _, ok := seen[e.ChainName]; ok && e.ChainName != "" {
			errs = append(errs, fmt.Errorf("chains[%d]: duplicate chain %s", i, e.ChainName))
		}
		seen[e.ChainName] = struct{}{}
	}

	return errors.Join(errs...)
}

// Load loads the config from the file path, falling back to defaults and env vars if the file
// does not exist. If the file exists, any env vars that are set override the values loaded from
// the file.
func Load(filePath string) (*Config, error) {
	v := newViper()

	if filePath != "" {
		v.SetConfigFile(filePath)
		if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
			}
		}
	}

	return unmarshal(v)
}

// LoadEnv loads the config from defaults and environment variables only.
func LoadEnv() (*Config, error) {
	return unmarshal(newViper())
}

// LoadDotEnv copies the variables of the given .env files into the process environment. Variables
// that are already set are left untouched and missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", p, err)
		}
	}

	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	var chains []bootstrap.ConfigEntry
	if err := v.UnmarshalKey("chains", &chains); err != nil {
		return nil, fmt.Errorf("failed to decode chains: %w", err)
	}
	if len(chains) == 0 {
		chains = bootstrap.DefaultEntries()
	}
	if err := bindEndpointEnvs(v, chains); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Chains = chains

	return cfg, nil
}

var (
	defaults = map[string]any{
		"log.level":                 "info",
		"log.encoding":              string(logger.EncodingConsole),
		"bootstrap.concurrency":     1,
		"bootstrap.retry.attempts":  1,
		"bootstrap.retry.delay":     "1s",
		"bootstrap.attempt_timeout": "0s",
	}

	// envBindings maps config keys to the environment variables that can provide them. The first
	// variable that is set wins.
	envBindings = map[string][]string{
		"log.level":                 {"LOG_LEVEL"},
		"log.encoding":              {"LOG_ENCODING"},
		"bootstrap.concurrency":     {"BOOTSTRAP_CONCURRENCY"},
		"bootstrap.retry.attempts":  {"BOOTSTRAP_RETRY_ATTEMPTS"},
		"bootstrap.retry.delay":     {"BOOTSTRAP_RETRY_DELAY"},
		"bootstrap.attempt_timeout": {"BOOTSTRAP_ATTEMPT_TIMEOUT"},
	}
)

// bindEnvs binds the environment variables to the viper instance.
func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		inputs := slices.Insert(slices.Clone(envs), 0, key)

		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}

	return nil
}

// bindEndpointEnvs binds endpoints.<variable> to the variable itself for every chain, so
// ETH_RPC_URL populates endpoints.eth_rpc_url.
func bindEndpointEnvs(v *viper.Viper, chains []bootstrap.ConfigEntry) error {
	for _, c := range chains {
		if c.EndpointVariable == "" {
			continue
		}
		key := "endpoints." + strings.ToLower(c.EndpointVariable)
		if err := v.BindEnv(key, c.EndpointVariable); err != nil {
			return err
		}
	}

	return nil
}

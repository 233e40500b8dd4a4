package httpclient

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied by DefaultConfig and by LoadConfig for zero values.
const (
	DefaultTimeout         = 30 * time.Second
	DefaultRetries         = 2
	DefaultBreakerFailures = 5
	DefaultBreakerTimeout  = 30 * time.Second
	DefaultUserAgent       = "sanchar/1.0"
)

// Config controls the fetch client. YAML decoding goes through
// UnmarshalYAML so the duration fields accept strings like "10s".
type Config struct {
	// Timeout bounds a single request attempt.
	Timeout time.Duration

	// Retries is the number of additional attempts after a retryable
	// failure. Zero means one attempt total.
	Retries int

	// RateLimit caps requests per second per host. Zero disables limiting.
	RateLimit int

	// EnableBreaker turns on the per-host circuit breaker.
	EnableBreaker bool

	// BreakerFailures is the request count after which the failure ratio
	// can trip the breaker.
	BreakerFailures int

	// BreakerTimeout is how long an open breaker stays open.
	BreakerTimeout time.Duration

	// EnableMetrics records Prometheus metrics for each request.
	EnableMetrics bool

	// UserAgent overrides the default User-Agent header.
	UserAgent string
}

// DefaultConfig returns a Config with the package defaults filled in.
func DefaultConfig() Config {
	return Config{
		Timeout:         DefaultTimeout,
		Retries:         DefaultRetries,
		BreakerFailures: DefaultBreakerFailures,
		BreakerTimeout:  DefaultBreakerTimeout,
		UserAgent:       DefaultUserAgent,
	}
}

// UnmarshalYAML decodes a Config, accepting Go duration strings ("10s",
// "1m") for the timeout fields.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Timeout         string `yaml:"timeout"`
		Retries         int    `yaml:"retries"`
		RateLimit       int    `yaml:"rateLimit"`
		EnableBreaker   bool   `yaml:"enableBreaker"`
		BreakerFailures int    `yaml:"breakerFailures"`
		BreakerTimeout  string `yaml:"breakerTimeout"`
		EnableMetrics   bool   `yaml:"enableMetrics"`
		UserAgent       string `yaml:"userAgent"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		c.Timeout = d
	}
	if raw.BreakerTimeout != "" {
		d, err := time.ParseDuration(raw.BreakerTimeout)
		if err != nil {
			return fmt.Errorf("breakerTimeout: %w", err)
		}
		c.BreakerTimeout = d
	}
	c.Retries = raw.Retries
	c.RateLimit = raw.RateLimit
	c.EnableBreaker = raw.EnableBreaker
	c.BreakerFailures = raw.BreakerFailures
	c.EnableMetrics = raw.EnableMetrics
	c.UserAgent = raw.UserAgent
	return nil
}

// LoadConfig reads a YAML config file and fills unset values with defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Retries == 0 {
		c.Retries = DefaultRetries
	}
	if c.BreakerFailures == 0 {
		c.BreakerFailures = DefaultBreakerFailures
	}
	if c.BreakerTimeout == 0 {
		c.BreakerTimeout = DefaultBreakerTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
}

package advisor

import (
	"net/http"
	"time"

	"prd-advisors/internal/common/config"
)

const DefaultTimeout = 60 * time.Second

type Config struct {
	Timeout     time.Duration
	Model       string
	Temperature float64
	MaxTokens   int
	// Transport overrides the HTTP transport for advisor calls; nil uses the default.
	Transport   http.RoundTripper
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:     DefaultTimeout,
		Model:       "gpt-3.5-turbo",
		Temperature: config.DefaultTemperature,
		MaxTokens:   1000,
	}
}

// LoadConfig maps the advisors section of the application config, keeping
// defaults for unset fields.
func LoadConfig(cfg config.AdvisorsConfig) *Config {
	c := DefaultConfig()
	if cfg.Timeout > 0 {
		c.Timeout = config.GetDuration(cfg.Timeout)
	}
	if cfg.Model != "" {
		c.Model = cfg.Model
	}
	if cfg.Temperature != nil {
		c.Temperature = *cfg.Temperature
	}
	if cfg.MaxTokens > 0 {
		c.MaxTokens = cfg.MaxTokens
	}
	return c
}

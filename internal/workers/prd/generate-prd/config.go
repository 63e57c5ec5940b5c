// internal/workers/prd/generate-prd/config.go
package generateprd

import "time"

type Config struct {
	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Timeout: 120 * time.Second,
	}
}

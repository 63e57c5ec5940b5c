package aggregator

import "time"

type Config struct {
	// Now stamps the generation date on documents.
	Now func() time.Time
}

func DefaultConfig() *Config {
	return &Config{Now: time.Now}
}

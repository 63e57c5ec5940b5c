package advisor

import (
	"testing"
	"time"

	"prd-advisors/internal/common/config"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	c := LoadConfig(config.AdvisorsConfig{})
	assert.Equal(t, DefaultConfig(), c)

	temp := 0.2
	c = LoadConfig(config.AdvisorsConfig{Timeout: 1500, Model: "llama", Temperature: &temp, MaxTokens: 64})
	assert.Equal(t, 1500*time.Millisecond, c.Timeout)
	assert.Equal(t, "llama", c.Model)
	assert.Equal(t, 0.2, c.Temperature)
	assert.Equal(t, 64, c.MaxTokens)
}

func TestLoadConfig_ZeroTemperature(t *testing.T) {
	zero := 0.0
	c := LoadConfig(config.AdvisorsConfig{Temperature: &zero})
	assert.Equal(t, 0.0, c.Temperature)
}

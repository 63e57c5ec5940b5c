package database

import (
	"context"
	"testing"
	"time"

	"prd-advisors/internal/common/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisClient_ConnectWithRetry(t *testing.T) {
	mr := miniredis.RunT(t)

	c := NewRedis(config.RedisConfig{Address: mr.Addr()})
	defer c.Close()

	require.NoError(t, c.ConnectWithRetry(context.Background(), 3, 10*time.Millisecond))
}

func TestRedisClient_ConnectWithRetry_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	c := NewRedis(config.RedisConfig{Address: addr})
	defer c.Close()

	err := c.ConnectWithRetry(context.Background(), 2, 5*time.Millisecond)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
}

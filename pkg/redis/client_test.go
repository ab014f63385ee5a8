package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisOptions_HostPort(t *testing.T) {
	opts, err := Options{Host: "localhost", Port: 6379, DB: 2, PoolSize: 20}.redisOptions()
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 20, opts.PoolSize)
}

func TestRedisOptions_URLWins(t *testing.T) {
	opts, err := Options{URL: "redis://:secret@cache:6380/1", Host: "ignored", Port: 1, PoolSize: 5}.redisOptions()
	require.NoError(t, err)

	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 1, opts.DB)
	assert.Equal(t, 5, opts.PoolSize)
}

func TestRedisOptions_BadURL(t *testing.T) {
	_, err := Options{URL: "http://not-redis"}.redisOptions()
	assert.Error(t, err)
}

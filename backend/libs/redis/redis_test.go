package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClientRejectsEmptyAddr(t *testing.T) {
	_, err := NewRedisClient(Options{Addr: " "})
	require.EqualError(t, err, "redis: addr is empty")
}

func TestClientOptionsHostPort(t *testing.T) {
	opts, err := ClientOptions(Options{Addr: "cache:6379", Password: "secret", DB: 2})
	require.NoError(t, err)
	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, dialTimeout, opts.DialTimeout)
}

func TestClientOptionsURL(t *testing.T) {
	opts, err := ClientOptions(Options{Addr: "redis://:pw@cache:6380/3"})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 3, opts.DB)

	opts, err = ClientOptions(Options{Addr: "redis://cache:6380/3", DB: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, opts.DB)

	_, err = ClientOptions(Options{Addr: "http://cache"})
	require.Error(t, err)
}

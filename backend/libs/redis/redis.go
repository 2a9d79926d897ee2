package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout  = 5 * time.Second
	ioTimeout    = 3 * time.Second
	pingAttempts = 3
)

// Options describes how to reach a redis instance. Addr is either host:port
// or a redis:// / rediss:// URL; explicit Password and DB override the URL.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// ClientOptions resolves opts into go-redis options without connecting.
func ClientOptions(opts Options) (*redis.Options, error) {
	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		return nil, errors.New("redis: addr is empty")
	}

	var resolved *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("redis: parse url: %w", err)
		}
		resolved = parsed
	} else {
		resolved = &redis.Options{Addr: addr}
	}
	if opts.Password != "" {
		resolved.Password = opts.Password
	}
	if opts.DB != 0 {
		resolved.DB = opts.DB
	}

	resolved.DialTimeout = dialTimeout
	resolved.ReadTimeout = ioTimeout
	resolved.WriteTimeout = ioTimeout
	return resolved, nil
}

// NewRedisClient returns a go-redis client once PING succeeds, retrying a
// few times while the server starts up.
func NewRedisClient(opts Options) (*redis.Client, error) {
	resolved, err := ClientOptions(opts)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(resolved)

	var pingErr error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
		pingErr = client.Ping(ctx).Err()
		cancel()
		if pingErr == nil {
			return client, nil
		}
		if attempt < pingAttempts {
			time.Sleep(time.Duration(attempt) * 200 * time.Millisecond)
		}
	}

	_ = client.Close()
	return nil, fmt.Errorf("redis: ping %s: %w", resolved.Addr, pingErr)
}

// SPDX-License-Identifier: MIT

package probe

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisChecker pings a redis server with PING.
type RedisChecker struct {
	name string
	opts *redis.Options
}

// NewRedisChecker creates a checker for the server described by opts.
func NewRedisChecker(name string, opts *redis.Options) *RedisChecker {
	return &RedisChecker{name: name, opts: opts}
}

func (c *RedisChecker) Name() string {
	return c.name
}

func (c *RedisChecker) Check(ctx context.Context) Result {
	// Probes are one-shot; a pool of one keeps a failed dial from retrying in the background.
	opts := *c.opts
	opts.PoolSize = 1
	opts.MinIdleConns = 0
	opts.MaxRetries = -1
	opts.ContextTimeoutEnabled = true

	client := redis.NewClient(&opts)
	defer func() { _ = client.Close() }()

	if err := client.Ping(ctx).Err(); err != nil {
		return down(opts.Addr, fmt.Errorf("redis ping: %w", err))
	}
	return Result{
		Status:  StatusUp,
		Addr:    opts.Addr,
		Message: fmt.Sprintf("db %d", opts.DB),
	}
}

// staticChecker reports a fixed result, for targets that cannot be dialled.
type staticChecker struct {
	name   string
	result Result
}

func (c staticChecker) Name() string { return c.name }
func (c staticChecker) Check(context.Context) Result { return c.result }

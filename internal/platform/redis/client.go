// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis opens the shared go-redis client.

Vidtube keeps read-through caches here (owner profiles shown next to every
video, comment and playlist). Nothing stored in Redis is authoritative; losing
the instance costs latency, never data, so the client is tuned for short
timeouts rather than retries.
*/
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// pool sizing for one API replica; profile lookups are tiny GET/SET pairs.
const (
	poolSize     = 10
	minIdleConns = 2
	maxIdleConns = 5
	maxRetries   = 1
)

const (
	dialTimeout = 3 * time.Second
	ioTimeout   = 2 * time.Second
	pingTimeout = 2 * time.Second
)

/*
NewClient parses redisURL, applies the cache tuning and pings once.

Parameters:
  - ctx: bounds the startup ping
  - redisURL: redis://[user:pass@]host:port/db
  - logger: receives the redis_client_connected event

Returns:
  - *redis.Client: ready client, closed by the caller
  - error: on a malformed URL or an unreachable server
*/
func NewClient(ctx context.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis_url_invalid: %w", err)
	}
	tune(options)

	client := redis.NewClient(options)
	if err := Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Int("pool_size", options.PoolSize),
	)
	return client, nil
}

func tune(options *redis.Options) {
	options.PoolSize = poolSize
	options.MinIdleConns = minIdleConns
	options.MaxIdleConns = maxIdleConns
	options.MaxRetries = maxRetries

	options.DialTimeout = dialTimeout
	options.ReadTimeout = ioTimeout
	options.WriteTimeout = ioTimeout
}

// Ping is the readiness probe for the cache. It never waits longer than
// pingTimeout regardless of ctx.
func Ping(ctx context.Context, client redis.Cmdable) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis_ping_failed: %w", err)
	}
	return nil
}

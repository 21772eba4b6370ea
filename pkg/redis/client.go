package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Options configures the session store connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Client wraps go-redis with a logger. The portal uses it only as a
// session-token store and a map-tile cache, so the embedded client is
// exposed directly.
type Client struct {
	*redis.Client
	logger *zap.Logger
}

// NewClient connects and pings before returning; a portal instance that
// cannot reach redis cannot authenticate anyone, so failing early is better
// than failing on the first login.
func NewClient(ctx context.Context, opts Options, logger *zap.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}

	logger.Info("redis connected",
		zap.String("addr", opts.Addr),
		zap.Int("db", opts.DB),
	)
	return &Client{Client: rdb, logger: logger}, nil
}

// Close logs the shutdown alongside closing the underlying connection.
func (c *Client) Close() error {
	c.logger.Info("redis closing")
	return c.Client.Close()
}

package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// hitScript increments a counter and starts its window on the first hit.
// Runs atomically on any Redis version with scripting.
var hitScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// Client wraps redis.Client but fails safe by swallowing connectivity errors.
// A nil Client behaves like an empty, always-available store.
type Client struct {
	client *redis.Client
	log    zerolog.Logger
}

// New creates a new Redis client. An empty addr disables Redis entirely.
func New(addr, password string, db int, log zerolog.Logger) *Client {
	if addr == "" {
		return nil
	}
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{
		client: redis.NewClient(opts),
		log:    log.With().Str("component", "cache").Logger(),
	}
}

// Ping reports whether Redis is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Hit increments the counter for key within a fixed window and returns the
// count so far. The window starts with the first hit. On any Redis failure
// it returns 0 and ok=false so callers can let the request through.
func (c *Client) Hit(ctx context.Context, key string, window time.Duration) (count int64, ok bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	count, err := hitScript.Run(ctx, c.client, []string{key}, window.Milliseconds()).Int64()
	if err != nil {
		// fail safe: behave like an unlimited bucket
		c.log.Warn().Err(err).Str("key", key).Msg("rate limit counter unavailable")
		return 0, false
	}
	return count, true
}

// TTL returns the remaining lifetime of key, or zero when unknown.
func (c *Client) TTL(ctx context.Context, key string) time.Duration {
	if c == nil || c.client == nil {
		return 0
	}
	d, err := c.client.TTL(ctx, key).Result()
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// Close releases the connection pool.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

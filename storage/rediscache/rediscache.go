// Package rediscache wraps a boruta.Repository's token lookups with a
// go-redis/v9 cache: try the cache first, fall back to the source
// repository on a miss, write through on success — the teacher's
// cache-then-source pattern, applied to Token.GetByValue instead of
// refresh-token lookups.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chulkilee/boruta-auth"
)

// Config addresses the Redis instance backing the cache.
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration // falls back to 5 minutes when zero
	Logger   *slog.Logger  // defaults to a stderr text logger when nil
}

// Repository decorates a boruta.Repository, caching Tokens().GetByValue.
// Clients() and Scopes() pass through unchanged: they are small,
// host-managed sets the core reads far less often than it reads tokens.
type Repository struct {
	source boruta.Repository
	tokens cachedTokens
}

// New wraps source with a Redis-backed token cache.
func New(source boruta.Repository, cfg Config) *Repository {
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})

	return &Repository{
		source: source,
		tokens: cachedTokens{source: source.Tokens(), rdb: rdb, ttl: ttl, log: log},
	}
}

func (r *Repository) Clients() boruta.ClientRepository { return r.source.Clients() }
func (r *Repository) Scopes() boruta.ScopeRepository   { return r.source.Scopes() }
func (r *Repository) Tokens() boruta.TokenRepository   { return r.tokens }

type cachedTokens struct {
	source boruta.TokenRepository
	rdb    *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

func cacheKey(value string) string { return "boruta:token:" + value }

func (c cachedTokens) Create(ctx context.Context, token *boruta.Token) error {
	if err := c.source.Create(ctx, token); err != nil {
		return err
	}
	c.writeThrough(ctx, token)
	return nil
}

func (c cachedTokens) GetByValue(ctx context.Context, value string) (*boruta.Token, error) {
	if token, err := c.readCache(ctx, value); err == nil {
		return token, nil
	}

	token, err := c.source.GetByValue(ctx, value)
	if err != nil {
		return nil, err
	}
	c.writeThrough(ctx, token)
	return token, nil
}

func (c cachedTokens) GetByRefreshToken(ctx context.Context, refreshToken string) (*boruta.Token, error) {
	// Refresh-token lookups are rare relative to access-token validation,
	// so only GetByValue is fronted by the cache.
	return c.source.GetByRefreshToken(ctx, refreshToken)
}

// Revoke delegates to source and then invalidates the cache entry, whether
// or not the revoke succeeded, so a stale cached copy can never outlive
// the compare-and-swap.
func (c cachedTokens) Revoke(ctx context.Context, value string, now time.Time) error {
	const op = "rediscache.cachedTokens.Revoke"
	err := c.source.Revoke(ctx, value, now)
	if delErr := c.rdb.Del(ctx, cacheKey(value)).Err(); delErr != nil {
		c.log.With(slog.String("op", op)).Error("failed to invalidate token cache entry", "error", delErr)
	}
	return err
}

func (c cachedTokens) readCache(ctx context.Context, value string) (*boruta.Token, error) {
	const op = "rediscache.cachedTokens.readCache"
	raw, err := c.rdb.Get(ctx, cacheKey(value)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.With(slog.String("op", op)).Error("cache read failed", "error", err)
		}
		return nil, err
	}

	var token boruta.Token
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (c cachedTokens) writeThrough(ctx context.Context, token *boruta.Token) {
	const op = "rediscache.cachedTokens.writeThrough"
	logger := c.log.With(slog.String("op", op))

	raw, err := json.Marshal(token)
	if err != nil {
		logger.Error("cache marshal failed", "error", err)
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(token.Value), raw, c.ttl).Err(); err != nil {
		logger.Error("cache write failed", "error", err)
	}
}

// Package postgres is a pgx/v5-backed boruta.Repository. Clients, the
// public scope set and tokens (codes and access tokens share one table,
// discriminated by type — the core's own Token polymorphism) each get a
// thin repository wrapping the shared pool, mirroring the teacher's
// Storage-plus-sub-repositories shape.
package postgres

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chulkilee/boruta-auth"
)

// Config holds the connection parameters for Storage. Each field falls
// back to an environment variable when zero, the same convention the
// teacher's storage config uses.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

func (c *Config) withDefaults() Config {
	cfg := *c
	cfg.Host = orEnv(cfg.Host, "BORUTA_DB_HOST", "localhost")
	cfg.Port = orEnv(cfg.Port, "BORUTA_DB_PORT", "5432")
	cfg.Username = orEnv(cfg.Username, "BORUTA_DB_USER", "boruta")
	cfg.Password = orEnv(cfg.Password, "BORUTA_DB_PASS", "boruta")
	cfg.Database = orEnv(cfg.Database, "BORUTA_DB_NAME", "boruta")
	return cfg
}

func orEnv(value, key, fallback string) string {
	if value != "" {
		return value
	}
	if env, ok := os.LookupEnv(key); ok {
		return env
	}
	return fallback
}

func connString(cfg Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database)
}

// Storage is a boruta.Repository backed by a pgx connection pool.
type Storage struct {
	pool *pgxpool.Pool
}

// New opens the connection pool described by cfg. Zero fields fall back
// to environment variables, then to a local-development default.
func New(ctx context.Context, cfg Config) (*Storage, error) {
	const op = "postgres.New"

	pool, err := pgxpool.New(ctx, connString(cfg.withDefaults()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Storage{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Storage) Close() {
	s.pool.Close()
}

func (s *Storage) Clients() boruta.ClientRepository { return clientRepository{s.pool} }
func (s *Storage) Scopes() boruta.ScopeRepository   { return scopeRepository{s.pool} }
func (s *Storage) Tokens() boruta.TokenRepository   { return tokenRepository{s.pool} }

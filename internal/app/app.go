// Package app wires a boruta.Server from config, following the
// teacher's composition-root shape: one New that picks concrete storage
// and signing adapters and hands back the assembled application.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/chulkilee/boruta-auth"
	"github.com/chulkilee/boruta-auth/fixtures"
	"github.com/chulkilee/boruta-auth/internal/config"
	"github.com/chulkilee/boruta-auth/signing/vaultsigner"
	"github.com/chulkilee/boruta-auth/storage/postgres"
	"github.com/chulkilee/boruta-auth/storage/rediscache"
)

// DemoClientID is the well-known id of the client seedFixtures
// registers, so cmd/demo can drive a request without looking it up.
var DemoClientID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

const (
	DemoClientSecret = "demo-secret"
	DemoUsername     = "demo"
	DemoPassword     = "demo-password"
)

// App bundles the assembled server with the resources that must be
// closed on shutdown.
type App struct {
	Server *boruta.Server
	Signer *vaultsigner.Signer // nil when Vault is not configured

	pg *postgres.Storage
}

// New wires a boruta.Server according to cfg. When cfg.Postgres is not
// enabled it falls back to the in-memory fixtures, seeded with a demo
// client, scope set and resource owner so the demo runs with zero
// configuration.
func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	var (
		repo   boruta.Repository
		owners boruta.ResourceOwners
		app    App
	)

	if cfg.Postgres.Enabled() {
		pg, err := postgres.New(ctx, postgres.Config{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			Username: cfg.Postgres.Username,
			Password: cfg.Postgres.Password,
			Database: cfg.Postgres.Database,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		repo = pg
		app.pg = pg
		log.Info("using postgres storage", "host", cfg.Postgres.Host)
	} else {
		log.Info("no postgres configured, using in-memory fixtures")
		fixtureRepo, fixtureOwners := seedFixtures()
		repo = fixtureRepo
		owners = fixtureOwners
	}

	if cfg.Redis.Enabled() {
		if cfg.Postgres.Enabled() {
			repo = rediscache.New(repo, rediscache.Config{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
				Logger:   log,
			})
			log.Info("fronting storage with redis token cache", "addr", cfg.Redis.Addr)
		} else {
			log.Warn("redis configured without postgres, ignoring cache")
		}
	}

	if owners == nil {
		// Postgres carries clients, scopes and tokens but the core
		// deliberately has no resource-owner table of its own (§1
		// Non-goals: user management is a host concern), so the
		// fixtures' ResourceOwners stands in even with real storage.
		_, fixtureOwners := seedFixtures()
		owners = fixtureOwners
	}

	if cfg.Vault.Enabled() {
		signer, err := vaultsigner.New(ctx, vaultsigner.Config{
			Address:      cfg.Vault.Address,
			RoleIDPath:   cfg.Vault.RoleIDPath,
			SecretIDPath: cfg.Vault.SecretIDPath,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.Signer = signer
		log.Info("vault signer ready", "address", cfg.Vault.Address)
	}

	app.Server = boruta.New(repo, owners, boruta.WithLogger(log))
	return &app, nil
}

// Close releases resources opened by New.
func (a *App) Close() {
	if a.pg != nil {
		a.pg.Close()
	}
}

func seedFixtures() (*fixtures.Repository, *fixtures.ResourceOwners) {
	repo := fixtures.NewRepository()
	owners := fixtures.NewResourceOwners()

	scopes := boruta.ScopeList{
		{Name: "profile", Public: true},
		{Name: "email", Public: true},
	}
	repo.PutScopes(scopes)

	repo.PutClient(&boruta.Client{
		ID:     DemoClientID,
		Secret: DemoClientSecret,
		RedirectURIs: []string{
			"https://demo.example/callback",
		},
		PKCE:           true,
		AuthorizeScope: false,
		SupportedGrantTypes: []boruta.GrantType{
			boruta.GrantAuthorizationCode,
			boruta.GrantImplicit,
			boruta.GrantPassword,
			boruta.GrantClientCredentials,
			boruta.GrantRefreshToken,
		},
		AccessTokenTTL:       3600,
		AuthorizationCodeTTL: 600,
		RefreshTokenTTL:      86400,
		IDTokenTTL:           3600,
	})

	owner := &boruta.ResourceOwner{Sub: "demo-user", Username: DemoUsername}
	claims := map[string]interface{}{"name": "Demo User", "email": "demo@example.test"}
	if err := owners.PutOwner(owner, DemoPassword, scopes, claims); err != nil {
		panic(err)
	}

	return repo, owners
}

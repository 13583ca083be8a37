package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chulkilee/boruta-auth"
	"github.com/chulkilee/boruta-auth/internal/lib/utilities"
)

type clientRepository struct {
	pool *pgxpool.Pool
}

func (r clientRepository) GetByID(ctx context.Context, id string) (*boruta.Client, error) {
	const op = "postgres.clientRepository.GetByID"

	clientID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, boruta.ErrClientNotFound)
	}

	var (
		client       boruta.Client
		redirectURIs []string
		scopes       []string
		grants       []string
	)
	client.ID = clientID

	row := r.pool.QueryRow(ctx, `
		SELECT secret, redirect_uris, pkce, authorize_scope, authorized_scopes,
		       supported_grant_types, access_token_ttl, authorization_code_ttl,
		       refresh_token_ttl, id_token_ttl
		FROM clients WHERE id = $1`, clientID)
	err = row.Scan(&client.Secret, &redirectURIs, &client.PKCE, &client.AuthorizeScope,
		&scopes, &grants, &client.AccessTokenTTL, &client.AuthorizationCodeTTL,
		&client.RefreshTokenTTL, &client.IDTokenTTL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, boruta.ErrClientNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client.RedirectURIs = redirectURIs
	client.AuthorizedScopes = utilities.Map(scopes, func(name string) boruta.Scope {
		return boruta.Scope{Name: name}
	})
	client.SupportedGrantTypes = utilities.Map(grants, func(g string) boruta.GrantType {
		return boruta.GrantType(g)
	})
	return &client, nil
}

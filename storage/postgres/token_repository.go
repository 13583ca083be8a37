package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chulkilee/boruta-auth"
)

type tokenRepository struct {
	pool *pgxpool.Pool
}

func (r tokenRepository) Create(ctx context.Context, token *boruta.Token) error {
	const op = "postgres.tokenRepository.Create"

	var refreshToken, codeChallengeHash, codeChallengeMethod *string
	if token.RefreshToken != "" {
		refreshToken = &token.RefreshToken
	}
	if token.CodeChallengeHash != "" {
		codeChallengeHash = &token.CodeChallengeHash
		method := string(token.CodeChallengeMethod)
		codeChallengeMethod = &method
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO tokens (value, refresh_token, type, client_id, sub, redirect_uri,
		                    scope, state, expires_at, code_challenge_hash, code_challenge_method)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		token.Value, refreshToken, string(token.Type), token.ClientID, token.Sub,
		token.RedirectURI, token.Scope, token.State, token.ExpiresAt,
		codeChallengeHash, codeChallengeMethod)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r tokenRepository) GetByValue(ctx context.Context, value string) (*boruta.Token, error) {
	return r.scanOne(ctx, "postgres.tokenRepository.GetByValue", `
		SELECT value, refresh_token, type, client_id, sub, redirect_uri, scope, state,
		       expires_at, revoked_at, code_challenge_hash, code_challenge_method
		FROM tokens WHERE value = $1`, value)
}

func (r tokenRepository) GetByRefreshToken(ctx context.Context, refreshToken string) (*boruta.Token, error) {
	return r.scanOne(ctx, "postgres.tokenRepository.GetByRefreshToken", `
		SELECT value, refresh_token, type, client_id, sub, redirect_uri, scope, state,
		       expires_at, revoked_at, code_challenge_hash, code_challenge_method
		FROM tokens WHERE refresh_token = $1`, refreshToken)
}

func (r tokenRepository) scanOne(ctx context.Context, op, query string, arg string) (*boruta.Token, error) {
	var (
		token                                    boruta.Token
		refreshToken, codeChallengeHash, method  *string
		revokedAt                                *time.Time
		tokenType                                string
	)

	row := r.pool.QueryRow(ctx, query, arg)
	err := row.Scan(&token.Value, &refreshToken, &tokenType, &token.ClientID, &token.Sub,
		&token.RedirectURI, &token.Scope, &token.State, &token.ExpiresAt, &revokedAt,
		&codeChallengeHash, &method)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, boruta.ErrTokenNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	token.Type = boruta.TokenType(tokenType)
	if refreshToken != nil {
		token.RefreshToken = *refreshToken
	}
	if revokedAt != nil {
		token.RevokedAt = *revokedAt
	}
	if codeChallengeHash != nil {
		token.CodeChallengeHash = *codeChallengeHash
	}
	if method != nil {
		token.CodeChallengeMethod = boruta.CodeChallengeMethod(*method)
	}
	return &token, nil
}

// Revoke is the compare-and-swap single-use-code primitive (§5, §9): the
// UPDATE only touches a row still holding revoked_at IS NULL, so two
// concurrent revokes of the same value leave exactly one winner.
func (r tokenRepository) Revoke(ctx context.Context, value string, now time.Time) error {
	const op = "postgres.tokenRepository.Revoke"

	tag, err := r.pool.Exec(ctx,
		`UPDATE tokens SET revoked_at = $1 WHERE value = $2 AND revoked_at IS NULL`,
		now, value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		exists, err := r.exists(ctx, value)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if !exists {
			return fmt.Errorf("%s: %w", op, boruta.ErrTokenNotFound)
		}
		return fmt.Errorf("%s: %w", op, boruta.ErrTokenAlreadyRevoked)
	}
	return nil
}

func (r tokenRepository) exists(ctx context.Context, value string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tokens WHERE value = $1)`, value).Scan(&exists)
	return exists, err
}

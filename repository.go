package boruta

import (
	"context"
	"time"
)

// Repository is the persistence collaborator the core consumes (§6). A
// host implements it over whatever storage engine it likes; storage/postgres
// in this repo is one concrete example. None of Repository's methods are
// given a transaction argument: TokenRepository.Revoke is specified to be
// a conditional, CAS-style update so that tokenService.exchangeCode's single-use
// guarantee (§5, §9) holds without the core needing a transaction handle.
type Repository interface {
	Clients() ClientRepository
	Scopes() ScopeRepository
	Tokens() TokenRepository
}

// ClientRepository resolves registered clients.
type ClientRepository interface {
	// GetByID returns the client with the given id, or ErrClientNotFound.
	GetByID(ctx context.Context, id string) (*Client, error)
}

// ScopeRepository resolves the set of globally public scopes.
type ScopeRepository interface {
	// Public returns every scope with Public == true.
	Public(ctx context.Context) (ScopeList, error)
}

// TokenRepository creates, fetches and revokes Token rows.
type TokenRepository interface {
	// Create persists a new token. The caller has already populated every
	// field Create should store, including Value and, when requested,
	// RefreshToken.
	Create(ctx context.Context, token *Token) error

	// GetByValue returns the token whose Value matches, or ErrTokenNotFound.
	GetByValue(ctx context.Context, value string) (*Token, error)

	// GetByRefreshToken returns the token whose RefreshToken matches, or
	// ErrTokenNotFound.
	GetByRefreshToken(ctx context.Context, refreshToken string) (*Token, error)

	// Revoke conditionally sets RevokedAt on the token identified by value
	// to now, succeeding only if the token was not already revoked. It
	// returns ErrTokenAlreadyRevoked (or ErrTokenNotFound) otherwise. This
	// is the compare-and-swap §5 requires for single-use code exchange.
	Revoke(ctx context.Context, value string, now time.Time) error
}

package boruta

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"time"
)

// tokenService creates, fetches and revokes Token rows (§4.5). It holds
// the Repository and the injectable clock so grant engines never reach
// repo.Tokens() or time.Now directly — mirrors the teacher's pattern of a
// small service struct wrapping storage collaborators.
type tokenService struct {
	repo Repository
	now  clockFunc
	log  *slog.Logger
}

func newTokenService(repo Repository, now clockFunc, log *slog.Logger) *tokenService {
	return &tokenService{repo: repo, now: now, log: log}
}

// newTokenValue generates a 256-bit cryptographically random value,
// base64url-encoded (§4.5), the same crypto/rand + base64.URLEncoding
// shape the teacher uses for its own bearer and verification tokens.
func newTokenValue() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(buf), nil
}

// createAccessToken issues an access token bound to client and, when
// withRefresh is true, a sibling refresh token (§4.5).
func (s *tokenService) createAccessToken(ctx context.Context, client *Client, sub, scope, redirectURI, state string, withRefresh bool) (*Token, *Error) {
	value, err := newTokenValue()
	if err != nil {
		return nil, newError(ErrInvalidRequest, err.Error(), StatusInternalServerError)
	}

	token := &Token{
		Value:       value,
		Type:        TokenTypeAccessToken,
		ClientID:    client.ID.String(),
		Sub:         sub,
		RedirectURI: redirectURI,
		Scope:       scope,
		State:       state,
		ExpiresAt:   s.now().Add(time.Duration(client.AccessTokenTTL) * time.Second),
	}

	if withRefresh {
		refresh, err := newTokenValue()
		if err != nil {
			return nil, newError(ErrInvalidRequest, err.Error(), StatusInternalServerError)
		}
		token.RefreshToken = refresh
	}

	if err := s.repo.Tokens().Create(ctx, token); err != nil {
		return nil, newError(ErrInvalidRequest, err.Error(), StatusInternalServerError)
	}
	return token, nil
}

// createCode issues an authorization code, hashing any PKCE challenge
// before storage (§4.4.1, §3).
func (s *tokenService) createCode(ctx context.Context, client *Client, sub, redirectURI, scope, codeChallenge string, codeChallengeMethod CodeChallengeMethod) (*Token, *Error) {
	value, err := newTokenValue()
	if err != nil {
		return nil, newError(ErrInvalidRequest, err.Error(), StatusInternalServerError)
	}

	token := &Token{
		Value:       value,
		Type:        TokenTypeCode,
		ClientID:    client.ID.String(),
		Sub:         sub,
		RedirectURI: redirectURI,
		Scope:       scope,
		ExpiresAt:   s.now().Add(time.Duration(client.AuthorizationCodeTTL) * time.Second),
	}
	if codeChallenge != "" {
		token.CodeChallengeHash = hashChallenge(codeChallenge)
		token.CodeChallengeMethod = codeChallengeMethod
	}

	if err := s.repo.Tokens().Create(ctx, token); err != nil {
		return nil, newError(ErrInvalidRequest, err.Error(), StatusInternalServerError)
	}
	return token, nil
}

func (s *tokenService) getByValue(ctx context.Context, value string) (*Token, error) {
	return s.repo.Tokens().GetByValue(ctx, value)
}

func (s *tokenService) getByRefreshToken(ctx context.Context, refreshToken string) (*Token, error) {
	return s.repo.Tokens().GetByRefreshToken(ctx, refreshToken)
}

// revokeStrict performs the compare-and-swap revoke directly, failing
// when the token was already revoked. Used where losing the race must
// surface as an error — refresh rotation of the old access token — as
// opposed to revoke, which is idempotent for the public revoke surface.
func (s *tokenService) revokeStrict(ctx context.Context, value string) error {
	const op = "boruta.tokenService.revokeStrict"
	err := s.repo.Tokens().Revoke(ctx, value, s.now())
	if err != nil {
		s.log.With(slog.String("op", op)).Warn("lost compare-and-swap revoking token", "error", err)
	}
	return err
}

// revoke marks token revoked; idempotent per §4.5 (already-revoked is not
// reported as an error to callers that just want the end state).
func (s *tokenService) revoke(ctx context.Context, token *Token) *Error {
	const op = "boruta.tokenService.revoke"
	err := s.repo.Tokens().Revoke(ctx, token.Value, s.now())
	if err != nil && !errors.Is(err, ErrTokenAlreadyRevoked) {
		s.log.With(slog.String("op", op)).Error("failed to revoke token", "error", err)
		return newError(ErrInvalidRequest, err.Error(), StatusInternalServerError)
	}
	return nil
}

// exchangeCode resolves the authorization code and revokes it in the
// same call, so two concurrent exchanges of the same code yield at most
// one success (§5, §9). The first caller to win the Revoke CAS gets the
// code; everyone else, including a caller that arrives after the code
// already expired or was never consumable, gets invalid_code.
func (s *tokenService) exchangeCode(ctx context.Context, clientID, redirectURI, code string) (*Token, *Error) {
	const op = "boruta.tokenService.exchangeCode"
	const invalidCode = "Provided authorization code is incorrect."
	logger := s.log.With(slog.String("op", op))

	token, err := s.repo.Tokens().GetByValue(ctx, code)
	if err != nil {
		return nil, newError(ErrInvalidCode, invalidCode, StatusBadRequest)
	}
	if !token.Consumable(s.now(), clientID, redirectURI) {
		return nil, newError(ErrInvalidCode, invalidCode, StatusBadRequest)
	}
	if err := s.repo.Tokens().Revoke(ctx, token.Value, s.now()); err != nil {
		// Lost the compare-and-swap: someone else already exchanged it.
		logger.Warn("lost compare-and-swap exchanging authorization code", "error", err)
		return nil, newError(ErrInvalidCode, invalidCode, StatusBadRequest)
	}
	return token, nil
}

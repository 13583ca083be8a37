package boruta

import "context"

// grantRefreshToken implements the refresh token grant (§4.4.5): rotate
// to a fresh access/refresh pair, revoking the old one. The request may
// narrow scope but never widen it relative to the token being refreshed.
func grantRefreshToken(ctx context.Context, repo Repository, owners ResourceOwners, tokens *tokenService, client *Client, req *TokenRequest) (*TokenResponse, *Error) {
	if !client.SupportsGrant(GrantRefreshToken) {
		return nil, grantSupportError()
	}

	const invalidGrant = "Refresh token is invalid."

	old, err := tokens.getByRefreshToken(ctx, req.RefreshToken)
	if err != nil || old.ClientID != client.ID.String() || !old.RevokedAt.IsZero() {
		return nil, newError(ErrInvalidGrant, invalidGrant, StatusBadRequest)
	}

	scope := old.Scope
	if req.Scope != "" {
		var narrowed ScopeList
		for _, name := range old.ScopeNames() {
			narrowed = append(narrowed, Scope{Name: name})
		}
		names := splitScope(req.Scope)
		for _, name := range names {
			if !narrowed.Contains(name) {
				return nil, newError(ErrInvalidScope, "Given scopes are unknown or unauthorized.", StatusBadRequest)
			}
		}
		scope = joinScope(names)
	}

	if revErr := tokens.revokeStrict(ctx, old.Value); revErr != nil {
		return nil, newError(ErrInvalidGrant, invalidGrant, StatusBadRequest)
	}

	token, terr := tokens.createAccessToken(ctx, client, old.Sub, scope, "", "", true)
	if terr != nil {
		return nil, terr
	}

	return &TokenResponse{
		TokenType:    "bearer",
		AccessToken:  token.Value,
		ExpiresIn:    client.AccessTokenTTL,
		RefreshToken: token.RefreshToken,
		Scope:        scope,
	}, nil
}

package boruta

import "context"

// grantPassword implements the resource-owner password grant (§4.4.4).
// The core never hashes or compares passwords itself: GetByCredentials is
// the external identity provider's job, and any authentication failure
// (unknown username, wrong password) is reported identically.
func grantPassword(ctx context.Context, repo Repository, owners ResourceOwners, tokens *tokenService, client *Client, req *TokenRequest) (*TokenResponse, *Error) {
	if !client.SupportsGrant(GrantPassword) {
		return nil, grantSupportError()
	}

	owner, err := owners.GetByCredentials(ctx, req.Username, req.Password)
	if err != nil {
		return nil, newError(ErrInvalidGrant, "Resource owner credentials are invalid.", StatusBadRequest)
	}

	scope, serr := resolveScope(ctx, repo, owners, client, owner, req.Scope)
	if serr != nil {
		return nil, serr
	}

	token, terr := tokens.createAccessToken(ctx, client, owner.Sub, scope, "", "", true)
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

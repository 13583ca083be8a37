package boruta

import "context"

// grantClientCredentials implements the client credentials grant (§4.4.3):
// no resource owner, no refresh token.
func grantClientCredentials(ctx context.Context, repo Repository, owners ResourceOwners, tokens *tokenService, client *Client, req *TokenRequest) (*TokenResponse, *Error) {
	if !client.SupportsGrant(GrantClientCredentials) {
		return nil, grantSupportError()
	}

	scope, err := resolveScope(ctx, repo, owners, client, nil, req.Scope)
	if err != nil {
		return nil, err
	}

	token, terr := tokens.createAccessToken(ctx, client, "", scope, "", "", false)
	if terr != nil {
		return nil, terr
	}

	return &TokenResponse{
		TokenType:   "bearer",
		AccessToken: token.Value,
		ExpiresIn:   client.AccessTokenTTL,
		Scope:       scope,
	}, nil
}

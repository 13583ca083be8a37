package boruta

import "context"

// grantAuthorizationCodeToken implements the authorization code grant's
// token phase (§4.4.2): resolve the code, verify PKCE if the code carries
// a challenge hash, then exchange it for an access token. The code is
// revoked only after PKCE succeeds, so a client that sends the wrong
// verifier may retry with the correct one.
func grantAuthorizationCodeToken(ctx context.Context, repo Repository, owners ResourceOwners, tokens *tokenService, client *Client, req *TokenRequest) (*TokenResponse, *Error) {
	if !client.SupportsGrant(GrantAuthorizationCode) {
		return nil, grantSupportError()
	}

	const invalidCode = "Provided authorization code is incorrect."

	code, err := tokens.getByValue(ctx, req.Code)
	if err != nil || !code.Consumable(tokens.now(), client.ID.String(), req.RedirectURI) {
		return nil, newError(ErrInvalidCode, invalidCode, StatusBadRequest)
	}

	if code.CodeChallengeHash != "" {
		if req.CodeVerifier == "" {
			return nil, newError(ErrInvalidRequest, "PKCE request invalid.", StatusBadRequest)
		}
		if !verifyChallenge(code.CodeChallengeMethod, req.CodeVerifier, code.CodeChallengeHash) {
			return nil, newError(ErrInvalidRequest, "Code verifier is invalid.", StatusBadRequest)
		}
	}

	if _, exchErr := tokens.exchangeCode(ctx, client.ID.String(), req.RedirectURI, req.Code); exchErr != nil {
		return nil, exchErr
	}

	token, terr := tokens.createAccessToken(ctx, client, code.Sub, code.Scope, code.RedirectURI, "", true)
	if terr != nil {
		return nil, terr
	}

	return &TokenResponse{
		TokenType:    "bearer",
		AccessToken:  token.Value,
		ExpiresIn:    client.AccessTokenTTL,
		RefreshToken: token.RefreshToken,
		Scope:        token.Scope,
	}, nil
}

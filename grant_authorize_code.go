package boruta

import "context"

// grantAuthorizeCode implements the authorization code grant's authorize
// phase (§4.4.1): issue a short-lived code bound to the client, resource
// owner, redirect_uri, resolved scope and, when PKCE applies, the hashed
// challenge.
func grantAuthorizeCode(ctx context.Context, repo Repository, owners ResourceOwners, tokens *tokenService, req *AuthorizeRequest) (*AuthorizeResponse, *Error) {
	client, err := authenticateForAuthorize(ctx, repo, req.ClientID, req.RedirectURI)
	if err != nil {
		return nil, err
	}

	if !client.SupportsGrant(GrantAuthorizationCode) {
		return nil, withAuthorizeRedirect(grantSupportError(), req.RedirectURI, req.State)
	}

	if client.PKCE && req.CodeChallenge == "" {
		return nil, authorizeError(ErrInvalidRequest, "Code challenge is invalid.", req.RedirectURI, req.State)
	}
	method := normalizeChallengeMethod(req.CodeChallengeMethod)

	if req.ResourceOwner == nil || req.ResourceOwner.Sub == "" {
		return nil, authorizeError(ErrInvalidResourceOwner, "Resource owner is required.", req.RedirectURI, req.State)
	}

	scope, serr := resolveScope(ctx, repo, owners, client, req.ResourceOwner, req.Scope)
	if serr != nil {
		return nil, withAuthorizeRedirect(serr, req.RedirectURI, req.State)
	}

	token, terr := tokens.createCode(ctx, client, req.ResourceOwner.Sub, req.RedirectURI, scope, req.CodeChallenge, method)
	if terr != nil {
		return nil, withAuthorizeRedirect(terr, req.RedirectURI, req.State)
	}

	return &AuthorizeResponse{
		Type:                AuthorizeKindCode,
		Value:               token.Value,
		ExpiresIn:           client.AuthorizationCodeTTL,
		State:               req.State,
		CodeChallenge:       req.CodeChallenge,
		CodeChallengeMethod: string(method),
	}, nil
}

package boruta

import "context"

// grantImplicit implements the implicit grant (§4.4.6), reached for both
// response_type=token and response_type=id_token: the resource owner must
// already be resolved by the host, since the core owns no session.
func grantImplicit(ctx context.Context, repo Repository, owners ResourceOwners, tokens *tokenService, req *AuthorizeRequest) (*AuthorizeResponse, *Error) {
	client, err := authenticateForAuthorize(ctx, repo, req.ClientID, req.RedirectURI)
	if err != nil {
		return nil, err
	}

	if !client.SupportsGrant(GrantImplicit) {
		return nil, withAuthorizeRedirect(grantSupportError(), req.RedirectURI, req.State)
	}

	if req.ResourceOwner == nil || req.ResourceOwner.Sub == "" {
		return nil, authorizeError(ErrInvalidResourceOwner, "Resource owner is required.", req.RedirectURI, req.State)
	}

	scope, serr := resolveScope(ctx, repo, owners, client, req.ResourceOwner, req.Scope)
	if serr != nil {
		return nil, withAuthorizeRedirect(serr, req.RedirectURI, req.State)
	}

	token, terr := tokens.createAccessToken(ctx, client, req.ResourceOwner.Sub, scope, req.RedirectURI, req.State, false)
	if terr != nil {
		return nil, withAuthorizeRedirect(terr, req.RedirectURI, req.State)
	}

	return &AuthorizeResponse{
		Type:      AuthorizeKindToken,
		Value:     token.Value,
		ExpiresIn: client.AccessTokenTTL,
		State:     req.State,
	}, nil
}

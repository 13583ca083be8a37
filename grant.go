package boruta

import "context"

// dispatchAuthorize routes a classified AuthorizeRequest to its grant
// engine by Kind (§9). AuthorizeRequest is one struct for every kind, so
// the fields of other kinds are present on it and left unused.
func dispatchAuthorize(ctx context.Context, repo Repository, owners ResourceOwners, tokens *tokenService, req *AuthorizeRequest) (*AuthorizeResponse, *Error) {
	switch req.Kind {
	case AuthorizeKindCode:
		return grantAuthorizeCode(ctx, repo, owners, tokens, req)
	case AuthorizeKindToken, AuthorizeKindIDToken:
		return grantImplicit(ctx, repo, owners, tokens, req)
	default:
		return nil, authorizeError(ErrInvalidRequest, "Unsupported response type.", req.RedirectURI, req.State)
	}
}

// dispatchToken routes a classified TokenRequest to its grant engine. The
// caller has already authenticated client against req (§4.2).
func dispatchToken(ctx context.Context, repo Repository, owners ResourceOwners, tokens *tokenService, client *Client, req *TokenRequest) (*TokenResponse, *Error) {
	switch req.Kind {
	case TokenKindAuthorizationCode:
		return grantAuthorizationCodeToken(ctx, repo, owners, tokens, client, req)
	case TokenKindClientCredentials:
		return grantClientCredentials(ctx, repo, owners, tokens, client, req)
	case TokenKindPassword:
		return grantPassword(ctx, repo, owners, tokens, client, req)
	case TokenKindRefreshToken:
		return grantRefreshToken(ctx, repo, owners, tokens, client, req)
	default:
		return nil, newError(ErrUnsupportedGrantType, "Unsupported grant type.", StatusBadRequest)
	}
}

// grantSupportError reports the §4.4.7 gate: a resolved client that is
// not registered for the requested grant. Shared by every grant engine so
// the description text stays identical across surfaces.
func grantSupportError() *Error {
	return newError(ErrUnsupportedGrantType, "Client do not support given grant type.", StatusBadRequest)
}

// grantTypeForTokenKind maps a classified TokenKind to the GrantType
// Client.SupportsGrant checks against, so the /token surface can gate on
// grant support (§7 item 3) before verifying the client secret (§7 item
// 4) — ahead of the per-grant SupportsGrant check each grant engine still
// performs on its own.
func grantTypeForTokenKind(kind TokenKind) GrantType {
	switch kind {
	case TokenKindAuthorizationCode:
		return GrantAuthorizationCode
	case TokenKindClientCredentials:
		return GrantClientCredentials
	case TokenKindPassword:
		return GrantPassword
	case TokenKindRefreshToken:
		return GrantRefreshToken
	default:
		return ""
	}
}

// authorizeError builds a bad_request Error already carrying the
// authorize-surface's query redirect format (§4.2, §7).
func authorizeError(code ErrorCode, description, redirectURI, state string) *Error {
	return newError(code, description, StatusBadRequest).withRedirect(FormatQuery, redirectURI, state)
}

// withAuthorizeRedirect attaches the authorize-surface redirect format to
// an Error produced by a surface-agnostic collaborator (Scope Resolver,
// Token Service).
func withAuthorizeRedirect(err *Error, redirectURI, state string) *Error {
	return err.withRedirect(FormatQuery, redirectURI, state)
}

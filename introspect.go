package boruta

import (
	"context"
	"time"
)

const issuer = "boruta"

// introspectToken implements RFC 7662 token introspection (§4.6):
// client-authenticated, looked up by value or by refresh_token, always
// succeeding with an active/inactive projection rather than failing for
// an unknown token. iat is derived from expires_at and the client's
// access_token_ttl, since Token stores no separate issued timestamp.
func introspectToken(ctx context.Context, owners ResourceOwners, tokens *tokenService, client *Client, value string) *IntrospectResponse {
	token, err := tokens.getByValue(ctx, value)
	if err != nil || token.Type != TokenTypeAccessToken {
		token, err = tokens.getByRefreshToken(ctx, value)
	}
	if err != nil || token.ClientID != client.ID.String() || !token.Active(tokens.now()) {
		return &IntrospectResponse{Active: false}
	}

	issuedAt := token.ExpiresAt.Add(-time.Duration(client.AccessTokenTTL) * time.Second)

	var username string
	if token.Sub != "" {
		if owner, err := owners.GetBySub(ctx, token.Sub); err == nil {
			username = owner.Username
		}
	}

	return &IntrospectResponse{
		Active:   true,
		ClientID: token.ClientID,
		Username: username,
		Scope:    token.Scope,
		Sub:      token.Sub,
		IssuedAt: issuedAt.Unix(),
		ExpireAt: token.ExpiresAt.Unix(),
		Issuer:   issuer,
	}
}

package boruta

import "context"

// revokeToken implements RFC 7009 revocation (§4.6): look the token up by
// value, falling back to refresh_token, and mark it revoked if it belongs
// to the authenticated client. Responds success whether or not the token
// existed; a client mismatch, or a storage failure while revoking, is
// reported as an error.
func revokeToken(ctx context.Context, tokens *tokenService, client *Client, value string) *Error {
	token, err := tokens.getByValue(ctx, value)
	if err != nil {
		token, err = tokens.getByRefreshToken(ctx, value)
	}
	if err != nil {
		return nil
	}
	if token.ClientID != client.ID.String() {
		return newError(ErrInvalidClient, invalidClientDescription, StatusUnauthorized)
	}

	if revErr := tokens.revoke(ctx, token); revErr != nil {
		return revErr
	}
	return nil
}

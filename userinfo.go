package boruta

import (
	"context"
	"strings"
)

const invalidBearerDescription = "Invalid bearer from Authorization header."

// extractBearer implements bearer extraction (§4.6): the authorization
// header must start with the case-sensitive "Bearer " prefix and carry a
// non-empty token, i.e. match ^Bearer \S+$ (§8).
func extractBearer(authorization string) (string, *Error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authorization, prefix) {
		return "", newError(ErrInvalidBearer, invalidBearerDescription, StatusUnauthorized)
	}
	token := strings.TrimPrefix(authorization, prefix)
	if token == "" || strings.ContainsAny(token, " \t\n") {
		return "", newError(ErrInvalidBearer, invalidBearerDescription, StatusUnauthorized)
	}
	return token, nil
}

// fetchUserinfo implements the OIDC userinfo endpoint (§4.6): resolve the
// bearer to an active access token, resolve its resource owner, and merge
// the external claims with {sub: owner.sub} — sub always wins.
func fetchUserinfo(ctx context.Context, owners ResourceOwners, tokens *tokenService, authorization string) (map[string]interface{}, *Error) {
	bearer, err := extractBearer(authorization)
	if err != nil {
		return nil, err
	}

	token, getErr := tokens.getByValue(ctx, bearer)
	if getErr != nil || token.Type != TokenTypeAccessToken || !token.Active(tokens.now()) {
		return nil, newError(ErrInvalidAccessToken, "Provided access token is invalid.", StatusUnauthorized)
	}

	if token.Sub == "" {
		return nil, newError(ErrInvalidBearer, invalidBearerDescription, StatusUnauthorized)
	}

	owner, ownerErr := owners.GetBySub(ctx, token.Sub)
	if ownerErr != nil {
		return nil, newError(ErrInvalidBearer, invalidBearerDescription, StatusUnauthorized)
	}

	claims, claimsErr := owners.Claims(ctx, owner, token.Scope)
	if claimsErr != nil {
		return nil, newError(ErrInvalidBearer, invalidBearerDescription, StatusUnauthorized)
	}

	merged := make(map[string]interface{}, len(claims)+1)
	for k, v := range claims {
		merged[k] = v
	}
	merged["sub"] = owner.Sub
	return merged, nil
}

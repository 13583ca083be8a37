package boruta

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
)

const invalidClientDescription = "Invalid client_id or redirect_uri."

// basicCredentials decodes an "Authorization: Basic ..." header into its
// client_id/client_secret pair (§4.2). ok is false when the header is
// absent or malformed.
func basicCredentials(authorization string) (clientID, clientSecret string, ok bool) {
	const prefix = "Basic "
	if !strings.HasPrefix(authorization, prefix) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(authorization, prefix))
	if err != nil {
		return "", "", false
	}
	parts := strings.SplitN(string(decoded), ":", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// resolveCredentials picks the client_id/client_secret pair for the
// request: HTTP Basic wins over body params when both are present (§4.2).
func resolveCredentials(env *Envelope, bodyClientID, bodyClientSecret string) (clientID, clientSecret string) {
	if id, secret, ok := basicCredentials(env.header("authorization")); ok {
		return id, secret
	}
	return bodyClientID, bodyClientSecret
}

// authenticateForAuthorize resolves the client on the /authorize surface,
// where only client_id is checked — no secret (§4.2). Failure is reported
// with format: query so the host can render it on the (possibly invalid)
// redirect_uri the request presented.
func authenticateForAuthorize(ctx context.Context, repo Repository, clientID, redirectURI string) (*Client, *Error) {
	client, err := repo.Clients().GetByID(ctx, clientID)
	if err != nil || !client.HasRedirectURI(redirectURI) {
		if err != nil && !errors.Is(err, ErrClientNotFound) {
			return nil, newError(ErrInvalidRequest, err.Error(), StatusInternalServerError)
		}
		return nil, newError(ErrInvalidClient, invalidClientDescription, StatusUnauthorized).
			withRedirect(FormatQuery, redirectURI, "")
	}
	return client, nil
}

// resolveClient looks up the client by id alone, with no secret check, so
// callers can gate on client state (e.g. SupportsGrant) before the secret
// is verified (§7 item 3, grant support, precedes item 4, credentials).
func resolveClient(ctx context.Context, repo Repository, env *Envelope, bodyClientID string) (*Client, *Error) {
	clientID, _ := resolveCredentials(env, bodyClientID, "")

	client, err := repo.Clients().GetByID(ctx, clientID)
	if err != nil {
		if !errors.Is(err, ErrClientNotFound) {
			return nil, newError(ErrInvalidRequest, err.Error(), StatusInternalServerError)
		}
		return nil, newError(ErrInvalidClient, invalidClientDescription, StatusUnauthorized)
	}
	return client, nil
}

// verifyClientSecret checks the resolved client's secret against the
// request's credentials (§7 item 4).
func verifyClientSecret(env *Envelope, client *Client, bodyClientID, bodyClientSecret string) *Error {
	_, clientSecret := resolveCredentials(env, bodyClientID, bodyClientSecret)
	if client.Secret != clientSecret {
		return newError(ErrInvalidClient, invalidClientDescription, StatusUnauthorized)
	}
	return nil
}

// authenticateClient resolves and verifies the client on the /token,
// /introspect and /revoke surfaces, where the secret must match (§4.2).
// Failure carries no redirect format and status :unauthorized.
func authenticateClient(ctx context.Context, repo Repository, env *Envelope, bodyClientID, bodyClientSecret string) (*Client, *Error) {
	client, err := resolveClient(ctx, repo, env, bodyClientID)
	if err != nil {
		return nil, err
	}
	if err := verifyClientSecret(env, client, bodyClientID, bodyClientSecret); err != nil {
		return nil, err
	}
	return client, nil
}

package boruta_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chulkilee/boruta-auth"
	"github.com/chulkilee/boruta-auth/fixtures"
)

func TestToken_RefreshRotation(t *testing.T) {
	repo := fixtures.NewRepository()
	owners := fixtures.NewResourceOwners()
	client := newClient()
	repo.PutClient(client)
	require.NoError(t, owners.PutOwner(&boruta.ResourceOwner{Sub: "u1", Username: "alice"}, "pw", nil, nil))
	server := newServer(repo, owners)

	passwordEnv := &boruta.Envelope{BodyParams: map[string]string{
		"grant_type": "password",
		"client_id":  client.ID.String(),
		"username":   "alice",
		"password":   "pw",
	}, Headers: map[string]string{"authorization": basicAuth(client.ID.String(), client.Secret)}}
	first := &recorder{}
	server.Token(context.Background(), passwordEnv, first)
	require.NotNil(t, first.tokenResp)
	require.NotEmpty(t, first.tokenResp.RefreshToken)

	refreshEnv := &boruta.Envelope{BodyParams: map[string]string{
		"grant_type":    "refresh_token",
		"client_id":     client.ID.String(),
		"refresh_token": first.tokenResp.RefreshToken,
	}, Headers: map[string]string{"authorization": basicAuth(client.ID.String(), client.Secret)}}
	second := &recorder{}
	server.Token(context.Background(), refreshEnv, second)

	require.NotNil(t, second.tokenResp)
	require.NotEqual(t, first.tokenResp.AccessToken, second.tokenResp.AccessToken)
	require.NotEqual(t, first.tokenResp.RefreshToken, second.tokenResp.RefreshToken)

	// Reusing the now-revoked refresh token must fail.
	replay := &recorder{}
	server.Token(context.Background(), refreshEnv, replay)
	require.NotNil(t, replay.tokenErr)
	require.Equal(t, boruta.ErrInvalidGrant, replay.tokenErr.Code)
}

func TestToken_ClientCredentials_NoResourceOwner(t *testing.T) {
	repo := fixtures.NewRepository()
	owners := fixtures.NewResourceOwners()
	client := newClient()
	repo.PutClient(client)
	server := newServer(repo, owners)

	env := &boruta.Envelope{BodyParams: map[string]string{
		"grant_type": "client_credentials",
		"client_id":  client.ID.String(),
	}, Headers: map[string]string{"authorization": basicAuth(client.ID.String(), client.Secret)}}

	rec := &recorder{}
	server.Token(context.Background(), env, rec)

	require.NotNil(t, rec.tokenResp)
	require.Empty(t, rec.tokenResp.RefreshToken)
}

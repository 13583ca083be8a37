package boruta_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/chulkilee/boruta-auth"
	"github.com/chulkilee/boruta-auth/fixtures"
)

// recorder is a boruta.Application that stashes whichever outcome fired,
// mirroring the single-callback contract (§9 Application callback).
type recorder struct {
	authorizeResp *boruta.AuthorizeResponse
	authorizeErr  *boruta.Error
	tokenResp     *boruta.TokenResponse
	tokenErr      *boruta.Error
	introspectResp *boruta.IntrospectResponse
	introspectErr  *boruta.Error
	userinfo      map[string]interface{}
	unauthorized  *boruta.Error
	revoked       bool
	revokeErr     *boruta.Error
	calls         int
}

func (r *recorder) AuthorizeSuccess(resp *boruta.AuthorizeResponse) { r.calls++; r.authorizeResp = resp }
func (r *recorder) AuthorizeError(err *boruta.Error)                { r.calls++; r.authorizeErr = err }
func (r *recorder) TokenSuccess(resp *boruta.TokenResponse)         { r.calls++; r.tokenResp = resp }
func (r *recorder) TokenError(err *boruta.Error)                    { r.calls++; r.tokenErr = err }
func (r *recorder) IntrospectSuccess(resp *boruta.IntrospectResponse) {
	r.calls++
	r.introspectResp = resp
}
func (r *recorder) IntrospectError(err *boruta.Error)      { r.calls++; r.introspectErr = err }
func (r *recorder) UserinfoFetched(c map[string]interface{}) { r.calls++; r.userinfo = c }
func (r *recorder) Unauthorized(err *boruta.Error)          { r.calls++; r.unauthorized = err }
func (r *recorder) RevokeSuccess()                          { r.calls++; r.revoked = true }
func (r *recorder) RevokeError(err *boruta.Error)           { r.calls++; r.revokeErr = err }

func newClient() *boruta.Client {
	return &boruta.Client{
		ID:                   uuid.New(),
		Secret:               "secret",
		RedirectURIs:         []string{"https://redirect.uri"},
		SupportedGrantTypes:  []boruta.GrantType{boruta.GrantAuthorizationCode, boruta.GrantImplicit, boruta.GrantPassword, boruta.GrantClientCredentials, boruta.GrantRefreshToken},
		AccessTokenTTL:       3600,
		AuthorizationCodeTTL: 600,
		RefreshTokenTTL:      86400,
	}
}

func newServer(repo *fixtures.Repository, owners *fixtures.ResourceOwners) *boruta.Server {
	return boruta.New(repo, owners)
}

func TestAuthorize_HappyPath(t *testing.T) {
	repo := fixtures.NewRepository()
	owners := fixtures.NewResourceOwners()
	client := newClient()
	repo.PutClient(client)
	server := newServer(repo, owners)

	env := &boruta.Envelope{QueryParams: map[string]string{
		"response_type": "code",
		"client_id":     client.ID.String(),
		"redirect_uri":  "https://redirect.uri",
	}}

	rec := &recorder{}
	server.Authorize(context.Background(), env, &boruta.ResourceOwner{Sub: "s1"}, rec)

	require.Equal(t, 1, rec.calls)
	require.NotNil(t, rec.authorizeResp)
	require.Equal(t, boruta.AuthorizeKindCode, rec.authorizeResp.Type)
	require.NotEmpty(t, rec.authorizeResp.Value)
	require.Positive(t, rec.authorizeResp.ExpiresIn)
}

func TestAuthorize_PrivateScopeDenied(t *testing.T) {
	repo := fixtures.NewRepository()
	owners := fixtures.NewResourceOwners()
	client := newClient()
	client.AuthorizeScope = true
	client.AuthorizedScopes = boruta.ScopeList{{Name: "public"}}
	repo.PutClient(client)
	repo.PutScopes(boruta.ScopeList{{Name: "public", Public: true}})
	server := newServer(repo, owners)

	env := &boruta.Envelope{QueryParams: map[string]string{
		"response_type": "code",
		"client_id":     client.ID.String(),
		"redirect_uri":  "https://redirect.uri",
		"scope":         "private",
	}}

	rec := &recorder{}
	server.Authorize(context.Background(), env, &boruta.ResourceOwner{Sub: "s1"}, rec)

	require.NotNil(t, rec.authorizeErr)
	require.Equal(t, boruta.ErrInvalidScope, rec.authorizeErr.Code)
	require.Equal(t, boruta.StatusBadRequest, rec.authorizeErr.Status)
	require.Equal(t, boruta.FormatQuery, rec.authorizeErr.Format)
	require.Equal(t, "https://redirect.uri", rec.authorizeErr.RedirectURI)
}

func TestAuthorize_PKCERequired(t *testing.T) {
	repo := fixtures.NewRepository()
	owners := fixtures.NewResourceOwners()
	client := newClient()
	client.PKCE = true
	repo.PutClient(client)
	server := newServer(repo, owners)

	env := &boruta.Envelope{QueryParams: map[string]string{
		"response_type": "code",
		"client_id":     client.ID.String(),
		"redirect_uri":  "https://redirect.uri",
	}}

	rec := &recorder{}
	server.Authorize(context.Background(), env, &boruta.ResourceOwner{Sub: "s1"}, rec)

	require.NotNil(t, rec.authorizeErr)
	require.Equal(t, boruta.ErrInvalidRequest, rec.authorizeErr.Code)
	require.Equal(t, "Code challenge is invalid.", rec.authorizeErr.Description)
	require.Equal(t, boruta.FormatQuery, rec.authorizeErr.Format)
}

func TestToken_AuthorizationCodeHappyPath(t *testing.T) {
	repo := fixtures.NewRepository()
	owners := fixtures.NewResourceOwners()
	client := newClient()
	repo.PutClient(client)
	server := newServer(repo, owners)

	authEnv := &boruta.Envelope{QueryParams: map[string]string{
		"response_type": "code",
		"client_id":     client.ID.String(),
		"redirect_uri":  "https://redirect.uri",
	}}
	authRec := &recorder{}
	server.Authorize(context.Background(), authEnv, &boruta.ResourceOwner{Sub: "s1"}, authRec)
	require.NotNil(t, authRec.authorizeResp)

	tokenEnv := &boruta.Envelope{
		BodyParams: map[string]string{
			"grant_type":   "authorization_code",
			"client_id":    client.ID.String(),
			"code":         authRec.authorizeResp.Value,
			"redirect_uri": "https://redirect.uri",
		},
		Headers: map[string]string{"authorization": basicAuth(client.ID.String(), client.Secret)},
	}
	tokenRec := &recorder{}
	server.Token(context.Background(), tokenEnv, tokenRec)

	require.NotNil(t, tokenRec.tokenResp)
	require.Equal(t, "bearer", tokenRec.tokenResp.TokenType)
	require.NotEmpty(t, tokenRec.tokenResp.AccessToken)
	require.NotEmpty(t, tokenRec.tokenResp.RefreshToken)
	require.Positive(t, tokenRec.tokenResp.ExpiresIn)

	// Second exchange of the same code must fail invalid_code (§8 single-use).
	replayRec := &recorder{}
	server.Token(context.Background(), tokenEnv, replayRec)
	require.NotNil(t, replayRec.tokenErr)
	require.Equal(t, boruta.ErrInvalidCode, replayRec.tokenErr.Code)
}

func TestToken_CodeExchangeBadVerifier(t *testing.T) {
	repo := fixtures.NewRepository()
	owners := fixtures.NewResourceOwners()
	client := newClient()
	client.PKCE = true
	repo.PutClient(client)
	server := newServer(repo, owners)

	authEnv := &boruta.Envelope{QueryParams: map[string]string{
		"response_type":        "code",
		"client_id":            client.ID.String(),
		"redirect_uri":         "https://redirect.uri",
		"code_challenge":       "code challenge",
		"code_challenge_method": "plain",
	}}
	authRec := &recorder{}
	server.Authorize(context.Background(), authEnv, &boruta.ResourceOwner{Sub: "s1"}, authRec)
	require.NotNil(t, authRec.authorizeResp)

	tokenEnv := &boruta.Envelope{
		BodyParams: map[string]string{
			"grant_type":    "authorization_code",
			"client_id":     client.ID.String(),
			"client_secret": client.Secret,
			"code":          authRec.authorizeResp.Value,
			"redirect_uri":  "https://redirect.uri",
			"code_verifier": "bad code challenge",
		},
	}
	rec := &recorder{}
	server.Token(context.Background(), tokenEnv, rec)

	require.NotNil(t, rec.tokenErr)
	require.Equal(t, boruta.ErrInvalidRequest, rec.tokenErr.Code)
	require.Equal(t, "Code verifier is invalid.", rec.tokenErr.Description)
}

func TestUserinfo(t *testing.T) {
	repo := fixtures.NewRepository()
	owners := fixtures.NewResourceOwners()
	client := newClient()
	repo.PutClient(client)
	require.NoError(t, owners.PutOwner(&boruta.ResourceOwner{Sub: "u1"}, "pw", nil, map[string]interface{}{"claim": true}))
	server := newServer(repo, owners)

	authEnv := &boruta.Envelope{QueryParams: map[string]string{
		"response_type": "code",
		"client_id":     client.ID.String(),
		"redirect_uri":  "https://redirect.uri",
	}}
	authRec := &recorder{}
	server.Authorize(context.Background(), authEnv, &boruta.ResourceOwner{Sub: "u1"}, authRec)

	tokenEnv := &boruta.Envelope{
		BodyParams: map[string]string{
			"grant_type":    "authorization_code",
			"client_id":     client.ID.String(),
			"client_secret": client.Secret,
			"code":          authRec.authorizeResp.Value,
			"redirect_uri":  "https://redirect.uri",
		},
	}
	tokenRec := &recorder{}
	server.Token(context.Background(), tokenEnv, tokenRec)
	require.NotNil(t, tokenRec.tokenResp)

	rec := &recorder{}
	server.Userinfo(context.Background(), &boruta.UserinfoRequest{Authorization: "Bearer " + tokenRec.tokenResp.AccessToken}, rec)

	require.NotNil(t, rec.userinfo)
	require.Equal(t, "u1", rec.userinfo["sub"])
	require.Equal(t, true, rec.userinfo["claim"])
}

func TestServer_WithClock(t *testing.T) {
	repo := fixtures.NewRepository()
	owners := fixtures.NewResourceOwners()
	client := newClient()
	repo.PutClient(client)

	frozen := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	server := boruta.New(repo, owners, boruta.WithClock(func() time.Time { return frozen }))

	env := &boruta.Envelope{QueryParams: map[string]string{
		"response_type": "code",
		"client_id":     client.ID.String(),
		"redirect_uri":  "https://redirect.uri",
	}}
	rec := &recorder{}
	server.Authorize(context.Background(), env, &boruta.ResourceOwner{Sub: "s1"}, rec)

	require.NotNil(t, rec.authorizeResp)
}

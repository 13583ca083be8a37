package boruta

import "github.com/google/uuid"

// GrantType names one of the canonical OAuth 2.0 grants a Client may be
// registered for.
type GrantType string

const (
	GrantAuthorizationCode GrantType = "authorization_code"
	GrantImplicit          GrantType = "implicit"
	GrantPassword          GrantType = "password"
	GrantClientCredentials GrantType = "client_credentials"
	GrantRefreshToken      GrantType = "refresh_token"
)

// Client is the confidential or public application registered with the
// authorization server. Clients are created by the host's admin flow and
// are treated as immutable for the duration of any single request.
type Client struct {
	ID     uuid.UUID
	Secret string

	RedirectURIs []string

	PKCE           bool
	AuthorizeScope bool

	AuthorizedScopes    ScopeList
	SupportedGrantTypes []GrantType

	AccessTokenTTL       int64 // seconds
	AuthorizationCodeTTL int64 // seconds
	RefreshTokenTTL      int64 // seconds
	IDTokenTTL           int64 // seconds, reserved for a host-side OIDC ID token minter
}

// SupportsGrant reports whether the client is registered for the given
// grant type.
func (c *Client) SupportsGrant(grant GrantType) bool {
	for _, g := range c.SupportedGrantTypes {
		if g == grant {
			return true
		}
	}
	return false
}

// HasRedirectURI reports whether uri is exactly one of the client's
// registered redirect URIs.
func (c *Client) HasRedirectURI(uri string) bool {
	for _, r := range c.RedirectURIs {
		if r == uri {
			return true
		}
	}
	return false
}

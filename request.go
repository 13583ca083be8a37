package boruta

// Envelope is the HTTP-shaped input the host hands to the core: three
// named parameter bags, exactly as described in §4.1. Keys are matched
// case-sensitively except for Headers, whose keys the host is expected to
// have already lower-cased (mirroring the convention of net/http's header
// map, which this type deliberately does not reuse so the core stays
// transport-agnostic).
type Envelope struct {
	BodyParams  map[string]string
	QueryParams map[string]string
	Headers     map[string]string
}

func (e *Envelope) body(key string) string {
	if e == nil || e.BodyParams == nil {
		return ""
	}
	return e.BodyParams[key]
}

func (e *Envelope) query(key string) string {
	if e == nil || e.QueryParams == nil {
		return ""
	}
	return e.QueryParams[key]
}

func (e *Envelope) header(key string) string {
	if e == nil || e.Headers == nil {
		return ""
	}
	return e.Headers[key]
}

// AuthorizeKind discriminates the /authorize surface's response_type.
type AuthorizeKind string

const (
	AuthorizeKindCode    AuthorizeKind = "code"
	AuthorizeKindToken   AuthorizeKind = "token"
	AuthorizeKindIDToken AuthorizeKind = "id_token"
)

// AuthorizeRequest is the typed request produced by classifying and
// validating an /authorize envelope (§4.1, §9). Only the fields relevant
// to Kind are meaningful; the schema validator does not check the others,
// and the grant engines ignore them.
type AuthorizeRequest struct {
	Kind AuthorizeKind

	ClientID    string
	RedirectURI string
	Scope       string
	State       string

	CodeChallenge       string
	CodeChallengeMethod string

	// ResourceOwner is supplied by the host: the core never derives it
	// from a session or cookie (§1 Non-goals: no session management).
	ResourceOwner *ResourceOwner
}

// TokenKind discriminates the /token surface's grant_type.
type TokenKind string

const (
	TokenKindAuthorizationCode TokenKind = "authorization_code"
	TokenKindClientCredentials TokenKind = "client_credentials"
	TokenKindPassword          TokenKind = "password"
	TokenKindRefreshToken      TokenKind = "refresh_token"
)

// TokenRequest is the typed request produced by classifying and
// validating a /token envelope.
type TokenRequest struct {
	Kind TokenKind

	ClientID     string
	ClientSecret string

	Code         string
	RedirectURI  string
	CodeVerifier string

	Username string
	Password string

	RefreshToken string

	Scope string
}

// IntrospectRequest is the typed request classified from the Envelope
// passed to Server.Introspect (§4.6).
type IntrospectRequest struct {
	ClientID      string
	ClientSecret  string
	Token         string
	TokenTypeHint string
}

// UserinfoRequest is the input to Server.Userinfo (§4.6).
type UserinfoRequest struct {
	Authorization string // the raw Authorization header value
}

// RevokeRequest is the typed request classified from the Envelope passed
// to Server.Revoke (§4.6).
type RevokeRequest struct {
	ClientID      string
	ClientSecret  string
	Token         string
	TokenTypeHint string
}

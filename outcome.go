package boruta

// Application is the polymorphic sink the host supplies to receive
// exactly one terminal outcome per entry point (§6, §9). The core never
// calls more than one of these methods per Server call.
type Application interface {
	AuthorizeSuccess(resp *AuthorizeResponse)
	AuthorizeError(err *Error)

	TokenSuccess(resp *TokenResponse)
	TokenError(err *Error)

	IntrospectSuccess(resp *IntrospectResponse)
	IntrospectError(err *Error)

	UserinfoFetched(claims map[string]interface{})
	Unauthorized(err *Error)

	RevokeSuccess()
	RevokeError(err *Error)
}

// AuthorizeResponse is returned on the authorize surface for both the
// code grant (§4.4.1) and the implicit grant (§4.4.6).
type AuthorizeResponse struct {
	Type  AuthorizeKind
	Value string

	ExpiresIn int64
	State     string

	// CodeChallenge/CodeChallengeMethod round-trip the raw challenge the
	// client sent on a code-kind response, for the caller's own
	// verification; they are never persisted (§4.4.1).
	CodeChallenge       string
	CodeChallengeMethod string
}

// TokenResponse is returned on the token surface by every grant (§4.4.2
// through §4.4.5).
type TokenResponse struct {
	TokenType    string // always "bearer"
	AccessToken  string
	ExpiresIn    int64
	RefreshToken string // empty when the grant does not issue one
	Scope        string
}

// IntrospectResponse is the active/inactive projection returned by
// Server.Introspect (§4.6).
type IntrospectResponse struct {
	Active   bool
	ClientID string
	Username string
	Scope    string
	Sub      string
	IssuedAt int64
	ExpireAt int64
	Issuer   string
}

package boruta

// classifyAuthorize validates the /authorize envelope (query params,
// falling back to body params) against the authorize schema shared by
// every response_type, then reads response_type to produce a typed
// AuthorizeRequest (§4.1).
func classifyAuthorize(env *Envelope) (*AuthorizeRequest, *Error) {
	params := mergeParams(env.QueryParams, env.BodyParams)

	if err := authorizeSchema.validate(params); err != nil {
		return nil, err
	}

	var kind AuthorizeKind
	switch params["response_type"] {
	case "code":
		kind = AuthorizeKindCode
	case "token":
		kind = AuthorizeKindToken
	case "id_token":
		kind = AuthorizeKindIDToken
	default:
		return nil, newError(ErrInvalidRequest, "Unsupported response type.", StatusBadRequest)
	}

	return &AuthorizeRequest{
		Kind:                kind,
		ClientID:            params["client_id"],
		RedirectURI:         params["redirect_uri"],
		Scope:               params["scope"],
		State:               params["state"],
		CodeChallenge:       params["code_challenge"],
		CodeChallengeMethod: params["code_challenge_method"],
	}, nil
}

// classifyToken reads the /token surface's grant_type from the body
// params and validates the envelope against that grant's schema,
// producing a typed TokenRequest (§4.1).
func classifyToken(env *Envelope) (*TokenRequest, *Error) {
	params := mergeParams(env.BodyParams, nil)
	grantType := params["grant_type"]

	var schema paramSchema
	var kind TokenKind
	switch grantType {
	case string(TokenKindAuthorizationCode):
		schema, kind = tokenAuthorizationCodeSchema, TokenKindAuthorizationCode
	case string(TokenKindClientCredentials):
		schema, kind = tokenClientCredentialsSchema, TokenKindClientCredentials
	case string(TokenKindPassword):
		schema, kind = tokenPasswordSchema, TokenKindPassword
	case string(TokenKindRefreshToken):
		schema, kind = tokenRefreshTokenSchema, TokenKindRefreshToken
	default:
		return nil, newError(ErrInvalidRequest, "Unsupported grant type.", StatusBadRequest)
	}

	if err := schema.validate(params); err != nil {
		return nil, err
	}

	return &TokenRequest{
		Kind:         kind,
		ClientID:     params["client_id"],
		ClientSecret: params["client_secret"],
		Code:         params["code"],
		RedirectURI:  params["redirect_uri"],
		CodeVerifier: params["code_verifier"],
		Username:     params["username"],
		Password:     params["password"],
		RefreshToken: params["refresh_token"],
		Scope:        params["scope"],
	}, nil
}

func classifyIntrospect(env *Envelope) (*IntrospectRequest, *Error) {
	params := mergeParams(env.BodyParams, nil)
	if err := introspectSchema.validate(params); err != nil {
		return nil, err
	}
	return &IntrospectRequest{
		ClientID:      params["client_id"],
		ClientSecret:  params["client_secret"],
		Token:         params["token"],
		TokenTypeHint: params["token_type_hint"],
	}, nil
}

func classifyRevoke(env *Envelope) (*RevokeRequest, *Error) {
	params := mergeParams(env.BodyParams, nil)
	if err := revokeSchema.validate(params); err != nil {
		return nil, err
	}
	return &RevokeRequest{
		ClientID:      params["client_id"],
		ClientSecret:  params["client_secret"],
		Token:         params["token"],
		TokenTypeHint: params["token_type_hint"],
	}, nil
}

// mergeParams returns a single map with primary's entries taking
// precedence over fallback's, never mutating either input.
func mergeParams(primary, fallback map[string]string) map[string]string {
	merged := make(map[string]string, len(primary)+len(fallback))
	for k, v := range fallback {
		merged[k] = v
	}
	for k, v := range primary {
		merged[k] = v
	}
	return merged
}

package boruta

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Server is the core's facade: the single type a host constructs and
// calls into. It owns no transport and no persistence of its own — every
// method except Userinfo (which takes a UserinfoRequest) consumes an
// Envelope built by the host, and every method reports its one
// terminal outcome through the supplied Application (§2, §6).
type Server struct {
	repo   Repository
	owners ResourceOwners
	tokens *tokenService
	log    *slog.Logger
}

// serverOptions collects the values Option functions configure, following
// the teacher's injectable-collaborator construction shape without
// requiring a second Option type per field.
type serverOptions struct {
	now clockFunc
	log *slog.Logger
}

// New constructs a Server over the given Repository and ResourceOwners.
// opts may override the wall clock or the logger for deterministic tests
// and for op-scoped logging (§5).
func New(repo Repository, owners ResourceOwners, opts ...Option) *Server {
	options := serverOptions{
		now: defaultClock,
		log: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
	for _, opt := range opts {
		opt(&options)
	}

	return &Server{
		repo:   repo,
		owners: owners,
		tokens: newTokenService(repo, options.now, options.log),
		log:    options.log,
	}
}

// Option configures a Server at construction time.
type Option func(opts *serverOptions)

// WithClock overrides the Server's source of "now", for deterministic
// tests (§5).
func WithClock(now func() time.Time) Option {
	return func(opts *serverOptions) {
		opts.now = now
	}
}

// WithLogger overrides the Server's logger. The core never logs secrets
// (client secrets, code verifiers, raw PKCE challenges, bearer tokens).
func WithLogger(log *slog.Logger) Option {
	return func(opts *serverOptions) {
		opts.log = log
	}
}

// Authorize implements the /authorize surface (§4.1, §4.4). owner, when
// the flow needs one, must already be resolved by the host and becomes
// the request's ResourceOwner — the core performs no session lookup of
// its own.
func (s *Server) Authorize(ctx context.Context, env *Envelope, owner *ResourceOwner, app Application) {
	const op = "boruta.Server.Authorize"
	logger := s.log.With(slog.String("op", op))

	req, err := classifyAuthorize(env)
	if err != nil {
		logger.Warn("rejected authorize request", "code", err.Code)
		app.AuthorizeError(err)
		return
	}
	req.ResourceOwner = owner

	resp, err := dispatchAuthorize(ctx, s.repo, s.owners, s.tokens, req)
	if err != nil {
		logger.Warn("authorize grant failed", "code", err.Code)
		app.AuthorizeError(err)
		return
	}
	logger.Debug("authorize succeeded", "type", resp.Type)
	app.AuthorizeSuccess(resp)
}

// Token implements the /token surface (§4.1, §4.2, §4.4, §4.4.7).
func (s *Server) Token(ctx context.Context, env *Envelope, app Application) {
	const op = "boruta.Server.Token"
	logger := s.log.With(slog.String("op", op))

	req, err := classifyToken(env)
	if err != nil {
		logger.Warn("rejected token request", "code", err.Code)
		app.TokenError(err)
		return
	}

	client, err := resolveClient(ctx, s.repo, env, req.ClientID)
	if err != nil {
		logger.Warn("token request client lookup failed", "code", err.Code)
		app.TokenError(err)
		return
	}

	if !client.SupportsGrant(grantTypeForTokenKind(req.Kind)) {
		logger.Warn("client does not support grant", "grant_type", req.Kind)
		app.TokenError(grantSupportError())
		return
	}

	if err := verifyClientSecret(env, client, req.ClientID, req.ClientSecret); err != nil {
		logger.Warn("token request client secret mismatch")
		app.TokenError(err)
		return
	}

	resp, err := dispatchToken(ctx, s.repo, s.owners, s.tokens, client, req)
	if err != nil {
		logger.Warn("token grant failed", "code", err.Code)
		app.TokenError(err)
		return
	}
	logger.Debug("token issued", "grant_type", req.Kind)
	app.TokenSuccess(resp)
}

// Introspect implements RFC 7662 introspection (§4.6).
func (s *Server) Introspect(ctx context.Context, env *Envelope, app Application) {
	const op = "boruta.Server.Introspect"
	logger := s.log.With(slog.String("op", op))

	req, err := classifyIntrospect(env)
	if err != nil {
		logger.Warn("rejected introspect request", "code", err.Code)
		app.IntrospectError(err)
		return
	}

	client, err := authenticateClient(ctx, s.repo, env, req.ClientID, req.ClientSecret)
	if err != nil {
		logger.Warn("introspect client authentication failed")
		app.IntrospectError(newError(ErrInvalidRequest, err.Description, StatusBadRequest))
		return
	}

	app.IntrospectSuccess(introspectToken(ctx, s.owners, s.tokens, client, req.Token))
}

// Userinfo implements the OIDC userinfo endpoint (§4.6). It is
// authenticated by bearer token, not by client credentials.
func (s *Server) Userinfo(ctx context.Context, req *UserinfoRequest, app Application) {
	const op = "boruta.Server.Userinfo"
	logger := s.log.With(slog.String("op", op))

	claims, err := fetchUserinfo(ctx, s.owners, s.tokens, req.Authorization)
	if err != nil {
		logger.Warn("rejected userinfo request", "code", err.Code)
		app.Unauthorized(err)
		return
	}
	app.UserinfoFetched(claims)
}

// Revoke implements RFC 7009 revocation (§4.6).
func (s *Server) Revoke(ctx context.Context, env *Envelope, app Application) {
	const op = "boruta.Server.Revoke"
	logger := s.log.With(slog.String("op", op))

	req, err := classifyRevoke(env)
	if err != nil {
		logger.Warn("rejected revoke request", "code", err.Code)
		app.RevokeError(err)
		return
	}

	client, err := authenticateClient(ctx, s.repo, env, req.ClientID, req.ClientSecret)
	if err != nil {
		logger.Warn("revoke client authentication failed")
		app.RevokeError(err)
		return
	}

	if err := revokeToken(ctx, s.tokens, client, req.Token); err != nil {
		logger.Warn("revoke failed", "code", err.Code)
		app.RevokeError(err)
		return
	}
	logger.Debug("token revoked")
	app.RevokeSuccess()
}

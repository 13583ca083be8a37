// Package fixtures provides in-memory Repository and ResourceOwners
// implementations for tests and for cmd/demo. They hold everything in
// plain maps guarded by a mutex — no storage engine, no network — so
// core tests never need a real Postgres or Redis instance.
package fixtures

import (
	"context"
	"sync"
	"time"

	"github.com/chulkilee/boruta-auth"
	"golang.org/x/crypto/bcrypt"
)

// Repository is an in-memory boruta.Repository.
type Repository struct {
	mu      sync.Mutex
	clients map[string]*boruta.Client
	scopes  boruta.ScopeList
	tokens  map[string]*boruta.Token // keyed by Value
	refresh map[string]string       // refresh_token -> Value
}

// NewRepository returns an empty in-memory Repository.
func NewRepository() *Repository {
	return &Repository{
		clients: make(map[string]*boruta.Client),
		tokens:  make(map[string]*boruta.Token),
		refresh: make(map[string]string),
	}
}

// PutClient registers client for lookup by ID. Test setup helper, not
// part of boruta.Repository.
func (r *Repository) PutClient(client *boruta.Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[client.ID.String()] = client
}

// PutScopes replaces the registered scopes; Scopes().Public returns those
// with Public set.
func (r *Repository) PutScopes(scopes boruta.ScopeList) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scopes = scopes
}

func (r *Repository) Clients() boruta.ClientRepository { return clientRepository{r} }
func (r *Repository) Scopes() boruta.ScopeRepository   { return scopeRepository{r} }
func (r *Repository) Tokens() boruta.TokenRepository   { return tokenRepository{r} }

type clientRepository struct{ r *Repository }

func (c clientRepository) GetByID(_ context.Context, id string) (*boruta.Client, error) {
	c.r.mu.Lock()
	defer c.r.mu.Unlock()
	client, ok := c.r.clients[id]
	if !ok {
		return nil, boruta.ErrClientNotFound
	}
	return client, nil
}

type scopeRepository struct{ r *Repository }

func (s scopeRepository) Public(_ context.Context) (boruta.ScopeList, error) {
	s.r.mu.Lock()
	defer s.r.mu.Unlock()
	var public boruta.ScopeList
	for _, scope := range s.r.scopes {
		if scope.Public {
			public = append(public, scope)
		}
	}
	return public, nil
}

type tokenRepository struct{ r *Repository }

func (t tokenRepository) Create(_ context.Context, token *boruta.Token) error {
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	t.r.tokens[token.Value] = token
	if token.RefreshToken != "" {
		t.r.refresh[token.RefreshToken] = token.Value
	}
	return nil
}

func (t tokenRepository) GetByValue(_ context.Context, value string) (*boruta.Token, error) {
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	token, ok := t.r.tokens[value]
	if !ok {
		return nil, boruta.ErrTokenNotFound
	}
	return token, nil
}

func (t tokenRepository) GetByRefreshToken(_ context.Context, refreshToken string) (*boruta.Token, error) {
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	value, ok := t.r.refresh[refreshToken]
	if !ok {
		return nil, boruta.ErrTokenNotFound
	}
	return t.r.tokens[value], nil
}

func (t tokenRepository) Revoke(_ context.Context, value string, now time.Time) error {
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	token, ok := t.r.tokens[value]
	if !ok {
		return boruta.ErrTokenNotFound
	}
	if !token.RevokedAt.IsZero() {
		return boruta.ErrTokenAlreadyRevoked
	}
	token.RevokedAt = now
	return nil
}

// ResourceOwners is an in-memory boruta.ResourceOwners.
type ResourceOwners struct {
	mu             sync.Mutex
	owners         map[string]*boruta.ResourceOwner // keyed by sub
	credentials    map[string]string                // username -> password
	usernameToSub  map[string]string
	authorized     map[string]boruta.ScopeList // sub -> scopes
	claims         map[string]map[string]interface{}
}

// NewResourceOwners returns an empty in-memory ResourceOwners.
func NewResourceOwners() *ResourceOwners {
	return &ResourceOwners{
		owners:        make(map[string]*boruta.ResourceOwner),
		credentials:   make(map[string]string),
		usernameToSub: make(map[string]string),
		authorized:    make(map[string]boruta.ScopeList),
		claims:        make(map[string]map[string]interface{}),
	}
}

// PutOwner registers owner for lookup by sub, along with its bcrypt-hashed
// password (for the password grant), authorized scopes and userinfo
// claims. Password hashing mirrors the teacher's registration flow, which
// never stores plaintext credentials.
func (o *ResourceOwners) PutOwner(owner *boruta.ResourceOwner, password string, scopes boruta.ScopeList, claims map[string]interface{}) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.owners[owner.Sub] = owner
	if owner.Username != "" {
		o.credentials[owner.Username] = string(hash)
		o.usernameToSub[owner.Username] = owner.Sub
	}
	o.authorized[owner.Sub] = scopes
	o.claims[owner.Sub] = claims
	return nil
}

func (o *ResourceOwners) GetBySub(_ context.Context, sub string) (*boruta.ResourceOwner, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	owner, ok := o.owners[sub]
	if !ok {
		return nil, boruta.ErrResourceOwnerNotFound
	}
	return owner, nil
}

func (o *ResourceOwners) GetByCredentials(_ context.Context, username, password string) (*boruta.ResourceOwner, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	hash, ok := o.credentials[username]
	if !ok || bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, boruta.ErrResourceOwnerNotFound
	}
	return o.owners[o.usernameToSub[username]], nil
}

func (o *ResourceOwners) AuthorizedScopes(_ context.Context, owner *boruta.ResourceOwner) (boruta.ScopeList, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.authorized[owner.Sub], nil
}

func (o *ResourceOwners) Claims(_ context.Context, owner *boruta.ResourceOwner, _ string) (map[string]interface{}, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.claims[owner.Sub], nil
}

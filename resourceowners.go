package boruta

import "context"

// ResourceOwners is the external identity-provider collaborator the core
// consumes for the password grant, implicit/authorization-code resource
// owner resolution, scope authorization and userinfo claim assembly (§6).
type ResourceOwners interface {
	// GetBySub resolves the resource owner the given access/code token was
	// issued for. Returns ErrResourceOwnerNotFound when unknown.
	GetBySub(ctx context.Context, sub string) (*ResourceOwner, error)

	// GetByCredentials resolves a resource owner by username and password
	// for the password grant (§4.4.4). Returns ErrResourceOwnerNotFound on
	// any authentication failure — the core does not distinguish "no such
	// user" from "wrong password".
	GetByCredentials(ctx context.Context, username, password string) (*ResourceOwner, error)

	// AuthorizedScopes returns the scopes the given resource owner is
	// personally authorized for, used by the Scope Resolver (§4.3).
	AuthorizedScopes(ctx context.Context, owner *ResourceOwner) (ScopeList, error)

	// Claims returns the userinfo claims for owner, filtered to the given
	// scope, used by the userinfo endpoint (§4.6).
	Claims(ctx context.Context, owner *ResourceOwner, scope string) (map[string]interface{}, error)
}

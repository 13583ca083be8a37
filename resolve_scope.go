package boruta

import "context"

// resolveScope intersects the requested scope string against the
// client's and resource owner's authorized scopes (§4.3). owner may be
// nil (client_credentials has no resource owner). An empty requested
// scope is always admitted and resolves to the empty string.
func resolveScope(ctx context.Context, repo Repository, owners ResourceOwners, client *Client, owner *ResourceOwner, requested string) (string, *Error) {
	names := splitScope(requested)
	if len(names) == 0 {
		return "", nil
	}

	public, err := repo.Scopes().Public(ctx)
	if err != nil {
		return "", newError(ErrInvalidRequest, err.Error(), StatusInternalServerError)
	}

	var ownerScopes ScopeList
	if owner != nil {
		ownerScopes, err = owners.AuthorizedScopes(ctx, owner)
		if err != nil {
			return "", newError(ErrInvalidRequest, err.Error(), StatusInternalServerError)
		}
	}

	for _, name := range names {
		admitted := public.Contains(name) || (owner != nil && ownerScopes.Contains(name))
		if admitted && client.AuthorizeScope {
			admitted = client.AuthorizedScopes.Contains(name)
		}
		if !admitted {
			return "", newError(ErrInvalidScope, "Given scopes are unknown or unauthorized.", StatusBadRequest)
		}
	}

	return joinScope(names), nil
}

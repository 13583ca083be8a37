package boruta

import "strings"

// Scope is a named capability a Client or ResourceOwner may be authorized
// for. Two scopes are equal by Name.
type Scope struct {
	Name   string
	Public bool
}

// ScopeList is a set of scopes, compared by name.
type ScopeList []Scope

// Contains reports whether name appears in the list.
func (s ScopeList) Contains(name string) bool {
	for _, scope := range s {
		if scope.Name == name {
			return true
		}
	}
	return false
}

// Names returns the scope names in s, in order.
func (s ScopeList) Names() []string {
	names := make([]string, len(s))
	for i, scope := range s {
		names[i] = scope.Name
	}
	return names
}

// splitScope tokenizes a whitespace-joined scope string into its names,
// preserving order and duplicates.
func splitScope(scope string) []string {
	return strings.Fields(scope)
}

// joinScope re-joins scope names into the whitespace-joined wire format.
func joinScope(names []string) string {
	return strings.Join(names, " ")
}

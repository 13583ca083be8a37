package boruta

// ResourceOwner is the human or principal on whose behalf tokens are
// issued. It is supplied by the host's identity provider through
// ResourceOwners and is never mutated by the core.
type ResourceOwner struct {
	Sub      string
	Username string
}

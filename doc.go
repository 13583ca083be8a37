// Package boruta is an embeddable OAuth 2.0 / OpenID Connect authorization
// server core. It implements the protocol state machines and validation
// logic for the authorization code (with PKCE), client credentials,
// resource-owner password, implicit and refresh token grants, plus the
// OpenID Connect userinfo endpoint and RFC 7662/7009 introspection and
// revocation.
//
// The core owns no HTTP transport, no persistence engine and no
// resource-owner directory. A host application supplies those by
// implementing Repository and ResourceOwners and by translating its own
// transport (HTTP, gRPC, ...) into an Envelope (a UserinfoRequest for
// Server.Userinfo) before calling Server's methods. Every terminal outcome — success or error — is delivered
// exactly once through the Application callback supplied by the host.
package boruta

// Package vaultsigner lets a host bind an opaque boruta.Token.Value to a
// Hashicorp Vault transit key, so a bearer presented outside the
// repository (e.g. forwarded to a downstream service) can be verified
// without a round trip to the repository. The core has no JWT signing
// registry of its own — signing is delegated, exactly as the source
// Non-goals require — so this package signs the token value itself
// rather than constructing local JWT claims.
package vaultsigner

import (
	"context"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"strings"

	vault "github.com/hashicorp/vault-client-go"
	"github.com/hashicorp/vault-client-go/schema"
	"github.com/lestrrat-go/jwx/jwa"
	"github.com/lestrrat-go/jwx/jwk"

	"github.com/chulkilee/boruta-auth/internal/lib/extensions"
)

const transitKeyName = "boruta_tokens"

// Signer binds a Vault transit key to opaque boruta token values.
type Signer struct {
	client *vault.Client
}

// Config addresses the Vault instance and the AppRole credentials used to
// authenticate, read from files the same way the teacher's AuthUser does.
type Config struct {
	Address      string
	RoleIDPath   string
	SecretIDPath string
}

// New authenticates against Vault via AppRole login and returns a Signer
// ready to sign and verify token values against transitKeyName.
func New(ctx context.Context, cfg Config) (*Signer, error) {
	const op = "vaultsigner.New"

	client, err := vault.New(vault.WithAddress(cfg.Address))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := client.Auth.AppRoleLogin(ctx, schema.AppRoleLoginRequest{
		RoleId:   extensions.GetTextFromFile(cfg.RoleIDPath),
		SecretId: extensions.GetTextFromFile(cfg.SecretIDPath),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: approle login failed: %w", op, err)
	}
	if err := client.SetToken(resp.Auth.ClientToken); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Signer{client: client}, nil
}

// Sign returns a base64url detached signature over value under the
// transit key's current version.
func (s *Signer) Sign(ctx context.Context, value string) (string, error) {
	const op = "vaultsigner.Signer.Sign"

	input := base64.StdEncoding.EncodeToString([]byte(value))
	resp, err := s.client.Secrets.TransitSign(ctx, transitKeyName, schema.TransitSignRequest{
		Input: input,
	}, vault.WithMountPath("transit"))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	signature, ok := resp.Data["signature"].(string)
	if !ok {
		return "", fmt.Errorf("%s: signature missing in response", op)
	}
	return strings.TrimPrefix(signature, "vault:v1:"), nil
}

// Verify reports whether signature was produced by Sign for value.
func (s *Signer) Verify(ctx context.Context, value, signature string) (bool, error) {
	const op = "vaultsigner.Signer.Verify"

	input := base64.StdEncoding.EncodeToString([]byte(value))
	resp, err := s.client.Secrets.TransitVerify(ctx, transitKeyName, schema.TransitVerifyRequest{
		Input:     input,
		Signature: "vault:v1:" + signature,
	}, vault.WithMountPath("transit"))
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	valid, ok := resp.Data["valid"].(bool)
	return ok && valid, nil
}

// JWKSet projects the transit key's public key versions into a JWK Set, so
// a host that exposes a /.well-known/jwks.json can publish verification
// material without reaching into Vault's own API shape.
func (s *Signer) JWKSet(ctx context.Context) (jwk.Set, error) {
	const op = "vaultsigner.Signer.JWKSet"

	secret, err := s.client.Secrets.TransitReadKey(ctx, transitKeyName, vault.WithMountPath("transit"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	versions, ok := secret.Data["keys"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: keys missing in response", op)
	}

	set := jwk.NewSet()
	for version, raw := range versions {
		data, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		pubPEM, ok := data["public_key"].(string)
		if !ok {
			continue
		}
		key, err := pemToJWK(pubPEM, version)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		set.Add(key)
	}
	return set, nil
}

func pemToJWK(pemKey, version string) (jwk.Key, error) {
	block, _ := pem.Decode([]byte(pemKey))
	if block == nil {
		return nil, fmt.Errorf("invalid public key encoding")
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	key, err := jwk.New(pub)
	if err != nil {
		return nil, fmt.Errorf("build jwk: %w", err)
	}
	if err := key.Set(jwk.KeyIDKey, version); err != nil {
		return nil, err
	}
	if err := key.Set(jwk.AlgorithmKey, jwa.RS256); err != nil {
		return nil, err
	}
	return key, nil
}

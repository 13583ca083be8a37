package boruta

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
)

// PKCE hashing. RFC 7636 compares the raw code_verifier against
// code_challenge for "plain" and BASE64URL(SHA256(verifier)) for "S256".
// This implementation instead hashes *both* methods' challenge through
// SHA-512 before storage and comparison (§9, §3). That is a deliberate,
// documented deviation from RFC 7636 kept for on-disk compatibility with
// the system this core's data model was distilled from — not an oversight.

func sha512Hex(s string) string {
	sum := sha512.Sum512([]byte(s))
	return hex.EncodeToString(sum[:])
}

// hashChallenge computes the value stored as Token.CodeChallengeHash for
// a freshly-presented code_challenge (§4.4.1).
func hashChallenge(challenge string) string {
	return sha512Hex(challenge)
}

// verifyChallenge reports whether verifier matches the previously stored
// challenge hash under the given method (§4.4.2).
func verifyChallenge(method CodeChallengeMethod, verifier, storedHash string) bool {
	var comparator string
	switch method {
	case CodeChallengeS256:
		sum := sha256.Sum256([]byte(verifier))
		comparator = sha512Hex(base64.RawURLEncoding.EncodeToString(sum[:]))
	default: // CodeChallengePlain, and any unset/legacy value defaults to plain
		comparator = sha512Hex(verifier)
	}
	return comparator == storedHash
}

// normalizeChallengeMethod applies §4.4.1's default: an absent
// code_challenge_method means "plain".
func normalizeChallengeMethod(method string) CodeChallengeMethod {
	if method == "" {
		return CodeChallengePlain
	}
	return CodeChallengeMethod(method)
}

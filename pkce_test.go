package boruta

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashChallenge_Is128HexChars(t *testing.T) {
	hash := hashChallenge("a challenge")
	assert.Len(t, hash, 128)
	_, err := hex.DecodeString(hash)
	assert.NoError(t, err)
}

func TestVerifyChallenge_Plain(t *testing.T) {
	hash := hashChallenge("verifier-value")
	assert.True(t, verifyChallenge(CodeChallengePlain, "verifier-value", hash))
	assert.False(t, verifyChallenge(CodeChallengePlain, "wrong", hash))
}

func TestVerifyChallenge_S256(t *testing.T) {
	sum := sha256.Sum256([]byte("verifier-value"))
	challenge := base64.RawURLEncoding.EncodeToString(sum[:])
	hash := hashChallenge(challenge)

	assert.True(t, verifyChallenge(CodeChallengeS256, "verifier-value", hash))
	assert.False(t, verifyChallenge(CodeChallengeS256, "other-verifier", hash))
}

func TestNormalizeChallengeMethod_DefaultsToPlain(t *testing.T) {
	assert.Equal(t, CodeChallengePlain, normalizeChallengeMethod(""))
	assert.Equal(t, CodeChallengeS256, normalizeChallengeMethod("S256"))
}

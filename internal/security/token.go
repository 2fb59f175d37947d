package security

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const bearerScheme = "bearer"

// TokenValidator checks Authorization headers against a single shared secret.
type TokenValidator struct {
	digest [blake2b.Size256]byte
	empty  bool
}

func NewTokenValidator(secret string) *TokenValidator {
	secret = strings.TrimSpace(secret)
	return &TokenValidator{digest: blake2b.Sum256([]byte(secret)), empty: secret == ""}
}

// Validate reports whether header is "Bearer <token>" with the configured token.
// Both sides are hashed to a fixed length before the constant-time compare.
func (v *TokenValidator) Validate(header string) bool {
	if v == nil || v.empty {
		return false
	}
	token, ok := BearerToken(header)
	if !ok {
		return false
	}
	got := blake2b.Sum256([]byte(token))
	return subtle.ConstantTimeCompare(got[:], v.digest[:]) == 1
}

// BearerToken extracts the token from an Authorization header value. The
// header is split on single spaces and the second field is the token, so
// repeated spaces after the scheme leave it empty.
func BearerToken(header string) (string, bool) {
	fields := strings.Split(header, " ")
	if len(fields) < 2 || !strings.EqualFold(fields[0], bearerScheme) {
		return "", false
	}
	token := fields[1]
	if token == "" {
		return "", false
	}
	return token, true
}

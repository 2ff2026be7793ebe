// Package token generates and hashes the opaque tokens used by the auth flow.
// Raw tokens go to the client; only their sha256 digest is stored.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// refreshTokenBytes sizes the refresh token entropy (48 bytes, 64 chars encoded).
const refreshTokenBytes = 48

// NewRefreshToken returns a URL-safe opaque refresh token.
func NewRefreshToken() (string, error) {
	return randomToken(refreshTokenBytes)
}

func randomToken(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashSHA256 returns the hex-encoded sha256 digest stored at rest.
func HashSHA256(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

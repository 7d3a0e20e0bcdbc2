package link

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// tokenBytes gives 192 bits of entropy and a 32-character URL-safe token.
const tokenBytes = 24

func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

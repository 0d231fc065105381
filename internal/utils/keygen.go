package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateSessionSecret returns a random hex secret for a new session.
// The raw value goes to the client; only its bcrypt hash is persisted.
func GenerateSessionSecret() (string, error) {
	b := make([]byte, 32) // 64 char hex
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

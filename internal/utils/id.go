package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewToken returns 32 random bytes hex encoded, optionally prefixed
func NewToken(prefix string) string {
	bytes := make([]byte, 32)
	_, _ = rand.Read(bytes)
	if prefix == "" {
		return hex.EncodeToString(bytes)
	}
	return prefix + "_" + hex.EncodeToString(bytes)
}

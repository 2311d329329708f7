package vaulttest

import (
	"crypto/rand"
	"encoding/hex"
	"testing"
)

// NewSecret returns a fresh random 32 byte preimage.
func NewSecret(t testing.TB) []byte {
	t.Helper()

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		t.Fatalf("cannot read random secret: %s", err)
	}
	return secret
}

// FromHex decodes a hex string or fails the test.
func FromHex(t testing.TB, s string) []byte {
	t.Helper()

	raw, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("cannot decode %q: %s", s, err)
	}
	return raw
}

package vault

import (
	"crypto/sha256"
	"encoding/hex"
)

const (
	// SecretSize is the length of a swap secret in bytes.
	SecretSize = 32

	// HashLockSize is the length of a hash lock in bytes.
	HashLockSize = sha256.Size
)

// HashSecret returns the hash lock committing to given secret, that is
// sha256(sha256(secret)).
func HashSecret(secret []byte) []byte {
	first := sha256.Sum256(secret)
	second := sha256.Sum256(first[:])
	return second[:]
}

func hexLock(hashLock []byte) string {
	return hex.EncodeToString(hashLock)
}

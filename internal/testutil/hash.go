package testutil

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"

	"cback/internal/backup"
)

// SHA256Hex returns the SHA-256 checksum of data as a lowercase hex string.
func SHA256Hex(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// CountingHash wraps a hash factory and counts how many hashers were
// constructed, one per hashed file. Use it to prove the selector's
// no-checksum fast path never hashes.
func CountingHash(factory backup.HashFactory, calls *int) backup.HashFactory {
	return func() hash.Hash {
		*calls++
		return factory()
	}
}

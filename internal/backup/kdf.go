package backup

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

// Iteration counts for PBKDF2. New backups are written with
// RecommendedIterations; LegacyIterations is retained so older backups keep
// decrypting. The encoded format carries no iteration marker, so decryption
// recovers the count by trial (see Decrypt).
const (
	// RecommendedIterations is the default for new encryptions.
	RecommendedIterations = 600_000

	// LegacyIterations is the historical default, kept as a decryption fallback.
	LegacyIterations = 100_000
)

// keySize is the derived key length in bytes (AES-256).
const keySize = 32

// DeriveKey stretches a passphrase into a 256-bit AES key using
// PBKDF2-SHA256. The passphrase is used as UTF-8 bytes with no Unicode
// normalization. Deterministic: identical inputs always yield the identical
// key, and nothing is cached between calls.
func DeriveKey(passphrase string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, iterations, keySize, sha256.New)
}

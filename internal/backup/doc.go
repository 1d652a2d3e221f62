// Package backup provides the encryption engine and shape inference for
// keybak.
//
// This package handles the core encrypt/decrypt functionality for portable
// wallet backups, including passphrase key derivation and classification of
// decrypted payloads into their structural variants.
//
// # Encoded Format
//
// A backup is a single base64 string with the fixed binary layout:
//
//	salt(16 bytes) ‖ iv(12 bytes) ‖ ciphertext+tag
//
// The key is derived from the passphrase with PBKDF2-SHA256 and the cipher
// is AES-256-GCM. No version byte and no iteration count are embedded;
// the iteration count is recovered at decryption time by trying an ordered
// list of candidates until one key authenticates. Salt and IV are freshly
// generated per call, so encrypting the same payload twice produces
// different output.
//
// # Iteration Counts
//
// Two named counts are exposed: RecommendedIterations (default for new
// backups) and LegacyIterations (historical default, kept so old backups
// keep decrypting). Decrypt tries recommended first, then legacy; callers
// may override with an explicit ordered list.
//
// # Shape Inference
//
// Decrypted payloads carry no type tag. The variant is inferred purely from
// which keys are present, using a single ordered rule table evaluated
// most-constrained-first (see Classify). The same table validates payloads
// on the encrypt path, so a payload that encrypts will classify to the same
// variant after decryption by construction.
//
// Plaintexts that are not JSON at all predate the structured formats and
// classify as a bare secret wrapping the raw string.
//
// # Security Considerations
//
// The engine is stateless and holds no key material between calls. Nothing
// in this package logs plaintext, passphrases, or derived keys. The retry
// loop runs candidates strictly in sequence; stopping at the first success
// is both a correctness and a timing consideration.
package backup

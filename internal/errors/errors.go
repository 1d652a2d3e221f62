package errors

import "errors"

// Encryption errors indicate the caller handed the engine something it
// refuses to encrypt. Both fail before any cryptographic work is done.
var (
	// ErrInvalidPassphrase indicates the passphrase is empty or too short.
	ErrInvalidPassphrase = errors.New("passphrase must be at least 8 characters")

	// ErrInvalidPayload indicates the payload matches no known backup variant.
	ErrInvalidPayload = errors.New("payload does not match any known backup variant")
)

// Decryption errors indicate a backup could not be decoded. Each has a
// distinct identity so callers can tell a corrupt file from a wrong
// passphrase from an unknown payload shape.
var (
	// ErrInvalidFraming indicates the encoded backup is not valid base64 or
	// is too short to contain a salt and IV. Raised before any key derivation.
	ErrInvalidFraming = errors.New("encoded backup is malformed")

	// ErrDecryptionFailed indicates every candidate iteration count produced
	// an authentication failure. This is the expected failure mode for a
	// wrong passphrase or corrupted ciphertext.
	ErrDecryptionFailed = errors.New("invalid passphrase or corrupted data")

	// ErrUnrecognizedShape indicates the decrypted JSON object matches no
	// known backup variant.
	ErrUnrecognizedShape = errors.New("decrypted payload matches no known backup variant")
)

// File errors indicate issues locating or writing backup files.
var (
	// ErrFileNotFound indicates an input file could not be located.
	ErrFileNotFound = errors.New("file not found")

	// ErrOutputExists indicates the output file already exists and --force was not given.
	ErrOutputExists = errors.New("output file already exists")
)

// Input errors indicate issues obtaining required user input.
var (
	// ErrNoPassphrase indicates no passphrase source was available
	// (no flag, no environment variable, and stdin is not a terminal).
	ErrNoPassphrase = errors.New("no passphrase provided")

	// ErrPassphraseMismatch indicates the confirmation prompt did not match.
	ErrPassphraseMismatch = errors.New("passphrases do not match")
)

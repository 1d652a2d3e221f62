// Package errors provides typed error values for the keybak application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Encryption errors: bad input to the encrypt path (ErrInvalidPassphrase, ErrInvalidPayload)
//   - Decryption errors: undecodable backups (ErrInvalidFraming, ErrDecryptionFailed, ErrUnrecognizedShape)
//   - File errors: file system issues (ErrFileNotFound, ErrOutputExists)
//   - Input errors: missing user input (ErrNoPassphrase)
//
// Any error that is not one of these sentinels is an unexpected platform
// or crypto failure and is propagated wrapped, never absorbed.
//
// # Usage
//
// Return errors from internal packages:
//
//	if len(passphrase) < backup.MinPassphraseLength {
//	    return "", kerrors.ErrInvalidPassphrase
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Decrypt(ctx, opts)
//	if errors.Is(err, kerrors.ErrDecryptionFailed) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("reading payload from %s: %w", path, kerrors.ErrFileNotFound)
package errors

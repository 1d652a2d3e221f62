package backup

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	kerrors "github.com/quillsec/keybak/internal/errors"
)

// Binary framing of an encoded backup: base64(salt ‖ iv ‖ ciphertext+tag).
// No version byte and no iteration marker are embedded; this layout is a
// compatibility constraint and must not change.
const (
	// SaltSize is the length of the PBKDF2 salt in bytes.
	SaltSize = 16

	// IVSize is the length of the AES-GCM nonce in bytes.
	IVSize = 12

	// MinPassphraseLength is the minimum accepted passphrase length.
	MinPassphraseLength = 8
)

// DefaultIterationCandidates returns the ordered iteration counts Decrypt
// tries when the caller supplies none. Recommended comes first because it is
// the default for new backups; legacy is the historical fallback.
func DefaultIterationCandidates() []int {
	return []int{RecommendedIterations, LegacyIterations}
}

// Encrypt encrypts a backup payload under the passphrase using the
// recommended iteration count.
func Encrypt(b Backup, passphrase string) (string, error) {
	return EncryptWithIterations(b, passphrase, RecommendedIterations)
}

// EncryptWithIterations encrypts a backup payload under the passphrase,
// deriving the key with the given PBKDF2 iteration count.
//
// The payload is serialized to JSON, stamped with a createdAt timestamp if
// it lacks one (the caller's value is never mutated), and sealed with
// AES-256-GCM under a fresh random salt and IV. The result is
// base64(salt ‖ iv ‖ ciphertext+tag). Encrypting the same payload twice
// yields different strings.
//
// Returns ErrInvalidPassphrase if the passphrase is shorter than
// MinPassphraseLength, and ErrInvalidPayload if the payload's fields do not
// classify as the variant it claims to be.
func EncryptWithIterations(b Backup, passphrase string, iterations int) (string, error) {
	if len(passphrase) < MinPassphraseLength {
		return "", kerrors.ErrInvalidPassphrase
	}
	if iterations <= 0 {
		return "", fmt.Errorf("iteration count must be positive, got %d", iterations)
	}

	payload, err := payloadObject(b)
	if err != nil {
		return "", err
	}

	// Validation and classification share one rule table. A typed payload
	// whose field set no longer matches its own variant (e.g. a DerivedKeySet
	// with no derivation marker) is rejected here.
	got, err := Classify(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrInvalidPayload, err)
	}
	if got.Kind() != b.Kind() {
		return "", fmt.Errorf("%w: fields classify as %s, not %s", kerrors.ErrInvalidPayload, got.Kind(), b.Kind())
	}

	if _, ok := payload["createdAt"]; !ok {
		payload["createdAt"] = time.Now().UTC().Format(time.RFC3339)
	}

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("serializing payload: %w", err)
	}

	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	iv := make([]byte, IVSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("generating IV: %w", err)
	}

	aead, err := newAEAD(DeriveKey(passphrase, salt, iterations))
	if err != nil {
		return "", err
	}

	out := make([]byte, 0, SaltSize+IVSize+len(plaintext)+aead.Overhead())
	out = append(out, salt...)
	out = append(out, iv...)
	out = aead.Seal(out, iv, plaintext, nil)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt decrypts an encoded backup, trying the default iteration
// candidates in order, and classifies the result.
func Decrypt(encoded, passphrase string) (Backup, error) {
	return DecryptWithIterations(encoded, passphrase)
}

// DecryptWithIterations decrypts an encoded backup, deriving a key for each
// candidate iteration count in order and stopping at the first successful
// authenticated decryption. An empty candidate list means the defaults.
//
// The retry loop is strictly sequential. An authentication-tag failure is
// the expected outcome of trying the wrong count and moves on to the next
// candidate; any other crypto failure aborts immediately.
//
// Returns ErrInvalidFraming if the input is not base64 or is too short to
// hold a salt and IV, and ErrDecryptionFailed if every candidate fails
// authentication.
func DecryptWithIterations(encoded, passphrase string, candidates ...int) (Backup, error) {
	if encoded == "" {
		return nil, fmt.Errorf("%w: empty input", kerrors.ErrInvalidFraming)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidFraming, err)
	}
	if len(raw) < SaltSize+IVSize {
		return nil, fmt.Errorf("%w: %d bytes is too short to hold a salt and IV", kerrors.ErrInvalidFraming, len(raw))
	}

	salt := raw[:SaltSize]
	iv := raw[SaltSize : SaltSize+IVSize]
	ciphertext := raw[SaltSize+IVSize:]

	if len(candidates) == 0 {
		candidates = DefaultIterationCandidates()
	}

	for _, iterations := range candidates {
		if iterations <= 0 {
			return nil, fmt.Errorf("iteration count must be positive, got %d", iterations)
		}
		aead, err := newAEAD(DeriveKey(passphrase, salt, iterations))
		if err != nil {
			// Cipher construction failing is an internal fault, not a wrong
			// iteration count. Abort instead of masking it behind the retry.
			return nil, err
		}
		plaintext, err := aead.Open(nil, iv, ciphertext, nil)
		if err != nil {
			// Open's only failure mode is tag verification, which is exactly
			// what a wrong key produces. Try the next candidate.
			continue
		}
		return ClassifyPlaintext(plaintext)
	}

	return nil, kerrors.ErrDecryptionFailed
}

// ClassifyPlaintext interprets decrypted bytes as UTF-8 text and classifies
// them. JSON objects go through the shape rule table. Text that fails JSON
// parsing at the syntax level predates the structured formats and is
// returned as a BareSecret wrapping the raw string, with no label or
// timestamp. GCM has already authenticated the bytes by the time this runs,
// so non-JSON text is trusted as a legacy secret rather than rejected.
func ClassifyPlaintext(plaintext []byte) (Backup, error) {
	var v any
	if err := json.Unmarshal(plaintext, &v); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return BareSecret{WIF: string(plaintext)}, nil
		}
		return nil, fmt.Errorf("decoding payload: %w", err)
	}
	obj, ok := v.(map[string]any)
	if !ok || obj == nil {
		return nil, fmt.Errorf("%w: decrypted payload is not a JSON object", kerrors.ErrUnrecognizedShape)
	}
	return Classify(obj)
}

// payloadObject round-trips a typed payload through JSON into a fresh map,
// giving Encrypt a copy it can stamp without touching the caller's struct.
func payloadObject(b Backup) (map[string]any, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("serializing payload: %w", err)
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("serializing payload: %w", err)
	}
	return obj, nil
}

// newAEAD builds the AES-256-GCM cipher for a derived key.
func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating AEAD: %w", err)
	}
	return aead, nil
}

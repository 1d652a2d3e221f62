package workflows

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/quillsec/keybak/internal/audit"
	"github.com/quillsec/keybak/internal/backup"
	kerrors "github.com/quillsec/keybak/internal/errors"
)

// EncryptOptions configures the encrypt workflow.
type EncryptOptions struct {
	// InputPath is the payload JSON file to encrypt. Ignored when
	// PayloadData is set.
	InputPath string

	// PayloadData contains the payload bytes when reading from stdin.
	PayloadData []byte

	// OutputPath is where the encoded backup is written. If empty, the
	// encoded string is returned in the result instead.
	OutputPath string

	// Passphrase protects the backup. The engine enforces the minimum length.
	Passphrase string

	// Iterations is the PBKDF2 iteration count. Zero means the recommended
	// default.
	Iterations int

	// Label is stamped onto the payload when the payload carries none.
	Label string

	// Force overwrites an existing output file.
	Force bool

	// DryRun classifies and validates without encrypting or writing.
	DryRun bool
}

// EncryptResult contains the outcome of an encrypt operation.
type EncryptResult struct {
	// Kind is the classified variant of the payload.
	Kind backup.Kind

	// OutputPath is the file the encoded backup was written to, if any.
	OutputPath string

	// Encoded is the encoded backup string when no output path was given.
	Encoded string

	// Iterations is the PBKDF2 iteration count that was used.
	Iterations int

	// DryRun indicates whether this was a dry-run (nothing written).
	DryRun bool
}

// Encrypt reads a payload, classifies it, and encrypts it into a single
// portable encoded string.
//
// Returns ErrFileNotFound if the input file does not exist.
// Returns ErrInvalidPayload if the payload matches no backup variant.
// Returns ErrInvalidPassphrase if the passphrase is too short.
// Returns ErrOutputExists if the output file exists and Force is not set.
func Encrypt(ctx context.Context, opts EncryptOptions) (*EncryptResult, error) {
	data, err := readInput(opts.PayloadData, opts.InputPath)
	if err != nil {
		return nil, err
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("%w: payload is not a JSON object: %v", kerrors.ErrInvalidPayload, err)
	}
	if opts.Label != "" {
		if _, ok := obj["label"]; !ok {
			obj["label"] = opts.Label
		}
	}

	b, err := backup.Classify(obj)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidPayload, err)
	}

	iterations := opts.Iterations
	if iterations == 0 {
		iterations = backup.RecommendedIterations
	}

	result := &EncryptResult{
		Kind:       b.Kind(),
		OutputPath: opts.OutputPath,
		Iterations: iterations,
		DryRun:     opts.DryRun,
	}

	if opts.DryRun {
		// Validate the passphrase up front so a dry-run catches the same
		// input mistakes a real run would.
		if len(opts.Passphrase) < backup.MinPassphraseLength {
			return nil, kerrors.ErrInvalidPassphrase
		}
		return result, nil
	}

	encoded, err := backup.EncryptWithIterations(b, opts.Passphrase, iterations)
	if err != nil {
		return nil, err
	}

	if opts.OutputPath == "" {
		result.Encoded = encoded
	} else {
		if err := writeOutput(opts.OutputPath, []byte(encoded+"\n"), opts.Force); err != nil {
			return nil, err
		}
	}

	auditEntry := audit.Entry{
		Operation:  "encrypt",
		Kind:       string(b.Kind()),
		Input:      inputName(opts.PayloadData, opts.InputPath),
		Output:     opts.OutputPath,
		Iterations: iterations,
	}
	audit.Log(auditEntry)

	return result, nil
}

// readInput returns the inline data if present, otherwise reads the file.
func readInput(data []byte, path string) ([]byte, error) {
	if len(data) > 0 {
		return data, nil
	}
	if path == "" {
		return nil, fmt.Errorf("%w: no input file given", kerrors.ErrFileNotFound)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return content, nil
}

// writeOutput writes data to path with owner-only permissions, refusing to
// overwrite unless force is set.
func writeOutput(path string, data []byte, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", kerrors.ErrOutputExists, path)
		}
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// inputName reports where the input came from for audit entries.
func inputName(data []byte, path string) string {
	if len(data) > 0 && path == "" {
		return "-"
	}
	return path
}

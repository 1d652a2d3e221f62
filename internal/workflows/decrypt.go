package workflows

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quillsec/keybak/internal/audit"
	"github.com/quillsec/keybak/internal/backup"
)

// DecryptOptions configures the decrypt workflow.
type DecryptOptions struct {
	// InputPath is the encoded backup file to decrypt. Ignored when
	// EncodedData is set.
	InputPath string

	// EncodedData contains the encoded backup when reading from stdin.
	EncodedData []byte

	// OutputPath is where the payload JSON is written. If empty, the
	// payload is returned in the result instead.
	OutputPath string

	// Passphrase unlocks the backup.
	Passphrase string

	// IterationCandidates is the ordered list of PBKDF2 iteration counts to
	// try. Empty means the default list (recommended, then legacy).
	IterationCandidates []int

	// Force overwrites an existing output file.
	Force bool

	// DryRun decrypts and classifies but writes no output file.
	DryRun bool
}

// DecryptResult contains the outcome of a decrypt operation.
type DecryptResult struct {
	// Kind is the classified variant of the decrypted payload.
	Kind backup.Kind

	// Payload is the decrypted, classified payload.
	Payload backup.Backup

	// PayloadJSON is the payload rendered as indented JSON.
	PayloadJSON []byte

	// OutputPath is the file the payload was written to, if any.
	OutputPath string

	// DryRun reports whether the write was skipped.
	DryRun bool
}

// Decrypt reads an encoded backup, decrypts it with the candidate iteration
// counts in order, and classifies the plaintext.
//
// Returns ErrFileNotFound if the input file does not exist.
// Returns ErrInvalidFraming if the input is not a well-formed backup.
// Returns ErrDecryptionFailed if the passphrase is wrong or the data corrupt.
// Returns ErrUnrecognizedShape if the payload matches no known variant.
// Returns ErrOutputExists if the output file exists and Force is not set.
func Decrypt(ctx context.Context, opts DecryptOptions) (*DecryptResult, error) {
	data, err := readInput(opts.EncodedData, opts.InputPath)
	if err != nil {
		return nil, err
	}
	encoded := strings.TrimSpace(string(data))

	b, err := backup.DecryptWithIterations(encoded, opts.Passphrase, opts.IterationCandidates...)
	if err != nil {
		return nil, err
	}

	payloadJSON, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("rendering payload: %w", err)
	}

	result := &DecryptResult{
		Kind:        b.Kind(),
		Payload:     b,
		PayloadJSON: payloadJSON,
		OutputPath:  opts.OutputPath,
		DryRun:      opts.DryRun,
	}

	if opts.DryRun {
		result.OutputPath = ""
		return result, nil
	}

	if opts.OutputPath != "" {
		if err := writeOutput(opts.OutputPath, append(payloadJSON, '\n'), opts.Force); err != nil {
			return nil, err
		}
	}

	candidates := len(opts.IterationCandidates)
	if candidates == 0 {
		candidates = len(backup.DefaultIterationCandidates())
	}
	audit.Log(audit.Entry{
		Operation:  "decrypt",
		Kind:       string(b.Kind()),
		Input:      inputName(opts.EncodedData, opts.InputPath),
		Output:     opts.OutputPath,
		Candidates: candidates,
	})

	return result, nil
}

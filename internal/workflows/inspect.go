package workflows

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/quillsec/keybak/internal/audit"
	"github.com/quillsec/keybak/internal/backup"
)

// InspectOptions configures the inspect workflow.
type InspectOptions struct {
	// InputPath is the already-decrypted payload file to classify. Ignored
	// when PayloadData is set.
	InputPath string

	// PayloadData contains the payload bytes when reading from stdin.
	PayloadData []byte
}

// InspectResult contains the outcome of an inspect operation.
type InspectResult struct {
	// Kind is the classified variant.
	Kind backup.Kind

	// Label and CreatedAt are the payload's shared optional fields, when set.
	Label     string
	CreatedAt string

	// Fields lists the payload's top-level keys, sorted. Empty for a legacy
	// bare-secret plaintext.
	Fields []string
}

// Inspect classifies an already-decrypted payload without touching any
// cryptography. It applies the same rule table as the decrypt path,
// including the legacy fallback: a file that is not JSON at all classifies
// as a bare secret.
//
// Returns ErrFileNotFound if the input file does not exist.
// Returns ErrUnrecognizedShape if the payload matches no known variant.
func Inspect(ctx context.Context, opts InspectOptions) (*InspectResult, error) {
	data, err := readInput(opts.PayloadData, opts.InputPath)
	if err != nil {
		return nil, err
	}

	b, err := backup.ClassifyPlaintext(data)
	if err != nil {
		return nil, err
	}

	result := &InspectResult{Kind: b.Kind()}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err == nil {
		for key := range obj {
			result.Fields = append(result.Fields, key)
		}
		sort.Strings(result.Fields)
		if label, ok := obj["label"].(string); ok {
			result.Label = label
		}
		if createdAt, ok := obj["createdAt"].(string); ok {
			result.CreatedAt = createdAt
		}
	}

	audit.Log(audit.Entry{
		Operation: "inspect",
		Kind:      string(b.Kind()),
		Input:     inputName(opts.PayloadData, opts.InputPath),
	})

	return result, nil
}

package workflows

import (
	"context"

	"github.com/quillsec/keybak/internal/audit"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit caps how many entries are returned, newest last. Zero means all.
	Limit int
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the audit entries, oldest first.
	Entries []audit.Entry

	// LogPath is the audit log location.
	LogPath string
}

// Log reads recent entries from the audit log.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	entries, err := audit.ReadRecent(opts.Limit)
	if err != nil {
		return nil, err
	}
	return &LogResult{
		Entries: entries,
		LogPath: audit.LogPath(),
	}, nil
}

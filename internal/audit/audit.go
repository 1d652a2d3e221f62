package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Entry represents a single audit log entry. Entries record what happened,
// never the material involved: no passphrases, keys, or payload contents.
type Entry struct {
	Timestamp string `json:"ts"` // RFC3339 with microseconds.
	Operation string `json:"op"` // "encrypt", "decrypt", "inspect".

	// Optional fields depending on operation.
	Kind       string `json:"kind,omitempty"`       // Classified backup variant.
	Input      string `json:"input,omitempty"`      // Input file path, or "-" for stdin.
	Output     string `json:"output,omitempty"`     // Output file path.
	Iterations int    `json:"iterations,omitempty"` // For encrypt: the count used.
	Candidates int    `json:"candidates,omitempty"` // For decrypt: how many counts were eligible.
}

// envLogPath overrides the default audit log location, mainly for tests.
const envLogPath = "KEYBAK_AUDIT_LOG"

// Log appends an entry to the audit log.
// If logging fails, the entry is dropped silently. Operations should not
// fail just because audit logging failed.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path to the audit log file. The KEYBAK_AUDIT_LOG
// environment variable overrides the default location under the user
// config directory. Returns empty string if no location can be determined.
func LogPath() string {
	if p := os.Getenv(envLogPath); p != "" {
		return p
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, "keybak", "audit.jsonl")
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist. Malformed lines are
// skipped rather than failing the whole read.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return []Entry{}, nil
	}

	f, err := os.Open(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// ReadRecent returns the last n entries from the audit log, oldest first.
func ReadRecent(n int) ([]Entry, error) {
	entries, err := ReadEntries()
	if err != nil {
		return nil, err
	}
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

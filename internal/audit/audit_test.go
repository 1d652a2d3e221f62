package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupLog(t *testing.T) string {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")
	t.Setenv(envLogPath, logPath)
	return logPath
}

func TestLogAndRead(t *testing.T) {
	logPath := setupLog(t)

	Log(Entry{Operation: "encrypt", Kind: "vault", Input: "wallet.json", Output: "wallet.bak", Iterations: 600000})
	Log(Entry{Operation: "decrypt", Kind: "vault", Input: "wallet.bak", Candidates: 2})

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got: %d", len(entries))
	}
	if entries[0].Operation != "encrypt" || entries[1].Operation != "decrypt" {
		t.Errorf("Expected entries in append order, got: %s, %s", entries[0].Operation, entries[1].Operation)
	}
	if entries[0].Timestamp == "" {
		t.Error("Expected a timestamp to be stamped on write")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Expected log file to exist: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected 0600 permissions on the log, got: %v", info.Mode().Perm())
	}
}

func TestReadEntries_MissingLog(t *testing.T) {
	setupLog(t)

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries for a missing log, got: %d", len(entries))
	}
}

func TestReadEntries_SkipsMalformedLines(t *testing.T) {
	logPath := setupLog(t)

	content := `{"op":"encrypt","kind":"vault"}
this line is not JSON
{"op":"decrypt","kind":"member"}
`
	if err := os.WriteFile(logPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to seed log: %v", err)
	}

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected malformed lines to be skipped, got %d entries", len(entries))
	}
}

func TestReadRecent(t *testing.T) {
	setupLog(t)

	for _, op := range []string{"one", "two", "three", "four"} {
		Log(Entry{Operation: op})
	}

	entries, err := ReadRecent(2)
	if err != nil {
		t.Fatalf("ReadRecent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got: %d", len(entries))
	}
	if entries[0].Operation != "three" || entries[1].Operation != "four" {
		t.Errorf("Expected the newest entries oldest-first, got: %s, %s",
			entries[0].Operation, entries[1].Operation)
	}
}

func TestLog_NeverContainsSecrets(t *testing.T) {
	logPath := setupLog(t)

	Log(Entry{Operation: "encrypt", Kind: "tri-key", Input: "wallet.json"})

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log: %v", err)
	}
	// The Entry type has no field that could carry key material; this guards
	// against one being added without thought.
	for _, field := range []string{"passphrase", "wif", "plaintext", "mnemonic"} {
		if strings.Contains(strings.ToLower(string(data)), field) {
			t.Errorf("Audit log unexpectedly contains %q", field)
		}
	}
}

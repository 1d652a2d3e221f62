// Package audit provides an append-only operation log for keybak.
//
// Each encrypt, decrypt, or inspect operation appends one JSON line to
// the audit log under the user config directory (override with the
// KEYBAK_AUDIT_LOG environment variable). Entries record operation names,
// file paths, variant kinds, and iteration counts. They never contain
// passphrases, derived keys, or payload contents.
//
// Audit logging is best-effort: a failed write never fails the operation
// that triggered it.
package audit

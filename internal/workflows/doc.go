// Package workflows implements the operations behind keybak CLI commands.
//
// Each workflow is a function taking a context and an Options struct and
// returning a Result struct. Workflows own all file IO and passphrase-free
// orchestration; the cmd layer only gathers flags, sources the passphrase,
// and renders results. No retry or classification logic lives outside the
// backup package.
//
// Workflows return the sentinel errors from internal/errors so the CLI can
// branch with errors.Is and show targeted messages.
package workflows

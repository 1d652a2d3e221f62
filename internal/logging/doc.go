// Package logger provides leveled logging for keybak CLI commands.
//
// The logger supports verbosity levels controlled by command-line flags.
// Output is prefixed and colored with fatih/color.
//
// # Verbosity Levels
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: shows info messages
//   - --debug: shows info and debug messages
//
// Warnings and errors are always shown.
//
// # Usage
//
// Commands create a logger in their PersistentPreRun and pass it down:
//
//	log := logger.Logger{Verbose: verbose, Debug: debug}
//	log.Infof("classified payload as %s", kind)
//
// The logger must never receive secret material: no passphrases, no
// derived keys, no decrypted payload contents, at any level.
package logger

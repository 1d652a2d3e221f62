// Package utils provides shared utility functions for the keybak application.
//
// Functions are organized into logical groups:
//
// # Terminal Utilities
//
// Functions for terminal detection and no-echo passphrase input:
//   - ReadPassphrase: prompts on stdin with echo disabled
//   - ReadPassphraseFromTTY: prompts on /dev/tty when stdin carries data
//   - StdinIsTerminal: checks whether stdin is a terminal
//
// # I/O Utilities
//
// Functions for reading from stdin:
//   - ReadStdin, ReadStdinLine
//
// # String Utilities
//
// Functions for string manipulation and human-readable formatting:
//   - FormatPaths, Truncate
package utils

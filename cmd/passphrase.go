package cmd

import (
	"os"

	kerrors "github.com/quillsec/keybak/internal/errors"
	"github.com/quillsec/keybak/internal/utils"
)

// envPassphrase supplies the passphrase non-interactively, mainly for
// scripting and CI. Interactive prompting is preferred.
const envPassphrase = "KEYBAK_PASSPHRASE"

// resolvePassphrase obtains the passphrase in priority order: the
// KEYBAK_PASSPHRASE environment variable, a line piped on stdin when
// passphraseStdin is set, then an interactive no-echo prompt. When the
// payload itself occupies stdin, the prompt falls back to /dev/tty.
// With confirm set, interactive entry is prompted twice and must match.
func resolvePassphrase(passphraseStdin, payloadOnStdin, confirm bool) (string, error) {
	if p := os.Getenv(envPassphrase); p != "" {
		return p, nil
	}

	if passphraseStdin {
		if payloadOnStdin {
			return "", kerrors.ErrNoPassphrase
		}
		return utils.ReadStdinLine()
	}

	prompt := func(label string) ([]byte, error) {
		if payloadOnStdin {
			return utils.ReadPassphraseFromTTY(label)
		}
		return utils.ReadPassphrase(label)
	}

	if !payloadOnStdin && !utils.StdinIsTerminal() {
		return "", kerrors.ErrNoPassphrase
	}

	passphrase, err := prompt("Passphrase: ")
	if err != nil {
		return "", err
	}
	if confirm {
		again, err := prompt("Confirm passphrase: ")
		if err != nil {
			return "", err
		}
		if string(passphrase) != string(again) {
			return "", kerrors.ErrPassphraseMismatch
		}
	}
	return string(passphrase), nil
}

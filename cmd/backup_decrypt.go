package cmd

import (
	"context"
	"errors"
	"fmt"

	kerrors "github.com/quillsec/keybak/internal/errors"
	"github.com/quillsec/keybak/internal/ui"
	"github.com/quillsec/keybak/internal/utils"
	"github.com/quillsec/keybak/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	decryptInput           string
	decryptOutput          string
	decryptIterations      []int
	decryptStdin           bool
	decryptPassphraseStdin bool
	decryptForce           bool
	decryptDryRun          bool
)

func init() {
	decryptCmd.Flags().StringVarP(&decryptInput, "input", "i", "", "encoded backup file to decrypt")
	decryptCmd.Flags().StringVarP(&decryptOutput, "output", "o", "", "file to write the payload JSON to (prints to stdout if omitted)")
	decryptCmd.Flags().IntSliceVar(&decryptIterations, "iterations", nil, "ordered PBKDF2 iteration counts to try (default: recommended,legacy)")
	decryptCmd.Flags().BoolVar(&decryptStdin, "stdin", false, "read the encoded backup from stdin instead of a file")
	decryptCmd.Flags().BoolVar(&decryptPassphraseStdin, "passphrase-stdin", false, "read the passphrase from stdin instead of prompting")
	decryptCmd.Flags().BoolVarP(&decryptForce, "force", "f", false, "overwrite the output file if it exists")
	decryptCmd.Flags().BoolVar(&decryptDryRun, "dry-run", false, "decrypt and classify without writing the payload")
}

func resetDecryptCommandState() {
	decryptInput = ""
	decryptOutput = ""
	decryptIterations = nil
	decryptStdin = false
	decryptPassphraseStdin = false
	decryptForce = false
	decryptDryRun = false
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypts an encoded backup back into its payload JSON",
	Run: func(cmd *cobra.Command, args []string) {
		var encodedData []byte
		if decryptStdin {
			data, err := utils.ReadStdin()
			if err != nil {
				printError("Failed to read backup from stdin", err)
				return
			}
			encodedData = data
		} else if decryptInput == "" {
			fmt.Printf("%s No input given\n%s Pass %s or %s\n",
				ui.Error.Sprint("✗"), ui.Info.Sprint("→"),
				ui.Flag.Sprint("--input"), ui.Flag.Sprint("--stdin"))
			return
		}

		passphrase, err := resolvePassphrase(decryptPassphraseStdin, decryptStdin, false)
		if err != nil {
			printError("Failed to obtain a passphrase", err)
			return
		}

		spinner, cleanup := startSpinner("Decrypting backup...", verbose)
		defer cleanup()

		result, err := workflows.Decrypt(context.Background(), workflows.DecryptOptions{
			InputPath:           decryptInput,
			EncodedData:         encodedData,
			OutputPath:          decryptOutput,
			Passphrase:          passphrase,
			IterationCandidates: decryptIterations,
			Force:               decryptForce,
			DryRun:              decryptDryRun,
		})
		if err != nil {
			spinner.FinalMSG = decryptErrorMessage(err)
			return
		}

		if result.DryRun {
			spinner.FinalMSG = ui.Warning.Sprint("[dry-run]") + " Backup decrypts to " +
				ui.Highlight.Sprint(string(result.Kind)) + "; nothing written\n"
			return
		}

		finalMessage := ui.Success.Sprint("✓") + " Backup decrypted successfully!\n" +
			ui.Info.Sprint("→") + " Variant: " + ui.Highlight.Sprint(string(result.Kind)) + "\n"
		if result.OutputPath != "" {
			finalMessage += ui.Info.Sprint("→") + " Written to " + ui.Path.Sprint(result.OutputPath) + "\n"
		} else {
			finalMessage += string(result.PayloadJSON) + "\n"
		}
		spinner.FinalMSG = finalMessage
	},
}

// decryptErrorMessage maps workflow errors onto user-facing final messages.
// The distinction between framing, authentication, and shape errors is kept
// visible so users know whether to fix the file or the passphrase.
func decryptErrorMessage(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrInvalidFraming):
		return ui.Error.Sprint("✗") + " Not a valid backup file\n" +
			ui.Error.Sprint("Error: ") + err.Error() + "\n"
	case errors.Is(err, kerrors.ErrDecryptionFailed):
		return ui.Error.Sprint("✗") + " Invalid passphrase or corrupted data\n" +
			ui.Info.Sprint("→") + " If this backup is old, try " + ui.Flag.Sprint("--iterations") + " with the legacy count\n"
	case errors.Is(err, kerrors.ErrUnrecognizedShape):
		return ui.Error.Sprint("✗") + " Decrypted payload matches no known backup variant\n" +
			ui.Error.Sprint("Error: ") + err.Error() + "\n"
	case errors.Is(err, kerrors.ErrFileNotFound):
		return ui.Error.Sprint("✗") + " Could not read the backup file\n" +
			ui.Error.Sprint("Error: ") + err.Error() + "\n"
	case errors.Is(err, kerrors.ErrOutputExists):
		return ui.Error.Sprint("✗") + " Output file already exists\n" +
			ui.Info.Sprint("→") + " Pass " + ui.Flag.Sprint("--force") + " to overwrite\n"
	default:
		return ui.Error.Sprint("✗") + " Failed to decrypt the backup\n" +
			ui.Error.Sprint("Error: ") + err.Error() + "\n"
	}
}

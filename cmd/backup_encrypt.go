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
	encryptInput           string
	encryptOutput          string
	encryptIterations      int
	encryptLabel           string
	encryptStdin           bool
	encryptPassphraseStdin bool
	encryptForce           bool
	encryptDryRun          bool
)

func init() {
	encryptCmd.Flags().StringVarP(&encryptInput, "input", "i", "", "payload JSON file to encrypt")
	encryptCmd.Flags().StringVarP(&encryptOutput, "output", "o", "", "file to write the encoded backup to (prints to stdout if omitted)")
	encryptCmd.Flags().IntVar(&encryptIterations, "iterations", 0, "PBKDF2 iteration count (default: recommended)")
	encryptCmd.Flags().StringVar(&encryptLabel, "label", "", "label to stamp onto the payload if it has none")
	encryptCmd.Flags().BoolVar(&encryptStdin, "stdin", false, "read the payload from stdin instead of a file")
	encryptCmd.Flags().BoolVar(&encryptPassphraseStdin, "passphrase-stdin", false, "read the passphrase from stdin instead of prompting")
	encryptCmd.Flags().BoolVarP(&encryptForce, "force", "f", false, "overwrite the output file if it exists")
	encryptCmd.Flags().BoolVar(&encryptDryRun, "dry-run", false, "classify and validate without encrypting")
}

func resetEncryptCommandState() {
	encryptInput = ""
	encryptOutput = ""
	encryptIterations = 0
	encryptLabel = ""
	encryptStdin = false
	encryptPassphraseStdin = false
	encryptForce = false
	encryptDryRun = false
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypts a payload JSON file into a single portable backup string",
	Run: func(cmd *cobra.Command, args []string) {
		var payloadData []byte
		if encryptStdin {
			data, err := utils.ReadStdin()
			if err != nil {
				printError("Failed to read payload from stdin", err)
				return
			}
			payloadData = data
		} else if encryptInput == "" {
			fmt.Printf("%s No input given\n%s Pass %s or %s\n",
				ui.Error.Sprint("✗"), ui.Info.Sprint("→"),
				ui.Flag.Sprint("--input"), ui.Flag.Sprint("--stdin"))
			return
		}

		passphrase, err := resolvePassphrase(encryptPassphraseStdin, encryptStdin, true)
		if err != nil {
			printError("Failed to obtain a passphrase", err)
			return
		}

		spinner, cleanup := startSpinner("Encrypting backup...", verbose)
		defer cleanup()

		result, err := workflows.Encrypt(context.Background(), workflows.EncryptOptions{
			InputPath:   encryptInput,
			PayloadData: payloadData,
			OutputPath:  encryptOutput,
			Passphrase:  passphrase,
			Iterations:  encryptIterations,
			Label:       encryptLabel,
			Force:       encryptForce,
			DryRun:      encryptDryRun,
		})
		if err != nil {
			spinner.FinalMSG = encryptErrorMessage(err)
			return
		}

		if result.DryRun {
			spinner.FinalMSG = ui.Warning.Sprint("[dry-run]") + " Payload classifies as " +
				ui.Highlight.Sprint(string(result.Kind)) + "; nothing written\n"
			return
		}

		finalMessage := ui.Success.Sprint("✓") + " Backup encrypted successfully!\n" +
			ui.Info.Sprint("→") + " Variant: " + ui.Highlight.Sprint(string(result.Kind)) + "\n" +
			ui.Info.Sprint("→") + " Iterations: " + fmt.Sprintf("%d", result.Iterations) + "\n"
		if result.OutputPath != "" {
			finalMessage += "The following file was created:" +
				utils.FormatPaths([]string{result.OutputPath})
		} else {
			finalMessage += result.Encoded + "\n"
		}
		spinner.FinalMSG = finalMessage
	},
}

// encryptErrorMessage maps workflow errors onto user-facing final messages.
func encryptErrorMessage(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrInvalidPassphrase):
		return ui.Error.Sprint("✗") + " Passphrase is too short\n" +
			ui.Info.Sprint("→") + " Use at least 8 characters\n"
	case errors.Is(err, kerrors.ErrInvalidPayload):
		return ui.Error.Sprint("✗") + " Payload does not match any known backup variant\n" +
			ui.Error.Sprint("Error: ") + err.Error() + "\n"
	case errors.Is(err, kerrors.ErrFileNotFound):
		return ui.Error.Sprint("✗") + " Could not read the payload file\n" +
			ui.Error.Sprint("Error: ") + err.Error() + "\n"
	case errors.Is(err, kerrors.ErrOutputExists):
		return ui.Error.Sprint("✗") + " Output file already exists\n" +
			ui.Info.Sprint("→") + " Pass " + ui.Flag.Sprint("--force") + " to overwrite\n"
	default:
		return ui.Error.Sprint("✗") + " Failed to encrypt the backup\n" +
			ui.Error.Sprint("Error: ") + err.Error() + "\n"
	}
}

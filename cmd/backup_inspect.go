package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	kerrors "github.com/quillsec/keybak/internal/errors"
	"github.com/quillsec/keybak/internal/ui"
	"github.com/quillsec/keybak/internal/utils"
	"github.com/quillsec/keybak/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	inspectInput string
	inspectStdin bool
)

func init() {
	inspectCmd.Flags().StringVarP(&inspectInput, "input", "i", "", "decrypted payload file to classify")
	inspectCmd.Flags().BoolVar(&inspectStdin, "stdin", false, "read the payload from stdin instead of a file")
}

func resetInspectCommandState() {
	inspectInput = ""
	inspectStdin = false
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Classifies an already-decrypted payload without decrypting anything",
	Run: func(cmd *cobra.Command, args []string) {
		var payloadData []byte
		if inspectStdin {
			data, err := utils.ReadStdin()
			if err != nil {
				printError("Failed to read payload from stdin", err)
				return
			}
			payloadData = data
		} else if inspectInput == "" {
			fmt.Printf("%s No input given\n%s Pass %s or %s\n",
				ui.Error.Sprint("✗"), ui.Info.Sprint("→"),
				ui.Flag.Sprint("--input"), ui.Flag.Sprint("--stdin"))
			return
		}

		result, err := workflows.Inspect(context.Background(), workflows.InspectOptions{
			InputPath:   inspectInput,
			PayloadData: payloadData,
		})
		if err != nil {
			switch {
			case errors.Is(err, kerrors.ErrUnrecognizedShape):
				fmt.Printf("%s Payload matches no known backup variant\n%s %v\n",
					ui.Error.Sprint("✗"), ui.Error.Sprint("Error:"), err)
			case errors.Is(err, kerrors.ErrFileNotFound):
				printError("Could not read the payload file", err)
			default:
				printError("Failed to classify the payload", err)
			}
			return
		}

		fmt.Printf("%s Payload classifies as %s\n",
			ui.Success.Sprint("✓"), ui.Highlight.Sprint(string(result.Kind)))
		if len(result.Fields) > 0 {
			fmt.Printf("%s Fields: %s\n", ui.Info.Sprint("→"), strings.Join(result.Fields, ", "))
		}
		if result.Label != "" {
			fmt.Printf("%s Label: %s\n", ui.Info.Sprint("→"), ui.Highlight.Sprint(utils.Truncate(result.Label, 60)))
		}
		if result.CreatedAt != "" {
			fmt.Printf("%s Created: %s\n", ui.Info.Sprint("→"), result.CreatedAt)
		}
	},
}

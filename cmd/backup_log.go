package cmd

import (
	"context"
	"fmt"

	"github.com/quillsec/keybak/internal/ui"
	"github.com/quillsec/keybak/internal/workflows"
	"github.com/spf13/cobra"
)

var logLimit int

func init() {
	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 20, "maximum number of entries to show")
}

func resetLogCommandState() {
	logLimit = 20
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Shows recent backup operations from the audit log",
	Run: func(cmd *cobra.Command, args []string) {
		result, err := workflows.Log(context.Background(), workflows.LogOptions{Limit: logLimit})
		if err != nil {
			printError("Failed to read the audit log", err)
			return
		}

		if len(result.Entries) == 0 {
			fmt.Printf("%s No operations recorded yet %s\n",
				ui.Info.Sprint("→"), ui.Muted.Sprint(result.LogPath))
			return
		}

		for _, entry := range result.Entries {
			line := fmt.Sprintf("%s  %-7s", entry.Timestamp, entry.Operation)
			if entry.Kind != "" {
				line += "  " + ui.Highlight.Sprint(entry.Kind)
			}
			if entry.Input != "" {
				line += "  " + ui.Path.Sprint(entry.Input)
			}
			if entry.Output != "" {
				line += " " + ui.Info.Sprint("→") + " " + ui.Path.Sprint(entry.Output)
			}
			fmt.Println(line)
		}
		fmt.Printf("%s %d entries %s\n", ui.Info.Sprint("→"), len(result.Entries), ui.Muted.Sprint(result.LogPath))
	},
}

package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/quillsec/keybak/internal/backup"
	"github.com/quillsec/keybak/internal/ui"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Shows the keybak version and format constants",
	Run: func(cmd *cobra.Command, args []string) {
		banner := figure.NewColorFigure("keybak", "alligator2", "green", true)
		banner.Print()
		fmt.Println()
		fmt.Printf("keybak %s\n", Version)
		fmt.Printf("%s Recommended iterations: %d\n", ui.Info.Sprint("→"), backup.RecommendedIterations)
		fmt.Printf("%s Legacy iterations:      %d\n", ui.Info.Sprint("→"), backup.LegacyIterations)
	},
}

package main

import (
	"fmt"
	"os"

	"github.com/quillsec/keybak/cmd"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "keybak",
	Short: "keybak - Passphrase encryption for portable wallet backups.",
	Long: `keybak encrypts structured wallet secrets (master keys, member keys,
derived-key bundles, opaque vault blobs) under a passphrase into a single
portable string, and decrypts them back while working out which backup
variant the payload is.

Usage:
  keybak <command> [flags]

Available Commands:
  backup     Encrypt, decrypt, and inspect wallet backups
  version    Show version and format constants

Run 'keybak help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Run 'keybak --help' to see available commands.")
	},
}

func main() {
	rootCmd.AddCommand(cmd.BackupCmd)
	rootCmd.AddCommand(cmd.VersionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

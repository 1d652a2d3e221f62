package cmd

import (
	logger "github.com/quillsec/keybak/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	BackupCmd = &cobra.Command{
		Use:   "backup",
		Short: "Encrypt, decrypt, and inspect wallet backups",
		Long:  `Provides passphrase encryption and decryption of wallet backups, classification of decrypted payloads, and the operation log.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing backup command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	BackupCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	BackupCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	BackupCmd.AddCommand(encryptCmd)
	BackupCmd.AddCommand(decryptCmd)
	BackupCmd.AddCommand(inspectCmd)
	BackupCmd.AddCommand(logCmd)
}

// Helper functions for testing

// GetBackupCmd returns the BackupCmd for testing.
func GetBackupCmd() *cobra.Command {
	return BackupCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetEncryptCommandState()
	resetDecryptCommandState()
	resetInspectCommandState()
	resetLogCommandState()
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}

package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var configDir string

var rootCmd = &cobra.Command{
	Use:          "portfolioctl",
	Short:        "Operate the portfolio content store",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "directory containing config.yaml and .env")

	rootCmd.AddCommand(migrateCmd, seedCmd, backupCmd, restoreCmd, loginCmd, logoutCmd, statusCmd)

	backupCmd.Flags().String("out", "", "write the snapshot to this file instead of the configured backup storage")
	restoreCmd.Flags().String("in", "", "snapshot file to restore")
	restoreCmd.Flags().String("key", "", "snapshot key in the configured backup storage")
	loginCmd.Flags().String("password", "", "admin secret (read from stdin when omitted)")
}

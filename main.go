// Steambot pushes the Steam presence of bound users to chat groups and
// answers "#steam" commands.
//
// It runs on Discord (Karin dialect) or on a OneBot v11 implementation
// (legacy dialect), chosen by bot.dialect.
//
// Usage:
//
//	steambot [command] [flags]
//
// See 'steambot --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "steambot",
	Short: "Steam status bot",
	Long: `Steambot binds chat users to Steam accounts, reports their status on
request and pushes game and status changes to the groups they subscribed in.`,
	SilenceUsage: true,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./config.yaml)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(settingsCmd)
}

package cmd

import (
	logger "github.com/collab-intel/ci/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	KeysCmd = &cobra.Command{
		Use:     "keys",
		Aliases: []string{"key"},
		Short:   "Manage API keys for external services",
		Long: `Stores, resolves, lists and exports API keys.

Keys live in a user store (<config_dir>/ci/keys.toml) and, optionally, in a
project store (.ci/keys.toml in the project or any parent directory).
Environment variables named SERVICE_KEY always win over stored values.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing keys command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	KeysCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	KeysCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	KeysCmd.AddCommand(listCmd)
	KeysCmd.AddCommand(setCmd)
	KeysCmd.AddCommand(getCmd)
	KeysCmd.AddCommand(removeCmd)
	KeysCmd.AddCommand(exportCmd)
	KeysCmd.AddCommand(pathCmd)
	KeysCmd.AddCommand(logCmd)
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetListCommandState()
	resetSetCommandState()
	resetGetCommandState()
	resetRemoveCommandState()
	resetLogCommandState()
}

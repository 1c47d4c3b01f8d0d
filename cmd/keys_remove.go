package cmd

import (
	"context"

	"github.com/collab-intel/ci/internal/ui"
	"github.com/collab-intel/ci/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	removeEnvironment string
	removeProject     bool
)

func init() {
	removeCmd.Flags().StringVarP(&removeEnvironment, "env", "e", "", "remove the key for one environment")
	removeCmd.Flags().BoolVarP(&removeProject, "project", "p", false, "remove the key from the project store")
}

func resetRemoveCommandState() {
	removeEnvironment = ""
	removeProject = false
}

var removeCmd = &cobra.Command{
	Use:     "remove <service> <key>",
	Aliases: []string{"rm"},
	Short:   "Remove a stored API key",
	Long: `Removes an API key from one scope. Removing a plain key leaves any
environment-specific key of the same name in place.

A key that is not stored is reported but is not an error.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting remove command")
		service, keyName := args[0], args[1]

		spinner, cleanup := startSpinner("Removing API key...", verbose)
		defer cleanup()

		result, err := workflows.Remove(context.Background(), workflows.RemoveOptions{
			Service:     service,
			Key:         keyName,
			Environment: removeEnvironment,
			Project:     removeProject,
		})
		if err != nil {
			Logger.Debugf("Remove failed: %v", err)
			spinner.FinalMSG = formatKeysError(err, service, keyName)
			return reported(err)
		}
		Logger.Debugf("Remove from %s: removed=%t", result.StorePath, result.Removed)

		suffix := ""
		if removeEnvironment != "" {
			suffix = " for environment " + ui.Highlight.Sprint(removeEnvironment)
		}

		if result.Removed {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " API key " + keyLabel(service, keyName) + suffix + " removed successfully"
		} else {
			spinner.FinalMSG = ui.Warning.Sprint("!") + " API key " + keyLabel(service, keyName) + suffix + " not found"
		}
		return nil
	},
}

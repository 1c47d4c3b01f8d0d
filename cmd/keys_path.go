package cmd

import (
	"context"
	"fmt"

	"github.com/collab-intel/ci/internal/ui"
	"github.com/collab-intel/ci/internal/utils"
	"github.com/collab-intel/ci/internal/workflows"
	"github.com/spf13/cobra"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show where keys are stored",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting path command")

		result, err := workflows.Paths(context.Background())
		if err != nil {
			fmt.Println(formatKeysError(err, "", ""))
			return reported(err)
		}

		fmt.Print("User key store:" + utils.FormatPaths([]string{result.GlobalPath}))

		if result.ProjectPath != "" {
			fmt.Print("Project key store:" + utils.FormatPaths([]string{result.ProjectPath}))
		} else {
			fmt.Println("Project key store: " + ui.Muted.Sprint("none found"))
		}

		fmt.Print("Lock files " + ui.Muted.Sprint("do not commit") + ":" +
			utils.FormatPaths(result.LockPaths))

		switch {
		case result.AuditPath == "":
			fmt.Println("Audit log: " + ui.Muted.Sprint("unavailable"))
		case !result.AuditOn:
			fmt.Println("Audit log: " + ui.Muted.Sprint("disabled"))
		default:
			fmt.Print("Audit log:" + utils.FormatPaths([]string{result.AuditPath}))
		}
		return nil
	},
}

package cmd

import (
	"context"
	"fmt"

	"github.com/collab-intel/ci/internal/workflows"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print shell export lines for stored keys",
	Long: `Prints one export line per key in the user store, for example:

  export OPENAI_API_KEY="sk-..."

Environment-specific keys and project keys are skipped. Load them into the
current shell with:

  eval "$(ci keys export)"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting export command")

		result, err := workflows.Export(context.Background())
		if err != nil {
			Logger.Debugf("Export failed: %v", err)
			fmt.Fprintln(cmd.ErrOrStderr(), formatKeysError(err, "", ""))
			return reported(err)
		}
		Logger.Debugf("Exporting %d keys", len(result.Lines))

		for _, line := range result.Lines {
			fmt.Println(line)
		}
		return nil
	},
}

package cmd

import (
	"context"
	"fmt"

	"github.com/collab-intel/ci/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	getEnvironment string
	getMasked      bool
)

func init() {
	getCmd.Flags().StringVarP(&getEnvironment, "env", "e", "", "resolve the key for one environment")
	getCmd.Flags().BoolVar(&getMasked, "masked", false, "print the masked value instead of the secret")
}

func resetGetCommandState() {
	getEnvironment = ""
	getMasked = false
}

var getCmd = &cobra.Command{
	Use:   "get <service> <key>",
	Short: "Print a resolved API key",
	Long: `Prints the value of an API key, resolved in this order:

  1. environment variable SERVICE_KEY (or ENV_SERVICE_KEY with --env)
  2. the user store (its environment table first with --env)
  3. the project store

Only the value is printed so the output can be used in scripts:

  export OPENAI_API_KEY=$(ci keys get openai api_key)`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting get command")
		service, keyName := args[0], args[1]

		result, err := workflows.Get(context.Background(), workflows.GetOptions{
			Service:     service,
			Key:         keyName,
			Environment: getEnvironment,
		})
		if err != nil {
			Logger.Debugf("Get failed: %v", err)
			// Keep stdout empty for scripts.
			fmt.Fprintln(cmd.ErrOrStderr(), formatKeysError(err, service, keyName))
			return reported(err)
		}

		if getMasked {
			fmt.Println(result.Masked)
			return nil
		}
		fmt.Println(result.Value)
		return nil
	},
}

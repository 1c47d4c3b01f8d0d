package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/collab-intel/ci/internal/keys"
	"github.com/collab-intel/ci/internal/ui"
	"github.com/collab-intel/ci/internal/utils"
	"github.com/collab-intel/ci/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	setEnvironment string
	setProject     bool
)

func init() {
	setCmd.Flags().StringVarP(&setEnvironment, "env", "e", "", "store the key for one environment (e.g. staging)")
	setCmd.Flags().BoolVarP(&setProject, "project", "p", false, "store the key in the project store (.ci/keys.toml)")
}

func resetSetCommandState() {
	setEnvironment = ""
	setProject = false
}

var setCmd = &cobra.Command{
	Use:     "set <service> <key> [value]",
	Aliases: []string{"add"},
	Short:   "Store an API key",
	Long: `Stores an API key in the user store, for one environment, or in the
project store.

When the value is omitted it is read from stdin if data is piped, or
prompted for without echo on a terminal. Passing the value as an argument
leaves it in your shell history.

Examples:
  ci keys set openai api_key                          # Prompt for the value
  echo "$TOKEN" | ci keys set github token            # Read from stdin
  ci keys set openai api_key sk-... --env staging     # Environment-specific
  ci keys set openai api_key sk-... --project         # Project-specific`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting set command")
		service, keyName := args[0], args[1]

		value, err := readKeyValue(service, keyName, args)
		if err != nil {
			fmt.Println(ui.Error.Sprint("✗") + " " + err.Error())
			return reported(err)
		}
		Logger.Debugf("Read value for %s.%s (%d characters)", service, keyName, len(value))

		spinner, cleanup := startSpinner("Storing API key...", verbose)
		defer cleanup()

		result, err := workflows.Set(context.Background(), workflows.SetOptions{
			Service:     service,
			Key:         keyName,
			Value:       value,
			Environment: setEnvironment,
			Project:     setProject,
		})
		if err != nil {
			Logger.Debugf("Set failed: %v", err)
			spinner.FinalMSG = formatKeysError(err, service, keyName)
			return reported(err)
		}
		Logger.Infof("Stored %s.%s in %s", service, keyName, result.StorePath)

		spinner.FinalMSG = formatSetSuccess(result, service, keyName)
		return nil
	},
}

// readKeyValue takes the value from the arguments, piped stdin or a hidden prompt.
func readKeyValue(service, keyName string, args []string) (string, error) {
	if len(args) == 3 {
		return args[2], nil
	}
	if utils.IsTerminal() {
		return utils.ReadSecret(fmt.Sprintf("Value for %s.%s: ", service, keyName))
	}
	return utils.ReadStdin()
}

func formatSetSuccess(result *workflows.SetResult, service, keyName string) string {
	check := ui.Success.Sprint("✓")

	switch result.Scope {
	case keys.ScopeEnvironment:
		return check + " API key " + keyLabel(service, keyName) + " for environment " +
			ui.Highlight.Sprint(setEnvironment) + " set successfully"
	case keys.ScopeProject:
		return check + " Project-specific API key " + keyLabel(service, keyName) + " set successfully\n" +
			"   " + ui.Muted.Sprint(result.StorePath)
	}

	return check + " API key " + keyLabel(service, keyName) + " set successfully\n" + serviceHints(service, keyName)
}

// serviceHints explains how to use a freshly stored key.
func serviceHints(service, keyName string) string {
	arrow := ui.Info.Sprint("→")
	envVar := keys.EnvVarName(service, keyName)

	var b strings.Builder
	b.WriteString(arrow + " Retrieve it with " + ui.Code.Sprintf("ci keys get %s %s", service, keyName) + "\n")

	switch strings.ToLower(service) {
	case "anthropic":
		b.WriteString(arrow + " Anthropic SDKs read " + ui.Code.Sprint("ANTHROPIC_API_KEY") + "; load it with " + ui.Code.Sprint(`eval "$(ci keys export)"`))
	case "openai":
		b.WriteString(arrow + " OpenAI SDKs read " + ui.Code.Sprint("OPENAI_API_KEY") + "; load it with " + ui.Code.Sprint(`eval "$(ci keys export)"`))
	case "github":
		b.WriteString(arrow + " Use it with the gh CLI: " + ui.Code.Sprintf("ci keys get %s %s | gh auth login --with-token", service, keyName))
	default:
		b.WriteString(arrow + " Export it with " + ui.Code.Sprintf("export %s=$(ci keys get %s %s)", envVar, service, keyName))
	}

	return b.String()
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/collab-intel/ci/internal/keys"
	"github.com/collab-intel/ci/internal/ui"
	"github.com/collab-intel/ci/internal/workflows"
	"github.com/spf13/cobra"
)

var listProject bool

func init() {
	listCmd.Flags().BoolVarP(&listProject, "project", "p", false, "only list the project store")
}

func resetListCommandState() {
	listProject = false
}

var listCmd = &cobra.Command{
	Use:     "list [pattern]",
	Aliases: []string{"ls"},
	Short:   "List stored API keys (masked)",
	Long: `Lists the keys in the user store and the project store. Values are
masked. An optional glob limits the listing to matching services.

Examples:
  ci keys list                     # Everything
  ci keys list 'open*'             # Services starting with "open"
  ci keys list '{openai,github}'   # Two services
  ci keys list --project           # Project store only`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list command")

		opts := workflows.ListOptions{ProjectOnly: listProject}
		if len(args) == 1 {
			opts.Pattern = args[0]
		}

		result, err := workflows.List(context.Background(), opts)
		if err != nil {
			Logger.Debugf("List failed: %v", err)
			fmt.Println(formatKeysError(err, "", ""))
			return reported(err)
		}
		listing := result.Listing
		Logger.Debugf("Listing %d user keys and %d project keys", len(listing.Global), len(listing.Project))

		if listing.ProjectErr != nil {
			Logger.Warnf("Skipping project store %s: %v", listing.ProjectPath, listing.ProjectErr)
		}

		if listing.IsEmpty() {
			if opts.Pattern != "" {
				fmt.Println(ui.Warning.Sprint("!") + " No API keys match " + ui.Highlight.Sprint(opts.Pattern))
				return nil
			}
			fmt.Println(ui.Warning.Sprint("!") + " No API keys configured")
			fmt.Println()
			fmt.Println("To set a key, use: " + ui.Code.Sprint("ci keys set <service> <key> [value]"))
			return nil
		}

		fmt.Println(ui.Info.Sprint("ℹ") + " Configured API keys:")
		if len(listing.Global) > 0 {
			printListedKeys("User keys", result.GlobalPath, listing.Global)
		}
		if len(listing.Project) > 0 {
			printListedKeys("Project keys", listing.ProjectPath, listing.Project)
		}

		fmt.Println()
		fmt.Println(ui.Info.Sprint("ℹ") + " Key values are masked for security")
		return nil
	},
}

func printListedKeys(title, path string, entries []keys.ListedKey) {
	fmt.Println()
	fmt.Println(title + " " + ui.Muted.Sprint(path))

	current := ""
	for _, entry := range entries {
		if entry.Service != current {
			current = entry.Service
			fmt.Println()
			fmt.Println(ui.Service.Sprint(strings.ToUpper(entry.Service)))
		}

		line := "  " + entry.KeyName
		if entry.Environment != "" {
			line += " [" + ui.Info.Sprint(entry.Environment) + " environment]"
		}
		line += ": " + ui.Secret.Sprint(entry.Masked)
		if entry.OverriddenBy != "" {
			line += " " + ui.Muted.Sprint("overridden by "+entry.OverriddenBy)
		}
		fmt.Println(line)
	}
}

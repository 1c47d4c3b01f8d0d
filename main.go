package main

import (
	"fmt"
	"os"

	"github.com/collab-intel/ci/cmd"
	logger "github.com/collab-intel/ci/internal/logging"
	"github.com/collab-intel/ci/internal/ui"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ci",
	Short: "ci - a developer CLI for managing API keys across projects.",
	Long: `ci keeps the API keys your tools need in one place.

Keys are stored per user, per environment, or per project, and environment
variables always take precedence so CI systems can override them.

Usage:
  ci <command> [flags]

Available Commands:
  keys       Manage API keys

Run 'ci help <command>' for more details on a specific command.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		if !ui.ColorDisabled() {
			figure.NewColorFigure("ci", "alligator2", "green", true).Print()
			fmt.Println()
		}
		fmt.Println("Welcome to ci! Run " + ui.Code.Sprint("ci --help") + " to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.KeysCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !cmd.IsReported(err) {
			logger.Logger{}.Errorf("%v", err)
		}
		os.Exit(1)
	}
}

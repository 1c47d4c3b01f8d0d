package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/collab-intel/ci/internal/configs"
	logger "github.com/collab-intel/ci/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// testEnvironment describes the isolated directories a command test runs in.
type testEnvironment struct {
	configDir  string
	keysPath   string
	auditPath  string
	projectDir string
}

// setupTestEnvironment isolates user settings under a temp config directory,
// changes into an empty project directory and resets command state.
func setupTestEnvironment(t *testing.T) *testEnvironment {
	t.Helper()
	root := t.TempDir()

	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, ".config"))
	t.Setenv("CI_KEYS_PATH", "")
	t.Setenv("CI_AUDIT", "")
	t.Setenv("NO_COLOR", "1")

	originalSettings := configs.UserCISettings
	configs.UserCISettings = nil

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}

	projectDir := filepath.Join(root, "work", "project")
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		t.Fatalf("Failed to create project directory: %v", err)
	}
	if err := os.Chdir(projectDir); err != nil {
		t.Fatalf("Failed to change to project directory: %v", err)
	}

	ResetGlobalState()

	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		configs.UserCISettings = originalSettings
		ResetGlobalState()
	})

	base, err := os.UserConfigDir()
	if err != nil {
		t.Fatalf("UserConfigDir failed: %v", err)
	}
	configDir := filepath.Join(base, "ci")

	return &testEnvironment{
		configDir:  configDir,
		keysPath:   filepath.Join(configDir, "keys.toml"),
		auditPath:  filepath.Join(configDir, "audit.jsonl"),
		projectDir: projectDir,
	}
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stdoutChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stderrChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

// withStdin replaces os.Stdin with a pipe holding input for the duration of fn.
func withStdin(t *testing.T, input string, fn func()) {
	t.Helper()
	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	if _, err := writer.WriteString(input); err != nil {
		t.Fatalf("Failed to write stdin: %v", err)
	}
	writer.Close()

	original := os.Stdin
	os.Stdin = reader
	defer func() {
		os.Stdin = original
		reader.Close()
	}()

	fn()
}

// createTestCLI creates a root command running `ci keys <args...>`.
// Flag variables from earlier runs are reset first.
func createTestCLI(args []string, verboseFlag, debugFlag bool) *cobra.Command {
	ResetGlobalState()
	resetFlags(KeysCmd)
	verbose = verboseFlag
	debug = debugFlag

	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}

	rootCmd := &cobra.Command{
		Use:           "ci",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(KeysCmd)
	rootCmd.SetArgs(append([]string{"keys"}, args...))

	return rootCmd
}

// resetFlags clears the Changed marker cobra leaves on flags parsed by an
// earlier Execute, for cmd and all its subcommands.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// runKeys runs `ci keys <args...>` and returns the combined output.
func runKeys(args ...string) (string, error) {
	return captureOutput(func() error {
		return createTestCLI(args, false, false).Execute()
	})
}

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	cierrors "github.com/collab-intel/ci/internal/errors"
	"github.com/collab-intel/ci/internal/ui"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do not need trailing newlines; cleanup adds one.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Printed to stdout so tests can capture it.
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// reportedError marks an error whose message was already shown to the user,
// so main only sets the exit code.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

// IsReported reports whether err was already printed by a command.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

func keyLabel(service, keyName string) string {
	return ui.Highlight.Sprint(service + "." + keyName)
}

// formatKeysError turns a workflow error into the message shown to the user.
func formatKeysError(err error, service, keyName string) string {
	cross := ui.Error.Sprint("✗")
	arrow := ui.Info.Sprint("→")

	switch {
	case errors.Is(err, cierrors.ErrKeyNotFound):
		return cross + " API key " + keyLabel(service, keyName) + " not found\n" +
			arrow + " Run " + ui.Code.Sprintf("ci keys set %s %s", service, keyName) + " to store it, or set " +
			ui.Code.Sprint(strings.ToUpper(service+"_"+keyName))

	case errors.Is(err, cierrors.ErrStoreParse):
		return cross + " A key store file is not valid TOML\n" +
			"   " + ui.Muted.Sprint(err.Error()) + "\n" +
			arrow + " Fix or remove the file, then try again"

	case errors.Is(err, cierrors.ErrStoreIO):
		return cross + " Could not access the key store\n" +
			"   " + ui.Muted.Sprint(err.Error())

	case errors.Is(err, cierrors.ErrConfigDirUnavailable):
		return cross + " No user configuration directory is available\n" +
			arrow + " Set " + ui.Code.Sprint("CI_KEYS_PATH") + " to choose where keys are stored"

	case errors.Is(err, cierrors.ErrConflictingScopes):
		return cross + " " + ui.Flag.Sprint("--env") + " and " + ui.Flag.Sprint("--project") + " cannot be combined\n" +
			arrow + " Environment-specific keys are only kept in the user store"

	case errors.Is(err, cierrors.ErrNoProjectStore):
		return cross + " No project key store found in this directory or its parents\n" +
			arrow + " Run " + ui.Code.Sprint("ci keys set --project <service> <key>") + " to create one"

	default:
		return cross + " " + err.Error()
	}
}

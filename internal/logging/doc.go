// Package logger provides verbosity-gated logging for ci commands.
//
// Output is prefixed with a colored severity tag. Info and debug messages
// go to stdout, warnings and errors to stderr.
//
// # Verbosity Levels
//
//   - --verbose: shows info messages
//   - --debug: shows debug messages as well
//
// Warnings and errors are always shown.
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Loaded %d services", count)
//	log.Warnf("Skipping project store %s: %v", path, err)
//
// Never pass secret values to the logger. Log service and key names only.
package logger

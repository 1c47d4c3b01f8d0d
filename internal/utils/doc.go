// Package utils provides shared utility functions for the ci application.
//
// # Filesystem Utilities
//
//   - FindProjectKeysFile: walks up from a directory to the nearest .ci/keys.toml
//   - ProjectKeysPath: the project store path for a project root
//   - EnsureSecureDir / Chmod: owner-only permissions where the OS supports them
//
// # System Utilities
//
//   - GetUsername: the current system username
//
// # I/O and Terminal Utilities
//
//   - ReadStdin: reads a piped secret value from standard input
//   - ReadSecret: prompts on the terminal without echoing input
//   - IsTerminal: reports whether stdin is a terminal
package utils

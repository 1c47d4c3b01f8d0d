// Package workflows provides high-level orchestration for ci commands.
//
// Workflows coordinate the key resolver, user settings and the audit log to
// implement complete user-facing features. Each workflow handles a single
// command's business logic, independent of CLI concerns like flag parsing,
// spinners, and output formatting.
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// # Available Workflows
//
//   - Set: stores a key in the user store, an environment, or the project store
//   - Get: resolves a key across environment variables and both stores
//   - Remove: deletes a key from one scope
//   - List: masked listing of both stores, optionally filtered by a glob
//   - Export: shell export lines for the user store
//   - Paths: where the stores and the audit log live
//   - Log: reads and filters the audit log
//
// Set and Remove record an audit entry on success.
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, so the CLI
// layer can pick a message without string matching:
//
//	result, err := workflows.Get(ctx, opts)
//	if errors.Is(err, cierrors.ErrKeyNotFound) {
//	    // Suggest `ci keys set`
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
package workflows

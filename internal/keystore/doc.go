// Package keystore persists API keys in TOML files.
//
// A Store holds two maps plus metadata:
//
//	[services.openai]
//	api_key = "sk-..."
//
//	[environments.staging.openai]
//	api_key = "sk-..."
//
//	[metadata]
//	last_updated = 2026-10-19T09:30:00Z
//
// The same schema backs the user store (<config dir>/ci/keys.toml) and each
// project store (<project>/.ci/keys.toml). Loading a missing file yields an
// empty store; files are written only by mutating operations, with 0600
// permissions inside a 0700 directory.
//
// Removals prune empty service and environment tables, so a store never keeps
// a service without keys.
//
// Use Update for load-mutate-save sequences. It holds an advisory file lock for
// the whole cycle.
package keystore

// Package audit records key mutations made through ci.
//
// Every set and remove is appended to a per-user log so there is a trail of
// which keys changed, in which scope, and when. Values are never written.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) at:
//
//	<config_dir>/ci/audit.jsonl
//
// with owner-only permissions. Each entry contains:
//   - A random ID and a UTC timestamp with microseconds
//   - The local username
//   - The operation (set, remove) and scope (global, environment, project)
//   - Service, key and environment names, plus whether a remove found the key
//
// # Usage
//
//	entry := audit.LogWithUser(audit.OpSet)
//	entry.Scope = "global"
//	entry.Service, entry.Key = "openai", "api_key"
//	audit.Log(entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If the log cannot be written the operation
// still succeeds. Setting audit = false in config.toml (or CI_AUDIT=false)
// turns it off.
package audit

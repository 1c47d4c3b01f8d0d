// Package configs manages user settings and CLI configuration for ci.
//
// # Locations
//
//   - User config directory: <os.UserConfigDir()>/ci
//   - Global key store:      <config dir>/keys.toml (override with CI_KEYS_PATH)
//   - CLI settings:          <config dir>/config.toml (optional)
//   - Audit log:             <config dir>/audit.jsonl
//   - Project key store:     <project root>/.ci/keys.toml (see utils.FindProjectKeysFile)
//
// # CLI Settings
//
// Settings are read with viper from config.toml and from environment
// variables carrying the CI_ prefix. Environment variables win:
//
//	keys_path = "/secure/volume/keys.toml"   # CI_KEYS_PATH
//	audit     = false                         # CI_AUDIT
//
// # Settings
//
// Call InitUserSettings() before reading UserCISettings. Tests may replace
// UserCISettings directly.
package configs

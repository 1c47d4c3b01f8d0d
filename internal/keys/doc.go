// Package keys resolves API keys across the layers ci consults.
//
// A key is addressed by a service ("openai", "github") and a key name
// ("api_key", "token"), optionally qualified by an environment ("staging").
// Lookups walk the layers in a fixed order and the first hit wins:
//
//	Get(service, key)
//	  1. environment variable {SERVICE}_{KEY}
//	  2. global store    <config_dir>/ci/keys.toml  services table
//	  3. project store   <project>/.ci/keys.toml    services table
//
//	GetForEnvironment(service, key, env)
//	  1. environment variable {ENV}_{SERVICE}_{KEY}
//	  2. global store environments table
//	  3. the whole Get chain
//
// Environment variables are upper-cased with the original separators kept,
// so ("my-svc", "api_key") is read from MY-SVC_API_KEY.
//
// # Failure Handling
//
// The global store is the authoritative layer. If it cannot be read, the
// error is held back while the project store is consulted and returned only
// when no layer produced a value. A project store that cannot be read or
// parsed contributes nothing. ErrKeyNotFound means every layer was checked.
//
// Errors carry service and key names and file paths, never values. Use Mask
// whenever a value has to be shown.
package keys

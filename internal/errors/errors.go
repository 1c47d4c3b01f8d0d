package errors

import "errors"

// Lookup errors indicate a key could not be resolved.
var (
	// ErrKeyNotFound indicates no layer (environment variable, user store or
	// project store) holds a value for the requested key.
	ErrKeyNotFound = errors.New("API key not found")
)

// Store errors indicate problems with a key store file.
var (
	// ErrStoreIO indicates a key store file could not be read or written.
	ErrStoreIO = errors.New("key store I/O failed")

	// ErrStoreParse indicates a key store file exists but is not valid TOML
	// for the key store schema.
	ErrStoreParse = errors.New("key store is malformed")

	// ErrNoChange is returned by store mutations that left the store untouched.
	// Update treats it as "skip the save" and does not surface it.
	ErrNoChange = errors.New("key store unchanged")
)

// Environment errors indicate the surroundings cannot support an operation.
var (
	// ErrConfigDirUnavailable indicates the platform could not supply a user
	// configuration directory.
	ErrConfigDirUnavailable = errors.New("user configuration directory unavailable")

	// ErrNoProjectStore indicates no .ci/keys.toml was found in the working
	// directory or any of its ancestors.
	ErrNoProjectStore = errors.New("no project key store found")
)

// Input errors indicate unusable arguments.
var (
	// ErrInvalidKeyName indicates an empty or malformed service, key or
	// environment name.
	ErrInvalidKeyName = errors.New("invalid key name")

	// ErrConflictingScopes indicates --env and --project were combined.
	// Environment-qualified keys only live in the user store.
	ErrConflictingScopes = errors.New("--env and --project cannot be combined")

	// ErrInvalidPattern indicates a malformed service glob pattern.
	ErrInvalidPattern = errors.New("invalid service pattern")
)

// Audit log errors.
var (
	// ErrNoAuditLog indicates no audit log has been written yet, or auditing
	// is disabled.
	ErrNoAuditLog = errors.New("no audit log found")

	// ErrInvalidDateFormat indicates a --since or --until date is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// Package errors provides typed error values for the ci application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. The CLI
// relies on this to choose between "print a hint to set the key" and
// "report a filesystem problem".
//
// # Error Categories
//
//   - Lookup errors: the key is absent from every layer (ErrKeyNotFound)
//   - Store errors: the key file cannot be read, written or parsed
//     (ErrStoreIO, ErrStoreParse)
//   - Environment errors: the platform has no user configuration directory
//     (ErrConfigDirUnavailable), or no project store exists (ErrNoProjectStore)
//   - Input errors: service, key or environment names are unusable
//     (ErrInvalidKeyName), flags conflict (ErrConflictingScopes) or a list
//     pattern is malformed (ErrInvalidPattern)
//   - Audit log errors: nothing logged yet (ErrNoAuditLog) or a bad date
//     filter (ErrInvalidDateFormat)
//
// # Usage
//
// Wrap sentinels with identifying context, never with secret values:
//
//	return fmt.Errorf("%w: %s.%s", errors.ErrKeyNotFound, service, keyName)
//	return fmt.Errorf("%w: %s: %w", errors.ErrStoreParse, path, err)
//
// Handle errors in the CLI layer:
//
//	value, err := resolver.Get(service, keyName)
//	if errors.Is(err, cierrors.ErrKeyNotFound) {
//	    // Show a hint to set the key
//	}
package errors

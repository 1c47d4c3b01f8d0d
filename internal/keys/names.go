package keys

import (
	"fmt"
	"strings"
	"unicode"

	cierrors "github.com/collab-intel/ci/internal/errors"
	"github.com/collab-intel/ci/internal/keystore"
)

// EnvVarName joins parts with "_" and upper-cases the result.
// Separators inside a part are kept as they are.
func EnvVarName(parts ...string) string {
	return strings.ToUpper(strings.Join(parts, "_"))
}

// ValidateName checks a service, key or environment name before it is written
// to a store. Names must be non-empty and free of whitespace, control
// characters, "=" (not allowed in environment variable names) and the
// environment separator used by listings.
func ValidateName(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%w: %s name must not be empty", cierrors.ErrInvalidKeyName, kind)
	}
	if strings.Contains(name, keystore.EnvironmentSeparator) {
		return fmt.Errorf("%w: %s name %q must not contain %q", cierrors.ErrInvalidKeyName, kind, name, keystore.EnvironmentSeparator)
	}
	if strings.Contains(name, "=") {
		return fmt.Errorf("%w: %s name %q must not contain \"=\"", cierrors.ErrInvalidKeyName, kind, name)
	}
	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return fmt.Errorf("%w: %s name %q must not contain whitespace or control characters", cierrors.ErrInvalidKeyName, kind, name)
		}
	}
	return nil
}

func validateNames(service, keyName string) error {
	if err := ValidateName("service", service); err != nil {
		return err
	}
	return ValidateName("key", keyName)
}

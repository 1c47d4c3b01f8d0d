package keys

import (
	"errors"
	"fmt"
	"os"

	cierrors "github.com/collab-intel/ci/internal/errors"
	"github.com/collab-intel/ci/internal/keystore"
)

// Scope names the store a write goes to.
type Scope string

const (
	ScopeGlobal      Scope = "global"
	ScopeEnvironment Scope = "environment"
	ScopeProject     Scope = "project"
)

// Resolver reads and writes keys across the environment, the global store and
// an optional project store. The zero value is not usable; build one with
// NewResolver.
type Resolver struct {
	// GlobalPath is the user's key store file.
	GlobalPath string

	// ProjectPath is the project key store file, or "" when there is none.
	ProjectPath string

	// LookupEnv reads process environment variables. Tests replace it.
	LookupEnv func(string) (string, bool)
}

// NewResolver returns a Resolver reading the real process environment.
func NewResolver(globalPath, projectPath string) *Resolver {
	return &Resolver{
		GlobalPath:  globalPath,
		ProjectPath: projectPath,
		LookupEnv:   os.LookupEnv,
	}
}

func (r *Resolver) env(name string) (string, bool) {
	if r.LookupEnv == nil {
		return os.LookupEnv(name)
	}
	return r.LookupEnv(name)
}

func (r *Resolver) loadGlobal() (*keystore.Store, error) {
	return keystore.Load(r.GlobalPath)
}

// loadProject returns nil when there is no usable project store.
func (r *Resolver) loadProject() *keystore.Store {
	if r.ProjectPath == "" {
		return nil
	}
	store, err := keystore.Load(r.ProjectPath)
	if err != nil {
		return nil
	}
	return store
}

// Get resolves service/keyName: environment variable, then global store,
// then project store.
func (r *Resolver) Get(service, keyName string) (string, error) {
	global, globalErr := r.loadGlobal()
	return r.get(service, keyName, global, globalErr)
}

func (r *Resolver) get(service, keyName string, global *keystore.Store, globalErr error) (string, error) {
	if value, ok := r.env(EnvVarName(service, keyName)); ok {
		return value, nil
	}

	if globalErr == nil {
		if value, ok := global.ServiceKey(service, keyName); ok {
			return value, nil
		}
	}

	if project := r.loadProject(); project != nil {
		if value, ok := project.ServiceKey(service, keyName); ok {
			return value, nil
		}
	}

	if globalErr != nil {
		return "", globalErr
	}
	return "", notFound(service, keyName)
}

// GetForEnvironment resolves service/keyName for environment: the
// {ENV}_{SERVICE}_{KEY} variable, then the global store's environments table,
// then everything Get would consult.
func (r *Resolver) GetForEnvironment(service, keyName, environment string) (string, error) {
	if value, ok := r.env(EnvVarName(environment, service, keyName)); ok {
		return value, nil
	}

	global, globalErr := r.loadGlobal()
	if globalErr == nil {
		if value, ok := global.EnvironmentKey(environment, service, keyName); ok {
			return value, nil
		}
	}

	return r.get(service, keyName, global, globalErr)
}

// HasKey reports whether Get would return a value. It never fails.
func (r *Resolver) HasKey(service, keyName string) bool {
	_, err := r.Get(service, keyName)
	return err == nil
}

// Set stores a key in the global services table.
func (r *Resolver) Set(service, keyName, value string) error {
	if err := validateNames(service, keyName); err != nil {
		return err
	}
	return keystore.Update(r.GlobalPath, func(s *keystore.Store) error {
		s.SetServiceKey(service, keyName, value)
		return nil
	})
}

// SetForEnvironment stores a key in the global environments table.
func (r *Resolver) SetForEnvironment(service, keyName, environment, value string) error {
	if err := validateNames(service, keyName); err != nil {
		return err
	}
	if err := ValidateName("environment", environment); err != nil {
		return err
	}
	return keystore.Update(r.GlobalPath, func(s *keystore.Store) error {
		s.SetEnvironmentKey(environment, service, keyName, value)
		return nil
	})
}

// SetProject stores a key in the project store. ProjectPath must be set.
func (r *Resolver) SetProject(service, keyName, value string) error {
	if err := validateNames(service, keyName); err != nil {
		return err
	}
	if r.ProjectPath == "" {
		return cierrors.ErrNoProjectStore
	}
	return keystore.Update(r.ProjectPath, func(s *keystore.Store) error {
		s.SetServiceKey(service, keyName, value)
		return nil
	})
}

// Remove deletes a plain key from the global store and reports whether it
// existed. Environment-qualified keys with the same name are left alone.
func (r *Resolver) Remove(service, keyName string) (bool, error) {
	return update(r.GlobalPath, func(s *keystore.Store) bool {
		return s.RemoveServiceKey(service, keyName)
	})
}

// RemoveForEnvironment deletes an environment-qualified key from the global
// store and reports whether it existed.
func (r *Resolver) RemoveForEnvironment(service, keyName, environment string) (bool, error) {
	return update(r.GlobalPath, func(s *keystore.Store) bool {
		return s.RemoveEnvironmentKey(environment, service, keyName)
	})
}

// RemoveProject deletes a key from the project store and reports whether it
// existed.
func (r *Resolver) RemoveProject(service, keyName string) (bool, error) {
	if r.ProjectPath == "" {
		return false, cierrors.ErrNoProjectStore
	}
	return update(r.ProjectPath, func(s *keystore.Store) bool {
		return s.RemoveServiceKey(service, keyName)
	})
}

// update applies remove under the store lock. Nothing is written when remove
// reports false. A key that is absent before locking is reported without
// touching the directory or the lock file.
func update(path string, remove func(*keystore.Store) bool) (bool, error) {
	current, err := keystore.Load(path)
	if err != nil {
		return false, err
	}
	if !remove(current) {
		return false, nil
	}

	removed := false
	err = keystore.Update(path, func(s *keystore.Store) error {
		removed = remove(s)
		if !removed {
			return cierrors.ErrNoChange
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// IsNotFound reports whether err means no layer holds the key.
func IsNotFound(err error) bool {
	return errors.Is(err, cierrors.ErrKeyNotFound)
}

func notFound(service, keyName string) error {
	return fmt.Errorf("%w: %s.%s", cierrors.ErrKeyNotFound, service, keyName)
}

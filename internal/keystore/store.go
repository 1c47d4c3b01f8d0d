package keystore

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/collab-intel/ci/internal/configs"
	cierrors "github.com/collab-intel/ci/internal/errors"
)

// EnvironmentSeparator joins an environment and a key name in List descriptors.
const EnvironmentSeparator = ":"

// Store is one key store file: plain service keys, environment-qualified keys
// and metadata.
type Store struct {
	// Services maps service -> key name -> secret value.
	Services map[string]map[string]string `toml:"services"`

	// Environments maps environment -> service -> key name -> secret value.
	Environments map[string]map[string]map[string]string `toml:"environments"`

	Metadata KeyMetadata `toml:"metadata"`
}

type KeyMetadata struct {
	LastUpdated *time.Time `toml:"last_updated,omitempty"`
	Description string     `toml:"description,omitempty"`
}

// now is replaced in tests.
var now = func() time.Time { return time.Now().UTC() }

// New returns an empty store.
func New() *Store {
	return &Store{
		Services:     make(map[string]map[string]string),
		Environments: make(map[string]map[string]map[string]string),
	}
}

// Load reads the store at path. A missing file yields an empty store.
// Read failures wrap ErrStoreIO and decoding failures wrap ErrStoreParse;
// both name the path.
func Load(path string) (*Store, error) {
	store := New()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return store, nil
	}

	if err := configs.LoadTOML(path, store); err != nil {
		if configs.IsReadError(err) {
			return nil, fmt.Errorf("%w: %s: %w", cierrors.ErrStoreIO, path, err)
		}
		return nil, fmt.Errorf("%w: %s: %w", cierrors.ErrStoreParse, path, err)
	}

	store.normalize()
	return store, nil
}

// Save writes the store to path with owner-only permissions.
// Failures wrap ErrStoreIO and name the path.
func Save(store *Store, path string) error {
	if err := configs.SaveTOML(path, store); err != nil {
		return fmt.Errorf("%w: %s: %w", cierrors.ErrStoreIO, path, err)
	}
	return nil
}

// normalize replaces nil maps left by decoding so mutations never panic.
func (s *Store) normalize() {
	if s.Services == nil {
		s.Services = make(map[string]map[string]string)
	}
	if s.Environments == nil {
		s.Environments = make(map[string]map[string]map[string]string)
	}
}

func (s *Store) touch() {
	t := now()
	s.Metadata.LastUpdated = &t
}

// SetServiceKey inserts or overwrites services[service][keyName].
func (s *Store) SetServiceKey(service, keyName, value string) {
	s.normalize()
	keys, ok := s.Services[service]
	if !ok {
		keys = make(map[string]string)
		s.Services[service] = keys
	}
	keys[keyName] = value
	s.touch()
}

// SetEnvironmentKey inserts or overwrites environments[environment][service][keyName].
func (s *Store) SetEnvironmentKey(environment, service, keyName, value string) {
	s.normalize()
	services, ok := s.Environments[environment]
	if !ok {
		services = make(map[string]map[string]string)
		s.Environments[environment] = services
	}
	keys, ok := services[service]
	if !ok {
		keys = make(map[string]string)
		services[service] = keys
	}
	keys[keyName] = value
	s.touch()
}

// RemoveServiceKey deletes services[service][keyName] and reports whether it
// existed. A service left without keys is removed.
func (s *Store) RemoveServiceKey(service, keyName string) bool {
	keys, ok := s.Services[service]
	if !ok {
		return false
	}
	if _, ok := keys[keyName]; !ok {
		return false
	}

	delete(keys, keyName)
	if len(keys) == 0 {
		delete(s.Services, service)
	}
	s.touch()
	return true
}

// RemoveEnvironmentKey deletes environments[environment][service][keyName] and
// reports whether it existed. Empty service and environment entries are pruned.
func (s *Store) RemoveEnvironmentKey(environment, service, keyName string) bool {
	services, ok := s.Environments[environment]
	if !ok {
		return false
	}
	keys, ok := services[service]
	if !ok {
		return false
	}
	if _, ok := keys[keyName]; !ok {
		return false
	}

	delete(keys, keyName)
	if len(keys) == 0 {
		delete(services, service)
	}
	if len(services) == 0 {
		delete(s.Environments, environment)
	}
	s.touch()
	return true
}

// ServiceKey returns services[service][keyName].
func (s *Store) ServiceKey(service, keyName string) (string, bool) {
	value, ok := s.Services[service][keyName]
	return value, ok
}

// EnvironmentKey returns environments[environment][service][keyName].
func (s *Store) EnvironmentKey(environment, service, keyName string) (string, bool) {
	value, ok := s.Environments[environment][service][keyName]
	return value, ok
}

// List flattens the store into service -> key descriptors. Plain keys appear
// by name, environment keys as "{environment}:{key}". Each slice lists the
// plain keys sorted, followed by the environment descriptors sorted.
func (s *Store) List() map[string][]string {
	result := make(map[string][]string)

	for service, keys := range s.Services {
		names := make([]string, 0, len(keys))
		for name := range keys {
			names = append(names, name)
		}
		if len(names) == 0 {
			continue
		}
		sort.Strings(names)
		result[service] = names
	}

	envDescriptors := make(map[string][]string)
	for environment, services := range s.Environments {
		for service, keys := range services {
			for name := range keys {
				envDescriptors[service] = append(envDescriptors[service], environment+EnvironmentSeparator+name)
			}
		}
	}
	for service, descriptors := range envDescriptors {
		sort.Strings(descriptors)
		result[service] = append(result[service], descriptors...)
	}

	return result
}

// IsEmpty reports whether the store holds no keys at all.
func (s *Store) IsEmpty() bool {
	return len(s.Services) == 0 && len(s.Environments) == 0
}

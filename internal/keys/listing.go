package keys

import (
	"sort"
	"strings"

	"github.com/collab-intel/ci/internal/keystore"
)

// ListedKey is one stored key as shown to the user. It never holds the
// plain value.
type ListedKey struct {
	Service     string
	KeyName     string
	Environment string // empty for plain keys
	Masked      string

	// OverriddenBy names the environment variable that currently shadows the
	// stored value, if one is set.
	OverriddenBy string
}

// Listing is the content of the global store and, when present, the project
// store.
type Listing struct {
	Global      []ListedKey
	Project     []ListedKey
	ProjectPath string

	// ProjectErr is set when a project store exists but could not be read.
	ProjectErr error
}

// IsEmpty reports whether neither store holds a key.
func (l *Listing) IsEmpty() bool {
	return len(l.Global) == 0 && len(l.Project) == 0
}

// Services returns the distinct service names in the listing, sorted.
func (l *Listing) Services() []string {
	seen := make(map[string]bool)
	var services []string
	for _, entries := range [][]ListedKey{l.Global, l.Project} {
		for _, entry := range entries {
			if !seen[entry.Service] {
				seen[entry.Service] = true
				services = append(services, entry.Service)
			}
		}
	}
	sort.Strings(services)
	return services
}

// Filter keeps only the entries whose service satisfies keep.
func (l *Listing) Filter(keep func(service string) bool) {
	l.Global = filterEntries(l.Global, keep)
	l.Project = filterEntries(l.Project, keep)
}

func filterEntries(entries []ListedKey, keep func(string) bool) []ListedKey {
	kept := entries[:0]
	for _, entry := range entries {
		if keep(entry.Service) {
			kept = append(kept, entry)
		}
	}
	return kept
}

// List returns every stored key with its value masked. A failure to read the
// global store is returned; a broken project store is reported in ProjectErr.
func (r *Resolver) List() (*Listing, error) {
	global, err := r.loadGlobal()
	if err != nil {
		return nil, err
	}

	listing := r.ListProject()
	listing.Global = r.listStore(global, true)
	return listing, nil
}

// ListProject lists only the project store. The global store is not read, so
// a broken global store does not hide project keys.
func (r *Resolver) ListProject() *Listing {
	listing := &Listing{ProjectPath: r.ProjectPath}

	if r.ProjectPath != "" {
		project, err := keystore.Load(r.ProjectPath)
		if err != nil {
			listing.ProjectErr = err
		} else {
			listing.Project = r.listStore(project, false)
		}
	}

	return listing
}

// listStore flattens a store in List order, services sorted. Environment
// tables are only read from the global store.
func (r *Resolver) listStore(store *keystore.Store, withEnvironments bool) []ListedKey {
	byService := store.List()
	services := make([]string, 0, len(byService))
	for service := range byService {
		services = append(services, service)
	}
	sort.Strings(services)

	var entries []ListedKey
	for _, service := range services {
		for _, descriptor := range byService[service] {
			environment, keyName, scoped := strings.Cut(descriptor, keystore.EnvironmentSeparator)
			if !scoped {
				keyName = descriptor
				environment = ""
			}

			entry := ListedKey{Service: service, KeyName: keyName, Environment: environment}

			var value, envName string
			if scoped {
				if !withEnvironments {
					continue
				}
				value, _ = store.EnvironmentKey(environment, service, keyName)
				envName = EnvVarName(environment, service, keyName)
			} else {
				value, _ = store.ServiceKey(service, keyName)
				envName = EnvVarName(service, keyName)
			}

			entry.Masked = Mask(value)
			if _, ok := r.env(envName); ok {
				entry.OverriddenBy = envName
			}
			entries = append(entries, entry)
		}
	}
	return entries
}

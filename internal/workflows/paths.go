package workflows

import (
	"context"

	"github.com/collab-intel/ci/internal/keystore"
)

// PathsResult lists the files ci reads and writes.
type PathsResult struct {
	ConfigDir   string
	GlobalPath  string
	ProjectPath string // empty when no project store was found
	AuditPath   string
	AuditOn     bool

	// LockPaths are the advisory lock files written next to each store.
	LockPaths []string
}

// Paths reports where the user store, project store and audit log live.
func Paths(ctx context.Context) (*PathsResult, error) {
	settings, err := ensureUserSettings()
	if err != nil {
		return nil, err
	}

	resolver, err := newResolver()
	if err != nil {
		return nil, err
	}

	result := &PathsResult{
		ConfigDir:   settings.ConfigDir,
		GlobalPath:  settings.KeysPath,
		ProjectPath: resolver.ProjectPath,
		AuditPath:   settings.AuditPath,
		AuditOn:     settings.AuditEnabled,
		LockPaths:   []string{keystore.LockPath(settings.KeysPath)},
	}
	if resolver.ProjectPath != "" {
		result.LockPaths = append(result.LockPaths, keystore.LockPath(resolver.ProjectPath))
	}
	return result, nil
}

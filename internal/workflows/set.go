package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/collab-intel/ci/internal/audit"
	cierrors "github.com/collab-intel/ci/internal/errors"
	"github.com/collab-intel/ci/internal/keys"
	"github.com/collab-intel/ci/internal/utils"
)

// SetOptions configures the set workflow.
type SetOptions struct {
	Service string
	Key     string
	Value   string

	// Environment stores the key for one environment in the user store.
	Environment string

	// Project stores the key in the project store instead of the user store.
	// The closest .ci/keys.toml is used, or ./.ci/keys.toml when there is none.
	Project bool
}

// SetResult contains the outcome of a set operation.
type SetResult struct {
	Scope     keys.Scope
	StorePath string
}

// Set stores a key in the scope selected by opts.
//
// Returns ErrConflictingScopes if both Environment and Project are set.
// Returns ErrInvalidKeyName if a name is unusable.
// Returns ErrStoreIO or ErrStoreParse if the target store cannot be updated.
func Set(ctx context.Context, opts SetOptions) (*SetResult, error) {
	if opts.Environment != "" && opts.Project {
		return nil, cierrors.ErrConflictingScopes
	}

	resolver, err := newResolver()
	if err != nil {
		return nil, err
	}

	result := &SetResult{}
	switch {
	case opts.Project:
		if resolver.ProjectPath == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get working directory: %w", err)
			}
			resolver.ProjectPath = utils.ProjectKeysPath(wd)
		}
		result.Scope, result.StorePath = keys.ScopeProject, resolver.ProjectPath
		err = resolver.SetProject(opts.Service, opts.Key, opts.Value)

	case opts.Environment != "":
		result.Scope, result.StorePath = keys.ScopeEnvironment, resolver.GlobalPath
		err = resolver.SetForEnvironment(opts.Service, opts.Key, opts.Environment, opts.Value)

	default:
		result.Scope, result.StorePath = keys.ScopeGlobal, resolver.GlobalPath
		err = resolver.Set(opts.Service, opts.Key, opts.Value)
	}
	if err != nil {
		return nil, err
	}

	entry := audit.LogWithUser(audit.OpSet)
	entry.Scope = string(result.Scope)
	entry.Service = opts.Service
	entry.Key = opts.Key
	entry.Environment = opts.Environment
	entry.StorePath = result.StorePath
	audit.Log(entry)

	return result, nil
}

package workflows

import (
	"context"

	"github.com/collab-intel/ci/internal/audit"
	cierrors "github.com/collab-intel/ci/internal/errors"
	"github.com/collab-intel/ci/internal/keys"
)

// RemoveOptions configures the remove workflow.
type RemoveOptions struct {
	Service     string
	Key         string
	Environment string
	Project     bool
}

// RemoveResult contains the outcome of a remove operation.
type RemoveResult struct {
	// Removed is false when the key was not stored in the selected scope.
	Removed bool

	Scope     keys.Scope
	StorePath string
}

// Remove deletes a key from the scope selected by opts. A key that is not
// stored is not an error; check RemoveResult.Removed.
//
// Returns ErrConflictingScopes if both Environment and Project are set.
// Returns ErrNoProjectStore if Project is set and no project store exists.
// Returns ErrStoreIO or ErrStoreParse if the store cannot be updated.
func Remove(ctx context.Context, opts RemoveOptions) (*RemoveResult, error) {
	if opts.Environment != "" && opts.Project {
		return nil, cierrors.ErrConflictingScopes
	}

	resolver, err := newResolver()
	if err != nil {
		return nil, err
	}

	result := &RemoveResult{}
	switch {
	case opts.Project:
		result.Scope, result.StorePath = keys.ScopeProject, resolver.ProjectPath
		result.Removed, err = resolver.RemoveProject(opts.Service, opts.Key)

	case opts.Environment != "":
		result.Scope, result.StorePath = keys.ScopeEnvironment, resolver.GlobalPath
		result.Removed, err = resolver.RemoveForEnvironment(opts.Service, opts.Key, opts.Environment)

	default:
		result.Scope, result.StorePath = keys.ScopeGlobal, resolver.GlobalPath
		result.Removed, err = resolver.Remove(opts.Service, opts.Key)
	}
	if err != nil {
		return nil, err
	}

	entry := audit.LogWithUser(audit.OpRemove)
	entry.Scope = string(result.Scope)
	entry.Service = opts.Service
	entry.Key = opts.Key
	entry.Environment = opts.Environment
	entry.Removed = result.Removed
	entry.StorePath = result.StorePath
	audit.Log(entry)

	return result, nil
}

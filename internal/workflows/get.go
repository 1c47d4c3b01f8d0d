package workflows

import (
	"context"

	"github.com/collab-intel/ci/internal/keys"
)

// GetOptions configures the get workflow.
type GetOptions struct {
	Service     string
	Key         string
	Environment string
}

// GetResult holds a resolved key. Value is the plain secret.
type GetResult struct {
	Value  string
	Masked string
}

// Get resolves a key across all layers.
//
// Returns ErrKeyNotFound if no layer holds the key.
// Returns ErrStoreIO or ErrStoreParse if the user store is broken and no
// other layer holds the key.
func Get(ctx context.Context, opts GetOptions) (*GetResult, error) {
	resolver, err := newResolver()
	if err != nil {
		return nil, err
	}

	var value string
	if opts.Environment != "" {
		value, err = resolver.GetForEnvironment(opts.Service, opts.Key, opts.Environment)
	} else {
		value, err = resolver.Get(opts.Service, opts.Key)
	}
	if err != nil {
		return nil, err
	}

	return &GetResult{Value: value, Masked: keys.Mask(value)}, nil
}

package workflows

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	cierrors "github.com/collab-intel/ci/internal/errors"
	"github.com/collab-intel/ci/internal/keys"
)

// ListOptions configures the list workflow.
type ListOptions struct {
	// Pattern keeps only services matching a glob such as "open*" or "{openai,github}".
	Pattern string

	// ProjectOnly hides the user store.
	ProjectOnly bool
}

// ListResult contains the masked listing.
type ListResult struct {
	Listing    *keys.Listing
	GlobalPath string
}

// List returns every stored key, masked.
//
// Returns ErrInvalidPattern if Pattern is not a valid glob.
// Returns ErrStoreIO or ErrStoreParse if the user store cannot be read. With
// ProjectOnly the user store is never read.
func List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	if opts.Pattern != "" && !doublestar.ValidatePattern(opts.Pattern) {
		return nil, fmt.Errorf("%w: %q", cierrors.ErrInvalidPattern, opts.Pattern)
	}

	resolver, err := newResolver()
	if err != nil {
		return nil, err
	}

	var listing *keys.Listing
	if opts.ProjectOnly {
		listing = resolver.ListProject()
	} else {
		listing, err = resolver.List()
		if err != nil {
			return nil, err
		}
	}

	if opts.Pattern != "" {
		listing.Filter(func(service string) bool {
			matched, _ := doublestar.Match(opts.Pattern, service)
			return matched
		})
	}

	return &ListResult{Listing: listing, GlobalPath: resolver.GlobalPath}, nil
}

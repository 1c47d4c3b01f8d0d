package workflows

import "context"

// ExportResult holds shell export lines for the user store's plain keys.
type ExportResult struct {
	Lines []string
}

// Export returns `export NAME="value"` lines for every plain key in the user
// store. Environment-qualified keys and project keys are not exported.
//
// Returns ErrStoreIO or ErrStoreParse if the user store cannot be read.
func Export(ctx context.Context) (*ExportResult, error) {
	resolver, err := newResolver()
	if err != nil {
		return nil, err
	}

	lines, err := resolver.ExportLines()
	if err != nil {
		return nil, err
	}
	return &ExportResult{Lines: lines}, nil
}

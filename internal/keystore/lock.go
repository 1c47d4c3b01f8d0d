package keystore

import (
	"errors"
	"fmt"
	"path/filepath"

	cierrors "github.com/collab-intel/ci/internal/errors"
	"github.com/collab-intel/ci/internal/utils"
	"github.com/gofrs/flock"
)

const lockSuffix = ".lock"

// LockPath returns the advisory lock file Update uses for the store at path.
func LockPath(path string) string {
	return path + lockSuffix
}

// Update runs a load-mutate-save cycle on the store at path while holding an
// advisory lock on "<path>.lock", so concurrent ci processes cannot lose each
// other's writes. If mutate returns ErrNoChange the store is not rewritten.
// Any other error from mutate aborts the update and is returned unchanged.
func Update(path string, mutate func(*Store) error) error {
	if err := utils.EnsureSecureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("%w: %w", cierrors.ErrStoreIO, err)
	}

	lock := flock.New(LockPath(path))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("%w: locking %s: %w", cierrors.ErrStoreIO, path, err)
	}
	defer lock.Unlock()

	store, err := Load(path)
	if err != nil {
		return err
	}

	if err := mutate(store); err != nil {
		if errors.Is(err, cierrors.ErrNoChange) {
			return nil
		}
		return err
	}

	return Save(store, path)
}

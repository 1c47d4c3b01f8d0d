package configs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/collab-intel/ci/internal/utils"
)

// SaveTOML saves a struct to a TOML file readable only by the owner.
// A missing parent directory is created with owner-only access. The
// data is written to a temporary file in the same directory and renamed over
// filePath, so a failed write leaves the previous file intact.
func SaveTOML(filePath string, data interface{}) error {
	dir := filepath.Dir(filePath)
	if err := utils.EnsureSecureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := utils.Chmod(tmpPath, utils.FilePermSecure); err != nil {
		tmp.Close()
		return err
	}
	if err := toml.NewEncoder(tmp).Encode(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, filePath); err != nil {
		return err
	}
	return utils.Chmod(filePath, utils.FilePermSecure)
}

// LoadTOML loads a TOML file into a struct.
// Failures to read the file are returned as *fs.PathError; anything else is a
// decoding failure.
func LoadTOML(filePath string, data interface{}) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	_, err = toml.Decode(string(content), data)
	return err
}

// IsReadError reports whether an error from LoadTOML came from reading the
// file rather than from decoding it.
func IsReadError(err error) bool {
	var pathErr *fs.PathError
	return errors.As(err, &pathErr)
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

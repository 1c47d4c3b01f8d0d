package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// ProjectDirName is the per-project directory holding the project key store.
	ProjectDirName = ".ci"

	// KeysFileName is the key store file name in both the user and project scopes.
	KeysFileName = "keys.toml"
)

// Permission constants for key store files and their directories.
const (
	DirPermSecure  os.FileMode = 0700
	FilePermSecure os.FileMode = 0600
)

// ProjectKeysPath returns the project key store path for a project root.
func ProjectKeysPath(projectRoot string) string {
	return filepath.Join(projectRoot, ProjectDirName, KeysFileName)
}

// FindProjectKeysFile walks up from startDir looking for .ci/keys.toml.
// The closest ancestor (including startDir itself) wins.
// Returns an empty string and no error when no project store exists.
func FindProjectKeysFile(startDir string) (string, error) {
	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", startDir, err)
	}

	for {
		keysPath := ProjectKeysPath(currentDir)
		fileInfo, err := os.Stat(keysPath)
		if err == nil {
			if !fileInfo.IsDir() {
				return keysPath, nil
			}
		} else if !os.IsNotExist(err) {
			// Permission problems on an ancestor end the search without a project store.
			return "", fmt.Errorf("error checking for %s: %w", keysPath, err)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

// FindProjectKeysFileFromWd is FindProjectKeysFile starting at the working directory.
func FindProjectKeysFileFromWd() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return FindProjectKeysFile(wd)
}

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// EnsureSecureDir creates dir (and parents) if needed. A directory created here
// is restricted to the owner regardless of umask. A directory that already
// exists keeps its permissions.
func EnsureSecureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("failed to create directory %s: not a directory", dir)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check directory %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, DirPermSecure); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if err := Chmod(dir, DirPermSecure); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", dir, err)
	}
	return nil
}

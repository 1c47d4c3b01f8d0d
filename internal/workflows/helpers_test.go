package workflows

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/collab-intel/ci/internal/configs"
)

type testEnv struct {
	configDir  string
	keysPath   string
	auditPath  string
	projectDir string
}

// setupTestEnv isolates user settings in a temp config dir and moves the
// working directory into an empty project directory.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, ".config"))
	t.Setenv("CI_KEYS_PATH", "")
	t.Setenv("CI_AUDIT", "")

	original := configs.UserCISettings
	configs.UserCISettings = nil
	t.Cleanup(func() { configs.UserCISettings = original })

	base, err := os.UserConfigDir()
	if err != nil {
		t.Fatalf("UserConfigDir failed: %v", err)
	}
	configDir := filepath.Join(base, "ci")

	projectDir := filepath.Join(root, "work", "project")
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		t.Fatal(err)
	}
	chdir(t, projectDir)

	return &testEnv{
		configDir:  configDir,
		keysPath:   filepath.Join(configDir, "keys.toml"),
		auditPath:  filepath.Join(configDir, "audit.jsonl"),
		projectDir: projectDir,
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

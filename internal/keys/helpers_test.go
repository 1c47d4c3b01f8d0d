package keys

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/collab-intel/ci/internal/keystore"
)

// newTestResolver returns a resolver over temp store paths and a fake
// environment. The project path is set but the file does not exist yet.
func newTestResolver(t *testing.T, env map[string]string) *Resolver {
	t.Helper()
	dir := t.TempDir()
	return &Resolver{
		GlobalPath:  filepath.Join(dir, "config", "ci", "keys.toml"),
		ProjectPath: filepath.Join(dir, "project", ".ci", "keys.toml"),
		LookupEnv: func(name string) (string, bool) {
			value, ok := env[name]
			return value, ok
		},
	}
}

func saveStore(t *testing.T, path string, build func(*keystore.Store)) {
	t.Helper()
	store := keystore.New()
	build(store)
	if err := keystore.Save(store, path); err != nil {
		t.Fatalf("Failed to save store %s: %v", path, err)
	}
}

func writeRaw(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

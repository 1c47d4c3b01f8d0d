package keystore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	cierrors "github.com/collab-intel/ci/internal/errors"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLoadMissingFileReturnsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.toml")

	store, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !store.IsEmpty() {
		t.Errorf("Expected empty store, got %+v", store)
	}
	if store.Metadata.LastUpdated != nil {
		t.Error("Expected no last_updated on an empty store")
	}

	// Reading must never create the file.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Load created %s", path)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.toml")
	if err := os.WriteFile(path, []byte("[services.openai\napi_key = "), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, cierrors.ErrStoreParse) {
		t.Fatalf("Expected ErrStoreParse, got %v", err)
	}
	if errors.Is(err, cierrors.ErrStoreIO) {
		t.Error("Parse failure must not be reported as an I/O failure")
	}
}

func TestLoadWrongSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.toml")
	if err := os.WriteFile(path, []byte("services = 42\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errors.Is(err, cierrors.ErrStoreParse) {
		t.Fatalf("Expected ErrStoreParse for wrong schema, got %v", err)
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	// A directory where the file should be cannot be read as a store.
	path := filepath.Join(t.TempDir(), "keys.toml")
	if err := os.MkdirAll(path, 0700); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, cierrors.ErrStoreIO) {
		t.Fatalf("Expected ErrStoreIO, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ci", "keys.toml")

	store := New()
	store.SetServiceKey("openai", "api_key", "sk-test123456789")
	store.SetServiceKey("openai", "org_id", "org-42")
	store.SetServiceKey("github", "token", `ghp_"quoted"\value`)
	store.SetServiceKey("my.service", "key with spaces", "v")
	store.SetEnvironmentKey("staging", "openai", "api_key", "sk-staging")
	store.SetEnvironmentKey("prod", "anthropic", "api_key", "sk-ant-prod")
	store.Metadata.Description = "personal keys"

	if err := Save(store, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if diff := cmp.Diff(store.Services, loaded.Services); diff != "" {
		t.Errorf("services mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(store.Environments, loaded.Environments); diff != "" {
		t.Errorf("environments mismatch (-want +got):\n%s", diff)
	}
	if loaded.Metadata.LastUpdated == nil {
		t.Error("Expected last_updated to survive the round trip")
	}
	if loaded.Metadata.Description != "personal keys" {
		t.Errorf("description = %q, want %q", loaded.Metadata.Description, "personal keys")
	}

	// Saving the loaded store again yields the same logical store.
	if err := Save(loaded, path); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if diff := cmp.Diff(loaded, reloaded, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("store changed across save/load (-first +second):\n%s", diff)
	}
}

func TestSaveEmptyStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.toml")

	if err := Save(New(), path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !loaded.IsEmpty() {
		t.Errorf("Expected empty store, got %+v", loaded)
	}
}

func TestSaveIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	fixed := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

	build := func() *Store {
		s := New()
		for i := 0; i < 10; i++ {
			s.SetServiceKey(fmt.Sprintf("svc%d", i), "key", "v")
		}
		s.SetEnvironmentKey("dev", "svc1", "key", "d")
		s.Metadata.LastUpdated = &fixed
		return s
	}

	first, second := filepath.Join(dir, "a.toml"), filepath.Join(dir, "b.toml")
	if err := Save(build(), first); err != nil {
		t.Fatal(err)
	}
	if err := Save(build(), second); err != nil {
		t.Fatal(err)
	}

	a, _ := os.ReadFile(first)
	b, _ := os.ReadFile(second)
	if string(a) != string(b) {
		t.Errorf("Save output differs between identical stores:\n%s\n---\n%s", a, b)
	}
}

func TestSavePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on Windows")
	}
	dir := filepath.Join(t.TempDir(), "ci")
	path := filepath.Join(dir, "keys.toml")

	if err := Save(New(), path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := fileInfo.Mode().Perm(); perm != 0600 {
		t.Errorf("file permissions = %o, want 600", perm)
	}
	dirInfo, err := os.Stat(dir)
	if err != nil {
		t.Fatal(err)
	}
	if perm := dirInfo.Mode().Perm(); perm != 0700 {
		t.Errorf("directory permissions = %o, want 700", perm)
	}
}

func TestSaveFailureIsIOError(t *testing.T) {
	// The parent "directory" is a regular file, so it cannot be created.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	err := Save(New(), filepath.Join(blocker, "keys.toml"))
	if !errors.Is(err, cierrors.ErrStoreIO) {
		t.Fatalf("Expected ErrStoreIO, got %v", err)
	}
}

func TestSetServiceKeyOverwrites(t *testing.T) {
	store := New()
	store.SetServiceKey("openai", "api_key", "first")
	store.SetServiceKey("openai", "api_key", "second")

	value, ok := store.ServiceKey("openai", "api_key")
	if !ok || value != "second" {
		t.Errorf("ServiceKey() = %q, %v; want %q, true", value, ok, "second")
	}
	if len(store.Services["openai"]) != 1 {
		t.Errorf("Expected a single key, got %v", store.Services["openai"])
	}
}

func TestMutationsStampMetadata(t *testing.T) {
	fixed := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	original := now
	now = func() time.Time { return fixed }
	defer func() { now = original }()

	store := New()
	store.SetEnvironmentKey("dev", "svc", "key", "v")
	if store.Metadata.LastUpdated == nil || !store.Metadata.LastUpdated.Equal(fixed) {
		t.Fatalf("last_updated = %v, want %v", store.Metadata.LastUpdated, fixed)
	}

	store.Metadata.LastUpdated = nil
	if store.RemoveServiceKey("missing", "key") {
		t.Fatal("Expected nothing to be removed")
	}
	if store.Metadata.LastUpdated != nil {
		t.Error("A removal that changed nothing must not stamp metadata")
	}
}

func TestRemoveServiceKey(t *testing.T) {
	store := New()
	store.SetServiceKey("svc", "key", "v")
	store.SetServiceKey("svc", "other", "w")

	if !store.RemoveServiceKey("svc", "key") {
		t.Fatal("First removal should report true")
	}
	if store.RemoveServiceKey("svc", "key") {
		t.Fatal("Second removal should report false")
	}
	if _, ok := store.Services["svc"]; !ok {
		t.Fatal("Service with remaining keys must be kept")
	}

	if !store.RemoveServiceKey("svc", "other") {
		t.Fatal("Removing the last key should report true")
	}
	if _, ok := store.Services["svc"]; ok {
		t.Error("Service without keys should be pruned")
	}
	if _, ok := store.List()["svc"]; ok {
		t.Error("Pruned service must not appear in List")
	}
}

func TestRemoveEnvironmentKeyPrunes(t *testing.T) {
	store := New()
	store.SetEnvironmentKey("staging", "svc", "key", "v")
	store.SetEnvironmentKey("staging", "other", "key", "w")

	if !store.RemoveEnvironmentKey("staging", "svc", "key") {
		t.Fatal("Expected removal to report true")
	}
	if _, ok := store.Environments["staging"]["svc"]; ok {
		t.Error("Empty service entry should be pruned")
	}
	if _, ok := store.Environments["staging"]; !ok {
		t.Fatal("Environment with remaining services must be kept")
	}

	if !store.RemoveEnvironmentKey("staging", "other", "key") {
		t.Fatal("Expected removal to report true")
	}
	if _, ok := store.Environments["staging"]; ok {
		t.Error("Empty environment should be pruned")
	}
	if store.RemoveEnvironmentKey("staging", "other", "key") {
		t.Error("Second removal should report false")
	}
}

func TestRemovePlainKeyKeepsEnvironmentKey(t *testing.T) {
	store := New()
	store.SetServiceKey("svc", "key", "plain")
	store.SetEnvironmentKey("staging", "svc", "key", "scoped")

	if !store.RemoveServiceKey("svc", "key") {
		t.Fatal("Expected plain key removal to report true")
	}
	value, ok := store.EnvironmentKey("staging", "svc", "key")
	if !ok || value != "scoped" {
		t.Errorf("EnvironmentKey() = %q, %v; want %q, true", value, ok, "scoped")
	}
}

func TestList(t *testing.T) {
	store := New()
	store.SetServiceKey("openai", "org_id", "o")
	store.SetServiceKey("openai", "api_key", "k")
	store.SetEnvironmentKey("staging", "openai", "api_key", "s")
	store.SetEnvironmentKey("dev", "openai", "api_key", "d")
	store.SetEnvironmentKey("prod", "github", "token", "t")

	want := map[string][]string{
		"openai": {"api_key", "org_id", "dev:api_key", "staging:api_key"},
		"github": {"prod:token"},
	}
	if diff := cmp.Diff(want, store.List()); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestListSkipsEmptyServiceTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.toml")
	content := "[services.empty]\n\n[services.openai]\napi_key = \"k\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	store, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	listing := store.List()
	if _, ok := listing["empty"]; ok {
		t.Error("Service table without keys must not be listed")
	}
	if diff := cmp.Diff([]string{"api_key"}, listing["openai"]); diff != "" {
		t.Errorf("openai listing mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ci", "keys.toml")

	err := Update(path, func(s *Store) error {
		s.SetServiceKey("openai", "api_key", "sk-test123456789")
		return nil
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	store, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if value, _ := store.ServiceKey("openai", "api_key"); value != "sk-test123456789" {
		t.Errorf("ServiceKey() = %q, want %q", value, "sk-test123456789")
	}
}

func TestUpdateNoChangeSkipsSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.toml")

	err := Update(path, func(s *Store) error {
		return cierrors.ErrNoChange
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Update must not write the store when nothing changed")
	}
}

func TestUpdatePropagatesMutationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.toml")
	boom := errors.New("boom")

	if err := Update(path, func(s *Store) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("Expected mutation error, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Update must not write the store when the mutation failed")
	}
}

func TestUpdateRefusesMalformedStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.toml")
	original := []byte("not = [valid")
	if err := os.WriteFile(path, original, 0600); err != nil {
		t.Fatal(err)
	}

	err := Update(path, func(s *Store) error {
		s.SetServiceKey("svc", "key", "v")
		return nil
	})
	if !errors.Is(err, cierrors.ErrStoreParse) {
		t.Fatalf("Expected ErrStoreParse, got %v", err)
	}

	content, _ := os.ReadFile(path)
	if string(content) != string(original) {
		t.Error("A malformed store must not be overwritten")
	}
}

func TestUpdateConcurrentWritersDoNotLoseKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.toml")
	const writers = 8

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- Update(path, func(s *Store) error {
				s.SetServiceKey(fmt.Sprintf("svc%d", i), "key", "v")
				return nil
			})
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}

	store, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(store.Services) != writers {
		t.Errorf("Expected %d services after concurrent updates, got %d", writers, len(store.Services))
	}
}

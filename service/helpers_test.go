package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-eix/config"
	"go-eix/log"
)

// writeFile creates root/path with content, making parent directories.
func writeFile(t *testing.T, root, path, content string) {
	t.Helper()
	full := filepath.Join(root, path)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// writeEntry writes a metadata-md5 cache entry for cat/pf.
func writeEntry(t *testing.T, repo, cat, pf string, kv ...string) {
	t.Helper()
	var sb strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		sb.WriteString(kv[i] + "=" + kv[i+1] + "\n")
	}
	writeFile(t, repo, filepath.Join("metadata/md5-cache", cat, pf), sb.String())
}

// setupRepo creates a main repository with three packages in two
// categories.
func setupRepo(t *testing.T, root string) string {
	t.Helper()
	repo := filepath.Join(root, "gentoo")
	writeFile(t, repo, "profiles/repo_name", "gentoo\n")
	writeFile(t, repo, "profiles/categories", "app-editors\ndev-lang\n")

	writeEntry(t, repo, "app-editors", "vim-9.0.1", "SLOT", "0", "DESCRIPTION", "Vi IMproved", "LICENSE", "vim", "KEYWORDS", "amd64")
	writeEntry(t, repo, "app-editors", "vim-9.1.0", "SLOT", "0", "DESCRIPTION", "Vi IMproved", "LICENSE", "vim", "KEYWORDS", "~amd64")
	writeEntry(t, repo, "app-editors", "nano-7.2", "SLOT", "0", "DESCRIPTION", "GNU GPL'd Pico clone", "IUSE", "spell +nls")
	writeEntry(t, repo, "dev-lang", "python-3.12.1", "SLOT", "3.12", "DESCRIPTION", "An interpreted, interactive language", "RESTRICT", "test")
	return repo
}

// setupTestService returns a service whose files all live below a temp
// directory, logging to memory.
func setupTestService(t *testing.T) (*Service, *log.MemoryLogger) {
	t.Helper()
	root := t.TempDir()

	cfg := &config.Config{
		ConfigFile:   filepath.Join(root, "etc", config.ConfigFileName),
		DatabasePath: filepath.Join(root, "cache", "portage.eix"),
		PortDir:      setupRepo(t, root),
		CacheMethod:  config.DefaultCacheMethod,
		CacheDB:      filepath.Join(root, "cache", "cache.db"),
		LogLevel:     "debug",
	}

	logger := log.NewMemoryLogger()
	svc := NewServiceWithLogger(cfg, logger)
	t.Cleanup(func() {
		if err := svc.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return svc, logger
}

// mustUpdate runs Update and fails the test on error.
func mustUpdate(t *testing.T, svc *Service, opts UpdateOptions) *UpdateResult {
	t.Helper()
	result, err := svc.Update(opts)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	return result
}

func removeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.Remove(path); err != nil {
		t.Fatalf("Failed to remove %s: %v", path, err)
	}
}

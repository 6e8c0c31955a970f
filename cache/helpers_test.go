package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFile creates path below root with the given content.
func writeFile(t *testing.T, root, path, content string) {
	t.Helper()
	full := filepath.Join(root, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

// md5Entry renders a metadata-md5 cache file.
func md5Entry(kv ...string) string {
	var sb strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		sb.WriteString(kv[i] + "=" + kv[i+1] + "\n")
	}
	sb.WriteString("_md5_=0123456789abcdef\n")
	return sb.String()
}

// flatEntry renders a flat cache file from a line index -> value map.
func flatEntry(lines map[int]string) string {
	out := make([]string, 16)
	for i, v := range lines {
		out[i] = v
	}
	return strings.Join(out, "\n") + "\n"
}

// setupMD5Repo builds a small repository with a metadata-md5 cache.
func setupMD5Repo(t *testing.T) string {
	t.Helper()
	repo := t.TempDir()

	writeFile(t, repo, "profiles/categories", "app-editors\ndev-lang\n# comment\nsys-apps\n")
	writeFile(t, repo, MD5CacheDir+"/app-editors/vim-9.0.1-r1", md5Entry(
		"SLOT", "0",
		"KEYWORDS", "amd64 ~x86",
		"IUSE", "+acl gpm",
		"DESCRIPTION", "Vim, an improved vi-style text editor",
		"HOMEPAGE", "https://www.vim.org",
		"LICENSE", "vim",
		"DEPEND", "sys-libs/ncurses",
	))
	writeFile(t, repo, MD5CacheDir+"/app-editors/vim-core-9.0.1", md5Entry(
		"SLOT", "0",
		"DESCRIPTION", "vim and gvim shared files",
	))
	writeFile(t, repo, MD5CacheDir+"/dev-lang/python-3.12.1_p1", md5Entry(
		"SLOT", "3.12",
		"RESTRICT", "test",
		"PROPERTIES", "",
		"DESCRIPTION", "An interpreted language",
	))
	writeFile(t, repo, MD5CacheDir+"/dev-lang/python-3.11.7", md5Entry(
		"SLOT", "3.11",
		"DESCRIPTION", "An interpreted language",
	))
	// no cache directory for sys-apps
	return repo
}

package cache

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go-eix/util"
)

// ReadCategories returns the categories of a repository from
// profiles/categories. When that file is missing, the subdirectories of
// cacheDir are used. The result is sorted and free of duplicates.
func ReadCategories(repo, cacheDir string) ([]string, error) {
	lines, err := util.ReadLines(filepath.Join(repo, "profiles", "categories"))
	if err == nil {
		return uniqueSorted(lines), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		return nil, err
	}
	var cats []string
	for _, e := range entries {
		if e.IsDir() && e.Name()[0] != '.' {
			cats = append(cats, e.Name())
		}
	}
	return uniqueSorted(cats), nil
}

func uniqueSorted(in []string) []string {
	sort.Strings(in)
	out := in[:0]
	for i, s := range in {
		if i == 0 || s != in[i-1] {
			out = append(out, s)
		}
	}
	return out
}

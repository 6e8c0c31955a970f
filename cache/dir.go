package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go-eix/cachedb"
	"go-eix/pkg"
)

// dirBackend is the shared walk of caches laid out as
// <cacheDir>/<category>/<name>-<version>, one file per version.
type dirBackend struct {
	name     string
	repo     string
	cacheDir string
	opts     Options

	// parse fills rec from one cache file
	parse func(path string, rec *pkg.Record) error
}

func (b *dirBackend) Name() string { return b.name }

func (b *dirBackend) Categories() ([]string, error) {
	cats, err := ReadCategories(b.repo, b.cacheDir)
	if err != nil {
		return nil, &BackendError{Backend: b.name, Err: err}
	}
	return cats, nil
}

func (b *dirBackend) ReadCategory(category string) ([]pkg.Record, error) {
	dir := filepath.Join(b.cacheDir, category)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &BackendError{Backend: b.name, Category: category, Err: err}
	}

	var recs []pkg.Record
	for _, e := range entries {
		fname := e.Name()
		if e.IsDir() || strings.HasPrefix(fname, ".") || strings.HasSuffix(fname, ".tmp") {
			continue
		}

		name, ver, ok := SplitPF(fname)
		if !ok {
			b.opts.logger().Warn("%s: skipping %s/%s: %v", b.name, category, fname, ErrBadEntry)
			continue
		}

		rec := pkg.Record{Category: category, Name: name, Version: ver}
		if err := b.parse(filepath.Join(dir, fname), &rec); err != nil {
			return nil, &BackendError{
				Backend:  b.name,
				Category: category,
				Err:      fmt.Errorf("%s: %w", fname, err),
			}
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Fingerprint hashes the file names, sizes and mtimes of a category's
// cache directory.
func (b *dirBackend) Fingerprint(category string) (uint32, error) {
	return cachedb.ComputeDirCRC(filepath.Join(b.cacheDir, category))
}

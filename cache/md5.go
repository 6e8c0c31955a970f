package cache

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"go-eix/pkg"
)

// MD5CacheDir is where metadata-md5 files live below a repository.
const MD5CacheDir = "metadata/md5-cache"

// maxLine bounds one KEY=VALUE line; DEPEND strings can be long.
const maxLine = 1 << 20

func newMD5Backend(repo string, opts Options) (Backend, error) {
	return &dirBackend{
		name:     MethodMD5,
		repo:     repo,
		cacheDir: filepath.Join(repo, MD5CacheDir),
		opts:     opts,
		parse:    parseMD5Entry,
	}, nil
}

// parseMD5Entry reads KEY=VALUE lines. Unknown keys are ignored.
func parseMD5Entry(path string, rec *pkg.Record) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), "=")
		if !ok {
			continue
		}
		switch key {
		case "SLOT":
			rec.Slot = value
		case "KEYWORDS":
			rec.Keywords = value
		case "IUSE":
			rec.IUSE = value
		case "RESTRICT":
			rec.Restrict = value
		case "PROPERTIES":
			rec.Properties = value
		case "DESCRIPTION":
			rec.Description = value
		case "HOMEPAGE":
			rec.Homepage = value
		case "LICENSE":
			rec.License = value
		case "PROVIDE":
			rec.Provide = value
		}
	}
	return sc.Err()
}

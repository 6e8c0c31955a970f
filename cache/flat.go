package cache

import (
	"bufio"
	"os"
	"path/filepath"

	"go-eix/pkg"
)

// FlatCacheDir is where the legacy flat cache lives below a repository.
const FlatCacheDir = "metadata/cache"

// Zero-based line numbers of the legacy flat cache format.
const (
	flatSlot        = 2
	flatRestrict    = 4
	flatHomepage    = 5
	flatLicense     = 6
	flatDescription = 7
	flatKeywords    = 8
	flatIUSE        = 10
	flatProvide     = 13
	flatProperties  = 15
)

func newFlatBackend(repo string, opts Options) (Backend, error) {
	return &dirBackend{
		name:     MethodFlat,
		repo:     repo,
		cacheDir: filepath.Join(repo, FlatCacheDir),
		opts:     opts,
		parse:    parseFlatEntry,
	}, nil
}

// parseFlatEntry reads the positional format. Short files leave the
// missing fields empty.
func parseFlatEntry(path string, rec *pkg.Record) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for line := 0; sc.Scan() && line <= flatProperties; line++ {
		value := sc.Text()
		switch line {
		case flatSlot:
			rec.Slot = value
		case flatRestrict:
			rec.Restrict = value
		case flatHomepage:
			rec.Homepage = value
		case flatLicense:
			rec.License = value
		case flatDescription:
			rec.Description = value
		case flatKeywords:
			rec.Keywords = value
		case flatIUSE:
			rec.IUSE = value
		case flatProvide:
			rec.Provide = value
		case flatProperties:
			rec.Properties = value
		}
	}
	return sc.Err()
}

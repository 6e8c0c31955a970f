// Package cache reads package metadata out of the caches that live next
// to an ebuild repository and turns it into pkg.Record values.
//
// Backends are selected at runtime by the cache_method name:
//
//	b, err := cache.New("metadata-md5", "/var/db/repos/gentoo", cache.Options{})
//	if err != nil {
//	    return err
//	}
//	stats, err := (&cache.Collector{}).Collect(tree, 0, b)
package cache

import (
	"fmt"
	"sort"

	"go-eix/cachedb"
	"go-eix/log"
	"go-eix/pkg"
)

// Backend yields the metadata records of one repository, one category at
// a time.
type Backend interface {
	Name() string

	// Categories lists the categories the backend knows about.
	Categories() ([]string, error)

	// ReadCategory returns every record of a category. A category without
	// cache data yields no records and no error.
	ReadCategory(name string) ([]pkg.Record, error)
}

// Fingerprinter is implemented by backends that can cheaply tell whether
// a category changed since it was last imported.
type Fingerprinter interface {
	Fingerprint(category string) (uint32, error)
}

// Options configure backend construction.
type Options struct {
	// DB is the cache database read by the "bolt" backend
	DB *cachedb.DB

	Logger log.LibraryLogger
}

func (o Options) logger() log.LibraryLogger {
	if o.Logger == nil {
		return log.NoOpLogger{}
	}
	return o.Logger
}

type factory func(repo string, opts Options) (Backend, error)

var registry = map[string]factory{
	MethodMD5:  newMD5Backend,
	MethodFlat: newFlatBackend,
	MethodBolt: newBoltBackend,
}

// Cache method names
const (
	MethodMD5  = "metadata-md5"
	MethodFlat = "flat"
	MethodBolt = "bolt"
)

// New returns the backend registered as kind for the repository at repo.
func New(kind, repo string, opts Options) (Backend, error) {
	f, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownBackend, kind, Names())
	}
	return f(repo, opts)
}

// Names returns the registered cache method names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

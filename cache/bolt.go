package cache

import (
	"go-eix/cachedb"
	"go-eix/pkg"
)

// boltBackend serves records previously imported into the cache database.
type boltBackend struct {
	db   *cachedb.DB
	repo string
}

func newBoltBackend(repo string, opts Options) (Backend, error) {
	if opts.DB == nil {
		return nil, &BackendError{Backend: MethodBolt, Err: ErrNoCacheDB}
	}
	return &boltBackend{db: opts.DB, repo: repo}, nil
}

func (b *boltBackend) Name() string { return MethodBolt }

func (b *boltBackend) Categories() ([]string, error) {
	cats, err := b.db.Categories(b.repo)
	if err != nil {
		return nil, &BackendError{Backend: MethodBolt, Err: err}
	}
	return cats, nil
}

func (b *boltBackend) ReadCategory(category string) ([]pkg.Record, error) {
	recs, err := b.db.Records(b.repo, category)
	if err != nil {
		return nil, &BackendError{Backend: MethodBolt, Category: category, Err: err}
	}
	return recs, nil
}

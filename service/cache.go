package service

import (
	"fmt"
	"os"

	"go-eix/cache"
	"go-eix/cachedb"
)

// ImportCache snapshots a repository's cache into the cache database, so
// that later updates can use cache_method = bolt.
func (s *Service) ImportCache(opts ImportOptions) (*cachedb.Run, error) {
	repo := opts.Repository
	if repo == "" {
		repo = s.cfg.PortDir
	}
	method := opts.Method
	if method == "" {
		method = s.cfg.CacheMethod
	}

	db, err := s.CacheDB()
	if err != nil {
		return nil, err
	}
	if active, err := db.ActiveRun(); err == nil && active != nil {
		s.logger.Warn("Run %s for %s never finished", active.ID, active.Repository)
	}

	b, err := cache.New(method, repo, cache.Options{Logger: s.logger})
	if err != nil {
		return nil, err
	}

	im := &cache.Importer{DB: db, Logger: s.logger, Force: opts.Force}
	return im.Import(b, repo)
}

// Runs returns the import runs, newest first. limit <= 0 returns all.
func (s *Service) Runs(limit int) ([]cachedb.Run, error) {
	db, err := s.CacheDB()
	if err != nil {
		return nil, err
	}
	runs, err := db.ListRuns()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// ResetCache removes the cache database file. It returns false when there
// was nothing to remove.
func (s *Service) ResetCache() (bool, error) {
	path := s.cfg.CacheDB
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	}

	if err := s.Close(); err != nil {
		return false, fmt.Errorf("failed to close cache database before reset: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return false, fmt.Errorf("failed to remove cache database: %w", err)
	}

	s.logger.Info("Cache database removed: %s", path)
	return true, nil
}

// CacheDBExists reports whether the cache database file exists.
func (s *Service) CacheDBExists() bool {
	_, err := os.Stat(s.cfg.CacheDB)
	return err == nil
}

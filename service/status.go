package service

import (
	"os"

	"go-eix/database"
)

// Status reports on the binary database and the cache database. Neither
// needs to exist; missing files are reported, not returned as errors.
// The cache database is inspected only if it already exists.
func (s *Service) Status() (*StatusResult, error) {
	result := &StatusResult{
		DatabasePath: s.cfg.DatabasePath,
		CacheDBPath:  s.cfg.CacheDB,
	}

	if info, err := os.Stat(result.DatabasePath); err == nil {
		result.DatabaseExists = true
		result.DatabaseSize = info.Size()
		if err := s.databaseStatus(result); err != nil {
			return nil, err
		}
	}

	if !s.CacheDBExists() {
		return result, nil
	}
	result.CacheDBExists = true

	db, err := s.CacheDB()
	if err != nil {
		return nil, err
	}
	repos, err := db.Repositories()
	if err != nil {
		return nil, err
	}
	for _, repo := range repos {
		n, err := db.RecordCount(repo)
		if err != nil {
			return nil, err
		}
		result.Repositories = append(result.Repositories, RepoStatus{Path: repo, Records: n})
	}

	runs, err := db.ListRuns()
	if err != nil {
		return nil, err
	}
	if len(runs) > 0 {
		result.LastRun = &runs[0]
	}
	if result.ActiveRun, err = db.ActiveRun(); err != nil {
		return nil, err
	}

	return result, nil
}

// databaseStatus counts packages by skipping every record.
func (s *Service) databaseStatus(result *StatusResult) error {
	r, err := database.Open(result.DatabasePath)
	if err != nil {
		return err
	}
	defer r.Close()

	hdr := r.Header()
	result.FormatVersion = hdr.FormatVersion
	result.Overlays = hdr.Overlays
	result.Categories = hdr.Size

	for r.Next() {
		if err := r.Skip(); err != nil {
			return err
		}
	}
	if err := r.Err(); err != nil {
		return err
	}
	result.Packages = r.Stats().Packages
	return nil
}

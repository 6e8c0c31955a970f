package service

import (
	"fmt"
	"os"
	"time"

	"go-eix/util"
)

// Cleanup removes temporary files left behind by an interrupted update and,
// with RunsOlderThan set, deletes old finished import runs.
//
// This method handles all the business logic but does not interact with the user.
// The caller is responsible for confirming destructive operations.
func (s *Service) Cleanup(opts CleanupOptions) (*CleanupResult, error) {
	result := &CleanupResult{
		FilesRemoved: make([]string, 0),
		Errors:       make([]error, 0),
	}

	for _, tmp := range s.TempFiles() {
		if err := os.Remove(tmp); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to remove %s: %w", tmp, err))
			s.logger.Warn("Failed to remove %s: %v", tmp, err)
			continue
		}
		result.FilesRemoved = append(result.FilesRemoved, tmp)
		s.logger.Info("Removed %s", tmp)
	}

	if opts.RunsOlderThan <= 0 || !s.CacheDBExists() {
		return result, nil
	}

	db, err := s.CacheDB()
	if err != nil {
		return nil, err
	}
	n, err := db.DeleteRunsBefore(time.Now().Add(-opts.RunsOlderThan))
	if err != nil {
		return nil, fmt.Errorf("failed to delete old runs: %w", err)
	}
	result.RunsDeleted = n
	if n > 0 {
		s.logger.Info("Deleted %d import runs", n)
	}

	return result, nil
}

// TempFiles returns the leftover temporary database files that exist.
func (s *Service) TempFiles() []string {
	var found []string
	if tmp := s.cfg.DatabasePath + util.TempSuffix; util.FileExists(tmp) {
		found = append(found, tmp)
	}
	return found
}

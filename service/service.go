// Package service provides the operations behind the go-eix commands.
//
// The service layer sits between the CLI (cmd/) and the library packages
// (cache, database, cachedb, version):
//
//   - CLI layer (cmd/): flags, formatting, confirmation prompts
//   - Service layer (service/): orchestrates backends, the codec and the cache database
//   - Library layer: reading caches, encoding and decoding, version ordering
//
// Service methods return result structs and log through LibraryLogger;
// they never print.
package service

import (
	"fmt"
	"sync"

	"go-eix/cachedb"
	"go-eix/config"
	"go-eix/log"
	"go-eix/util"
)

// Service coordinates go-eix operations for one configuration.
//
// The cache database is opened on first use, so commands that only read
// the binary database never touch it.
//
// Usage:
//
//	cfg, _ := config.LoadConfig("", "")
//	svc, err := service.NewService(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Close()
//
//	result, err := svc.Update(service.UpdateOptions{})
type Service struct {
	cfg    *config.Config
	logger log.LibraryLogger

	dbMu sync.Mutex
	db   *cachedb.DB
}

// NewService creates a Service logging to stderr at the configured level.
func NewService(cfg *config.Config) (*Service, error) {
	logger, err := log.NewLogger(cfg.LogLevel, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return NewServiceWithLogger(cfg, logger), nil
}

// NewServiceWithLogger creates a Service using logger.
func NewServiceWithLogger(cfg *config.Config, logger log.LibraryLogger) *Service {
	if logger == nil {
		logger = log.NoOpLogger{}
	}
	return &Service{cfg: cfg, logger: logger}
}

// Close releases the cache database if it was opened.
func (s *Service) Close() error {
	s.dbMu.Lock()
	defer s.dbMu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("cache database close: %w", err)
	}
	return nil
}

// Config returns the service's configuration.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// Logger returns the service's logger.
func (s *Service) Logger() log.LibraryLogger {
	return s.logger
}

// CacheDB opens the cache database at the configured cache_db path on
// first call and returns the same handle afterwards.
func (s *Service) CacheDB() (*cachedb.DB, error) {
	s.dbMu.Lock()
	defer s.dbMu.Unlock()

	if s.db != nil {
		return s.db, nil
	}
	if err := util.EnsureParent(s.cfg.CacheDB); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	db, err := cachedb.OpenDB(s.cfg.CacheDB)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	s.db = db
	return db, nil
}

// databasePath returns override, or the configured database when empty.
func (s *Service) databasePath(override string) string {
	if override != "" {
		return override
	}
	return s.cfg.DatabasePath
}

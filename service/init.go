package service

import (
	"fmt"
	"path/filepath"

	"go-eix/util"
)

// Initialize sets up go-eix for the first time.
//
// The initialization process includes:
//  1. Creating the directories of the database, the cache database and the configuration
//  2. Writing the configuration file unless one exists (or opts.Force is set)
//  3. Verifying that portdir has categories
//
// Problems with portdir are reported as warnings; an update will fail on
// them later with a precise error.
func (s *Service) Initialize(opts InitOptions) (*InitResult, error) {
	result := &InitResult{
		DirsCreated: make([]string, 0),
		ConfigPath:  s.cfg.ConfigFile,
		Warnings:    make([]string, 0),
	}

	dirs := []struct{ label, dir string }{
		{"Database", filepath.Dir(s.cfg.DatabasePath)},
		{"Cache database", filepath.Dir(s.cfg.CacheDB)},
		{"Configuration", filepath.Dir(s.cfg.ConfigFile)},
	}
	for _, d := range dirs {
		if err := util.EnsureDir(d.dir); err != nil {
			return nil, fmt.Errorf("failed to create %s directory (%s): %w", d.label, d.dir, err)
		}
		result.DirsCreated = append(result.DirsCreated, d.dir)
		s.logger.Info("Created %s directory: %s", d.label, d.dir)
	}

	if opts.Force || !util.FileExists(s.cfg.ConfigFile) {
		if err := s.cfg.Save(s.cfg.ConfigFile); err != nil {
			return nil, err
		}
		result.ConfigWritten = true
		s.logger.Info("Wrote configuration: %s", s.cfg.ConfigFile)
	}

	n, err := s.verifyPortDir()
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("portdir verification failed: %v", err))
	} else {
		result.Categories = n
		if n == 0 {
			result.Warnings = append(result.Warnings, "portdir has no categories")
		}
	}

	return result, nil
}

// verifyPortDir counts the categories of the main repository.
func (s *Service) verifyPortDir() (int, error) {
	if !util.DirExists(s.cfg.PortDir) {
		return 0, fmt.Errorf("portdir does not exist: %s", s.cfg.PortDir)
	}
	b, err := s.backend(s.cfg.CacheMethod, s.cfg.PortDir)
	if err != nil {
		return 0, err
	}
	cats, err := b.Categories()
	if err != nil {
		return 0, err
	}
	return len(cats), nil
}

// ConfigExists reports whether the configuration file exists.
func (s *Service) ConfigExists() bool {
	return util.FileExists(s.cfg.ConfigFile)
}

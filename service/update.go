package service

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"

	"go-eix/cache"
	"go-eix/database"
	"go-eix/log"
	"go-eix/pkg"
	"go-eix/util"
)

// DefaultRepoLabel names the main repository when profiles/repo_name is
// missing.
const DefaultRepoLabel = "gentoo"

type repoSource struct {
	path   string
	label  string
	method string
}

// Update rebuilds the binary database from the main repository and the
// configured overlays.
//
// Backend failures on single categories are logged and returned in
// UpdateResult.Errors; the database is still written. Failing to list the
// categories of the main repository aborts the update.
//
// The database is written to <path>.tmp and renamed over the old file
// only after a complete write, so readers never see a partial database.
func (s *Service) Update(opts UpdateOptions) (*UpdateResult, error) {
	start := time.Now()
	path := s.databasePath(opts.Output)
	result := &UpdateResult{Path: path}

	tree := pkg.NewTree()
	collector := &cache.Collector{Parser: s.cfg.VersionParser(), Logger: s.logger}

	for i, src := range s.sources() {
		idx := tree.AddOverlay(src.path, src.label)
		b, err := s.backend(src.method, src.path)
		if err != nil {
			return nil, err
		}

		s.logger.Info("Reading %s (%s, %s)", src.path, src.label, src.method)
		stats, err := collector.Collect(tree, idx, b)
		result.Rejected += stats.Rejected
		result.Failed += stats.Failed
		result.Repos = append(result.Repos, RepoResult{
			Path:    src.path,
			Label:   src.label,
			Method:  src.method,
			Records: stats.Records,
		})

		if err != nil {
			var merr *multierror.Error
			if !errors.As(err, &merr) {
				// the category list itself could not be read
				if i == 0 {
					return nil, fmt.Errorf("failed to read main repository: %w", err)
				}
				s.logger.Warn("Skipping overlay %s: %v", src.path, err)
				result.Errors = append(result.Errors, err)
				continue
			}
			result.Errors = append(result.Errors, merr.Errors...)
		}
	}

	tree.Sort()
	hdr := database.NewHeader()

	if err := util.EnsureParent(path); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	err := util.AtomicWrite(path, func(tmp string) error {
		n, err := database.WriteFile(tmp, hdr, tree)
		result.Bytes = n
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write database: %w", err)
	}

	result.Categories = hdr.Size
	result.Packages = tree.PackageCount()
	result.Versions = tree.VersionCount()
	result.Duration = time.Since(start)

	summary := log.UpdateSummary{
		Path:       path,
		Bytes:      result.Bytes,
		Categories: result.Categories,
		Packages:   result.Packages,
		Versions:   result.Versions,
		Rejected:   result.Rejected,
		Duration:   result.Duration,
	}
	if l, ok := s.logger.(*log.Logger); ok {
		l.WriteSummary(summary)
	} else {
		s.logger.Info("Database written: %s (%d packages, %d versions)", path, result.Packages, result.Versions)
	}

	return result, nil
}

// sources lists the main repository followed by the overlays.
func (s *Service) sources() []repoSource {
	srcs := []repoSource{{
		path:   s.cfg.PortDir,
		label:  repoLabel(s.cfg.PortDir, "", DefaultRepoLabel),
		method: s.cfg.CacheMethod,
	}}
	for _, o := range s.cfg.Overlays {
		method := o.CacheMethod
		if method == "" {
			method = s.cfg.CacheMethod
		}
		srcs = append(srcs, repoSource{
			path:   o.Path,
			label:  repoLabel(o.Path, o.Label, filepath.Base(o.Path)),
			method: method,
		})
	}
	return srcs
}

// backend builds the cache backend for one repository. The cache database
// is only opened for the bolt method.
func (s *Service) backend(method, repo string) (cache.Backend, error) {
	opts := cache.Options{Logger: s.logger}
	if method == cache.MethodBolt {
		db, err := s.CacheDB()
		if err != nil {
			return nil, err
		}
		opts.DB = db
	}
	return cache.New(method, repo, opts)
}

// repoLabel returns configured, else profiles/repo_name, else fallback.
func repoLabel(repo, configured, fallback string) string {
	if configured != "" {
		return configured
	}
	if name, err := util.ReadFirstLine(filepath.Join(repo, "profiles", "repo_name")); err == nil && name != "" {
		return name
	}
	return fallback
}

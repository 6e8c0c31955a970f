package service

import (
	"fmt"
	"regexp"

	"go-eix/database"
	"go-eix/pkg"
)

// List returns "category/name" for every package in the database. Only
// names are decoded; the rest of each record is skipped.
func (s *Service) List(opts ListOptions) ([]string, error) {
	r, err := database.Open(s.databasePath(opts.Database))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var names []string
	for r.Next() {
		p, err := r.ReadField(database.FieldName)
		if err != nil {
			return nil, err
		}
		names = append(names, p.FullName())
		if err := r.Skip(); err != nil {
			return nil, err
		}
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	s.logger.Debug("Listed %d packages in %d categories", len(names), r.Stats().Categories)
	return names, nil
}

// Search returns the packages whose name (or, with Description set, whose
// description) matches the pattern. Versions are decoded for matches only.
func (s *Service) Search(opts SearchOptions) (*SearchResult, error) {
	re, err := regexp.Compile(opts.Pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern: %w", err)
	}

	r, err := database.Open(s.databasePath(opts.Database))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	result := &SearchResult{Header: r.Header()}
	for r.Next() {
		p, err := r.ReadField(database.FieldName)
		if err != nil {
			return nil, err
		}

		match := re.MatchString(p.Name) || re.MatchString(p.FullName())
		if !match && opts.Description {
			if p, err = r.ReadField(database.FieldDescription); err != nil {
				return nil, err
			}
			match = re.MatchString(p.Description)
		}
		if !match {
			if err := r.Skip(); err != nil {
				return nil, err
			}
			continue
		}

		if p, err = r.ReadField(database.FieldAll); err != nil {
			return nil, err
		}
		result.Packages = append(result.Packages, p)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	result.Stats = r.Stats()
	s.logger.Debug("Search %q: %d matches, %d packages skipped", opts.Pattern, len(result.Packages), result.Stats.Skipped)
	return result, nil
}

// readTree fully decodes the database at path.
func readTree(path string) (*database.Header, *pkg.Tree, error) {
	hdr, tree, err := database.ReadTreeFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return hdr, tree, nil
}

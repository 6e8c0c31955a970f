// Package pkg holds the in-memory package database: a tree of categories,
// packages and versions built from cache backend records and written to,
// or read back from, the binary database.
package pkg

import (
	"fmt"
	"sort"
	"strings"

	"go-eix/version"
)

// Overlay is one package repository. Index 0 of a tree's overlay list is
// always the main repository.
type Overlay struct {
	Path  string `yaml:"path"`
	Label string `yaml:"label"`
}

// Record is the raw metadata of one package version as every cache backend
// produces it. All fields are the unprocessed strings from the cache.
type Record struct {
	Category    string `json:"category"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	Slot        string `json:"slot,omitempty"`
	Keywords    string `json:"keywords,omitempty"`
	IUSE        string `json:"iuse,omitempty"`
	Restrict    string `json:"restrict,omitempty"`
	Properties  string `json:"properties,omitempty"`
	Description string `json:"description,omitempty"`
	Homepage    string `json:"homepage,omitempty"`
	License     string `json:"license,omitempty"`
	Provide     string `json:"provide,omitempty"`
}

// PF returns "name-version", the ebuild basename without extension.
func (r Record) PF() string {
	return r.Name + "-" + r.Version
}

// Version is one package version with the metadata the indexer keeps.
type Version struct {
	version.Version

	// Slot is empty for the default slot "0"
	Slot string

	// Keywords is the raw KEYWORDS string, e.g. "amd64 ~x86 -arm"
	Keywords string

	// IUSE is sorted and free of duplicates; "+flag"/"-flag" defaults are kept
	IUSE []string

	Restrict   Restrict
	Properties Properties

	// Overlay indexes the tree's overlay list
	Overlay int
}

// NewVersion converts a cache record into a Version. The record's version
// string is parsed with p; a ResultError parse is rejected with a
// *RecordError wrapping ErrInvalidVersion and the parse error.
func NewVersion(rec Record, overlay int, p version.Parser) (*Version, error) {
	v, res, err := p.Parse(rec.Version)
	if res == version.ResultError {
		return nil, &RecordError{
			Category: rec.Category,
			Name:     rec.Name,
			Version:  rec.Version,
			Err:      fmt.Errorf("%w: %w", ErrInvalidVersion, err),
		}
	}

	return &Version{
		Version:    v,
		Slot:       CanonicalSlot(rec.Slot),
		Keywords:   strings.Join(strings.Fields(rec.Keywords), " "),
		IUSE:       SplitIUSE(rec.IUSE),
		Restrict:   ParseRestrict(rec.Restrict),
		Properties: ParseProperties(rec.Properties),
		Overlay:    overlay,
	}, nil
}

// CanonicalSlot trims s and maps the default slot "0" to "".
func CanonicalSlot(s string) string {
	s = strings.TrimSpace(s)
	if s == "0" {
		return ""
	}
	return s
}

// DisplaySlot is the inverse of CanonicalSlot.
func DisplaySlot(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

// SplitIUSE splits a space separated IUSE string into a sorted set.
func SplitIUSE(s string) []string {
	return uniqueSorted(strings.Fields(s))
}

// Package is one category/name with all of its versions.
type Package struct {
	Category    string
	Name        string
	Description string
	Homepage    string
	License     string

	// Provide is the space separated list of old-style virtuals
	Provide string

	// IUSE is the union of all version IUSE sets
	IUSE []string

	Versions []*Version
}

// FullName returns "category/name".
func (p *Package) FullName() string {
	return p.Category + "/" + p.Name
}

// AddVersion appends v. The package level text fields are taken from the
// record of the highest version seen so far, the IUSE union is extended.
func (p *Package) AddVersion(v *Version, rec Record) {
	best := p.Best()
	if best == nil || version.Compare(v.Version, best.Version) >= 0 {
		p.Description = strings.TrimSpace(rec.Description)
		p.Homepage = strings.TrimSpace(rec.Homepage)
		p.License = strings.Join(strings.Fields(rec.License), " ")
		p.Provide = strings.Join(strings.Fields(rec.Provide), " ")
	}
	p.Versions = append(p.Versions, v)
	p.IUSE = uniqueSorted(append(p.IUSE, v.IUSE...))
}

// SortVersions puts the versions into ascending order. Equal versions from
// different overlays keep their relative order.
func (p *Package) SortVersions() {
	sort.SliceStable(p.Versions, func(i, j int) bool {
		return version.Compare(p.Versions[i].Version, p.Versions[j].Version) < 0
	})
}

// Best returns the greatest version, or nil for a package without versions.
func (p *Package) Best() *Version {
	var best *Version
	for _, v := range p.Versions {
		if best == nil || version.Compare(v.Version, best.Version) >= 0 {
			best = v
		}
	}
	return best
}

// Find returns the first version whose string is exactly s.
func (p *Package) Find(s string) *Version {
	for _, v := range p.Versions {
		if v.String() == s {
			return v
		}
	}
	return nil
}

func uniqueSorted(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)

	n := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[n-1] {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}

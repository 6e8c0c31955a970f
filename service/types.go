package service

import (
	"time"

	"go-eix/cachedb"
	"go-eix/database"
	"go-eix/pkg"
)

// UpdateOptions contains options for the Update service.
type UpdateOptions struct {
	Output string // Database path (empty = config database_path)
}

// UpdateResult contains the results of an update.
type UpdateResult struct {
	Path       string        // Database file written
	Bytes      int64         // Size of the written database
	Categories int           // Categories written (empty ones are dropped)
	Packages   int           // Packages written
	Versions   int           // Versions written
	Rejected   int           // Cache entries whose version did not parse
	Failed     int           // Categories a backend could not read
	Repos      []RepoResult  // Per repository outcome, main repository first
	Errors     []error       // Non-fatal backend failures
	Duration   time.Duration // Total update duration
}

// RepoResult describes what one repository contributed to an update.
type RepoResult struct {
	Path    string
	Label   string
	Method  string
	Records int
}

// ListOptions contains options for the List service.
type ListOptions struct {
	Database string // Database path (empty = config database_path)
}

// SearchOptions contains options for the Search service.
type SearchOptions struct {
	Database    string // Database path (empty = config database_path)
	Pattern     string // Regular expression matched against names
	Description bool   // Also match descriptions
}

// SearchResult contains the packages matching a search.
type SearchResult struct {
	Header   *database.Header // Header of the searched database
	Packages []*pkg.Package   // Matches, fully decoded
	Stats    database.Stats   // What the reader decoded and skipped
}

// DiffKind classifies one entry of a database diff.
type DiffKind string

const (
	DiffAdded      DiffKind = "added"
	DiffRemoved    DiffKind = "removed"
	DiffUpgraded   DiffKind = "upgraded"
	DiffDowngraded DiffKind = "downgraded"
)

// DiffEntry is one package that differs between two databases.
type DiffEntry struct {
	Kind DiffKind
	Name string // category/name
	Old  string // best version in the old database ("" when added)
	New  string // best version in the new database ("" when removed)
}

// DiffResult contains the differences between two databases, ordered by
// package name.
type DiffResult struct {
	Entries []DiffEntry
}

// Count returns how many entries are of kind k.
func (d *DiffResult) Count(k DiffKind) int {
	n := 0
	for _, e := range d.Entries {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// ImportOptions contains options for the ImportCache service.
type ImportOptions struct {
	Repository string // Repository to import (empty = config portdir)
	Method     string // Cache method to read (empty = config cache_method)
	Force      bool   // Re-import unchanged categories
}

// InitOptions contains options for the Initialize service.
type InitOptions struct {
	Force bool // Overwrite an existing configuration file
}

// InitResult contains the results of an initialization.
type InitResult struct {
	DirsCreated   []string // Directories created or verified
	ConfigPath    string   // Configuration file path
	ConfigWritten bool     // Whether the configuration file was written
	Categories    int      // Categories found in portdir
	Warnings      []string // Non-fatal warnings
}

// StatusResult contains the state of the database and the cache.
type StatusResult struct {
	DatabasePath   string
	DatabaseExists bool
	DatabaseSize   int64
	FormatVersion  uint64
	Overlays       []pkg.Overlay
	Categories     int
	Packages       int

	CacheDBPath   string
	CacheDBExists bool
	Repositories  []RepoStatus
	LastRun       *cachedb.Run // Most recent import run (nil if none)
	ActiveRun     *cachedb.Run // Unfinished run (nil if none)
}

// RepoStatus describes one repository imported into the cache database.
type RepoStatus struct {
	Path    string
	Records int
}

// CleanupOptions contains options for the Cleanup service.
type CleanupOptions struct {
	RunsOlderThan time.Duration // Delete finished runs older than this (0 = keep all)
}

// CleanupResult contains the results of a cleanup.
type CleanupResult struct {
	FilesRemoved []string // Stale temporary files removed
	RunsDeleted  int      // Import runs deleted
	Errors       []error  // Non-fatal errors encountered
}

package cache

import (
	"github.com/hashicorp/go-multierror"

	"go-eix/log"
	"go-eix/pkg"
	"go-eix/version"
)

// CollectStats summarizes one Collect call.
type CollectStats struct {
	Categories int // categories read successfully
	Failed     int // categories the backend could not read
	Records    int // records added to the tree
	Rejected   int // records whose version did not parse
}

// Add accumulates other into s.
func (s *CollectStats) Add(other CollectStats) {
	s.Categories += other.Categories
	s.Failed += other.Failed
	s.Records += other.Records
	s.Rejected += other.Rejected
}

// rejectLogger is implemented by loggers with a dedicated entry for
// rejected records.
type rejectLogger interface {
	Rejected(atom string, err error)
}

// Collector feeds backend records into a package tree.
type Collector struct {
	Parser version.Parser
	Logger log.LibraryLogger
}

// Collect reads every category of b and adds its records to tree under
// the given overlay index. Records whose version does not parse under
// c.Parser are logged and skipped. Categories that fail to read are
// skipped too; their errors are returned together as a
// *multierror.Error after the rest of the backend was collected.
func (c *Collector) Collect(tree *pkg.Tree, overlay int, b Backend) (CollectStats, error) {
	var stats CollectStats
	logger := c.Logger
	if logger == nil {
		logger = log.NoOpLogger{}
	}

	cats, err := b.Categories()
	if err != nil {
		return stats, err
	}

	var result *multierror.Error
	for _, cat := range cats {
		recs, err := b.ReadCategory(cat)
		if err != nil {
			logger.Error("%v", err)
			result = multierror.Append(result, err)
			stats.Failed++
			continue
		}
		stats.Categories++

		for _, rec := range recs {
			if _, err := tree.AddRecord(rec, overlay, c.Parser); err != nil {
				stats.Rejected++
				if rl, ok := logger.(rejectLogger); ok {
					rl.Rejected(rec.Category+"/"+rec.PF(), err)
				} else {
					logger.Warn("rejected %s/%s: %v", rec.Category, rec.PF(), err)
				}
				continue
			}
			stats.Records++
		}
		logger.Debug("%s: %s: %d records", b.Name(), cat, len(recs))
	}

	return stats, result.ErrorOrNil()
}

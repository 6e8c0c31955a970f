package cache

import (
	"time"

	"github.com/hashicorp/go-multierror"

	"go-eix/cachedb"
	"go-eix/log"
)

// Importer snapshots a backend into the cache database.
type Importer struct {
	DB     *cachedb.DB
	Logger log.LibraryLogger

	// Force re-imports categories whose fingerprint did not change
	Force bool
}

// Import copies every record of b into db under repository key source.
// See Importer.Import.
func Import(db *cachedb.DB, b Backend, source string) (*cachedb.Run, error) {
	return (&Importer{DB: db}).Import(b, source)
}

// Import copies every category of b into the database, recording the
// work as a run with a fresh UUID. Categories whose fingerprint matches
// the stored one are left alone unless Force is set.
//
// A run is returned whenever it was started, also on failure; its Status
// is cachedb.RunStatusFailed if any category could not be imported.
func (im *Importer) Import(b Backend, source string) (*cachedb.Run, error) {
	if b.Name() == MethodBolt {
		return nil, &BackendError{Backend: MethodBolt, Err: ErrSelfImport}
	}

	run := &cachedb.Run{
		ID:         cachedb.NewRunID(),
		Repository: source,
		Backend:    b.Name(),
		StartTime:  time.Now(),
	}
	if err := im.DB.StartRun(run); err != nil {
		return nil, err
	}

	logger := im.logger(run)
	logger.Info("importing %s cache of %s", b.Name(), source)

	stats, err := im.importCategories(b, source, logger)

	status := cachedb.RunStatusSuccess
	if err != nil {
		status = cachedb.RunStatusFailed
	}
	end := time.Now()
	if ferr := im.DB.FinishRun(run.ID, status, stats, end); ferr != nil {
		err = multierror.Append(err, ferr)
	}

	run.Status = status
	run.Stats = stats
	run.EndTime = end
	logger.Info("import %s: %d categories, %d unchanged, %d failed, %d records",
		status, stats.Categories, stats.Unchanged, stats.Failed, stats.Records)
	return run, err
}

func (im *Importer) importCategories(b Backend, source string, logger log.LibraryLogger) (cachedb.RunStats, error) {
	var stats cachedb.RunStats

	cats, err := b.Categories()
	if err != nil {
		return stats, err
	}
	fp, _ := b.(Fingerprinter)

	var result *multierror.Error
	for _, cat := range cats {
		var crc uint32
		haveCRC := false
		if fp != nil {
			if c, err := fp.Fingerprint(cat); err == nil {
				crc, haveCRC = c, true
			}
		}

		if haveCRC && !im.Force {
			need, err := im.DB.NeedsImport(source, cat, crc)
			if err == nil && !need {
				stats.Unchanged++
				continue
			}
		}

		recs, err := b.ReadCategory(cat)
		if err == nil {
			err = im.DB.ReplaceCategory(source, cat, recs)
		}
		if err == nil && haveCRC {
			err = im.DB.UpdateCRC(source, cat, crc)
		}
		if err != nil {
			logger.Error("category %s: %v", cat, err)
			result = multierror.Append(result, err)
			stats.Failed++
			continue
		}

		stats.Categories++
		stats.Records += len(recs)
		logger.Debug("imported %s (%d records)", cat, len(recs))
	}
	return stats, result.ErrorOrNil()
}

func (im *Importer) logger(run *cachedb.Run) log.LibraryLogger {
	switch l := im.Logger.(type) {
	case nil:
		return log.NoOpLogger{}
	case *log.Logger:
		return l.WithContext(log.LogContext{RunID: run.ID, Repository: run.Repository})
	default:
		return l
	}
}

package cachedb

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

const (
	RunStatusRunning = "running"
	RunStatusSuccess = "success"
	RunStatusFailed  = "failed"
)

// RunStats aggregates per-run category outcomes.
type RunStats struct {
	Categories int `json:"categories"`
	Unchanged  int `json:"unchanged"`
	Failed     int `json:"failed"`
	Records    int `json:"records"`
}

// Run captures one import of a cache backend into the database.
type Run struct {
	ID         string    `json:"id"`
	Repository string    `json:"repository"`
	Backend    string    `json:"backend"`
	Status     string    `json:"status"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Stats      RunStats  `json:"stats"`
}

// NewRunID returns a fresh run UUID.
func NewRunID() string {
	return uuid.New().String()
}

func validateRunID(runID string) error {
	if runID == "" {
		return &ValidationError{Field: "runID", Err: ErrEmptyUUID}
	}
	if _, err := uuid.Parse(runID); err != nil {
		return &ValidationError{Field: "runID", Value: runID, Err: ErrInvalidUUID}
	}
	return nil
}

// StartRun stores a new running entry for run.
func (db *DB) StartRun(run *Run) error {
	if err := validateRunID(run.ID); err != nil {
		return err
	}
	run.Status = RunStatusRunning
	return db.saveRun(run)
}

// FinishRun sets the final status, stats and end time of a run.
func (db *DB) FinishRun(runID, status string, stats RunStats, endTime time.Time) error {
	if err := validateRunID(runID); err != nil {
		return err
	}

	return db.updateRun(runID, func(run *Run) {
		run.Status = status
		run.Stats = stats
		run.EndTime = endTime
	})
}

// GetRun fetches a run by its ID.
func (db *DB) GetRun(runID string) (*Run, error) {
	if err := validateRunID(runID); err != nil {
		return nil, err
	}

	var run Run
	err := db.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(BucketRuns))
		if bucket == nil {
			return &DatabaseError{Op: "get bucket", Bucket: BucketRuns, Err: ErrBucketNotFound}
		}
		data := bucket.Get([]byte(runID))
		if data == nil {
			return &RecordError{Op: "get run", Key: runID, Err: ErrRecordNotFound}
		}
		return json.Unmarshal(data, &run)
	})
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRuns returns all runs, newest first.
func (db *DB) ListRuns() ([]Run, error) {
	var runs []Run
	err := db.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(BucketRuns))
		if bucket == nil {
			return &DatabaseError{Op: "get bucket", Bucket: BucketRuns, Err: ErrBucketNotFound}
		}
		return bucket.ForEach(func(k, v []byte) error {
			var run Run
			if err := json.Unmarshal(v, &run); err != nil {
				return &RecordError{Op: "unmarshal run", Key: string(k), Err: err}
			}
			runs = append(runs, run)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].StartTime.After(runs[j].StartTime)
	})
	return runs, nil
}

// ActiveRun returns the first run that has not finished, or nil.
func (db *DB) ActiveRun() (*Run, error) {
	runs, err := db.ListRuns()
	if err != nil {
		return nil, err
	}
	for i := range runs {
		if runs[i].EndTime.IsZero() {
			return &runs[i], nil
		}
	}
	return nil, nil
}

// DeleteRunsBefore removes finished runs that ended before cutoff and
// returns how many were removed.
func (db *DB) DeleteRunsBefore(cutoff time.Time) (int, error) {
	removed := 0
	err := db.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(BucketRuns))
		if bucket == nil {
			return &DatabaseError{Op: "get bucket", Bucket: BucketRuns, Err: ErrBucketNotFound}
		}

		var stale [][]byte
		err := bucket.ForEach(func(k, v []byte) error {
			var run Run
			if err := json.Unmarshal(v, &run); err != nil {
				return &RecordError{Op: "unmarshal run", Key: string(k), Err: err}
			}
			if !run.EndTime.IsZero() && run.EndTime.Before(cutoff) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := bucket.Delete(k); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (db *DB) saveRun(run *Run) error {
	data, err := json.Marshal(run)
	if err != nil {
		return &RecordError{Op: "marshal run", Key: run.ID, Err: err}
	}

	return db.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(BucketRuns))
		if bucket == nil {
			return &DatabaseError{Op: "get bucket", Bucket: BucketRuns, Err: ErrBucketNotFound}
		}
		return bucket.Put([]byte(run.ID), data)
	})
}

func (db *DB) updateRun(runID string, mutate func(*Run)) error {
	return db.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(BucketRuns))
		if bucket == nil {
			return &DatabaseError{Op: "get bucket", Bucket: BucketRuns, Err: ErrBucketNotFound}
		}

		data := bucket.Get([]byte(runID))
		if data == nil {
			return &RecordError{Op: "update run", Key: runID, Err: ErrRecordNotFound}
		}

		var run Run
		if err := json.Unmarshal(data, &run); err != nil {
			return &RecordError{Op: "unmarshal run", Key: runID, Err: err}
		}

		mutate(&run)

		updated, err := json.Marshal(&run)
		if err != nil {
			return &RecordError{Op: "marshal run", Key: runID, Err: err}
		}
		return bucket.Put([]byte(runID), updated)
	})
}

// Package cachedb keeps a persistent snapshot of cache backend metadata in
// a bbolt file, together with per-category fingerprints and the history of
// import runs.
package cachedb

import (
	"encoding/json"
	"time"

	bolt "go.etcd.io/bbolt"

	"go-eix/pkg"
)

// Bucket names for bbolt database
const (
	// records/<repository>/<category>/<name-version> -> JSON pkg.Record
	BucketRecords = "records"

	// "<repository>\x00<category>" -> little-endian uint32 fingerprint
	BucketCRCIndex = "crc_index"

	// run UUID -> JSON Run
	BucketRuns = "runs"
)

// DB wraps a bbolt database holding imported cache metadata
type DB struct {
	db   *bolt.DB
	path string
}

// OpenDB opens or creates a cache database at path and makes sure the
// top level buckets exist. The file is created with 0600 permissions.
//
// Example:
//
//	db, err := cachedb.OpenDB("/var/cache/eix/cache.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
func OpenDB(path string) (*DB, error) {
	bdb, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, &DatabaseError{Op: "open", Err: err}
	}

	err = bdb.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{BucketRecords, BucketCRCIndex, BucketRuns} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return &DatabaseError{Op: "create bucket", Bucket: name, Err: err}
			}
		}
		return nil
	})
	if err != nil {
		bdb.Close()
		return nil, err
	}

	return &DB{db: bdb, path: path}, nil
}

// Close closes the database. It is safe to call Close more than once.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	err := db.db.Close()
	db.db = nil
	return err
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// ReplaceCategory swaps the stored records of one repository category for
// recs in a single transaction.
func (db *DB) ReplaceCategory(repo, category string, recs []pkg.Record) error {
	if repo == "" {
		return &ValidationError{Field: "repository", Err: ErrEmptyKey}
	}
	if category == "" {
		return &ValidationError{Field: "category", Err: ErrEmptyKey}
	}

	key := repo + "/" + category
	err := db.db.Update(func(tx *bolt.Tx) error {
		records := tx.Bucket([]byte(BucketRecords))
		if records == nil {
			return &DatabaseError{Op: "get bucket", Bucket: BucketRecords, Err: ErrBucketNotFound}
		}
		rb, err := records.CreateBucketIfNotExists([]byte(repo))
		if err != nil {
			return err
		}
		if rb.Bucket([]byte(category)) != nil {
			if err := rb.DeleteBucket([]byte(category)); err != nil {
				return err
			}
		}
		cb, err := rb.CreateBucket([]byte(category))
		if err != nil {
			return err
		}

		for i := range recs {
			data, err := json.Marshal(&recs[i])
			if err != nil {
				return err
			}
			if err := cb.Put([]byte(recs[i].PF()), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &RecordError{Op: "replace", Key: key, Err: err}
	}
	return nil
}

// Repositories returns the repositories with stored records, sorted.
func (db *DB) Repositories() ([]string, error) {
	var repos []string
	err := db.db.View(func(tx *bolt.Tx) error {
		records := tx.Bucket([]byte(BucketRecords))
		if records == nil {
			return &DatabaseError{Op: "get bucket", Bucket: BucketRecords, Err: ErrBucketNotFound}
		}
		return records.ForEachBucket(func(k []byte) error {
			repos = append(repos, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return repos, nil
}

// Categories returns the stored categories of repo, sorted.
func (db *DB) Categories(repo string) ([]string, error) {
	var cats []string
	err := db.viewRepo(repo, func(rb *bolt.Bucket) error {
		return rb.ForEachBucket(func(k []byte) error {
			cats = append(cats, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, &RecordError{Op: "categories", Key: repo, Err: err}
	}
	return cats, nil
}

// Records returns the stored records of one category ordered by
// name-version. An unknown category yields no records.
func (db *DB) Records(repo, category string) ([]pkg.Record, error) {
	var recs []pkg.Record
	err := db.viewRepo(repo, func(rb *bolt.Bucket) error {
		cb := rb.Bucket([]byte(category))
		if cb == nil {
			return nil
		}
		return cb.ForEach(func(k, v []byte) error {
			var rec pkg.Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return &ValidationError{Field: "record", Value: string(k), Err: ErrCorruptedData}
			}
			recs = append(recs, rec)
			return nil
		})
	})
	if err != nil {
		return nil, &RecordError{Op: "records", Key: repo + "/" + category, Err: err}
	}
	return recs, nil
}

// RecordCount returns the number of records stored for repo.
func (db *DB) RecordCount(repo string) (int, error) {
	n := 0
	err := db.viewRepo(repo, func(rb *bolt.Bucket) error {
		return rb.ForEachBucket(func(k []byte) error {
			c := rb.Bucket(k).Cursor()
			for key, _ := c.First(); key != nil; key, _ = c.Next() {
				n++
			}
			return nil
		})
	})
	if err != nil {
		return 0, &RecordError{Op: "count", Key: repo, Err: err}
	}
	return n, nil
}

// DeleteRepository drops all records and fingerprints of repo.
func (db *DB) DeleteRepository(repo string) error {
	err := db.db.Update(func(tx *bolt.Tx) error {
		records := tx.Bucket([]byte(BucketRecords))
		if records == nil {
			return &DatabaseError{Op: "get bucket", Bucket: BucketRecords, Err: ErrBucketNotFound}
		}
		if records.Bucket([]byte(repo)) == nil {
			return ErrRecordNotFound
		}
		if err := records.DeleteBucket([]byte(repo)); err != nil {
			return err
		}
		return deleteCRCs(tx, repo)
	})
	if err != nil {
		return &RecordError{Op: "delete", Key: repo, Err: err}
	}
	return nil
}

func (db *DB) viewRepo(repo string, fn func(rb *bolt.Bucket) error) error {
	if repo == "" {
		return &ValidationError{Field: "repository", Err: ErrEmptyKey}
	}
	return db.db.View(func(tx *bolt.Tx) error {
		records := tx.Bucket([]byte(BucketRecords))
		if records == nil {
			return &DatabaseError{Op: "get bucket", Bucket: BucketRecords, Err: ErrBucketNotFound}
		}
		rb := records.Bucket([]byte(repo))
		if rb == nil {
			return ErrRecordNotFound
		}
		return fn(rb)
	})
}

package cachedb

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"
)

// NeedsImport reports whether a category has to be re-imported, i.e. its
// stored fingerprint is missing or differs from current.
func (db *DB) NeedsImport(repo, category string, current uint32) (bool, error) {
	stored, exists, err := db.GetCRC(repo, category)
	if err != nil {
		return false, &CRCError{Op: "check needs import", Key: repo + "/" + category, Err: err}
	}
	if !exists {
		return true, nil
	}
	return stored != current, nil
}

// UpdateCRC stores the fingerprint of a category after a successful import.
func (db *DB) UpdateCRC(repo, category string, crc uint32) error {
	value := make([]byte, 4)
	binary.LittleEndian.PutUint32(value, crc)

	err := db.db.Update(func(tx *bolt.Tx) error {
		idx := tx.Bucket([]byte(BucketCRCIndex))
		if idx == nil {
			return &DatabaseError{Op: "get bucket", Bucket: BucketCRCIndex, Err: ErrBucketNotFound}
		}
		return idx.Put(crcKey(repo, category), value)
	})
	if err != nil {
		return &CRCError{Op: "update", Key: repo + "/" + category, Err: err}
	}
	return nil
}

// GetCRC returns the stored fingerprint of a category. The bool is false
// when the category was never imported.
func (db *DB) GetCRC(repo, category string) (uint32, bool, error) {
	var crc uint32
	var found bool

	err := db.db.View(func(tx *bolt.Tx) error {
		idx := tx.Bucket([]byte(BucketCRCIndex))
		if idx == nil {
			return &DatabaseError{Op: "get bucket", Bucket: BucketCRCIndex, Err: ErrBucketNotFound}
		}
		value := idx.Get(crcKey(repo, category))
		if value == nil {
			return nil
		}
		if len(value) != 4 {
			return &ValidationError{Field: "crc", Value: repo + "/" + category, Err: ErrCorruptedData}
		}
		crc = binary.LittleEndian.Uint32(value)
		found = true
		return nil
	})
	if err != nil {
		return 0, false, &CRCError{Op: "get", Key: repo + "/" + category, Err: err}
	}
	return crc, found, nil
}

func crcKey(repo, category string) []byte {
	return []byte(repo + "\x00" + category)
}

func deleteCRCs(tx *bolt.Tx, repo string) error {
	idx := tx.Bucket([]byte(BucketCRCIndex))
	if idx == nil {
		return &DatabaseError{Op: "get bucket", Bucket: BucketCRCIndex, Err: ErrBucketNotFound}
	}
	prefix := []byte(repo + "\x00")
	var keys [][]byte
	c := idx.Cursor()
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		keys = append(keys, append([]byte(nil), k...))
	}
	for _, k := range keys {
		if err := idx.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

// ComputeDirCRC fingerprints a cache directory from the relative path,
// size and mtime of every regular file below dir. File contents are not
// read.
func ComputeDirCRC(dir string) (uint32, error) {
	hash := crc32.NewIEEE()

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		hash.Write([]byte(rel))
		hash.Write([]byte{0})
		binary.Write(hash, binary.LittleEndian, info.Size())
		binary.Write(hash, binary.LittleEndian, info.ModTime().UnixNano())
		return nil
	})
	if err != nil {
		return 0, &CRCError{Op: "compute", Key: dir, Err: err}
	}
	return hash.Sum32(), nil
}

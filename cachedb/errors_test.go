package cachedb

import (
	"errors"
	"testing"
)

func TestDatabaseError(t *testing.T) {
	base := errors.New("disk full")
	err := &DatabaseError{Op: "create bucket", Bucket: BucketRuns, Err: base}

	want := "cache database create bucket [bucket: runs]: disk full"
	if err.Error() != want {
		t.Errorf("unexpected error message:\ngot:  %s\nwant: %s", err.Error(), want)
	}
	if !errors.Is(err, base) {
		t.Error("DatabaseError should unwrap to its cause")
	}

	noBucket := &DatabaseError{Op: "open", Err: base}
	if noBucket.Error() != "cache database open: disk full" {
		t.Errorf("unexpected error message: %s", noBucket.Error())
	}
}

func TestRecordError(t *testing.T) {
	err := &RecordError{Op: "replace", Key: "/repo/app-misc", Err: ErrRecordNotFound}
	if err.Error() != "cache record replace [/repo/app-misc]: not found in cache" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !IsRecordNotFound(err) {
		t.Error("RecordError should unwrap to ErrRecordNotFound")
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "runID", Value: "xyz", Err: ErrInvalidUUID}
	if err.Error() != "validation failed [runID=xyz]: run ID is not a UUID" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !IsValidationError(err) {
		t.Error("IsValidationError should match")
	}

	var wrapped error = &RecordError{Op: "get run", Key: "xyz", Err: err}
	if !IsValidationError(wrapped) {
		t.Error("IsValidationError should see through wrapping")
	}
}

func TestCRCError(t *testing.T) {
	err := &CRCError{Op: "get", Key: "/repo/app-misc", Err: ErrCorruptedData}
	if err.Error() != "CRC get [/repo/app-misc]: stored value does not decode" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !errors.Is(err, ErrCorruptedData) {
		t.Error("CRCError should unwrap to ErrCorruptedData")
	}
}

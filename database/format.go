// Package database reads and writes the binary package database.
//
// A file starts with Magic and the uvarint FormatVersion, followed by the
// overlay list, the interned string tables (license, iuse, slot, provide)
// and the category count. Each category is its name and package count
// followed by that many package records. Every package record carries its
// own byte length so a reader can skip it without decoding.
//
// All integers are unsigned varints (encoding/binary), all strings are a
// uvarint length followed by the raw bytes.
package database

const (
	// Magic identifies package database files
	Magic = "eix\x00"

	// FormatVersion is the only file format version this package accepts
	FormatVersion uint64 = 1
)

// Field selects how much of a package record Reader.ReadField decodes.
// Fields are stored in this order.
type Field int

const (
	FieldNone Field = iota
	FieldName
	FieldDescription
	FieldHomepage
	FieldLicense
	FieldProvide
	FieldIUSE
	FieldVersions

	// FieldAll decodes the whole record
	FieldAll = FieldVersions
)

var fieldNames = [...]string{
	"none", "name", "description", "homepage", "license", "provide", "iuse", "versions",
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "field(?)"
	}
	return fieldNames[f]
}

// part tag bit set when the part carries content
const partHasContent = 0x80

// Sanity limits applied while decoding the header. They bound allocations
// on damaged files, they are not format limits.
const (
	maxOverlays   = 1 << 16
	maxTableSlots = 1 << 26
	maxStringLen  = 1 << 24
)

// Names of the interned tables, used in errors.
const (
	TableLicense = "license"
	TableIUSE    = "iuse"
	TableSlot    = "slot"
	TableProvide = "provide"
	TableOverlay = "overlay"
)

package database

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go-eix/pkg"
	"go-eix/version"
)

type readerState int

const (
	stateBeforeFirst readerState = iota
	statePackage
	stateSkipped
	stateEnd
)

// Stats counts what a Reader has seen so far.
type Stats struct {
	Categories int
	Packages   int
	Skipped    int

	// Versions counts decoded version records only
	Versions int
}

// Reader streams packages out of a database file. Iteration is single
// pass: call Next, then ReadField and/or Skip on the current package.
//
//	r, err := database.Open(path)
//	...
//	for r.Next() {
//		p, err := r.ReadField(database.FieldName)
//		...
//	}
//	if err := r.Err(); err != nil { ... }
type Reader struct {
	r      *bufio.Reader
	closer io.Closer
	hdr    *Header

	state    readerState
	catsLeft int
	pkgsLeft int
	category string

	rec     recordReader
	pkg     *pkg.Package
	decoded Field

	stats Stats
	err   error
}

// NewReader reads the header from r. A wrong magic or format version
// returns a *FormatError before anything else is decoded.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	hdr, err := decodeHeader(br)
	if err != nil {
		return nil, err
	}
	return &Reader{
		r:        br,
		hdr:      hdr,
		catsLeft: hdr.Size,
	}, nil
}

// Open opens the database at path. The Reader owns the file; Close it.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Err: err}
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// Close releases the underlying file when the Reader was opened by Open.
func (r *Reader) Close() error {
	r.state = stateEnd
	if r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	return c.Close()
}

// Header returns the decoded header.
func (r *Reader) Header() *Header {
	return r.hdr
}

// Stats returns the counters so far.
func (r *Reader) Stats() Stats {
	return r.stats
}

// Err returns the error that stopped iteration, if any.
func (r *Reader) Err() error {
	return r.err
}

// Category returns the category of the current package.
func (r *Reader) Category() string {
	return r.category
}

// Package returns what has been decoded of the current package, or nil
// before the first Next.
func (r *Reader) Package() *pkg.Package {
	return r.pkg
}

// Next advances to the next package, crossing category boundaries. The
// unread rest of the previous package is skipped. It returns false at the
// end of the file or on error; check Err.
func (r *Reader) Next() bool {
	if r.err != nil || r.state == stateEnd {
		return false
	}
	if r.state == statePackage {
		if err := r.rec.discard(); err != nil {
			r.fail("skip", err)
			return false
		}
	}

	for r.pkgsLeft == 0 {
		if r.catsLeft == 0 {
			r.state = stateEnd
			r.pkg = nil
			return false
		}
		name, err := readString(r.r)
		if err != nil {
			r.fail("read category", err)
			return false
		}
		n, err := readUvarint(r.r)
		if err != nil {
			r.fail("read category", err)
			return false
		}
		r.catsLeft--
		r.category = name
		r.pkgsLeft = int(n)
		r.stats.Categories++
	}

	length, err := readUvarint(r.r)
	if err != nil {
		r.fail("read package", err)
		return false
	}
	r.pkgsLeft--
	r.rec = recordReader{r: r.r, n: int64(length)}
	r.pkg = &pkg.Package{Category: r.category}
	r.decoded = FieldNone
	r.state = statePackage
	r.stats.Packages++
	return true
}

// Skip abandons the current package and jumps over the rest of its record
// without decoding it.
func (r *Reader) Skip() error {
	if r.err != nil {
		return r.err
	}
	if r.state != statePackage {
		return ErrNoPackage
	}
	if err := r.rec.discard(); err != nil {
		return r.fail("skip", err)
	}
	r.state = stateSkipped
	r.stats.Skipped++
	return nil
}

// ReadField decodes the current package up to and including upTo. Fields
// already decoded are not read again, so asking for FieldVersions after
// FieldName only decodes the rest.
func (r *Reader) ReadField(upTo Field) (*pkg.Package, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.state != statePackage {
		return nil, ErrNoPackage
	}
	if upTo > FieldAll {
		upTo = FieldAll
	}

	for r.decoded < upTo {
		next := r.decoded + 1
		if err := r.decodeField(next); err != nil {
			return nil, r.fail("read "+next.String(), err)
		}
		r.decoded = next
	}

	if r.decoded == FieldAll && r.rec.n != 0 {
		return nil, r.fail("read package", fmt.Errorf("%w: %d trailing bytes", ErrCorruptRecord, r.rec.n))
	}
	return r.pkg, nil
}

func (r *Reader) decodeField(f Field) error {
	rr := &r.rec
	p := r.pkg
	var err error

	switch f {
	case FieldName:
		p.Name, err = readString(rr)
	case FieldDescription:
		p.Description, err = readString(rr)
	case FieldHomepage:
		p.Homepage, err = readString(rr)
	case FieldLicense:
		var i uint64
		if i, err = readUvarint(rr); err == nil {
			p.License, err = r.hdr.License.Lookup(i)
		}
	case FieldProvide:
		var words []string
		if words, err = r.readWords(r.hdr.Provide); err == nil {
			p.Provide = strings.Join(words, " ")
		}
	case FieldIUSE:
		p.IUSE, err = r.readWords(r.hdr.IUSE)
	case FieldVersions:
		var n int
		if n, err = readCount(rr, rr.n, "versions"); err != nil {
			return err
		}
		p.Versions = make([]*pkg.Version, 0, n)
		for i := 0; i < n; i++ {
			v, err := r.readVersion()
			if err != nil {
				return err
			}
			p.Versions = append(p.Versions, v)
			r.stats.Versions++
		}
	}
	return err
}

func (r *Reader) readWords(t *StringHash) ([]string, error) {
	rr := &r.rec
	n, err := readCount(rr, rr.n, t.Name()+" entries")
	if err != nil || n == 0 {
		return nil, err
	}
	words := make([]string, n)
	for i := range words {
		idx, err := readUvarint(rr)
		if err != nil {
			return nil, err
		}
		if words[i], err = t.Lookup(idx); err != nil {
			return nil, err
		}
	}
	return words, nil
}

func (r *Reader) readVersion() (*pkg.Version, error) {
	rr := &r.rec

	n, err := readCount(rr, rr.n, "version parts")
	if err != nil {
		return nil, err
	}
	parts := make([]version.Part, n)
	for i := range parts {
		tag, err := rr.ReadByte()
		if err != nil {
			return nil, err
		}
		kind := version.Kind(tag &^ partHasContent)
		if !kind.Valid() {
			return nil, fmt.Errorf("%w: version part kind %d", ErrCorruptRecord, kind)
		}
		parts[i].Kind = kind
		if tag&partHasContent != 0 {
			if parts[i].Content, err = readString(rr); err != nil {
				return nil, err
			}
		}
	}

	v := &pkg.Version{Version: version.New(parts)}

	slot, err := readUvarint(rr)
	if err != nil {
		return nil, err
	}
	if v.Slot, err = r.hdr.Slot.Lookup(slot); err != nil {
		return nil, err
	}
	if v.Keywords, err = readString(rr); err != nil {
		return nil, err
	}
	if v.IUSE, err = r.readWords(r.hdr.IUSE); err != nil {
		return nil, err
	}

	restrict, err := readUvarint(rr)
	if err != nil {
		return nil, err
	}
	properties, err := readUvarint(rr)
	if err != nil {
		return nil, err
	}
	overlay, err := readUvarint(rr)
	if err != nil {
		return nil, err
	}
	if overlay >= uint64(len(r.hdr.Overlays)) {
		return nil, &CorruptIndexError{Table: TableOverlay, Index: overlay, Size: len(r.hdr.Overlays)}
	}

	v.Restrict = pkg.Restrict(restrict)
	v.Properties = pkg.Properties(properties)
	v.Overlay = int(overlay)
	return v, nil
}

// fail records err as the terminal error. Stream failures are wrapped in
// an *IOError; corruption errors are returned as they are.
func (r *Reader) fail(op string, err error) error {
	if !IsCorrupt(err) {
		var ioErr *IOError
		if !errors.As(err, &ioErr) {
			err = &IOError{Op: op, Err: err}
		}
	}
	r.err = err
	r.state = stateEnd
	return err
}

// ReadTree decodes a whole database into a new tree.
func ReadTree(src io.Reader) (*Header, *pkg.Tree, error) {
	r, err := NewReader(src)
	if err != nil {
		return nil, nil, err
	}
	tree, err := r.tree()
	return r.Header(), tree, err
}

// ReadTreeFile is ReadTree on the file at path.
func ReadTreeFile(path string) (*Header, *pkg.Tree, error) {
	r, err := Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()
	tree, err := r.tree()
	return r.Header(), tree, err
}

func (r *Reader) tree() (*pkg.Tree, error) {
	tree := pkg.NewTree()
	tree.Overlays = append([]pkg.Overlay(nil), r.hdr.Overlays...)
	for r.Next() {
		p, err := r.ReadField(FieldAll)
		if err != nil {
			return nil, err
		}
		tree.Category(r.Category()).Add(p)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return tree, nil
}

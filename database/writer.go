package database

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"go-eix/pkg"
)

// Write collects hdr from tree and streams the whole database to w. It
// returns the number of bytes written. The first stream failure aborts
// the write and is returned as an *IOError; nothing is retried or cleaned
// up.
func Write(w io.Writer, hdr *Header, tree *pkg.Tree) (int64, error) {
	if err := hdr.Collect(tree); err != nil {
		return 0, err
	}

	e := newEncoder(w)
	hdr.encode(e)

	var rec []byte
	for _, c := range tree.Categories() {
		if c.Len() == 0 {
			continue
		}
		e.str(c.Name)
		e.uvarint(uint64(c.Len()))

		for _, p := range c.Packages() {
			var err error
			rec, err = appendPackage(rec[:0], hdr, p)
			if err != nil {
				return e.n, err
			}
			e.uvarint(uint64(len(rec)))
			e.write(rec)
		}
		if e.err != nil {
			break
		}
	}
	e.flush()

	if e.err != nil {
		return e.n, &IOError{Op: "write", Err: e.err}
	}
	return e.n, nil
}

// WriteFile creates (or truncates) path and writes the database into it.
// It does not write to a temporary file first; callers wanting crash
// safety write elsewhere and rename.
func WriteFile(path string, hdr *Header, tree *pkg.Tree) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, &IOError{Op: "create", Err: err}
	}

	n, err := Write(f, hdr, tree)
	if cerr := f.Close(); cerr != nil && err == nil {
		err = &IOError{Op: "close", Err: cerr}
	}
	return n, err
}

func appendPackage(b []byte, hdr *Header, p *pkg.Package) ([]byte, error) {
	b = appendString(b, p.Name)
	b = appendString(b, p.Description)
	b = appendString(b, p.Homepage)

	lic, err := hdr.License.indexOf(p.License)
	if err != nil {
		return nil, err
	}
	b = binary.AppendUvarint(b, lic)

	if b, err = appendWords(b, hdr.Provide, strings.Fields(p.Provide)); err != nil {
		return nil, err
	}
	if b, err = appendWords(b, hdr.IUSE, p.IUSE); err != nil {
		return nil, err
	}

	b = binary.AppendUvarint(b, uint64(len(p.Versions)))
	for _, v := range p.Versions {
		if b, err = appendVersion(b, hdr, v); err != nil {
			return nil, fmt.Errorf("%s-%s: %w", p.FullName(), v.String(), err)
		}
	}
	return b, nil
}

func appendVersion(b []byte, hdr *Header, v *pkg.Version) ([]byte, error) {
	b = binary.AppendUvarint(b, uint64(v.Len()))
	for i := 0; i < v.Len(); i++ {
		part := v.Part(i)
		tag := byte(part.Kind)
		if part.Content == "" {
			b = append(b, tag)
			continue
		}
		b = append(b, tag|partHasContent)
		b = appendString(b, part.Content)
	}

	slot, err := hdr.Slot.indexOf(v.Slot)
	if err != nil {
		return nil, err
	}
	b = binary.AppendUvarint(b, slot)
	b = appendString(b, v.Keywords)

	if b, err = appendWords(b, hdr.IUSE, v.IUSE); err != nil {
		return nil, err
	}

	b = binary.AppendUvarint(b, uint64(v.Restrict))
	b = binary.AppendUvarint(b, uint64(v.Properties))
	b = binary.AppendUvarint(b, uint64(v.Overlay))
	return b, nil
}

func appendWords(b []byte, t *StringHash, words []string) ([]byte, error) {
	b = binary.AppendUvarint(b, uint64(len(words)))
	for _, w := range words {
		i, err := t.indexOf(w)
		if err != nil {
			return nil, err
		}
		b = binary.AppendUvarint(b, i)
	}
	return b, nil
}

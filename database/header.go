package database

import (
	"fmt"
	"strings"

	"go-eix/pkg"
)

// Header is the global part of a database file: format version, overlay
// list, category count and the interned string tables. The writer fills
// it with Collect, the reader decodes it before any package.
type Header struct {
	FormatVersion uint64

	// Size is the number of categories
	Size int

	// Overlays are indexed by pkg.Version.Overlay; index 0 is the main
	// repository
	Overlays []pkg.Overlay

	License *StringHash
	IUSE    *StringHash
	Slot    *StringHash
	Provide *StringHash
}

// NewHeader returns an empty header for the current format version.
func NewHeader() *Header {
	return &Header{
		FormatVersion: FormatVersion,
		License:       NewStringHash(TableLicense, nil),
		IUSE:          NewStringHash(TableIUSE, nil),
		Slot:          NewStringHash(TableSlot, nil),
		Provide:       NewStringHash(TableProvide, nil),
	}
}

// tables returns the interned tables in file order.
func (h *Header) tables() []*StringHash {
	return []*StringHash{h.License, h.IUSE, h.Slot, h.Provide}
}

// OverlayLabel returns the label of overlay i, or its path when the label
// is empty.
func (h *Header) OverlayLabel(i int) string {
	if i < 0 || i >= len(h.Overlays) {
		return ""
	}
	if h.Overlays[i].Label != "" {
		return h.Overlays[i].Label
	}
	return h.Overlays[i].Path
}

// Collect walks tree once, rebuilding the string tables and copying the
// overlay list. Size counts the categories that hold packages; empty
// categories are not written. Every package's versions are sorted
// ascending so the reader never has to. It fails with ErrOverlayRange
// when a version names an overlay the tree does not have.
func (h *Header) Collect(tree *pkg.Tree) error {
	var licenses, iuse, slots, provides []string

	size := 0
	for _, c := range tree.Categories() {
		if c.Len() > 0 {
			size++
		}
		for _, p := range c.Packages() {
			licenses = append(licenses, p.License)
			provides = append(provides, strings.Fields(p.Provide)...)
			iuse = append(iuse, p.IUSE...)

			p.SortVersions()
			for _, v := range p.Versions {
				if v.Overlay < 0 || v.Overlay >= len(tree.Overlays) {
					return fmt.Errorf("%w: %s-%s overlay %d, %d known",
						ErrOverlayRange, p.FullName(), v.String(), v.Overlay, len(tree.Overlays))
				}
				slots = append(slots, v.Slot)
				iuse = append(iuse, v.IUSE...)
			}
		}
	}

	h.FormatVersion = FormatVersion
	h.Size = size
	h.Overlays = append([]pkg.Overlay(nil), tree.Overlays...)
	h.License = NewStringHash(TableLicense, licenses)
	h.IUSE = NewStringHash(TableIUSE, iuse)
	h.Slot = NewStringHash(TableSlot, slots)
	h.Provide = NewStringHash(TableProvide, provides)
	return nil
}

func (h *Header) encode(e *encoder) {
	e.write([]byte(Magic))
	e.uvarint(h.FormatVersion)

	e.uvarint(uint64(len(h.Overlays)))
	for _, o := range h.Overlays {
		e.str(o.Path)
		e.str(o.Label)
	}

	for _, t := range h.tables() {
		e.uvarint(uint64(len(t.slots)))
		for i, s := range t.slots {
			if !t.used[i] {
				e.uvarint(0)
				continue
			}
			e.uvarint(uint64(len(s)) + 1)
			e.write([]byte(s))
		}
	}

	e.uvarint(uint64(h.Size))
}

// decodeHeader reads everything up to and including the category count.
// The magic and version are checked first; a mismatch returns a
// *FormatError without reading further.
func decodeHeader(r source) (*Header, error) {
	magic := make([]byte, len(Magic))
	if err := readFull(r, magic); err != nil {
		return nil, &IOError{Op: "read header", Err: err}
	}
	if string(magic) != Magic {
		return nil, &FormatError{Want: FormatVersion, Err: ErrBadMagic}
	}

	ver, err := readUvarint(r)
	if err != nil {
		return nil, &IOError{Op: "read header", Err: err}
	}
	if ver != FormatVersion {
		return nil, &FormatError{Got: ver, Want: FormatVersion, Err: ErrFormatVersion}
	}

	h := &Header{FormatVersion: ver}
	if err := h.decodeBody(r); err != nil {
		if IsCorrupt(err) {
			return nil, err
		}
		return nil, &IOError{Op: "read header", Err: err}
	}
	return h, nil
}

func (h *Header) decodeBody(r source) error {
	n, err := readUvarint(r)
	if err != nil {
		return err
	}
	if n > maxOverlays {
		return fmt.Errorf("%w: %d overlays", ErrCorruptRecord, n)
	}
	h.Overlays = make([]pkg.Overlay, n)
	for i := range h.Overlays {
		if h.Overlays[i].Path, err = readString(r); err != nil {
			return err
		}
		if h.Overlays[i].Label, err = readString(r); err != nil {
			return err
		}
	}

	for _, name := range []string{TableLicense, TableIUSE, TableSlot, TableProvide} {
		t, err := decodeTable(r, name)
		if err != nil {
			return err
		}
		switch name {
		case TableLicense:
			h.License = t
		case TableIUSE:
			h.IUSE = t
		case TableSlot:
			h.Slot = t
		case TableProvide:
			h.Provide = t
		}
	}

	size, err := readUvarint(r)
	if err != nil {
		return err
	}
	h.Size = int(size)
	return nil
}

func decodeTable(r source, name string) (*StringHash, error) {
	n, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	if n > maxTableSlots || n&(n-1) != 0 {
		return nil, fmt.Errorf("%w: %s table with %d slots", ErrCorruptRecord, name, n)
	}

	t := &StringHash{
		name:  name,
		slots: make([]string, n),
		used:  make([]bool, n),
	}
	for i := range t.slots {
		l, err := readUvarint(r)
		if err != nil {
			return nil, err
		}
		if l == 0 {
			continue
		}
		if l-1 > maxStringLen {
			return nil, fmt.Errorf("%w: %s table string length %d", ErrCorruptRecord, name, l-1)
		}
		buf := make([]byte, l-1)
		if err := readFull(r, buf); err != nil {
			return nil, err
		}
		t.slots[i] = string(buf)
		t.used[i] = true
		t.count++
	}
	return t, nil
}

package database

import (
	"fmt"
	"sort"

	"github.com/spaolacci/murmur3"
)

// StringHash interns the distinct strings of one column (licenses, slots,
// ...). Strings live in a power of two slot array filled by linear
// probing; records store the slot index. A table read from disk keeps the
// slot array exactly as written, so the reader never rehashes.
type StringHash struct {
	name  string
	slots []string
	used  []bool
	count int
}

// NewStringHash builds a table holding every distinct string of values.
// Insertion happens in sorted order so equal inputs give equal tables.
func NewStringHash(name string, values []string) *StringHash {
	distinct := make([]string, len(values))
	copy(distinct, values)
	sort.Strings(distinct)
	n := 0
	for i, s := range distinct {
		if i == 0 || s != distinct[n-1] {
			distinct[n] = s
			n++
		}
	}
	distinct = distinct[:n]

	size := 0
	if n > 0 {
		size = roundUp2(2 * n)
	}
	h := &StringHash{
		name:  name,
		slots: make([]string, size),
		used:  make([]bool, size),
	}
	for _, s := range distinct {
		h.insert(s)
	}
	return h
}

// roundUp2 returns the smallest power of two >= n.
func roundUp2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

func hashString(s string) uint32 {
	return murmur3.Sum32([]byte(s))
}

func (h *StringHash) insert(s string) {
	mask := len(h.slots) - 1
	for i := int(hashString(s)) & mask; ; i = (i + 1) & mask {
		if !h.used[i] {
			h.slots[i] = s
			h.used[i] = true
			h.count++
			return
		}
		if h.slots[i] == s {
			return
		}
	}
}

// Name returns the table name.
func (h *StringHash) Name() string {
	return h.name
}

// Index returns the slot holding s.
func (h *StringHash) Index(s string) (int, bool) {
	if len(h.slots) == 0 {
		return 0, false
	}
	mask := len(h.slots) - 1
	i := int(hashString(s)) & mask
	for probes := 0; probes < len(h.slots); probes++ {
		if !h.used[i] {
			return 0, false
		}
		if h.slots[i] == s {
			return i, true
		}
		i = (i + 1) & mask
	}
	return 0, false
}

// Lookup resolves a slot index. Out of range and unused slots return a
// *CorruptIndexError.
func (h *StringHash) Lookup(i uint64) (string, error) {
	if i >= uint64(len(h.slots)) || !h.used[i] {
		return "", &CorruptIndexError{Table: h.name, Index: i, Size: len(h.slots)}
	}
	return h.slots[i], nil
}

// Len returns the number of slots.
func (h *StringHash) Len() int {
	return len(h.slots)
}

// Count returns the number of interned strings.
func (h *StringHash) Count() int {
	return h.count
}

// Values returns the interned strings in slot order.
func (h *StringHash) Values() []string {
	out := make([]string, 0, h.count)
	for i, s := range h.slots {
		if h.used[i] {
			out = append(out, s)
		}
	}
	return out
}

func (h *StringHash) indexOf(s string) (uint64, error) {
	i, ok := h.Index(s)
	if !ok {
		return 0, fmt.Errorf("%w: %q in %s table", ErrNotInterned, s, h.name)
	}
	return uint64(i), nil
}

package version

import (
	"cmp"
	"strings"
)

// Mode selects the ordering used by CompareMode.
type Mode int

const (
	// ModeFull compares every part including the revision.
	ModeFull Mode = iota

	// ModeTilde ignores the revision and everything after it, as the
	// "~cat/pkg-1.0" dependency operator does.
	ModeTilde
)

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal
// to, or after b.
func Compare(a, b Version) int {
	return compareParts(a.parts, b.parts)
}

// CompareTilde is Compare restricted to the parts before the revision.
// Inter-revisions are subordinate to the revision and are dropped too.
func CompareTilde(a, b Version) int {
	return compareParts(tildeCut(a.parts), tildeCut(b.parts))
}

// CompareMode dispatches to Compare or CompareTilde.
func CompareMode(a, b Version, mode Mode) int {
	if mode == ModeTilde {
		return CompareTilde(a, b)
	}
	return Compare(a, b)
}

// Compare is the method form of the package level Compare.
func (v Version) Compare(o Version) int {
	return Compare(v, o)
}

// Less reports whether v sorts before o.
func (v Version) Less(o Version) bool {
	return Compare(v, o) < 0
}

// Equal reports whether v and o compare equal. Note that equal versions
// may still differ textually, e.g. "1.01" and "1.010".
func (v Version) Equal(o Version) bool {
	return Compare(v, o) == 0
}

func compareParts(a, b []Part) int {
	for i := 0; ; i++ {
		switch {
		case i >= len(a) && i >= len(b):
			return 0
		case i >= len(a):
			return exhaustedAgainst(b[i].Kind)
		case i >= len(b):
			return -exhaustedAgainst(a[i].Kind)
		}
		if c := comparePart(a[i], b[i]); c != 0 {
			return c
		}
	}
}

// exhaustedAgainst orders a finished sequence against one that continues
// with a part of kind k. A missing part beats the pre-release suffixes
// ("1.0" > "1.0_rc1") and loses to everything from the revision upwards
// ("1.0" < "1.0-r1", "1.0" < "1.0_p1").
func exhaustedAgainst(k Kind) int {
	if k < KindRevision {
		return 1
	}
	return -1
}

func comparePart(l, r Part) int {
	if l.Kind != r.Kind {
		return cmp.Compare(l.Kind, r.Kind)
	}

	// Equal length digit strings order the same numerically and
	// lexicographically.
	if len(l.Content) == len(r.Content) {
		return strings.Compare(l.Content, r.Content)
	}

	switch l.Kind {
	case KindPrimary:
		// A leading zero makes the component a decimal fraction: only
		// trailing zeros are insignificant.
		if hasLeadingZero(l.Content) || hasLeadingZero(r.Content) {
			return strings.Compare(strings.TrimRight(l.Content, "0"), strings.TrimRight(r.Content, "0"))
		}
		return compareNumeric(l.Content, r.Content)
	case KindGarbage:
		return strings.Compare(l.Content, r.Content)
	default:
		return compareNumeric(l.Content, r.Content)
	}
}

// compareNumeric compares two digit strings by value. Empty strings count
// as zero.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return cmp.Compare(len(a), len(b))
	}
	return strings.Compare(a, b)
}

func hasLeadingZero(s string) bool {
	return s != "" && s[0] == '0'
}

func tildeCut(parts []Part) []Part {
	for i, p := range parts {
		if p.Kind == KindRevision || p.Kind == KindInterRevision {
			return parts[:i]
		}
	}
	return parts
}

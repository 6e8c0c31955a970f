// Package version parses Portage version strings into typed parts and
// orders them.
//
// A version is a sequence of parts: a leading number, dotted primaries,
// an optional letter, "_alpha/_beta/_pre/_rc/_p" suffixes, a "-rN"
// revision and an optional ".N" inter-revision. Text that does not fit
// the grammar ends up in a single trailing garbage part.
package version

import "strings"

// Version is an immutable parsed version. The zero value is an empty
// version that sorts before every non-empty one.
type Version struct {
	parts []Part
	full  string
}

// New builds a Version from already parsed parts. It is used when
// versions are decoded from storage, where the parts were produced by
// Parse on the writing side.
func New(parts []Part) Version {
	p := make([]Part, len(parts))
	copy(p, parts)

	var sb strings.Builder
	for _, part := range p {
		sb.WriteString(part.String())
	}
	return Version{parts: p, full: sb.String()}
}

// MustParse parses s and panics if it is not a clean version.
// It is intended for tests and static tables.
func MustParse(s string) Version {
	v, _, err := Parse(s, false)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version exactly as it was parsed.
func (v Version) String() string {
	return v.full
}

// Parts returns a copy of the parsed parts.
func (v Version) Parts() []Part {
	p := make([]Part, len(v.parts))
	copy(p, v.parts)
	return p
}

// Len returns the number of parts.
func (v Version) Len() int {
	return len(v.parts)
}

// Part returns the i-th part.
func (v Version) Part(i int) Part {
	return v.parts[i]
}

// IsZero reports whether v holds no parts.
func (v Version) IsZero() bool {
	return len(v.parts) == 0
}

// HasGarbage reports whether v ends in an unparsed garbage part.
func (v Version) HasGarbage() bool {
	return len(v.parts) > 0 && v.parts[len(v.parts)-1].Kind == KindGarbage
}

// Revision returns the revision number, or "" when there is none.
func (v Version) Revision() string {
	for _, p := range v.parts {
		if p.Kind == KindRevision {
			return p.Content
		}
	}
	return ""
}

// Base returns the version without its revision and inter-revision,
// i.e. the part that tilde comparison looks at.
func (v Version) Base() string {
	var sb strings.Builder
	for _, p := range tildeCut(v.parts) {
		sb.WriteString(p.String())
	}
	return sb.String()
}

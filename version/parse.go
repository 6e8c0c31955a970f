package version

import "strings"

// Result is the outcome of a parse.
type Result int

const (
	// ResultOk means the whole string matched the grammar.
	ResultOk Result = iota

	// ResultGarbage means trailing text was kept as a garbage part
	// because the parser accepts garbage.
	ResultGarbage

	// ResultError means the string is unusable; the returned Version
	// still holds every part recognized before the failure.
	ResultError
)

// String returns the name of the result
func (r Result) String() string {
	switch r {
	case ResultOk:
		return "ok"
	case ResultGarbage:
		return "garbage accepted"
	case ResultError:
		return "error"
	default:
		return "unknown"
	}
}

// Parser carries the version parse policy. It is built once from the
// configuration and passed to every caller that parses versions.
type Parser struct {
	// AcceptGarbage keeps versions with unparsed trailing text instead
	// of rejecting them.
	AcceptGarbage bool
}

// Parse parses raw with the given garbage policy. See Parser.Parse.
func Parse(raw string, acceptGarbage bool) (Version, Result, error) {
	return Parser{AcceptGarbage: acceptGarbage}.Parse(raw)
}

// Parse scans raw left to right without backtracking.
//
// It never panics. On ResultError the returned error is a *ParseError and
// the Version holds the parts recognized so far followed by a garbage part
// covering the rest of the input, so that slightly broken versions can
// still be sorted. On ResultGarbage the error is nil.
func (p Parser) Parse(raw string) (Version, Result, error) {
	if raw == "" || !isDigit(raw[0]) {
		v := New([]Part{{Kind: KindGarbage, Content: raw}})
		return v, ResultError, &ParseError{
			Input:  raw,
			Reason: "version must start with a digit",
			Err:    ErrUnparseable,
		}
	}

	sc := scanner{s: raw}
	sc.emit(KindFirst, sc.digits())

	for sc.at('.') {
		start := sc.pos
		sc.pos++
		d := sc.digits()
		if d == "" {
			return sc.fail(start, "'.' not followed by digits")
		}
		sc.emit(KindPrimary, d)
	}

	if sc.pos < len(raw) && isLetter(raw[sc.pos]) {
		sc.emit(KindCharacter, raw[sc.pos:sc.pos+1])
		sc.pos++
	}

	for sc.at('_') {
		start := sc.pos
		kind, n := matchSuffix(raw[sc.pos+1:])
		if n == 0 {
			return sc.fail(start, "unknown suffix")
		}
		sc.pos += 1 + n
		sc.emit(kind, sc.digits())
	}

	if strings.HasPrefix(raw[sc.pos:], "-r") {
		start := sc.pos
		sc.pos += 2
		d := sc.digits()
		if d == "" {
			return sc.fail(start, "'-r' not followed by digits")
		}
		sc.emit(KindRevision, d)

		if sc.at('.') {
			start = sc.pos
			sc.pos++
			d = sc.digits()
			if d == "" {
				return sc.fail(start, "'.' after revision not followed by digits")
			}
			sc.emit(KindInterRevision, d)
		}
	}

	if sc.pos < len(raw) {
		offset := sc.pos
		sc.emit(KindGarbage, raw[sc.pos:])
		v := New(sc.parts)
		if p.AcceptGarbage {
			return v, ResultGarbage, nil
		}
		return v, ResultError, &ParseError{
			Input:  raw,
			Offset: offset,
			Reason: "unexpected trailing text",
			Err:    ErrTrailingGarbage,
		}
	}

	return New(sc.parts), ResultOk, nil
}

type scanner struct {
	s     string
	pos   int
	parts []Part
}

func (sc *scanner) at(c byte) bool {
	return sc.pos < len(sc.s) && sc.s[sc.pos] == c
}

// digits consumes a maximal, possibly empty, run of ASCII digits.
func (sc *scanner) digits() string {
	start := sc.pos
	for sc.pos < len(sc.s) && isDigit(sc.s[sc.pos]) {
		sc.pos++
	}
	return sc.s[start:sc.pos]
}

func (sc *scanner) emit(kind Kind, content string) {
	sc.parts = append(sc.parts, Part{Kind: kind, Content: content})
}

// fail turns everything from offset on into garbage and reports a
// malformed component.
func (sc *scanner) fail(offset int, reason string) (Version, Result, error) {
	sc.emit(KindGarbage, sc.s[offset:])
	return New(sc.parts), ResultError, &ParseError{
		Input:  sc.s,
		Offset: offset,
		Reason: reason,
		Err:    ErrMalformed,
	}
}

// matchSuffix matches a suffix keyword at the start of s and returns its
// kind and length, or length 0 when nothing matches.
func matchSuffix(s string) (Kind, int) {
	for _, sfx := range suffixes {
		if strings.HasPrefix(s, sfx.word) {
			return sfx.kind, len(sfx.word)
		}
	}
	return KindGarbage, 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

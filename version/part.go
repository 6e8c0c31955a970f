package version

import "fmt"

// Kind classifies one lexical unit of a version string.
//
// The declaration order is the comparison order used by Compare: a part of
// a lower Kind sorts before a part of a higher Kind. Values are also written
// to the binary database, so they must never be renumbered.
type Kind uint8

const (
	KindGarbage       Kind = iota // unparsed trailing text
	KindAlpha                     // _alpha
	KindBeta                      // _beta
	KindPre                       // _pre
	KindRc                        // _rc
	KindRevision                  // -r
	KindInterRevision             // .N after a revision (prefix sub-revision)
	KindPatch                     // _p
	KindCharacter                 // single letter after the last primary
	KindPrimary                   // .N
	KindFirst                     // leading number
)

// MaxKind is the highest valid Kind.
const MaxKind = KindFirst

var kindNames = [...]string{
	KindGarbage:       "garbage",
	KindAlpha:         "alpha",
	KindBeta:          "beta",
	KindPre:           "pre",
	KindRc:            "rc",
	KindRevision:      "revision",
	KindInterRevision: "inter-revision",
	KindPatch:         "patch",
	KindCharacter:     "character",
	KindPrimary:       "primary",
	KindFirst:         "first",
}

// String returns the name of the kind
func (k Kind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k <= MaxKind
}

// Part is one lexical unit of a parsed version. Content holds the digits
// (or the letter, or the raw garbage text) without the separator that
// introduced the part.
type Part struct {
	Kind    Kind
	Content string
}

// String renders the part exactly as it appears in a version string.
func (p Part) String() string {
	switch p.Kind {
	case KindPrimary, KindInterRevision:
		return "." + p.Content
	case KindAlpha:
		return "_alpha" + p.Content
	case KindBeta:
		return "_beta" + p.Content
	case KindPre:
		return "_pre" + p.Content
	case KindRc:
		return "_rc" + p.Content
	case KindPatch:
		return "_p" + p.Content
	case KindRevision:
		return "-r" + p.Content
	default:
		return p.Content
	}
}

// suffixes lists the "_word" suffix keywords in match priority order.
// "p" must stay last so that "_pre" is never read as "_p" + "re".
var suffixes = []struct {
	word string
	kind Kind
}{
	{"alpha", KindAlpha},
	{"beta", KindBeta},
	{"pre", KindPre},
	{"rc", KindRc},
	{"p", KindPatch},
}

package pkg

import "strings"

// Restrict is the bitset form of a version's RESTRICT tokens.
type Restrict uint32

// RESTRICT tokens
const (
	RestrictBinchecks      Restrict = 1 << iota // binchecks
	RestrictStrip                               // strip
	RestrictTest                                // test
	RestrictUserpriv                            // userpriv
	RestrictInstallsources                      // installsources
	RestrictFetch                               // fetch
	RestrictMirror                              // mirror
	RestrictPrimaryuri                          // primaryuri
	RestrictBindist                             // bindist
	RestrictParallel                            // parallel
)

// Properties is the bitset form of a version's PROPERTIES tokens.
type Properties uint32

// PROPERTIES tokens
const (
	PropertiesInteractive Properties = 1 << iota // interactive
	PropertiesLive                               // live
	PropertiesVirtual                            // virtual
	PropertiesSet                                // set
)

var restrictNames = []string{
	"binchecks", "strip", "test", "userpriv", "installsources",
	"fetch", "mirror", "primaryuri", "bindist", "parallel",
}

var propertiesNames = []string{
	"interactive", "live", "virtual", "set",
}

// ParseRestrict converts a space separated RESTRICT string. Unknown tokens
// and USE-conditional syntax are ignored.
func ParseRestrict(s string) Restrict {
	return Restrict(parseTokens(s, restrictNames))
}

// Has reports whether all bits of f are set.
func (r Restrict) Has(f Restrict) bool {
	return r&f == f
}

// String renders the set tokens in bit order.
func (r Restrict) String() string {
	return formatTokens(uint32(r), restrictNames)
}

// ParseProperties converts a space separated PROPERTIES string.
func ParseProperties(s string) Properties {
	return Properties(parseTokens(s, propertiesNames))
}

// Has reports whether all bits of f are set.
func (p Properties) Has(f Properties) bool {
	return p&f == f
}

// String renders the set tokens in bit order.
func (p Properties) String() string {
	return formatTokens(uint32(p), propertiesNames)
}

func parseTokens(s string, names []string) uint32 {
	var bits uint32
	for _, tok := range strings.Fields(s) {
		for i, name := range names {
			if tok == name {
				bits |= 1 << i
				break
			}
		}
	}
	return bits
}

func formatTokens(bits uint32, names []string) string {
	var out []string
	for i, name := range names {
		if bits&(1<<i) != 0 {
			out = append(out, name)
		}
	}
	return strings.Join(out, " ")
}

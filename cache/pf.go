package cache

import (
	"strings"

	"go-eix/version"
)

var splitParser = version.Parser{AcceptGarbage: true}

// SplitPF splits "name-version" at the first hyphen whose remainder is a
// clean version. Failing that, the first remainder that is a version with
// trailing garbage is used, so that the caller's parse policy decides
// whether such an entry is kept.
func SplitPF(pf string) (name, ver string, ok bool) {
	fallback := -1
	for i := strings.IndexByte(pf, '-'); i >= 0; {
		if i > 0 && i < len(pf)-1 {
			_, res, _ := splitParser.Parse(pf[i+1:])
			switch res {
			case version.ResultOk:
				return pf[:i], pf[i+1:], true
			case version.ResultGarbage:
				if fallback < 0 {
					fallback = i
				}
			}
		}
		next := strings.IndexByte(pf[i+1:], '-')
		if next < 0 {
			break
		}
		i += next + 1
	}
	if fallback >= 0 {
		return pf[:fallback], pf[fallback+1:], true
	}
	return "", "", false
}

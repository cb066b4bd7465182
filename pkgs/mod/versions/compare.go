package versions

import (
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Compare orders two distribution versions, returning -1, 0 or 1.
// Semantic versions are compared with semver rules. Anything else, such
// as four-part versions like "5.1.0.12", is compared field by field.
func Compare(a, b string) int {
	if sa, sb := Semver(a), Semver(b); sa != "" && sb != "" {
		return semver.Compare(sa, sb)
	}
	return compareRelease(a, b)
}

// compareRelease compares dot-separated release fields, then pre-release
// suffixes introduced by '-' or '~'. A version with a suffix sorts before
// the same release without one.
func compareRelease(a, b string) int {
	ra, pa, hasPa := splitPre(a)
	rb, pb, hasPb := splitPre(b)
	if c := compareFields(ra, rb); c != 0 {
		return c
	}
	switch {
	case hasPa && !hasPb:
		return -1
	case !hasPa && hasPb:
		return 1
	}
	return compareFields(pa, pb)
}

func splitPre(v string) (release, pre string, ok bool) {
	if i := strings.IndexAny(v, "-~"); i >= 0 {
		return v[:i], v[i+1:], true
	}
	return v, "", false
}

// compareFields compares dot-separated fields. Numeric fields compare by
// value and sort before alphanumeric ones; a missing field sorts first.
func compareFields(a, b string) int {
	fa, fb := fields(a), fields(b)
	for i := 0; i < len(fa) || i < len(fb); i++ {
		if i >= len(fa) {
			return -1
		}
		if i >= len(fb) {
			return 1
		}
		if c := compareField(fa[i], fb[i]); c != 0 {
			return c
		}
	}
	return 0
}

func fields(v string) []string {
	if v == "" {
		return nil
	}
	return strings.Split(v, ".")
}

func compareField(a, b string) int {
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}

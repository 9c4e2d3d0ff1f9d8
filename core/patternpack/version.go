// Package patternpack loads versioned, signed bundles of supplementary
// classification lexicon and pattern overrides - the mechanism a studio
// uses to ship its own character-name gazetteer or house-style regexes
// without a binary rebuild. Bundles are verified by semver selection,
// SHA-256 digest, and Ed25519 trust level; a pattern pack is read from a
// local directory or an already-fetched byte slice, never pulled over the
// network by this
// package itself.
package patternpack

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a parsed major.minor.patch version with an optional
// pre-release suffix.
type Version struct {
	Major int
	Minor int
	Patch int
	Pre   string
}

// ParseVersion parses a version string like "1.2.3" or "1.2.3-beta.1".
func ParseVersion(s string) (Version, error) {
	s = strings.TrimPrefix(s, "v")
	if s == "" {
		return Version{}, fmt.Errorf("empty version string")
	}

	var pre string
	if idx := strings.IndexByte(s, '-'); idx >= 0 {
		pre = s[idx+1:]
		s = s[:idx]
		if pre == "" {
			return Version{}, fmt.Errorf("empty pre-release suffix")
		}
	}

	parts := strings.Split(s, ".")
	if len(parts) < 1 || len(parts) > 3 {
		return Version{}, fmt.Errorf("invalid version %q: expected major[.minor[.patch]]", s)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version component %q: %w", p, err)
		}
		if n < 0 {
			return Version{}, fmt.Errorf("negative version component %d", n)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2], Pre: pre}, nil
}

// String returns the canonical version string.
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Pre != "" {
		s += "-" + v.Pre
	}
	return s
}

// Compare returns -1 if v < other, 0 if equal, 1 if v > other. A
// pre-release has lower precedence than a stable release of the same
// major.minor.patch.
func (v Version) Compare(other Version) int {
	if c := cmpInt(v.Major, other.Major); c != 0 {
		return c
	}
	if c := cmpInt(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := cmpInt(v.Patch, other.Patch); c != 0 {
		return c
	}
	return comparePre(v.Pre, other.Pre)
}

// LessThan returns true if v < other.
func (v Version) LessThan(other Version) bool { return v.Compare(other) < 0 }

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func comparePre(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	case a < b:
		return -1
	default:
		return 1
	}
}

// Newest returns the highest version among bundles compatible with
// constraintMajor (0 means any major is accepted), or false if none
// qualify.
func Newest(bundles []Bundle, constraintMajor int) (Bundle, bool) {
	var best Bundle
	found := false
	for _, b := range bundles {
		if constraintMajor != 0 && b.Manifest.Version.Major != constraintMajor {
			continue
		}
		if !found || best.Manifest.Version.LessThan(b.Manifest.Version) {
			best, found = b, true
		}
	}
	return best, found
}

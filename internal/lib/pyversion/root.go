package pyversion

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is an interpreter version reduced to the two components the
// provisioning flow cares about. Patch level never influences any
// decision, so it is dropped at parse time.
type Version struct {
	Major int
	Minor int
}

// Zero is the version assigned when a probe fails: it compares below
// every real requirement.
var Zero = Version{}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// IsZero reports whether v carries no probed version at all.
func (v Version) IsZero() bool {
	return v == Zero
}

// Meets reports whether v satisfies required, comparing (major, minor)
// lexicographically: major decides first, minor breaks ties.
func (v Version) Meets(required Version) bool {
	if v.Major != required.Major {
		return v.Major > required.Major
	}
	return v.Minor >= required.Minor
}

// Parse extracts a Version from interpreter --version output such as
// "Python 3.13.2" or a bare "3.13". Trailing components beyond minor
// are ignored.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "Python ")
	if s == "" {
		return Zero, fmt.Errorf("empty version string")
	}
	parts := strings.SplitN(s, ".", 3)
	if len(parts) < 2 {
		return Zero, fmt.Errorf("invalid version string %q", s)
	}
	major, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Zero, fmt.Errorf("invalid major version in %q: %w", s, err)
	}
	minor, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Zero, fmt.Errorf("invalid minor version in %q: %w", s, err)
	}
	return Version{Major: major, Minor: minor}, nil
}

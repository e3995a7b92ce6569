package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a parsed "<major>.<minor>" object schema version.
type Version struct {
	Major int
	Minor int
}

func ParseVersion(value string) (Version, error) {
	trimmed := strings.TrimSpace(value)
	parts := strings.Split(trimmed, ".")
	if len(parts) != 2 {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersionString, value)
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersionString, value)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersionString, value)
	}
	if major < 0 || minor < 0 {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersionString, value)
	}
	return Version{Major: major, Minor: minor}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		if v.Major < other.Major {
			return -1
		}
		return 1
	}
	if v.Minor != other.Minor {
		if v.Minor < other.Minor {
			return -1
		}
		return 1
	}
	return 0
}

// IsCompatible reports whether a provider serving the available version can
// satisfy a request for the requested version. Minor evolution is additive
// only: equal major, requested minor less than or equal to available minor.
// Malformed version strings fail distinctly from a plain mismatch.
func IsCompatible(requested string, available string) (bool, error) {
	req, err := ParseVersion(requested)
	if err != nil {
		return false, err
	}
	avail, err := ParseVersion(available)
	if err != nil {
		return false, err
	}
	if req.Major != avail.Major {
		return false, nil
	}
	if req.Minor > avail.Minor {
		return false, nil
	}
	return true, nil
}

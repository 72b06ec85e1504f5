package version

import (
	"fmt"
	"strings"
)

// Range represents a range of acceptable versions.
//
// Syntax:
//
//	[1.0, 2.0]   - 1.0 ≤ x ≤ 2.0 (inclusive)
//	(1.0, 2.0)   - 1.0 < x < 2.0 (exclusive)
//	[1.0, 2.0)   - 1.0 ≤ x < 2.0 (mixed)
//	[1.0, )      - x ≥ 1.0 (open upper)
//	(, 2.0]      - x ≤ 2.0 (open lower)
//	1.0          - x ≥ 1.0 (implicit minimum)
type Range struct {
	MinVersion   *NuGetVersion
	MaxVersion   *NuGetVersion
	MinInclusive bool
	MaxInclusive bool
}

// ParseVersionRange parses a version range string.
func ParseVersionRange(s string) (*Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("version range cannot be empty")
	}

	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "(") {
		return parseRangeSyntax(s)
	}

	// A bare version means >= that version.
	v, err := Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid version range: %w", err)
	}

	return &Range{
		MinVersion:   v,
		MinInclusive: true,
	}, nil
}

// MustParseRange parses a version range string and panics on error.
func MustParseRange(s string) *Range {
	r, err := ParseVersionRange(s)
	if err != nil {
		panic(err)
	}
	return r
}

func parseRangeSyntax(s string) (*Range, error) {
	if !strings.HasSuffix(s, "]") && !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("range must end with ] or )")
	}

	minInclusive := strings.HasPrefix(s, "[")
	maxInclusive := strings.HasSuffix(s, "]")

	s = s[1 : len(s)-1]
	parts := strings.Split(s, ",")

	var minPart, maxPart string
	switch len(parts) {
	case 1:
		// Exact version syntax [1.0.0] means [1.0.0, 1.0.0].
		minPart = strings.TrimSpace(parts[0])
		maxPart = minPart
	case 2:
		minPart = strings.TrimSpace(parts[0])
		maxPart = strings.TrimSpace(parts[1])
	default:
		return nil, fmt.Errorf("range must have one or two parts separated by comma")
	}

	var minVersion, maxVersion *NuGetVersion
	var err error

	if minPart != "" {
		minVersion, err = Parse(minPart)
		if err != nil {
			return nil, fmt.Errorf("invalid min version: %w", err)
		}
	}
	if maxPart != "" {
		maxVersion, err = Parse(maxPart)
		if err != nil {
			return nil, fmt.Errorf("invalid max version: %w", err)
		}
	}

	return &Range{
		MinVersion:   minVersion,
		MaxVersion:   maxVersion,
		MinInclusive: minInclusive,
		MaxInclusive: maxInclusive,
	}, nil
}

// Satisfies returns true if the version satisfies this range.
func (r *Range) Satisfies(version *NuGetVersion) bool {
	if version == nil {
		return false
	}

	if r.MinVersion != nil {
		cmp := version.Compare(r.MinVersion)
		if r.MinInclusive && cmp < 0 {
			return false
		}
		if !r.MinInclusive && cmp <= 0 {
			return false
		}
	}

	if r.MaxVersion != nil {
		cmp := version.Compare(r.MaxVersion)
		if r.MaxInclusive && cmp > 0 {
			return false
		}
		if !r.MaxInclusive && cmp >= 0 {
			return false
		}
	}

	return true
}

// FindBestMatch finds the highest version that satisfies this range.
// Returns nil if no version satisfies the range.
func (r *Range) FindBestMatch(versions []*NuGetVersion) *NuGetVersion {
	var best *NuGetVersion
	for _, v := range versions {
		if r.Satisfies(v) {
			if best == nil || v.GreaterThan(best) {
				best = v
			}
		}
	}
	return best
}

// String returns the string representation of the range.
func (r *Range) String() string {
	minBracket := "("
	if r.MinInclusive {
		minBracket = "["
	}
	maxBracket := ")"
	if r.MaxInclusive {
		maxBracket = "]"
	}

	minStr := ""
	if r.MinVersion != nil {
		minStr = r.MinVersion.String()
	}
	maxStr := ""
	if r.MaxVersion != nil {
		maxStr = r.MaxVersion.String()
	}

	return fmt.Sprintf("%s%s, %s%s", minBracket, minStr, maxStr, maxBracket)
}

// Package version provides NuGet package version parsing and comparison.
//
// It supports NuGet SemVer 2.0 format and legacy 4-part versions, plus the
// loose dotted-string comparison used by the compatibility rule engine.
//
// Example:
//
//	v, err := version.Parse("13.0.3")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(v.Major, v.Minor, v.Patch) // 13 0 3
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// NuGetVersion represents a NuGet package version.
//
// Both SemVer 2.0 (Major.Minor.Patch[-Prerelease][+Metadata]) and legacy
// 4-part versions (Major.Minor.Build.Revision) are supported.
type NuGetVersion struct {
	Major int
	Minor int

	// Patch is the third component (Build for legacy versions).
	Patch int

	// Revision is only set for legacy 4-part versions.
	Revision int

	// IsLegacyVersion indicates a 4-part version, not SemVer 2.0.
	IsLegacyVersion bool

	// ReleaseLabels contains prerelease labels (e.g., ["beta", "1"]).
	ReleaseLabels []string

	// Metadata is build metadata; ignored in comparison per SemVer 2.0.
	Metadata string

	originalString string
}

// Parse parses a version string into a NuGetVersion.
//
// Returns an error if the version string is invalid.
func Parse(s string) (*NuGetVersion, error) {
	if s == "" {
		return nil, fmt.Errorf("version string cannot be empty")
	}

	v := &NuGetVersion{
		originalString: s,
	}

	// Split on '+' to extract metadata
	parts := strings.SplitN(s, "+", 2)
	versionPart := parts[0]
	if len(parts) == 2 {
		v.Metadata = parts[1]
	}

	// Split on '-' to extract prerelease labels
	parts = strings.SplitN(versionPart, "-", 2)
	numberPart := parts[0]
	if len(parts) == 2 && parts[1] != "" {
		v.ReleaseLabels = strings.Split(parts[1], ".")
	}

	numbers := strings.Split(numberPart, ".")
	if len(numbers) < 1 || len(numbers) > 4 {
		return nil, fmt.Errorf("invalid version format: %q", s)
	}

	fields := []*int{&v.Major, &v.Minor, &v.Patch, &v.Revision}
	for i, num := range numbers {
		n, err := strconv.Atoi(num)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid version component: %q", num)
		}
		*fields[i] = n
	}

	if len(numbers) == 4 {
		v.IsLegacyVersion = true
	}

	return v, nil
}

// MustParse parses a version string and panics on error.
func MustParse(s string) *NuGetVersion {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the string representation of the version.
func (v *NuGetVersion) String() string {
	if v.originalString != "" {
		return v.originalString
	}

	var sb strings.Builder
	if v.IsLegacyVersion {
		fmt.Fprintf(&sb, "%d.%d.%d.%d", v.Major, v.Minor, v.Patch, v.Revision)
	} else {
		fmt.Fprintf(&sb, "%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	if len(v.ReleaseLabels) > 0 {
		sb.WriteString("-")
		sb.WriteString(strings.Join(v.ReleaseLabels, "."))
	}
	if v.Metadata != "" {
		sb.WriteString("+")
		sb.WriteString(v.Metadata)
	}
	return sb.String()
}

// Compare compares two versions.
// Returns -1 if v < other, 0 if equal, 1 if v > other.
// Build metadata is ignored per SemVer 2.0.
func (v *NuGetVersion) Compare(other *NuGetVersion) int {
	if c := compareInt(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareInt(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := compareInt(v.Patch, other.Patch); c != 0 {
		return c
	}
	if c := compareInt(v.Revision, other.Revision); c != 0 {
		return c
	}
	return compareReleaseLabels(v.ReleaseLabels, other.ReleaseLabels)
}

// GreaterThan returns true if v > other.
func (v *NuGetVersion) GreaterThan(other *NuGetVersion) bool {
	return v.Compare(other) > 0
}

// LessThan returns true if v < other.
func (v *NuGetVersion) LessThan(other *NuGetVersion) bool {
	return v.Compare(other) < 0
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareReleaseLabels compares prerelease labels per SemVer 2.0:
// a release (no labels) is higher than any prerelease, numeric labels
// compare numerically and sort below alphanumeric ones.
func compareReleaseLabels(a, b []string) int {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	if len(a) == 0 {
		return 1
	}
	if len(b) == 0 {
		return -1
	}

	for i := 0; i < len(a) && i < len(b); i++ {
		an, aNum := parseNumericLabel(a[i])
		bn, bNum := parseNumericLabel(b[i])

		switch {
		case aNum && bNum:
			if c := compareInt(an, bn); c != 0 {
				return c
			}
		case aNum:
			return -1
		case bNum:
			return 1
		default:
			if c := strings.Compare(strings.ToLower(a[i]), strings.ToLower(b[i])); c != 0 {
				return c
			}
		}
	}

	return compareInt(len(a), len(b))
}

func parseNumericLabel(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

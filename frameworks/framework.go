// Package frameworks provides Target Framework Moniker (TFM) parsing and
// fuzzy matching for the compatibility engine.
//
// A TFM decomposes into a framework family and a numeric version:
//
//	fw, err := frameworks.Parse("net8.0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(fw.Family, fw.Version) // net 8
package frameworks

import (
	"fmt"
	"strconv"
	"strings"
)

// Family identifies a framework family.
type Family string

const (
	// FamilyNet is modern .NET (net5.0 and later).
	FamilyNet Family = "net"

	// FamilyNetCoreApp is .NET Core (netcoreapp1.0 - netcoreapp3.1).
	FamilyNetCoreApp Family = "netcoreapp"

	// FamilyNetFramework is classic .NET Framework (net11 - net481).
	FamilyNetFramework Family = "netframework"

	// FamilyNetStandard is .NET Standard (netstandard1.0 - netstandard2.1).
	FamilyNetStandard Family = "netstandard"

	// FamilyUnknown is anything the parser does not recognize.
	FamilyUnknown Family = "unknown"
)

// Framework is a parsed Target Framework Moniker.
type Framework struct {
	// Family is the framework family.
	Family Family

	// Version is the numeric framework version (8.0 for net8.0, 4.8 for net48).
	Version float64

	// HasVersion indicates a numeric version was found in the moniker.
	HasVersion bool

	originalString string
}

// String returns the original moniker string.
func (fw Framework) String() string {
	if fw.originalString != "" {
		return fw.originalString
	}
	if !fw.HasVersion {
		return string(fw.Family)
	}
	return fmt.Sprintf("%s%.1f", fw.Family, fw.Version)
}

// Parse parses a TFM string into a Framework.
//
// Supported forms:
//
//	net8.0           - modern .NET
//	net48            - .NET Framework (compact, no dot)
//	netcoreapp3.1    - .NET Core
//	netstandard2.0   - .NET Standard
//	net6.0-windows   - platform suffix is ignored for family purposes
//
// Monikers with a "net" prefix split on the version: a dotted version of 5.0
// or higher is modern .NET, anything else is .NET Framework. Unrecognized
// monikers parse to FamilyUnknown with no version rather than failing; the
// engine treats those as unmatchable by family.
func Parse(tfm string) (Framework, error) {
	raw := strings.TrimSpace(tfm)
	if raw == "" {
		return Framework{}, fmt.Errorf("framework string cannot be empty")
	}

	fw := Framework{originalString: raw}
	s := strings.ToLower(raw)

	// Strip platform suffix (net6.0-windows → net6.0).
	if idx := strings.Index(s, "-"); idx > 0 {
		s = s[:idx]
	}

	// Longest prefixes first so "netstandard" is not eaten by "net".
	switch {
	case strings.HasPrefix(s, "netstandard"):
		fw.Family = FamilyNetStandard
		fw.Version, fw.HasVersion = parseNumericVersion(strings.TrimPrefix(s, "netstandard"))
	case strings.HasPrefix(s, "netcoreapp"):
		fw.Family = FamilyNetCoreApp
		fw.Version, fw.HasVersion = parseNumericVersion(strings.TrimPrefix(s, "netcoreapp"))
	case strings.HasPrefix(s, "netframework"):
		fw.Family = FamilyNetFramework
		fw.Version, fw.HasVersion = parseNumericVersion(strings.TrimPrefix(s, "netframework"))
	case strings.HasPrefix(s, "net"):
		versionPart := strings.TrimPrefix(s, "net")
		if strings.Contains(versionPart, ".") {
			// Dotted version: net5.0+ is modern .NET, net4.x and below
			// is spelled compact so a dotted 4.x is still treated as
			// modern-form input.
			fw.Version, fw.HasVersion = parseNumericVersion(versionPart)
			if fw.HasVersion && fw.Version >= 5 {
				fw.Family = FamilyNet
			} else {
				fw.Family = FamilyNetFramework
			}
		} else {
			// Compact version: net48 → 4.8, net472 → 4.72.
			fw.Version, fw.HasVersion = parseCompactVersion(versionPart)
			if !fw.HasVersion {
				fw.Family = FamilyUnknown
				return fw, nil
			}
			fw.Family = FamilyNetFramework
		}
	default:
		fw.Family = FamilyUnknown
	}

	return fw, nil
}

// MustParse parses a TFM and panics on error.
func MustParse(tfm string) Framework {
	fw, err := Parse(tfm)
	if err != nil {
		panic(err)
	}
	return fw
}

// Match reports whether two monikers are close enough to count as the same
// target. Monikers match when they are equal case-insensitively, or when
// they share a family and their numeric versions differ by less than 1.0.
//
// The tolerance absorbs minor-version churn (net6.0 vs a hypothetical
// net6.5) and is deliberately not a SemVer check. Different families never
// match regardless of version.
func Match(a, b string) bool {
	if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) {
		return true
	}

	fa, err := Parse(a)
	if err != nil {
		return false
	}
	fb, err := Parse(b)
	if err != nil {
		return false
	}

	if fa.Family == FamilyUnknown || fa.Family != fb.Family {
		return false
	}
	if !fa.HasVersion || !fb.HasVersion {
		return false
	}

	diff := fa.Version - fb.Version
	if diff < 0 {
		diff = -diff
	}
	return diff < 1.0
}

// Compare orders two frameworks for min/max bound checks.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
//
// Same-family frameworks order by numeric version. Different families fall
// back to lexical family-name order, an arbitrary but stable secondary key
// kept for rule bounds that span families.
func Compare(a, b Framework) int {
	if a.Family == b.Family {
		switch {
		case a.Version < b.Version:
			return -1
		case a.Version > b.Version:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(string(a.Family), string(b.Family))
}

// parseNumericVersion parses a dotted version string into a float
// ("3.1" → 3.1). Only the first two components participate.
func parseNumericVersion(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		parts = parts[:2]
	}
	v, err := strconv.ParseFloat(strings.Join(parts, "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseCompactVersion parses compact .NET Framework versions:
// "48" → 4.8, "472" → 4.72, "4721" → 4.721.
func parseCompactVersion(s string) (float64, bool) {
	if len(s) < 2 || len(s) > 4 {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	v, err := strconv.ParseFloat(s[:1]+"."+s[1:], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

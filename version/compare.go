package version

import (
	"strconv"
	"strings"
)

// CompareStrings compares two dotted version strings numerically.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
//
// Each string is split on '.', each segment coerced to an integer, and
// segments compared left to right. Missing segments are treated as 0, so
// "2.0" equals "2.0.0". Comparison is numeric, never lexical: "2.0.0"
// sorts below "10.0.0".
//
// Non-numeric segments also coerce to 0 rather than being rejected. This
// hardens the original's NaN-compares-as-equal looseness into a defined
// result: "1.0.0-beta" compares equal to "1.0.0". Use NuGetVersion.Compare
// when prerelease ordering matters.
func CompareStrings(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}

	for i := 0; i < n; i++ {
		av := segmentValue(as, i)
		bv := segmentValue(bs, i)
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}

func segmentValue(segments []string, i int) int {
	if i >= len(segments) {
		return 0
	}
	// Strip any prerelease tag hanging off the segment ("0-beta" → "0").
	seg := segments[i]
	if idx := strings.IndexAny(seg, "-+"); idx >= 0 {
		seg = seg[:idx]
	}
	n, err := strconv.Atoi(seg)
	if err != nil {
		return 0
	}
	return n
}

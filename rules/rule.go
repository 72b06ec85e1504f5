// Package rules provides the local compatibility rule catalog.
//
// The catalog is an ordered sequence of rules keyed by exact package name or
// by wildcard pattern. Lookup tries exact names first, then patterns in
// declaration order; the first match wins, so rule order is load-bearing for
// overlapping patterns and must be preserved.
//
// The catalog is authoritative local knowledge, consulted only when the
// remote registry is disabled, unavailable, or inconclusive.
package rules

import (
	"strings"

	"github.com/willibrandon/nugetcompat/frameworks"
	"github.com/willibrandon/nugetcompat/version"
)

// VersionBounds constrains acceptable package versions.
// Empty Min or Max means unbounded on that side.
type VersionBounds struct {
	MinVersion string
	MaxVersion string
}

// Contains reports whether ver falls within the bounds, using the loose
// dotted-string comparison.
func (b VersionBounds) Contains(ver string) bool {
	if b.MinVersion != "" && version.CompareStrings(ver, b.MinVersion) < 0 {
		return false
	}
	if b.MaxVersion != "" && version.CompareStrings(ver, b.MaxVersion) > 0 {
		return false
	}
	return true
}

// VersionRules holds a rule's version constraints: a global bound plus
// per-framework overrides keyed by TFM.
type VersionRules struct {
	Global       *VersionBounds
	PerFramework map[string]*VersionBounds
}

// Rule is a single catalog entry. Exactly one of Name or Pattern is set.
type Rule struct {
	// Name matches a package id exactly, case-sensitively as stored.
	Name string

	// Pattern is a wildcard match ("System.*", "*.Analyzers").
	// Pattern matching is case-insensitive.
	Pattern string

	// SupportedFrameworks, when non-empty, is the closed list of targets
	// the package works on (fuzzy-matched).
	SupportedFrameworks []string

	// MinFramework/MaxFramework bound the target when no explicit list is
	// declared. Compared by family + numeric version; different families
	// fall back to lexical family order (an arbitrary but stable tie-break
	// kept from the original rule table).
	MinFramework string
	MaxFramework string

	// VersionRules constrains acceptable versions.
	VersionRules *VersionRules

	// DeprecatedVersions lists exact version strings that are deprecated.
	DeprecatedVersions []string
}

// IsDeprecated reports whether ver is in the rule's deprecated list.
// Matching is exact-string, deliberately: a deprecation notice applies to
// the published version string, not a numeric neighborhood.
func (r *Rule) IsDeprecated(ver string) bool {
	for _, d := range r.DeprecatedVersions {
		if d == ver {
			return true
		}
	}
	return false
}

// FrameworkCompatible reports whether the target framework satisfies the
// rule's framework constraints.
//
// An explicit SupportedFrameworks list wins: the target must fuzzy-match one
// entry. Otherwise min/max bounds apply: the target must parse and order
// within [min, max]. A rule with no framework constraints is compatible with
// everything.
func (r *Rule) FrameworkCompatible(tfm string) bool {
	if len(r.SupportedFrameworks) > 0 {
		for _, f := range r.SupportedFrameworks {
			if frameworks.Match(tfm, f) {
				return true
			}
		}
		return false
	}

	if r.MinFramework == "" && r.MaxFramework == "" {
		return true
	}

	target, err := frameworks.Parse(tfm)
	if err != nil || (target.Family == frameworks.FamilyUnknown && !target.HasVersion) {
		return false
	}

	if r.MinFramework != "" {
		minFw, err := frameworks.Parse(r.MinFramework)
		if err == nil && frameworks.Compare(target, minFw) < 0 {
			return false
		}
	}
	if r.MaxFramework != "" {
		maxFw, err := frameworks.Parse(r.MaxFramework)
		if err == nil && frameworks.Compare(target, maxFw) > 0 {
			return false
		}
	}
	return true
}

// BoundsFor returns the version bounds applicable to the target framework:
// a per-framework override when one fuzzy-matches, else the global bounds,
// else nil.
func (r *Rule) BoundsFor(tfm string) *VersionBounds {
	if r.VersionRules == nil {
		return nil
	}
	for fw, bounds := range r.VersionRules.PerFramework {
		if frameworks.Match(tfm, fw) {
			return bounds
		}
	}
	return r.VersionRules.Global
}

// Catalog is an ordered rule table.
type Catalog struct {
	rules []Rule
}

// NewCatalog builds a catalog preserving rule order.
func NewCatalog(rules []Rule) *Catalog {
	return &Catalog{rules: rules}
}

// Find returns the rule for a package name, or nil when none applies.
// Exact-name rules are consulted first, then pattern rules in declaration
// order.
func (c *Catalog) Find(packageName string) *Rule {
	for i := range c.rules {
		if c.rules[i].Name != "" && c.rules[i].Name == packageName {
			return &c.rules[i]
		}
	}
	for i := range c.rules {
		if c.rules[i].Pattern != "" && MatchPattern(c.rules[i].Pattern, packageName) {
			return &c.rules[i]
		}
	}
	return nil
}

// Len returns the number of rules in the catalog.
func (c *Catalog) Len() int {
	return len(c.rules)
}

// MatchPattern reports whether name matches a simple wildcard pattern.
// '*' matches any run of characters; matching is case-insensitive.
func MatchPattern(pattern, name string) bool {
	p := strings.ToLower(pattern)
	n := strings.ToLower(name)

	if !strings.Contains(p, "*") {
		return p == n
	}

	parts := strings.Split(p, "*")

	// Anchor the first and last literal segments.
	if parts[0] != "" && !strings.HasPrefix(n, parts[0]) {
		return false
	}
	if last := parts[len(parts)-1]; last != "" && !strings.HasSuffix(n, last) {
		return false
	}

	// Middle segments must appear in order.
	rest := n[len(parts[0]):]
	if last := parts[len(parts)-1]; last != "" {
		if len(rest) < len(last) {
			return false
		}
		rest = rest[:len(rest)-len(last)]
	}
	for _, seg := range parts[1 : len(parts)-1] {
		if seg == "" {
			continue
		}
		idx := strings.Index(rest, seg)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(seg):]
	}
	return true
}

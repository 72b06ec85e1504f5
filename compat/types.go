// Package compat decides whether NuGet package references are compatible
// with a project's target framework. Verdicts come from remote registry
// metadata when available, falling back to a local rule catalog, with a
// TTL-bounded cache in front of both.
package compat

import "time"

// IssueType classifies a compatibility problem.
type IssueType string

const (
	// IssueIncompatible means the package cannot run on the target framework.
	IssueIncompatible IssueType = "incompatible"

	// IssueVersionMismatch means the package works on the target framework
	// but the referenced version falls outside the allowed bounds.
	IssueVersionMismatch IssueType = "version_mismatch"

	// IssueDeprecated means the referenced version is deprecated.
	IssueDeprecated IssueType = "deprecated"
)

// PackageReference identifies one package dependency of a project.
type PackageReference struct {
	Name    string
	Version string
}

// Issue describes a single compatibility problem for a package reference.
type Issue struct {
	PackageName     string
	PackageVersion  string
	TargetFramework string
	Type            IssueType
	Message         string

	// RecommendedFrameworks lists frameworks the package is known to
	// support, when the verdict came from framework constraints.
	RecommendedFrameworks []string
}

// AlternativePackage suggests a maintained replacement for a problem package.
type AlternativePackage struct {
	Name    string
	Version string
	Reason  string
}

// TransitiveIssue reports a problem in a direct dependency of a referenced
// package, discovered one level deep.
type TransitiveIssue struct {
	DependencyName  string
	DependencyRange string
	ParentPackage   string
	Type            IssueType
	Message         string
}

// EnhancedIssue is an Issue enriched with remediation guidance.
type EnhancedIssue struct {
	Issue

	// SuggestedVersion is the newest version of the same package believed
	// to be compatible, empty when none could be determined.
	SuggestedVersion string

	// Alternative proposes a different package, nil when none applies.
	Alternative *AlternativePackage

	// TransitiveIssues lists problems found in the package's own
	// dependencies. Only populated when remote lookups are enabled.
	TransitiveIssues []TransitiveIssue
}

// UpgradeSuggestion recommends retargeting the project to a newer framework.
type UpgradeSuggestion struct {
	CurrentFramework   string
	SuggestedFramework string
	Reason             string

	// PackagesSupporting names the references compatible with the
	// suggested framework.
	PackagesSupporting []string
}

// ProjectReport is the result of checking every reference in a project.
type ProjectReport struct {
	TargetFramework string
	Issues          []EnhancedIssue
	Upgrade         *UpgradeSuggestion

	// CorrelationID ties log entries from one run together.
	CorrelationID string
}

const (
	// DefaultCacheTTL bounds how long a verdict stays reusable.
	DefaultCacheTTL = time.Hour

	// DefaultRequestTimeout bounds each registry request.
	DefaultRequestTimeout = 5 * time.Second

	// DefaultMaxParallel bounds concurrent package checks in a project scan.
	DefaultMaxParallel = 4
)

// Options controls resolver behavior.
type Options struct {
	// Enabled gates all checking. When false every check returns no issue.
	Enabled bool

	// RemoteEnabled allows registry lookups. When false only local rules run.
	RemoteEnabled bool

	// CacheEnabled allows verdict caching.
	CacheEnabled bool

	// CacheTTL is how long cached verdicts remain valid.
	CacheTTL time.Duration

	// IgnorePatterns lists package name patterns to skip entirely.
	// Patterns use the same case-insensitive wildcard syntax as rules.
	IgnorePatterns []string

	// RequestTimeout bounds individual registry requests.
	RequestTimeout time.Duration

	// MaxParallel bounds concurrent checks during a project scan.
	MaxParallel int
}

// DefaultOptions returns the standard configuration: everything enabled
// with default limits.
func DefaultOptions() *Options {
	return &Options{
		Enabled:        true,
		RemoteEnabled:  true,
		CacheEnabled:   true,
		CacheTTL:       DefaultCacheTTL,
		RequestTimeout: DefaultRequestTimeout,
		MaxParallel:    DefaultMaxParallel,
	}
}

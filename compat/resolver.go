package compat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/willibrandon/nugetcompat/cache"
	"github.com/willibrandon/nugetcompat/frameworks"
	"github.com/willibrandon/nugetcompat/observability"
	"github.com/willibrandon/nugetcompat/registry"
	"github.com/willibrandon/nugetcompat/rules"
	"github.com/willibrandon/nugetcompat/version"
)

// RemoteSource is the registry surface the resolver depends on.
// *registry.Client satisfies it.
type RemoteSource interface {
	ListVersions(ctx context.Context, packageID string) ([]string, error)
	GetPackageInfo(ctx context.Context, packageID, version string) (*registry.PackageInfo, error)
}

// Resolver produces compatibility verdicts for package references.
//
// Each check walks ignore-list, cache, remote registry, then the local
// rule catalog, stopping at the first source that can decide. Remote and
// transport failures degrade silently to the next source.
type Resolver struct {
	opts    *Options
	catalog *rules.Catalog
	remote  RemoteSource
	cache   *cache.MemoryCache
	logger  observability.Logger
}

// NewResolver creates a resolver. A nil catalog uses the default seed
// catalog; a nil remote disables registry lookups regardless of Options.
func NewResolver(opts *Options, catalog *rules.Catalog, remote RemoteSource, logger observability.Logger) *Resolver {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	if opts.MaxParallel <= 0 {
		opts.MaxParallel = DefaultMaxParallel
	}
	if catalog == nil {
		catalog = rules.DefaultCatalog()
	}
	if logger == nil {
		logger = observability.NewNullLogger()
	}

	return &Resolver{
		opts:    opts,
		catalog: catalog,
		remote:  remote,
		cache:   cache.NewMemoryCache(cache.DefaultMaxEntries),
		logger:  logger,
	}
}

// cacheKey builds the verdict cache key. An absent version uses the
// sentinel "latest" so it never collides with a literal version string.
func cacheKey(name, ver, tfm string) string {
	if ver == "" {
		ver = "latest"
	}
	return name + "|" + ver + "|" + tfm
}

// CheckCompatibility classifies one (package, version, framework) triple.
// A nil return means compatible or unknown; the two are deliberately not
// distinguished so that unfamiliar packages never block anyone.
func (r *Resolver) CheckCompatibility(ctx context.Context, name, ver, tfm string) *Issue {
	start := time.Now()

	if !r.opts.Enabled {
		r.record("disabled", nil, start)
		return nil
	}
	if r.isIgnored(name) {
		r.logger.DebugContext(ctx, "Package {Package} matches ignore pattern, skipping", name)
		r.record("ignored", nil, start)
		return nil
	}

	key := cacheKey(name, ver, tfm)
	if r.opts.CacheEnabled {
		if cached, ok := r.cache.Get(key); ok {
			observability.CacheHitsTotal.Inc()
			issue, _ := cached.(*Issue)
			r.record("cache", issue, start)
			return issue
		}
		observability.CacheMissesTotal.Inc()
	}

	if r.opts.RemoteEnabled && r.remote != nil {
		if issue, decided := r.checkRemote(ctx, name, ver, tfm); decided {
			r.store(key, issue)
			r.record("remote", issue, start)
			return issue
		}
	}

	issue, known := r.checkRules(name, ver, tfm)
	r.store(key, issue)
	source := "rules"
	if !known {
		source = "unknown"
	}
	r.record(source, issue, start)
	return issue
}

func (r *Resolver) record(source string, issue *Issue, start time.Time) {
	verdict := "none"
	if issue != nil {
		verdict = string(issue.Type)
	}
	observability.ChecksTotal.WithLabelValues(verdict, source).Inc()
	observability.CheckDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
}

func (r *Resolver) store(key string, issue *Issue) {
	if r.opts.CacheEnabled {
		r.cache.Set(key, issue, r.opts.CacheTTL)
	}
}

// isIgnored reports whether the package name matches any ignore pattern,
// exact or wildcard, case-insensitively.
func (r *Resolver) isIgnored(name string) bool {
	for _, pattern := range r.opts.IgnorePatterns {
		if strings.EqualFold(pattern, name) || rules.MatchPattern(pattern, name) {
			return true
		}
	}
	return false
}

// checkRemote consults the registry. The second return is false when the
// registry could not decide, in which case local rules take over. A true
// return with a nil issue is a positive "compatible" verdict.
func (r *Resolver) checkRemote(ctx context.Context, name, ver, tfm string) (*Issue, bool) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.RequestTimeout)
	defer cancel()

	info, err := r.remote.GetPackageInfo(ctx, name, ver)
	if err != nil {
		if ver == "" {
			r.logger.DebugContext(ctx, "Registry metadata unavailable for {Package}: {Error}", name, err)
			return nil, false
		}
		// The requested version has no registration entry. Confirm against
		// the version list before calling it a mismatch.
		versions, verr := r.remote.ListVersions(ctx, name)
		if verr != nil || len(versions) == 0 {
			r.logger.DebugContext(ctx, "Registry unavailable for {Package}: {Error}", name, err)
			return nil, false
		}
		if !containsVersion(versions, ver) {
			latest := versions[len(versions)-1]
			return &Issue{
				PackageName:     name,
				PackageVersion:  ver,
				TargetFramework: tfm,
				Type:            IssueVersionMismatch,
				Message:         fmt.Sprintf("Version %s of %s was not found in the registry. Latest known version is %s.", ver, name, latest),
			}, true
		}
		return nil, false
	}

	if info.Deprecated {
		msg := fmt.Sprintf("%s %s is deprecated.", name, ver)
		if info.DeprecationMessage != "" {
			msg = fmt.Sprintf("%s %s is deprecated: %s", name, ver, info.DeprecationMessage)
		}
		return &Issue{
			PackageName:     name,
			PackageVersion:  ver,
			TargetFramework: tfm,
			Type:            IssueDeprecated,
			Message:         msg,
		}, true
	}

	// No framework data on the entry is inconclusive; local rules decide.
	if len(info.SupportedFrameworks) == 0 {
		return nil, false
	}

	if !supportsFramework(tfm, info.SupportedFrameworks) {
		return &Issue{
			PackageName:           name,
			PackageVersion:        ver,
			TargetFramework:       tfm,
			Type:                  IssueIncompatible,
			Message:               fmt.Sprintf("%s does not support %s. Supported frameworks: %s.", name, tfm, strings.Join(info.SupportedFrameworks, ", ")),
			RecommendedFrameworks: info.SupportedFrameworks,
		}, true
	}

	return nil, true
}

// checkRules evaluates the local catalog. The second return is false when
// no rule covers the package, meaning the verdict is "unknown, assumed
// compatible" rather than "verified compatible".
func (r *Resolver) checkRules(name, ver, tfm string) (*Issue, bool) {
	rule := r.catalog.Find(name)
	if rule == nil {
		return nil, false
	}

	if ver != "" && rule.IsDeprecated(ver) {
		return &Issue{
			PackageName:     name,
			PackageVersion:  ver,
			TargetFramework: tfm,
			Type:            IssueDeprecated,
			Message:         fmt.Sprintf("Version %s of %s is deprecated. Upgrade to a newer version.", ver, name),
		}, true
	}

	if !rule.FrameworkCompatible(tfm) {
		issue := &Issue{
			PackageName:     name,
			PackageVersion:  ver,
			TargetFramework: tfm,
			Type:            IssueIncompatible,
			Message:         fmt.Sprintf("%s is not compatible with %s.", name, tfm),
		}
		if len(rule.SupportedFrameworks) > 0 {
			issue.RecommendedFrameworks = rule.SupportedFrameworks
			issue.Message = fmt.Sprintf("%s is not compatible with %s. Supported frameworks: %s.", name, tfm, strings.Join(rule.SupportedFrameworks, ", "))
		}
		return issue, true
	}

	if ver != "" {
		if bounds := rule.BoundsFor(tfm); bounds != nil && !bounds.Contains(ver) {
			msg := fmt.Sprintf("Version %s of %s is outside the supported range for %s.", ver, name, tfm)
			if bounds.MinVersion != "" && version.CompareStrings(ver, bounds.MinVersion) < 0 {
				msg = fmt.Sprintf("Version %s of %s is below the minimum supported version %s.", ver, name, bounds.MinVersion)
			} else if bounds.MaxVersion != "" && version.CompareStrings(ver, bounds.MaxVersion) > 0 {
				msg = fmt.Sprintf("Version %s of %s is above the maximum supported version %s for %s.", ver, name, bounds.MaxVersion, tfm)
			}
			return &Issue{
				PackageName:     name,
				PackageVersion:  ver,
				TargetFramework: tfm,
				Type:            IssueVersionMismatch,
				Message:         msg,
			}, true
		}
	}

	return nil, true
}

// supportsFramework reports whether the target fuzzy-matches any entry in
// the supported list.
func supportsFramework(tfm string, supported []string) bool {
	for _, fw := range supported {
		if frameworks.Match(tfm, fw) {
			return true
		}
	}
	return false
}

func containsVersion(versions []string, ver string) bool {
	for _, v := range versions {
		if strings.EqualFold(v, ver) {
			return true
		}
	}
	return false
}

// CacheLen reports the number of live verdict cache entries.
func (r *Resolver) CacheLen() int {
	return r.cache.Len()
}

package compat

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/willibrandon/nugetcompat/registry"
	"github.com/willibrandon/nugetcompat/version"
)

// alternatives maps legacy packages to their maintained replacements.
// Order within the map does not matter; lookup is by exact name.
var alternatives = map[string]AlternativePackage{
	"System.Web.Mvc": {
		Name:   "Microsoft.AspNetCore.Mvc",
		Reason: "System.Web.Mvc only runs on .NET Framework. ASP.NET Core MVC is the supported successor.",
	},
	"Microsoft.AspNet.WebApi": {
		Name:   "Microsoft.AspNetCore.Mvc",
		Reason: "ASP.NET Web API was folded into ASP.NET Core MVC.",
	},
	"Microsoft.AspNet.WebApi.Core": {
		Name:   "Microsoft.AspNetCore.Mvc",
		Reason: "ASP.NET Web API was folded into ASP.NET Core MVC.",
	},
	"Microsoft.AspNet.SignalR": {
		Name:   "Microsoft.AspNetCore.SignalR",
		Reason: "Classic SignalR is .NET Framework only.",
	},
	"EntityFramework": {
		Name:   "Microsoft.EntityFrameworkCore",
		Reason: "Entity Framework 6 targets .NET Framework. EF Core is the cross-platform successor.",
	},
	"Newtonsoft.Json": {
		Name:   "System.Text.Json",
		Reason: "System.Text.Json ships with the runtime and is the recommended JSON stack.",
	},
	"Grpc.Core": {
		Name:   "Grpc.Net.Client",
		Reason: "Grpc.Core is in maintenance mode; grpc-dotnet is the supported implementation.",
	},
}

// CheckProject checks every reference against the target framework and
// returns enriched issues in the input reference order. Checks run with
// bounded parallelism; enrichment happens inline with each check.
func (r *Resolver) CheckProject(ctx context.Context, refs []PackageReference, tfm string) *ProjectReport {
	report := &ProjectReport{
		TargetFramework: tfm,
		CorrelationID:   uuid.NewString(),
	}
	logger := r.logger.ForContext("CorrelationId", report.CorrelationID)
	logger.InfoContext(ctx, "Checking {Count} package references against {Framework}", len(refs), tfm)

	results := make([]*EnhancedIssue, len(refs))
	sem := make(chan struct{}, r.opts.MaxParallel)
	var wg sync.WaitGroup

	for i, ref := range refs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, ref PackageReference) {
			defer wg.Done()
			defer func() { <-sem }()

			issue := r.CheckCompatibility(ctx, ref.Name, ref.Version, tfm)
			if issue == nil {
				return
			}
			results[i] = r.enrich(ctx, issue, ref, tfm)
		}(i, ref)
	}
	wg.Wait()

	// Positional assembly keeps issue order identical to reference order
	// regardless of which check finished first.
	for _, res := range results {
		if res != nil {
			report.Issues = append(report.Issues, *res)
		}
	}

	logger.InfoContext(ctx, "Found {IssueCount} issues in {Count} references", len(report.Issues), len(refs))
	return report
}

// enrich attaches a suggested version, an alternative package, and
// one-level transitive issues to a raw issue. Every enrichment step is
// best-effort; failures leave the corresponding field empty.
func (r *Resolver) enrich(ctx context.Context, issue *Issue, ref PackageReference, tfm string) *EnhancedIssue {
	enhanced := &EnhancedIssue{Issue: *issue}

	if r.opts.RemoteEnabled && r.remote != nil {
		enhanced.SuggestedVersion = r.suggestVersion(ctx, ref.Name, tfm)
	}

	if alt, ok := alternatives[ref.Name]; ok {
		altIssue := r.CheckCompatibility(ctx, alt.Name, "", tfm)
		if altIssue == nil || altIssue.Type != IssueIncompatible {
			if r.opts.RemoteEnabled && r.remote != nil {
				alt.Version = r.latestVersion(ctx, alt.Name)
			}
			enhanced.Alternative = &alt
		}
	}

	if r.opts.RemoteEnabled && r.remote != nil && ref.Version != "" {
		enhanced.TransitiveIssues = r.checkTransitive(ctx, ref, tfm)
	}

	return enhanced
}

// suggestVersion returns the newest published version that passes the
// local catalog for the target framework, or the absolute latest when no
// published version passes. Empty when the registry is unavailable.
func (r *Resolver) suggestVersion(ctx context.Context, name, tfm string) string {
	ctx, cancel := context.WithTimeout(ctx, r.opts.RequestTimeout)
	defer cancel()

	versions, err := r.remote.ListVersions(ctx, name)
	if err != nil || len(versions) == 0 {
		return ""
	}

	best := ""
	for _, candidate := range versions {
		if issue, _ := r.checkRules(name, candidate, tfm); issue == nil {
			best = candidate
		}
	}
	if best == "" {
		best = versions[len(versions)-1]
	}
	return best
}

// latestVersion returns the newest published version of a package, empty
// when the registry is unavailable.
func (r *Resolver) latestVersion(ctx context.Context, name string) string {
	ctx, cancel := context.WithTimeout(ctx, r.opts.RequestTimeout)
	defer cancel()

	versions, err := r.remote.ListVersions(ctx, name)
	if err != nil || len(versions) == 0 {
		return ""
	}
	return versions[len(versions)-1]
}

// checkTransitive walks one level of the reference's declared dependencies
// and classifies each against the same target framework. Metadata gaps
// produce a shorter or empty list, never an error.
func (r *Resolver) checkTransitive(ctx context.Context, ref PackageReference, tfm string) []TransitiveIssue {
	fetchCtx, cancel := context.WithTimeout(ctx, r.opts.RequestTimeout)
	defer cancel()

	info, err := r.remote.GetPackageInfo(fetchCtx, ref.Name, ref.Version)
	if err != nil || info == nil {
		return nil
	}

	var issues []TransitiveIssue
	for _, dep := range info.Dependencies {
		depVersion := r.resolveDependencyVersion(ctx, dep)
		depIssue := r.CheckCompatibility(ctx, dep.ID, depVersion, tfm)
		if depIssue == nil {
			continue
		}
		issues = append(issues, TransitiveIssue{
			DependencyName:  dep.ID,
			DependencyRange: dep.Range,
			ParentPackage:   ref.Name,
			Type:            depIssue.Type,
			Message:         depIssue.Message,
		})
	}
	return issues
}

// resolveDependencyVersion picks the concrete version a dependency range
// would restore to: the highest published version satisfying the range,
// else the range minimum, else empty.
func (r *Resolver) resolveDependencyVersion(ctx context.Context, dep registry.Dependency) string {
	rng, err := version.ParseVersionRange(dep.Range)
	if err != nil {
		return ""
	}

	listCtx, cancel := context.WithTimeout(ctx, r.opts.RequestTimeout)
	published, lerr := r.remote.ListVersions(listCtx, dep.ID)
	cancel()
	if lerr == nil {
		parsed := make([]*version.NuGetVersion, 0, len(published))
		for _, s := range published {
			if v, perr := version.Parse(s); perr == nil {
				parsed = append(parsed, v)
			}
		}
		if best := rng.FindBestMatch(parsed); best != nil {
			return best.String()
		}
	}

	if rng.MinVersion != nil {
		return rng.MinVersion.String()
	}
	return ""
}

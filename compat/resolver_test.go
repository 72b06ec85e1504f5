package compat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/willibrandon/nugetcompat/observability"
	"github.com/willibrandon/nugetcompat/registry"
	"github.com/willibrandon/nugetcompat/rules"
)

// fakeRemote is an in-memory RemoteSource with call counters.
type fakeRemote struct {
	infos    map[string]*registry.PackageInfo
	versions map[string][]string

	infoCalls int
	listCalls int
	failAll   bool
}

var errUnavailable = errors.New("registry unavailable")

func (f *fakeRemote) ListVersions(_ context.Context, packageID string) ([]string, error) {
	f.listCalls++
	if f.failAll {
		return nil, errUnavailable
	}
	if v, ok := f.versions[packageID]; ok {
		return v, nil
	}
	return nil, errUnavailable
}

func (f *fakeRemote) GetPackageInfo(_ context.Context, packageID, version string) (*registry.PackageInfo, error) {
	f.infoCalls++
	if f.failAll {
		return nil, errUnavailable
	}
	if info, ok := f.infos[packageID+"@"+version]; ok {
		return info, nil
	}
	return nil, errUnavailable
}

func newTestResolver(opts *Options, remote RemoteSource) *Resolver {
	return NewResolver(opts, nil, remote, nil)
}

func localOnlyOptions() *Options {
	opts := DefaultOptions()
	opts.RemoteEnabled = false
	return opts
}

func TestCheckDisabledReturnsNoIssue(t *testing.T) {
	opts := DefaultOptions()
	opts.Enabled = false
	r := newTestResolver(opts, nil)

	issue := r.CheckCompatibility(context.Background(), "EntityFramework", "6.4.4", "net8.0")
	if issue != nil {
		t.Fatalf("expected nil issue when disabled, got %v", issue)
	}
}

func TestIgnorePatternPrecedence(t *testing.T) {
	// The catalog would flag this package, but ignore patterns win.
	opts := localOnlyOptions()
	opts.IgnorePatterns = []string{"Entity*"}
	r := newTestResolver(opts, nil)

	if issue := r.CheckCompatibility(context.Background(), "EntityFramework", "6.4.4", "net8.0"); issue != nil {
		t.Fatalf("ignored package should produce no issue, got %v", issue)
	}
}

func TestFallbackEntityFramework(t *testing.T) {
	r := newTestResolver(localOnlyOptions(), nil)

	issue := r.CheckCompatibility(context.Background(), "EntityFramework", "6.4.4", "net8.0")
	if issue == nil {
		t.Fatal("expected an issue")
	}
	if issue.Type != IssueIncompatible {
		t.Fatalf("expected incompatible, got %s", issue.Type)
	}
	if len(issue.RecommendedFrameworks) == 0 {
		t.Fatal("expected legacy framework recommendations")
	}
	found := map[string]bool{}
	for _, fw := range issue.RecommendedFrameworks {
		found[fw] = true
	}
	for _, want := range []string{"net40", "net45", "net48"} {
		if !found[want] {
			t.Errorf("recommendation missing %s: %v", want, issue.RecommendedFrameworks)
		}
	}
}

func TestUnknownPackageAssumedCompatible(t *testing.T) {
	r := newTestResolver(localOnlyOptions(), nil)

	if issue := r.CheckCompatibility(context.Background(), "Some.Obscure.Package", "1.0.0", "net8.0"); issue != nil {
		t.Fatalf("unknown package should produce no issue, got %v", issue)
	}
}

func TestDeprecatedTakesPrecedenceOverIncompatible(t *testing.T) {
	catalog := rules.NewCatalog([]rules.Rule{
		{
			Name:                "Legacy.Widget",
			SupportedFrameworks: []string{"net45", "net48"},
			DeprecatedVersions:  []string{"1.0.0"},
		},
	})
	r := NewResolver(localOnlyOptions(), catalog, nil, nil)

	// Both deprecated and framework-incompatible on net8.0.
	issue := r.CheckCompatibility(context.Background(), "Legacy.Widget", "1.0.0", "net8.0")
	if issue == nil {
		t.Fatal("expected an issue")
	}
	if issue.Type != IssueDeprecated {
		t.Fatalf("expected deprecated to win, got %s", issue.Type)
	}
}

func TestVersionBoundsMismatch(t *testing.T) {
	r := newTestResolver(localOnlyOptions(), nil)

	issue := r.CheckCompatibility(context.Background(), "Newtonsoft.Json", "12.0.3", "net8.0")
	if issue == nil {
		t.Fatal("expected an issue")
	}
	if issue.Type != IssueVersionMismatch {
		t.Fatalf("expected version_mismatch, got %s", issue.Type)
	}
}

func TestCheckIdempotentAndCached(t *testing.T) {
	remote := &fakeRemote{
		infos: map[string]*registry.PackageInfo{
			"Contoso.Utils@2.0.0": {
				PackageID:           "Contoso.Utils",
				Version:             "2.0.0",
				SupportedFrameworks: []string{"net45"},
			},
		},
	}
	r := newTestResolver(DefaultOptions(), remote)

	first := r.CheckCompatibility(context.Background(), "Contoso.Utils", "2.0.0", "net8.0")
	if first == nil || first.Type != IssueIncompatible {
		t.Fatalf("expected incompatible from remote, got %v", first)
	}
	if remote.infoCalls != 1 {
		t.Fatalf("expected 1 remote call, got %d", remote.infoCalls)
	}

	hitsBefore := observability.GetCounterValue(observability.CacheHitsTotal)
	second := r.CheckCompatibility(context.Background(), "Contoso.Utils", "2.0.0", "net8.0")
	if second == nil || second.Type != first.Type || second.Message != first.Message {
		t.Fatalf("second call differs: %v vs %v", second, first)
	}
	if remote.infoCalls != 1 {
		t.Errorf("cached call should not hit the remote, got %d calls", remote.infoCalls)
	}
	if hits := observability.GetCounterValue(observability.CacheHitsTotal); hits != hitsBefore+1 {
		t.Errorf("expected cache hit counter to increment, got %v then %v", hitsBefore, hits)
	}
}

func TestNilVerdictIsCached(t *testing.T) {
	remote := &fakeRemote{
		infos: map[string]*registry.PackageInfo{
			"Contoso.Utils@2.0.0": {
				PackageID:           "Contoso.Utils",
				Version:             "2.0.0",
				SupportedFrameworks: []string{"net8.0"},
			},
		},
	}
	r := newTestResolver(DefaultOptions(), remote)

	if issue := r.CheckCompatibility(context.Background(), "Contoso.Utils", "2.0.0", "net8.0"); issue != nil {
		t.Fatalf("expected compatible, got %v", issue)
	}
	if issue := r.CheckCompatibility(context.Background(), "Contoso.Utils", "2.0.0", "net8.0"); issue != nil {
		t.Fatalf("expected compatible on cache hit, got %v", issue)
	}
	if remote.infoCalls != 1 {
		t.Errorf("compatible verdict should be cached, got %d remote calls", remote.infoCalls)
	}
}

func TestCacheTTLExpiryTriggersReResolution(t *testing.T) {
	remote := &fakeRemote{
		infos: map[string]*registry.PackageInfo{
			"Contoso.Utils@2.0.0": {
				PackageID:           "Contoso.Utils",
				Version:             "2.0.0",
				SupportedFrameworks: []string{"net8.0"},
			},
		},
	}
	opts := DefaultOptions()
	opts.CacheTTL = 50 * time.Millisecond
	r := newTestResolver(opts, remote)

	r.CheckCompatibility(context.Background(), "Contoso.Utils", "2.0.0", "net8.0")
	time.Sleep(80 * time.Millisecond)
	r.CheckCompatibility(context.Background(), "Contoso.Utils", "2.0.0", "net8.0")

	if remote.infoCalls != 2 {
		t.Fatalf("expected re-resolution after TTL expiry, got %d remote calls", remote.infoCalls)
	}
}

func TestRemoteSuccessShortCircuitsRules(t *testing.T) {
	// The local catalog restricts EntityFramework to legacy frameworks,
	// but a remote verdict wins when available.
	remote := &fakeRemote{
		infos: map[string]*registry.PackageInfo{
			"EntityFramework@6.4.4": {
				PackageID:           "EntityFramework",
				Version:             "6.4.4",
				SupportedFrameworks: []string{"net8.0"},
			},
		},
	}
	r := newTestResolver(DefaultOptions(), remote)

	if issue := r.CheckCompatibility(context.Background(), "EntityFramework", "6.4.4", "net8.0"); issue != nil {
		t.Fatalf("remote compatible verdict should win over rules, got %v", issue)
	}
}

func TestRemoteDeprecated(t *testing.T) {
	remote := &fakeRemote{
		infos: map[string]*registry.PackageInfo{
			"Contoso.Old@1.0.0": {
				PackageID:          "Contoso.Old",
				Version:            "1.0.0",
				Deprecated:         true,
				DeprecationMessage: "Use Contoso.New instead.",
			},
		},
	}
	r := newTestResolver(DefaultOptions(), remote)

	issue := r.CheckCompatibility(context.Background(), "Contoso.Old", "1.0.0", "net8.0")
	if issue == nil || issue.Type != IssueDeprecated {
		t.Fatalf("expected deprecated, got %v", issue)
	}
}

func TestRemoteVersionMismatch(t *testing.T) {
	// No registration entry for the requested version, but the version
	// list confirms the package exists.
	remote := &fakeRemote{
		versions: map[string][]string{
			"Contoso.Utils": {"1.0.0", "2.0.0", "3.0.0"},
		},
	}
	r := newTestResolver(DefaultOptions(), remote)

	issue := r.CheckCompatibility(context.Background(), "Contoso.Utils", "9.9.9", "net8.0")
	if issue == nil || issue.Type != IssueVersionMismatch {
		t.Fatalf("expected version_mismatch, got %v", issue)
	}
	if !strings.Contains(issue.Message, "3.0.0") {
		t.Errorf("message should name latest version 3.0.0: %q", issue.Message)
	}
}

func TestRemoteFailureFallsBackToRules(t *testing.T) {
	remote := &fakeRemote{failAll: true}
	r := newTestResolver(DefaultOptions(), remote)

	issue := r.CheckCompatibility(context.Background(), "EntityFramework", "6.4.4", "net8.0")
	if issue == nil || issue.Type != IssueIncompatible {
		t.Fatalf("expected rules fallback verdict, got %v", issue)
	}
}

func TestCompatibleVersionWithinBounds(t *testing.T) {
	r := newTestResolver(localOnlyOptions(), nil)

	if issue := r.CheckCompatibility(context.Background(), "Newtonsoft.Json", "13.0.3", "net8.0"); issue != nil {
		t.Fatalf("expected compatible, got %v", issue)
	}
}

package compat

import (
	"context"
	"testing"

	"github.com/willibrandon/nugetcompat/rules"
)

// upgradeTestCatalog pins compatibility per package so threshold behavior
// is exercised without depending on the seed catalog.
func upgradeTestCatalog() *rules.Catalog {
	return rules.NewCatalog([]rules.Rule{
		{Name: "Modern.A", SupportedFrameworks: []string{"net6.0", "net7.0", "net8.0"}},
		{Name: "Modern.B", SupportedFrameworks: []string{"net6.0", "net7.0", "net8.0"}},
		{Name: "Modern.C", SupportedFrameworks: []string{"net6.0", "net7.0", "net8.0"}},
		{Name: "Modern.D", SupportedFrameworks: []string{"net6.0", "net7.0", "net8.0"}},
		{Name: "Stuck.Legacy", SupportedFrameworks: []string{"net45", "net48"}},
	})
}

func TestUpgradeFullSupportPicksHighest(t *testing.T) {
	r := NewResolver(localOnlyOptions(), upgradeTestCatalog(), nil, nil)

	suggestion := r.SuggestFrameworkUpgrade(context.Background(), "net6.0", []PackageReference{
		{Name: "Modern.A", Version: "1.0.0"},
		{Name: "Modern.B", Version: "1.0.0"},
	})

	if suggestion == nil {
		t.Fatal("expected a suggestion")
	}
	if suggestion.SuggestedFramework != "net8.0" {
		t.Errorf("expected net8.0, got %s", suggestion.SuggestedFramework)
	}
	if len(suggestion.PackagesSupporting) != 2 {
		t.Errorf("expected 2 supporting packages, got %v", suggestion.PackagesSupporting)
	}
}

func TestUpgradeBelowThresholdNoSuggestion(t *testing.T) {
	// 2 of 3 support net8.0: 0.667 < 0.80, so no suggestion.
	r := NewResolver(localOnlyOptions(), upgradeTestCatalog(), nil, nil)

	suggestion := r.SuggestFrameworkUpgrade(context.Background(), "net6.0", []PackageReference{
		{Name: "Modern.A", Version: "1.0.0"},
		{Name: "Modern.B", Version: "1.0.0"},
		{Name: "Stuck.Legacy", Version: "1.0.0"},
	})

	if suggestion != nil {
		t.Fatalf("expected no suggestion at 2/3 support, got %v", suggestion)
	}
}

func TestUpgradeAtThresholdSuggests(t *testing.T) {
	// 4 of 5 support net8.0: exactly 0.80, which meets the threshold.
	r := NewResolver(localOnlyOptions(), upgradeTestCatalog(), nil, nil)

	suggestion := r.SuggestFrameworkUpgrade(context.Background(), "net6.0", []PackageReference{
		{Name: "Modern.A", Version: "1.0.0"},
		{Name: "Modern.B", Version: "1.0.0"},
		{Name: "Modern.C", Version: "1.0.0"},
		{Name: "Modern.D", Version: "1.0.0"},
		{Name: "Stuck.Legacy", Version: "1.0.0"},
	})

	if suggestion == nil {
		t.Fatal("expected a suggestion at 4/5 support")
	}
	if suggestion.SuggestedFramework != "net8.0" {
		t.Errorf("expected net8.0, got %s", suggestion.SuggestedFramework)
	}
	if len(suggestion.PackagesSupporting) != 4 {
		t.Errorf("expected 4 supporting packages, got %v", suggestion.PackagesSupporting)
	}
}

func TestUpgradeUnknownMonikerNoSuggestion(t *testing.T) {
	r := NewResolver(localOnlyOptions(), upgradeTestCatalog(), nil, nil)

	if s := r.SuggestFrameworkUpgrade(context.Background(), "netstandard1.3", []PackageReference{
		{Name: "Modern.A", Version: "1.0.0"},
	}); s != nil {
		t.Fatalf("expected no suggestion for unknown moniker, got %v", s)
	}
}

func TestUpgradeVersionMismatchStillSupports(t *testing.T) {
	// A package that merely needs a version bump still counts as
	// supporting the candidate framework.
	catalog := rules.NewCatalog([]rules.Rule{
		{
			Name:                "Modern.A",
			SupportedFrameworks: []string{"net6.0", "net7.0", "net8.0"},
			VersionRules: &rules.VersionRules{
				Global: &rules.VersionBounds{MinVersion: "5.0.0"},
			},
		},
	})
	r := NewResolver(localOnlyOptions(), catalog, nil, nil)

	suggestion := r.SuggestFrameworkUpgrade(context.Background(), "net6.0", []PackageReference{
		{Name: "Modern.A", Version: "1.0.0"},
	})

	if suggestion == nil {
		t.Fatal("expected a suggestion")
	}
	if suggestion.SuggestedFramework != "net8.0" {
		t.Errorf("expected net8.0, got %s", suggestion.SuggestedFramework)
	}
}

func TestUpgradeCaseInsensitiveLookup(t *testing.T) {
	r := NewResolver(localOnlyOptions(), upgradeTestCatalog(), nil, nil)

	suggestion := r.SuggestFrameworkUpgrade(context.Background(), "NET6.0", []PackageReference{
		{Name: "Modern.A", Version: "1.0.0"},
	})

	if suggestion == nil {
		t.Fatal("expected lattice lookup to be case-insensitive")
	}
}

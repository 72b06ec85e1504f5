package compat

import (
	"context"
	"testing"

	"github.com/willibrandon/nugetcompat/registry"
)

func TestCheckProjectSuggestsEFCoreAlternative(t *testing.T) {
	r := newTestResolver(localOnlyOptions(), nil)

	report := r.CheckProject(context.Background(), []PackageReference{
		{Name: "EntityFramework", Version: "6.4.4"},
	}, "net8.0")

	if len(report.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(report.Issues))
	}
	issue := report.Issues[0]
	if issue.Alternative == nil {
		t.Fatal("expected an alternative package suggestion")
	}
	if issue.Alternative.Name != "Microsoft.EntityFrameworkCore" {
		t.Errorf("expected Microsoft.EntityFrameworkCore, got %s", issue.Alternative.Name)
	}
}

func TestCheckProjectNoAlternativeWhenAlternativeIncompatible(t *testing.T) {
	// Grpc.Core 2.46.6 is deprecated, but its replacement only targets
	// modern .NET, so on net48 no alternative is offered.
	r := newTestResolver(localOnlyOptions(), nil)

	report := r.CheckProject(context.Background(), []PackageReference{
		{Name: "Grpc.Core", Version: "2.46.6"},
	}, "net48")

	if len(report.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(report.Issues))
	}
	if report.Issues[0].Type != IssueDeprecated {
		t.Fatalf("expected deprecated, got %s", report.Issues[0].Type)
	}
	if alt := report.Issues[0].Alternative; alt != nil {
		t.Errorf("expected no alternative on net48, got %s", alt.Name)
	}
}

func TestCheckProjectPreservesReferenceOrder(t *testing.T) {
	r := newTestResolver(localOnlyOptions(), nil)

	report := r.CheckProject(context.Background(), []PackageReference{
		{Name: "System.Web.Mvc", Version: "5.2.9"},
		{Name: "Serilog", Version: "3.1.1"},
		{Name: "EntityFramework", Version: "6.4.4"},
		{Name: "Microsoft.AspNet.SignalR", Version: "2.4.3"},
	}, "net8.0")

	if len(report.Issues) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(report.Issues))
	}
	want := []string{"System.Web.Mvc", "EntityFramework", "Microsoft.AspNet.SignalR"}
	for i, name := range want {
		if report.Issues[i].PackageName != name {
			t.Errorf("issue %d: expected %s, got %s", i, name, report.Issues[i].PackageName)
		}
	}
	if report.CorrelationID == "" {
		t.Error("expected a correlation id on the report")
	}
}

func TestCheckProjectSuggestedVersion(t *testing.T) {
	// Metadata lookups fail so the local catalog produces the verdict,
	// while the version list drives the suggestion.
	remote := &fakeRemote{
		versions: map[string][]string{
			"Newtonsoft.Json": {"12.0.3", "13.0.1", "13.0.3"},
		},
	}
	r := newTestResolver(DefaultOptions(), remote)

	report := r.CheckProject(context.Background(), []PackageReference{
		{Name: "Newtonsoft.Json", Version: "12.0.3"},
	}, "net8.0")

	if len(report.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(report.Issues))
	}
	if got := report.Issues[0].SuggestedVersion; got != "13.0.3" {
		t.Errorf("expected suggested version 13.0.3, got %q", got)
	}
}

func TestCheckProjectTransitiveIssues(t *testing.T) {
	remote := &fakeRemote{
		infos: map[string]*registry.PackageInfo{
			"Contoso.Web@1.0.0": {
				PackageID:           "Contoso.Web",
				Version:             "1.0.0",
				SupportedFrameworks: []string{"net45"},
				Dependencies: []registry.Dependency{
					{ID: "EntityFramework", Range: "[6.0.0, )"},
					{ID: "Serilog", Range: "[3.0.0, )"},
				},
			},
		},
	}
	r := newTestResolver(DefaultOptions(), remote)

	report := r.CheckProject(context.Background(), []PackageReference{
		{Name: "Contoso.Web", Version: "1.0.0"},
	}, "net8.0")

	if len(report.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(report.Issues))
	}
	transitive := report.Issues[0].TransitiveIssues
	if len(transitive) != 1 {
		t.Fatalf("expected 1 transitive issue, got %d", len(transitive))
	}
	if transitive[0].DependencyName != "EntityFramework" {
		t.Errorf("expected EntityFramework transitive issue, got %s", transitive[0].DependencyName)
	}
	if transitive[0].ParentPackage != "Contoso.Web" {
		t.Errorf("expected parent Contoso.Web, got %s", transitive[0].ParentPackage)
	}
}

func TestCheckProjectCleanProject(t *testing.T) {
	r := newTestResolver(localOnlyOptions(), nil)

	report := r.CheckProject(context.Background(), []PackageReference{
		{Name: "Serilog", Version: "3.1.1"},
		{Name: "Microsoft.Extensions.Logging", Version: "8.0.0"},
	}, "net8.0")

	if len(report.Issues) != 0 {
		t.Fatalf("expected no issues, got %v", report.Issues)
	}
}

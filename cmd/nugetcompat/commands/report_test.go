package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/willibrandon/nugetcompat/compat"
)

func TestPrintReportClean(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer

	printReport(&buf, &compat.ProjectReport{TargetFramework: "net8.0"}, 5)

	out := buf.String()
	if !strings.Contains(out, "All 5 package references are compatible") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestPrintReportWithIssues(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer

	report := &compat.ProjectReport{
		TargetFramework: "net8.0",
		Issues: []compat.EnhancedIssue{
			{
				Issue: compat.Issue{
					PackageName:     "EntityFramework",
					PackageVersion:  "6.4.4",
					Type:            compat.IssueIncompatible,
					Message:         "EntityFramework is not compatible with net8.0.",
					TargetFramework: "net8.0",
				},
				SuggestedVersion: "6.5.1",
				Alternative: &compat.AlternativePackage{
					Name:   "Microsoft.EntityFrameworkCore",
					Reason: "EF Core is the cross-platform successor.",
				},
			},
		},
	}
	printReport(&buf, report, 3)

	out := buf.String()
	for _, want := range []string{
		"EntityFramework 6.4.4",
		"incompatible",
		"suggested version: 6.5.1",
		"Microsoft.EntityFrameworkCore",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintUpgrade(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer

	printUpgrade(&buf, &compat.UpgradeSuggestion{
		CurrentFramework:   "net6.0",
		SuggestedFramework: "net8.0",
		Reason:             "All 4 packages support net8.0.",
		PackagesSupporting: []string{"a", "b", "c", "d"},
	}, "net6.0")

	out := buf.String()
	if !strings.Contains(out, "net8.0") || !strings.Contains(out, "All 4 packages") {
		t.Errorf("unexpected output: %q", out)
	}

	buf.Reset()
	printUpgrade(&buf, nil, "net6.0")
	if !strings.Contains(buf.String(), "No framework upgrade recommendation") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/willibrandon/nugetcompat/compat"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
	okColor      = color.New(color.FgGreen)
	detailColor  = color.New(color.Faint)
	packageColor = color.New(color.FgCyan)
)

// printReport renders a project report. Incompatible issues are errors,
// version mismatches and deprecations are warnings.
func printReport(w io.Writer, report *compat.ProjectReport, total int) {
	if len(report.Issues) == 0 {
		okColor.Fprintf(w, "All %d package references are compatible with %s.\n", total, report.TargetFramework)
		return
	}

	fmt.Fprintf(w, "Found %d issue(s) checking %d reference(s) against %s:\n\n", len(report.Issues), total, report.TargetFramework)

	for _, issue := range report.Issues {
		switch issue.Type {
		case compat.IssueIncompatible:
			errorColor.Fprint(w, "  ✗ ")
		default:
			warnColor.Fprint(w, "  ! ")
		}
		packageColor.Fprintf(w, "%s", issue.PackageName)
		if issue.PackageVersion != "" {
			fmt.Fprintf(w, " %s", issue.PackageVersion)
		}
		fmt.Fprintf(w, " [%s]\n", issue.Type)
		fmt.Fprintf(w, "    %s\n", issue.Message)

		if issue.SuggestedVersion != "" {
			detailColor.Fprintf(w, "    suggested version: %s\n", issue.SuggestedVersion)
		}
		if issue.Alternative != nil {
			alt := issue.Alternative.Name
			if issue.Alternative.Version != "" {
				alt += " " + issue.Alternative.Version
			}
			detailColor.Fprintf(w, "    consider instead: %s\n", alt)
			if issue.Alternative.Reason != "" {
				detailColor.Fprintf(w, "      %s\n", issue.Alternative.Reason)
			}
		}
		for _, tr := range issue.TransitiveIssues {
			detailColor.Fprintf(w, "    via dependency %s %s: %s\n", tr.DependencyName, tr.DependencyRange, tr.Message)
		}
		fmt.Fprintln(w)
	}
}

// printUpgrade renders an upgrade suggestion, or a short note when there
// is none.
func printUpgrade(w io.Writer, suggestion *compat.UpgradeSuggestion, currentTfm string) {
	if suggestion == nil {
		fmt.Fprintf(w, "No framework upgrade recommendation for %s.\n", currentTfm)
		return
	}
	okColor.Fprintf(w, "Upgrade recommendation: %s\n", suggestion.SuggestedFramework)
	fmt.Fprintf(w, "  %s\n", suggestion.Reason)
	if len(suggestion.PackagesSupporting) > 0 {
		detailColor.Fprintf(w, "  supporting packages: %d\n", len(suggestion.PackagesSupporting))
	}
}

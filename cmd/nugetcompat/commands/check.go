package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/willibrandon/nugetcompat/cmd/nugetcompat/project"
	"github.com/willibrandon/nugetcompat/compat"
)

// CheckOptions holds the configuration for the check command.
type CheckOptions struct {
	ProjectPath string
	Framework   string
}

// NewCheckCommand creates the 'check' subcommand.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check [PROJECT]",
		Short: "Check package references against the target framework",
		Long: `Check every NuGet package reference in a project file for
compatibility with the project's target framework.

Examples:
  nugetcompat check MyApp.csproj
  nugetcompat check MyApp.csproj --framework net8.0
  nugetcompat check MyApp.csproj --offline`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ProjectPath = args[0]
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Framework, "framework", "", "target framework to check against (defaults to the project's)")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions) error {
	proj, err := project.Load(opts.ProjectPath)
	if err != nil {
		return err
	}

	tfm := opts.Framework
	if tfm == "" {
		tfm = proj.PrimaryFramework()
	}
	if tfm == "" {
		return fmt.Errorf("%s does not declare a TargetFramework; pass --framework", opts.ProjectPath)
	}

	engineOpts, err := loadOptions()
	if err != nil {
		return err
	}
	resolver := newResolver(engineOpts)

	refs := make([]compat.PackageReference, 0, len(proj.References))
	for _, ref := range proj.References {
		refs = append(refs, compat.PackageReference{Name: ref.Name, Version: ref.Version})
	}

	report := resolver.CheckProject(cmd.Context(), refs, tfm)
	printReport(os.Stdout, report, len(refs))

	// Incompatible references fail the command so CI pipelines can gate
	// on the exit code; warnings do not.
	for _, issue := range report.Issues {
		if issue.Type == compat.IssueIncompatible {
			return fmt.Errorf("%d reference(s) are incompatible with %s", countIncompatible(report), tfm)
		}
	}
	return nil
}

func countIncompatible(report *compat.ProjectReport) int {
	n := 0
	for _, issue := range report.Issues {
		if issue.Type == compat.IssueIncompatible {
			n++
		}
	}
	return n
}

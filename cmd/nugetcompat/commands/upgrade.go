package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/willibrandon/nugetcompat/cmd/nugetcompat/project"
	"github.com/willibrandon/nugetcompat/compat"
)

// UpgradeOptions holds the configuration for the upgrade command.
type UpgradeOptions struct {
	ProjectPath string
	Framework   string
}

// NewUpgradeCommand creates the 'upgrade' subcommand.
func NewUpgradeCommand() *cobra.Command {
	opts := &UpgradeOptions{}

	cmd := &cobra.Command{
		Use:   "upgrade [PROJECT]",
		Short: "Suggest a target framework upgrade",
		Long: `Scan newer target frameworks and recommend the highest one that a
large majority of the project's package references support.

This runs a compatibility check per package per candidate framework, so
it is noticeably slower than a plain check when the registry is enabled.

Examples:
  nugetcompat upgrade MyApp.csproj
  nugetcompat upgrade MyApp.csproj --offline`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ProjectPath = args[0]
			return runUpgrade(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Framework, "framework", "", "current framework (defaults to the project's)")

	return cmd
}

func runUpgrade(cmd *cobra.Command, opts *UpgradeOptions) error {
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

	suggestion := resolver.SuggestFrameworkUpgrade(cmd.Context(), tfm, refs)
	printUpgrade(os.Stdout, suggestion, tfm)
	return nil
}

package rules

// Framework lists shared by several seed rules.
var (
	legacyFrameworks = []string{"net40", "net45", "net46", "net47", "net48"}
	modernFrameworks = []string{"netcoreapp3.1", "net5.0", "net6.0", "net7.0", "net8.0", "net9.0", "net10.0"}
)

// DefaultCatalog returns the built-in rule table.
//
// Rule order matters: specific names and patterns come before the broad
// base-library catch-alls at the bottom.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Rule{
		// Classic ASP.NET only ever shipped for .NET Framework.
		{
			Name:                "System.Web.Mvc",
			SupportedFrameworks: legacyFrameworks,
		},
		{
			Name:                "Microsoft.AspNet.WebApi",
			SupportedFrameworks: legacyFrameworks,
		},
		{
			Name:                "Microsoft.AspNet.SignalR",
			SupportedFrameworks: legacyFrameworks,
		},

		// Entity Framework 6 vs EF Core.
		{
			Name:                "EntityFramework",
			SupportedFrameworks: legacyFrameworks,
		},
		{
			Name:                "Microsoft.EntityFrameworkCore",
			SupportedFrameworks: modernFrameworks,
			VersionRules: &VersionRules{
				PerFramework: map[string]*VersionBounds{
					"netcoreapp3.1": {MaxVersion: "5.0.17"},
					"net6.0":        {MaxVersion: "7.0.20"},
				},
			},
		},

		// ASP.NET Core, Blazor, SignalR Core are all under this namespace.
		{
			Pattern:             "Microsoft.AspNetCore.*",
			SupportedFrameworks: modernFrameworks,
		},

		// gRPC: the native Grpc.Core line ended; Grpc.Net targets modern .NET.
		{
			Name:               "Grpc.Core",
			DeprecatedVersions: []string{"2.46.6", "2.46.5", "2.46.4"},
		},
		{
			Pattern:             "Grpc.Net.*",
			SupportedFrameworks: modernFrameworks,
		},

		// JSON libraries.
		{
			Name: "Newtonsoft.Json",
			VersionRules: &VersionRules{
				Global: &VersionBounds{MinVersion: "13.0.1"},
			},
		},
		{
			Name: "System.Text.Json",
			VersionRules: &VersionRules{
				Global: &VersionBounds{MinVersion: "4.7.2"},
			},
		},

		// Test frameworks run everywhere recent.
		{
			Name: "xunit",
			VersionRules: &VersionRules{
				Global: &VersionBounds{MinVersion: "2.4.1"},
			},
		},
		{Name: "NUnit"},
		{Name: "MSTest.TestFramework"},

		// Logging.
		{Name: "Serilog"},
		{Name: "NLog"},

		// Validation and mediator.
		{
			Name: "FluentValidation",
			VersionRules: &VersionRules{
				Global: &VersionBounds{MinVersion: "11.0.0"},
			},
		},
		{
			Name: "MediatR",
			VersionRules: &VersionRules{
				Global: &VersionBounds{MinVersion: "12.0.0"},
			},
		},

		// Microsoft.Extensions.* ships for every supported target.
		{Pattern: "Microsoft.Extensions.*"},

		// Base-library catch-alls: broadly compatible from a low floor
		// upward. The net5.0 floor is inert for every family that exists
		// in practice (under the family ordering all non-"net" families
		// sort above it, and "net" below 5.0 is spelled netXX compact),
		// which is the intent: known namespaces never block.
		{Pattern: "System.*", MinFramework: "net5.0"},
		{Pattern: "Microsoft.*", MinFramework: "net5.0"},
	})
}

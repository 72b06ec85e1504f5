package registry

import "strings"

// NormalizeFrameworkName converts the framework name formats seen in
// registration documents to the short TFM folder form:
//
//   - embedded version: ".NETStandard2.0" -> "netstandard2.0"
//   - separate version: ".NETCoreApp,Version=v3.1" -> "netcoreapp3.1"
//   - already short:    "net6.0" -> "net6.0" (lowercased passthrough)
//
// .NET Framework versions collapse to the compact dotless form
// (".NETFramework4.8" -> "net48"). Names that match none of the known
// identifiers are returned lowercased.
func NormalizeFrameworkName(frameworkName string) string {
	if frameworkName == "" {
		return ""
	}

	if !strings.HasPrefix(frameworkName, ".") && !strings.Contains(frameworkName, ",") {
		return strings.ToLower(frameworkName)
	}

	parts := strings.Split(frameworkName, ",")
	identifier := parts[0]

	var short string
	switch {
	case strings.HasPrefix(identifier, ".NETStandard"):
		short = "netstandard"
		identifier = strings.TrimPrefix(identifier, ".NETStandard")
	case strings.HasPrefix(identifier, ".NETCoreApp"):
		short = "netcoreapp"
		identifier = strings.TrimPrefix(identifier, ".NETCoreApp")
	case strings.HasPrefix(identifier, ".NETFramework"):
		short = "net"
		identifier = strings.TrimPrefix(identifier, ".NETFramework")
	default:
		return strings.ToLower(frameworkName)
	}

	version := identifier
	if version == "" {
		// Version lives in a separate "Version=vX.Y" component.
		for _, part := range parts[1:] {
			part = strings.TrimSpace(part)
			if v, found := strings.CutPrefix(part, "Version="); found {
				version = strings.TrimPrefix(v, "v")
			}
		}
	}

	if short == "net" {
		// .NET Framework TFMs are dotless: net48, net472.
		version = strings.ReplaceAll(version, ".", "")
	}

	return short + version
}

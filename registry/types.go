// Package registry implements read-only lookups against a NuGet v3 package
// registry: a per-package version index and per-version registration
// metadata.
//
// Both lookups fail soft by contract: the engine treats any transport error,
// non-200 status, or parse failure as "no data" and falls back to its local
// rule catalog. Errors returned here are diagnostics, never hard failures.
package registry

// VersionIndex is the flat-container version list for one package.
// Endpoint: {base}/{package-id-lower}/index.json
type VersionIndex struct {
	Versions []string `json:"versions"`
}

// RegistrationIndex is the top-level registration document for one package.
// Endpoint: {registration-base}/{package-id-lower}/index.json
type RegistrationIndex struct {
	Count int                `json:"count"`
	Items []RegistrationPage `json:"items"`
}

// RegistrationPage is a page of registration entries.
type RegistrationPage struct {
	ID    string             `json:"@id"`
	Count int                `json:"count"`
	Items []RegistrationLeaf `json:"items,omitempty"`
	Lower string             `json:"lower"`
	Upper string             `json:"upper"`
}

// RegistrationLeaf is a single package version registration.
type RegistrationLeaf struct {
	ID           string        `json:"@id"`
	CatalogEntry *CatalogEntry `json:"catalogEntry"`
}

// CatalogEntry contains per-version package metadata.
type CatalogEntry struct {
	PackageID        string            `json:"id"`
	Version          string            `json:"version"`
	Listed           *bool             `json:"listed,omitempty"`
	Deprecation      *Deprecation      `json:"deprecation,omitempty"`
	DependencyGroups []DependencyGroup `json:"dependencyGroups,omitempty"`
}

// Deprecation is the registry's deprecation notice for a package version.
type Deprecation struct {
	Message          string            `json:"message,omitempty"`
	Reasons          []string          `json:"reasons,omitempty"`
	AlternatePackage *AlternatePackage `json:"alternatePackage,omitempty"`
}

// AlternatePackage names the registry-recommended replacement.
type AlternatePackage struct {
	ID    string `json:"id"`
	Range string `json:"range,omitempty"`
}

// DependencyGroup holds dependencies for one target framework.
type DependencyGroup struct {
	TargetFramework string       `json:"targetFramework,omitempty"`
	Dependencies    []Dependency `json:"dependencies,omitempty"`
}

// Dependency is a single declared package dependency.
type Dependency struct {
	ID    string `json:"id"`
	Range string `json:"range,omitempty"`
}

// PackageInfo is the engine-facing digest of one package version's metadata.
type PackageInfo struct {
	PackageID string
	Version   string

	// Deprecated is true when the registry carries a deprecation notice.
	Deprecated         bool
	DeprecationMessage string

	// AlternatePackage is the registry-recommended replacement, if any.
	AlternatePackage string

	// SupportedFrameworks is derived from the dependency group TFMs.
	// May legitimately be empty even for framework-specific packages;
	// an empty list means "inconclusive", not "supports nothing".
	SupportedFrameworks []string

	// Dependencies is the one-level declared dependency list, taken from
	// the first non-empty dependency group. Extraction is intentionally
	// shallow and may be empty even when dependencies exist.
	Dependencies []Dependency
}

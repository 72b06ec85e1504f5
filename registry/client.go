package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/willibrandon/nugetcompat/httpclient"
	"github.com/willibrandon/nugetcompat/observability"
)

const (
	// DefaultFlatContainerURL is the nuget.org package version index base.
	DefaultFlatContainerURL = "https://api.nuget.org/v3-flatcontainer"

	// DefaultRegistrationURL is the nuget.org registration metadata base.
	DefaultRegistrationURL = "https://api.nuget.org/v3/registration5-gz-semver2"
)

// Client performs registry lookups.
type Client struct {
	httpClient       *httpclient.Client
	flatContainerURL string
	registrationURL  string
	logger           observability.Logger
}

// Config holds registry client configuration.
type Config struct {
	FlatContainerURL string
	RegistrationURL  string
	Logger           observability.Logger
}

// NewClient creates a registry client.
func NewClient(httpClient *httpclient.Client, cfg *Config) *Client {
	if cfg == nil {
		cfg = &Config{}
	}
	flatURL := cfg.FlatContainerURL
	if flatURL == "" {
		flatURL = DefaultFlatContainerURL
	}
	regURL := cfg.RegistrationURL
	if regURL == "" {
		regURL = DefaultRegistrationURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = observability.NewNullLogger()
	}

	return &Client{
		httpClient:       httpClient,
		flatContainerURL: strings.TrimSuffix(flatURL, "/"),
		registrationURL:  strings.TrimSuffix(regURL, "/"),
		logger:           logger,
	}
}

// ListVersions returns all published versions for a package, oldest first
// (the registry's own order, which ascends by version).
func (c *Client) ListVersions(ctx context.Context, packageID string) ([]string, error) {
	url := fmt.Sprintf("%s/%s/index.json", c.flatContainerURL, strings.ToLower(packageID))

	var index VersionIndex
	if err := c.getJSON(ctx, url, &index); err != nil {
		observability.RegistryRequestsTotal.WithLabelValues("versions", "unavailable").Inc()
		c.logger.DebugContext(ctx, "Version index unavailable for {Package}: {Error}", packageID, err)
		return nil, err
	}
	observability.RegistryRequestsTotal.WithLabelValues("versions", "ok").Inc()
	c.logger.DebugContext(ctx, "Listed {Count} versions for {Package}", len(index.Versions), packageID)

	return index.Versions, nil
}

// GetPackageInfo retrieves the metadata digest for one package version.
// An empty version selects the latest registration entry.
func (c *Client) GetPackageInfo(ctx context.Context, packageID, version string) (*PackageInfo, error) {
	url := fmt.Sprintf("%s/%s/index.json", c.registrationURL, strings.ToLower(packageID))

	var index RegistrationIndex
	if err := c.getJSON(ctx, url, &index); err != nil {
		observability.RegistryRequestsTotal.WithLabelValues("metadata", "unavailable").Inc()
		c.logger.DebugContext(ctx, "Registration index unavailable for {Package}: {Error}", packageID, err)
		return nil, err
	}

	entry := findCatalogEntry(&index, version)
	if entry == nil {
		observability.RegistryRequestsTotal.WithLabelValues("metadata", "unavailable").Inc()
		if version == "" {
			return nil, fmt.Errorf("no registration entries for %q", packageID)
		}
		return nil, fmt.Errorf("version %q not found for package %q", version, packageID)
	}
	observability.RegistryRequestsTotal.WithLabelValues("metadata", "ok").Inc()

	return digest(entry), nil
}

// getJSON fetches and decodes one JSON document.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s returned %d: %s", url, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// findCatalogEntry locates the entry for version, or the last (highest)
// entry when version is empty. Only inline page items are searched; paged
// registrations without inline items resolve to nil, which callers treat
// as inconclusive.
func findCatalogEntry(index *RegistrationIndex, version string) *CatalogEntry {
	var last *CatalogEntry
	for i := range index.Items {
		for j := range index.Items[i].Items {
			entry := index.Items[i].Items[j].CatalogEntry
			if entry == nil {
				continue
			}
			if version != "" && strings.EqualFold(entry.Version, version) {
				return entry
			}
			last = entry
		}
	}
	if version == "" {
		return last
	}
	return nil
}

// digest reduces a catalog entry to the engine-facing PackageInfo.
func digest(entry *CatalogEntry) *PackageInfo {
	info := &PackageInfo{
		PackageID: entry.PackageID,
		Version:   entry.Version,
	}

	if entry.Deprecation != nil {
		info.Deprecated = true
		info.DeprecationMessage = entry.Deprecation.Message
		if alt := entry.Deprecation.AlternatePackage; alt != nil {
			info.AlternatePackage = alt.ID
		}
	}

	seen := make(map[string]bool)
	for _, group := range entry.DependencyGroups {
		tfm := NormalizeFrameworkName(group.TargetFramework)
		if tfm != "" && !seen[tfm] {
			seen[tfm] = true
			info.SupportedFrameworks = append(info.SupportedFrameworks, tfm)
		}
		// Shallow dependency extraction: take the first non-empty group.
		if len(info.Dependencies) == 0 && len(group.Dependencies) > 0 {
			info.Dependencies = group.Dependencies
		}
	}

	return info
}

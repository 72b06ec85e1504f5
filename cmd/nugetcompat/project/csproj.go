// Package project reads the subset of SDK-style csproj files the checker
// needs: the target framework and the package reference list. It never
// writes project files.
package project

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

// rootElement is the <Project> document root.
type rootElement struct {
	XMLName        xml.Name        `xml:"Project"`
	Sdk            string          `xml:"Sdk,attr,omitempty"`
	PropertyGroups []propertyGroup `xml:"PropertyGroup"`
	ItemGroups     []itemGroup     `xml:"ItemGroup"`
}

type propertyGroup struct {
	TargetFramework  string `xml:"TargetFramework,omitempty"`
	TargetFrameworks string `xml:"TargetFrameworks,omitempty"`
}

type itemGroup struct {
	PackageReferences []packageReference `xml:"PackageReference,omitempty"`
}

type packageReference struct {
	Include string `xml:"Include,attr"`
	Version string `xml:"Version,attr,omitempty"`
	// Some projects put the version in a child element instead.
	VersionElement string `xml:"Version,omitempty"`
}

// Reference is one declared package dependency.
type Reference struct {
	Name    string
	Version string
}

// File is the parsed, read-only view of a project file.
type File struct {
	Path string

	// TargetFrameworks holds every declared TFM. Single-targeted projects
	// have exactly one entry.
	TargetFrameworks []string

	References []Reference
}

// Load reads and parses a csproj file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project file: %w", err)
	}
	return Parse(path, data)
}

// Parse parses csproj content. The path is recorded for error reporting
// only.
func Parse(path string, data []byte) (*File, error) {
	var root rootElement
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	f := &File{Path: path}

	for _, pg := range root.PropertyGroups {
		if pg.TargetFramework != "" {
			f.TargetFrameworks = append(f.TargetFrameworks, strings.TrimSpace(pg.TargetFramework))
		}
		if pg.TargetFrameworks != "" {
			for _, tfm := range strings.Split(pg.TargetFrameworks, ";") {
				if tfm = strings.TrimSpace(tfm); tfm != "" {
					f.TargetFrameworks = append(f.TargetFrameworks, tfm)
				}
			}
		}
	}

	for _, ig := range root.ItemGroups {
		for _, ref := range ig.PackageReferences {
			if ref.Include == "" {
				continue
			}
			version := ref.Version
			if version == "" {
				version = strings.TrimSpace(ref.VersionElement)
			}
			f.References = append(f.References, Reference{
				Name:    ref.Include,
				Version: version,
			})
		}
	}

	return f, nil
}

// PrimaryFramework returns the first declared TFM, empty when none.
func (f *File) PrimaryFramework() string {
	if len(f.TargetFrameworks) == 0 {
		return ""
	}
	return f.TargetFrameworks[0]
}

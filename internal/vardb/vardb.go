package vardb

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultRoot is where Portage keeps the installed-package database.
const DefaultRoot = "/var/db/pkg"

// Package is one installed package as recorded in the vardb. Field
// order is the output order.
type Package struct {
	Category    string `json:"category"`
	Package     string `json:"package"`
	Version     string `json:"version"`
	BuildTime   string `json:"buildtime"`
	Description string `json:"description"`
	Homepage    string `json:"homepage"`
	IUse        string `json:"iuse"`
	Keywords    string `json:"keywords"`
	License     string `json:"license"`
	RDepend     string `json:"rdepend"`
	Repository  string `json:"repository"`
	Slot        string `json:"slot"`
	Use         string `json:"use"`
	EAPI        string `json:"eapi"`
	BinPkgMD5   string `json:"binpkgmd5"`
}

// Atom returns the package's category/name-version identifier.
func (p Package) Atom() string {
	if p.Version == "" {
		return p.Category + "/" + p.Package
	}
	return p.Category + "/" + p.Package + "-" + p.Version
}

// Walk reads the whole vardb under root and returns one Package per
// <root>/<category>/<package>-<version>/ directory. The root must be
// readable; unreadable categories are skipped with a warning.
func Walk(root string) ([]Package, error) {
	categories, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading vardb root: %w", err)
	}

	var packages []Package
	for _, category := range categories {
		if !category.IsDir() {
			continue
		}
		categoryPath := filepath.Join(root, category.Name())
		entries, err := os.ReadDir(categoryPath)
		if err != nil {
			log.Warn("skipping unreadable category", "path", categoryPath, "err", err)
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			packages = append(packages, readPackage(category.Name(), entry.Name(), filepath.Join(categoryPath, entry.Name())))
		}
	}
	return packages, nil
}

// readPackage loads the fact files of one package directory. Missing
// facts default to the empty string.
func readPackage(category, dirName, path string) Package {
	name, version := SplitNameVersion(dirName)
	return Package{
		Category:    category,
		Package:     name,
		Version:     version,
		BuildTime:   readFirstLine(filepath.Join(path, "BUILD_TIME")),
		Description: readFirstLine(filepath.Join(path, "DESCRIPTION")),
		Homepage:    readFirstLine(filepath.Join(path, "HOMEPAGE")),
		IUse:        readFirstLine(filepath.Join(path, "IUSE")),
		Keywords:    readFirstLine(filepath.Join(path, "KEYWORDS")),
		License:     readFirstLine(filepath.Join(path, "LICENSE")),
		RDepend:     readFirstLine(filepath.Join(path, "RDEPEND")),
		Repository:  readFirstLine(filepath.Join(path, "repository")),
		Slot:        readFirstLine(filepath.Join(path, "SLOT")),
		Use:         readFirstLine(filepath.Join(path, "USE")),
		EAPI:        readFirstLine(filepath.Join(path, "EAPI")),
		BinPkgMD5:   readFirstLine(filepath.Join(path, "BINPKGMD5")),
	}
}

// SplitNameVersion splits a package directory name into name and
// version at the first dash-separated component that starts with an
// ASCII digit. A name with no such component has no version.
func SplitNameVersion(dirName string) (name, version string) {
	parts := strings.Split(dirName, "-")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" && parts[i][0] >= '0' && parts[i][0] <= '9' {
			return strings.Join(parts[:i], "-"), strings.Join(parts[i:], "-")
		}
	}
	return dirName, ""
}

// readFirstLine returns the first line of the file, trimmed, or the
// empty string if the file is missing or unreadable.
func readFirstLine(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(content), "\n")
	return strings.TrimSpace(line)
}

package vardb

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSplitNameVersion(t *testing.T) {
	tests := []struct {
		dir     string
		name    string
		version string
	}{
		{"gcc-11.2.0", "gcc", "11.2.0"},
		{"amanda-0-r2", "amanda", "0-r2"},
		{"my-pkg-name-1.2.3-r1", "my-pkg-name", "1.2.3-r1"},
		{"noversion", "noversion", ""},
		{"libxml2-2.12.5", "libxml2", "2.12.5"},
		{"gtk+-3.24.41", "gtk+", "3.24.41"},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			name, version := SplitNameVersion(tt.dir)
			if name != tt.name || version != tt.version {
				t.Errorf("SplitNameVersion(%q) = (%q, %q), want (%q, %q)",
					tt.dir, name, version, tt.name, tt.version)
			}
		})
	}
}

func writeFact(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWalk(t *testing.T) {
	root := t.TempDir()

	pkgDir := filepath.Join(root, "dev-libs", "libxml2-2.12.5")
	if err := os.MkdirAll(pkgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFact(t, pkgDir, "DESCRIPTION", "XML C parser and toolkit\n")
	writeFact(t, pkgDir, "HOMEPAGE", "  https://gitlab.gnome.org/GNOME/libxml2  \n")
	writeFact(t, pkgDir, "SLOT", "2\nsecond line is ignored\n")
	writeFact(t, pkgDir, "EAPI", "8\n")
	writeFact(t, pkgDir, "repository", "gentoo\n")

	bareDir := filepath.Join(root, "virtual", "editor-0-r7")
	if err := os.MkdirAll(bareDir, 0o755); err != nil {
		t.Fatal(err)
	}

	// A stray file at category level must not become a category
	writeFact(t, root, "README", "not a category\n")

	packages, err := Walk(root)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(packages) != 2 {
		t.Fatalf("Walk returned %d packages, want 2", len(packages))
	}

	byAtom := make(map[string]Package)
	for _, p := range packages {
		byAtom[p.Atom()] = p
	}

	libxml, ok := byAtom["dev-libs/libxml2-2.12.5"]
	if !ok {
		t.Fatalf("libxml2 not found; got %v", byAtom)
	}
	if libxml.Description != "XML C parser and toolkit" {
		t.Errorf("Description = %q", libxml.Description)
	}
	if libxml.Homepage != "https://gitlab.gnome.org/GNOME/libxml2" {
		t.Errorf("Homepage = %q (first line should be trimmed)", libxml.Homepage)
	}
	if libxml.Slot != "2" {
		t.Errorf("Slot = %q (only the first line counts)", libxml.Slot)
	}
	if libxml.EAPI != "8" {
		t.Errorf("EAPI = %q", libxml.EAPI)
	}
	if libxml.Repository != "gentoo" {
		t.Errorf("Repository = %q", libxml.Repository)
	}
	if libxml.Keywords != "" {
		t.Errorf("Keywords = %q, want empty for a missing fact file", libxml.Keywords)
	}

	editor, ok := byAtom["virtual/editor-0-r7"]
	if !ok {
		t.Fatalf("virtual/editor not found; got %v", byAtom)
	}
	if editor.Package != "editor" || editor.Version != "0-r7" {
		t.Errorf("split = (%q, %q), want (editor, 0-r7)", editor.Package, editor.Version)
	}
	if editor.Description != "" {
		t.Errorf("Description = %q, want empty", editor.Description)
	}
}

func TestWalkMissingRoot(t *testing.T) {
	if _, err := Walk(filepath.Join(t.TempDir(), "does-not-exist")); err == nil {
		t.Fatal("Walk of a missing root returned no error")
	}
}

func TestAtom(t *testing.T) {
	p := Package{Category: "sys-libs", Package: "zlib", Version: "1.3.1-r1"}
	if got := p.Atom(); got != "sys-libs/zlib-1.3.1-r1" {
		t.Errorf("Atom() = %q", got)
	}
	p = Package{Category: "virtual", Package: "editor"}
	if got := p.Atom(); got != "virtual/editor" {
		t.Errorf("Atom() = %q", got)
	}
}

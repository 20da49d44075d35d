package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestCoreImportsOnly verifies pkg/core only imports the standard library.
// The Golden Rule: the expression model carries no dependencies, so it can
// be embedded anywhere.
func TestCoreImportsOnly(t *testing.T) {
	fset := token.NewFileSet()
	coreDir := "."

	entries, err := os.ReadDir(coreDir)
	if err != nil {
		t.Fatalf("Failed to read core directory: %v", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
			continue
		}
		// Skip test files
		if strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}

		path := filepath.Join(coreDir, entry.Name())
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			continue
		}

		for _, imp := range f.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)

			// Stdlib import paths carry no dots.
			if strings.Contains(importPath, ".") {
				t.Errorf("%s imports forbidden package: %s", entry.Name(), importPath)
			}
		}
	}
}

// TestCoreDoesNotImportInternal verifies pkg/core doesn't import any internal packages.
func TestCoreDoesNotImportInternal(t *testing.T) {
	fset := token.NewFileSet()
	coreDir := "."

	entries, err := os.ReadDir(coreDir)
	if err != nil {
		t.Fatalf("Failed to read core directory: %v", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
			continue
		}
		if strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}

		path := filepath.Join(coreDir, entry.Name())
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			continue
		}

		for _, imp := range f.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)

			if strings.Contains(importPath, "/internal/") {
				t.Errorf("%s imports internal package: %s (core must not import internal packages)", entry.Name(), importPath)
			}
		}
	}
}

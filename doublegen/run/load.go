package run

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"golang.org/x/mod/modfile"
)

// PackageDST parses the non-test Go files in dir and returns their DST
// representation. Fast DST parsing, no type checking.
func PackageDST(dir string) ([]*dst.File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	goFiles := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}

		goFiles = append(goFiles, filepath.Join(dir, name))
	}

	if len(goFiles) == 0 {
		return nil, fmt.Errorf("%w: no .go files in %s", errNoPackageFound, dir)
	}

	fset := token.NewFileSet()
	dec := decorator.NewDecorator(fset)

	allFiles := make([]*dst.File, 0, len(goFiles))

	for _, goFile := range goFiles {
		dstFile, err := dec.ParseFile(goFile, nil, 0)
		if err != nil {
			// Skip files with parse errors
			continue
		}

		allFiles = append(allFiles, dstFile)
	}

	if len(allFiles) == 0 {
		return nil, fmt.Errorf("%w: failed to parse any .go files in %s", errNoPackageFound, dir)
	}

	return allFiles, nil
}

// PackageImportPath resolves the import path of dir by walking up to the
// enclosing go.mod and joining the module path with the relative directory.
func PackageImportPath(dir string, readFile func(string) ([]byte, error)) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	current := abs
	for {
		data, err := readFile(filepath.Join(current, "go.mod"))
		if err == nil {
			modPath := modfile.ModulePath(data)
			if modPath == "" {
				return "", fmt.Errorf("%w in %s", errNoModulePath, current)
			}

			rel, err := filepath.Rel(current, abs)
			if err != nil {
				return "", fmt.Errorf("failed to relativize %s: %w", abs, err)
			}

			if rel == "." {
				return modPath, nil
			}

			return modPath + "/" + filepath.ToSlash(rel), nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("%w above %s", errNoModFile, abs)
		}

		current = parent
	}
}

// unexported variables.
var (
	errNoPackageFound = errors.New("no package found")
	errNoModFile      = errors.New("no go.mod found")
	errNoModulePath   = errors.New("no module path declared")
)

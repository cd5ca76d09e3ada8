// doublegen generates typed stunt doubles for Go interfaces.
// To use it, install it with `go install github.com/mclancy96/stuntdouble/doublegen@latest`
// and in your test files, add a `//go:generate doublegen <interface>` comment to generate a
// typed double for the specified interface. By default, the generated struct will be named
// <Interface>Double. Add a `--name <doublename>` flag to specify a custom name. The
// generated double is placed in a file named generated_<doublename>_test.go, in the same
// package as the file containing the `//go:generate` comment.
package main

import (
	"fmt"
	"os"

	"github.com/dave/dst"

	"github.com/mclancy96/stuntdouble/doublegen/run"
)

// main is the entry point of the doublegen tool.
func main() {
	if os.Args == nil {
		return
	}

	err := run.Run(os.Args, os.Getenv, &realFileSystem{}, &realPackageLoader{}, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// realFileSystem implements run.FileSystem using the os package.
type realFileSystem struct{}

// ReadFile reads the file named by name and returns the contents.
func (fs *realFileSystem) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", name, err)
	}

	return data, nil
}

// WriteFile writes data to the file named by name.
func (fs *realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	err := os.WriteFile(name, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	return nil
}

// realPackageLoader implements run.PackageLoader using direct DST parsing.
type realPackageLoader struct{}

// Load parses the Go files in dir and returns their DST representation.
func (pl *realPackageLoader) Load(dir string) ([]*dst.File, error) {
	files, err := run.PackageDST(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load package in %q: %w", dir, err)
	}

	return files, nil
}

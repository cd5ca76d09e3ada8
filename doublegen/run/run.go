// Package run implements the main logic of the doublegen tool in a testable
// way.
package run

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/dave/dst"
)

// FileSystem is the file access doublegen needs, split out for testing.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// PackageLoader loads the DST representation of the package in a directory.
type PackageLoader interface {
	Load(dir string) ([]*dst.File, error)
}

// GeneratorInfo holds information gathered for one generation run.
type GeneratorInfo struct {
	PkgName            string // package the generated file belongs to (GOPACKAGE)
	GoFile             string // file holding the go:generate directive (GOFILE)
	LocalInterfaceName string
	DoubleName         string
}

// Run executes the doublegen tool logic. On success it writes a Go source
// file with a typed double for the specified interface, next to the
// go:generate directive that invoked it.
func Run(args []string, getEnv func(string) string, fileSys FileSystem, pkgLoader PackageLoader, out io.Writer) error {
	info, err := getGeneratorCallInfo(args, getEnv)
	if err != nil {
		return err
	}

	files, err := pkgLoader.Load(".")
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("%w: loader returned no files", errNoPackageFound)
	}

	sourcePkgName := files[0].Name.Name
	if info.PkgName == "" {
		// Not running under go:generate; target the source package itself.
		info.PkgName = sourcePkgName
	}

	var qualifier, sourceImportPath string

	if strings.HasSuffix(info.PkgName, "_test") {
		qualifier = sourcePkgName

		sourceImportPath, err = PackageImportPath(".", fileSys.ReadFile)
		if err != nil {
			return err
		}
	}

	code, err := Generate(files, info, qualifier, sourceImportPath)
	if err != nil {
		return err
	}

	return WriteGeneratedCode(code, info, fileSys, out)
}

// cliArgs defines the command-line arguments for the generator.
type cliArgs struct {
	Interface string `arg:"positional,required" help:"interface name to generate a double for (e.g. TicketStore)"`
	Name      string `arg:"--name"              help:"name for the generated double (defaults to <Interface>Double)"`
}

// getGeneratorCallInfo returns basic information about the current call to
// the generator.
func getGeneratorCallInfo(args []string, getEnv func(string) string) (GeneratorInfo, error) {
	parsed, err := parseArgs(args)
	if err != nil {
		return GeneratorInfo{}, err
	}

	if strings.Contains(parsed.Interface, ".") {
		return GeneratorInfo{}, fmt.Errorf(
			"%w: %q; run doublegen from the interface's own package", errQualifiedInterface, parsed.Interface)
	}

	// set double name if not provided
	doubleName := parsed.Name
	if doubleName == "" {
		doubleName = parsed.Interface + "Double"
	}

	return GeneratorInfo{
		PkgName:            getEnv("GOPACKAGE"),
		GoFile:             getEnv("GOFILE"),
		LocalInterfaceName: parsed.Interface,
		DoubleName:         doubleName,
	}, nil
}

// parseArgs parses command-line arguments into cliArgs.
func parseArgs(args []string) (cliArgs, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{}, &parsed)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to create argument parser: %w", err)
	}

	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	err = parser.Parse(cmdArgs)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return parsed, nil
}

// unexported variables.
var errQualifiedInterface = errors.New("qualified interface names are not supported")

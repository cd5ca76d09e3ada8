package run

import (
	"fmt"
	"io"
	"strings"

	"github.com/toejough/go-reorder"
)

// WriteGeneratedCode writes the generated code to generated_<doubleName>.go,
// or generated_<doubleName>_test.go when the directive lives in a test
// package or a _test.go file.
func WriteGeneratedCode(code string, info GeneratorInfo, fileSys FileSystem, out io.Writer) error {
	const generatedFilePermissions = 0o600

	filename := "generated_" + info.DoubleName

	isTestFile := strings.HasSuffix(info.PkgName, "_test") || strings.HasSuffix(info.GoFile, "_test.go")
	if isTestFile {
		filename += "_test.go"
	} else {
		filename += ".go"
	}

	// Reorder declarations according to project conventions
	reordered, err := reorder.Source(code)
	if err != nil {
		// If reordering fails, log but continue with original code
		_, _ = fmt.Fprintf(out, "Warning: failed to reorder %s: %v\n", filename, err)

		reordered = code
	}

	err = fileSys.WriteFile(filename, []byte(reordered), generatedFilePermissions)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}

	_, _ = fmt.Fprintf(out, "%s written successfully.\n", filename)

	return nil
}

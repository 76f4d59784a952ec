package path

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

const packageExt = ".pbit"

// Builder resolves output and scratch locations for conversion runs.
// Scratch files live next to the output so the final rename never
// crosses a filesystem boundary.
type Builder struct {
	outputDir string
	uuidFunc  func() string
}

// NewBuilder ...
func NewBuilder(
	outputDir string,
	uuidFunc func() string,
) (*Builder, error) {
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("path %s is not exist", outputDir)
	}

	return &Builder{
		outputDir: outputDir,
		uuidFunc:  uuidFunc,
	}, nil
}

// Output returns the package path for a workbook base name. Characters
// the target application rejects in template names are dropped.
func (b *Builder) Output(base string) string {
	return filepath.Join(b.outputDir, sanitize(base)+packageExt)
}

// Scratch returns a unique hidden location in the output directory.
func (b *Builder) Scratch(name string) string {
	return filepath.Join(b.outputDir, "."+b.uuidFunc()+"-"+filepath.Base(name))
}

func sanitize(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			sb.WriteRune(r)
		}
	}
	clean := strings.TrimSpace(sb.String())
	if clean == "" {
		clean = "workbook"
	}
	return clean
}

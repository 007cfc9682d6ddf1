// pkg/backend/format.go
package backend

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects how directives are rendered
type Format string

const (
	// FormatLines prints one key=value directive per line
	FormatLines Format = "lines"
	// FormatLDFlags prints a single linker command-line fragment
	FormatLDFlags Format = "ldflags"
	// FormatYAML prints the directives as a YAML list
	FormatYAML Format = "yaml"
)

// ParseFormat maps a name to a Format. An empty name is FormatLines.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatLines, nil
	case FormatLines, FormatLDFlags, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown directive format: %q", s)
	}
}

// LDFlags returns the linker arguments for ds
func LDFlags(ds []Directive) []string {
	var args []string
	for _, d := range ds {
		switch {
		case d.Kind == DirectiveSearch:
			args = append(args, "-L"+d.Path)
		case d.Link == LinkFramework:
			args = append(args, "-framework", d.Name)
		default:
			args = append(args, "-l"+d.Name)
		}
	}
	return args
}

// Render writes ds to w in format f
func Render(w io.Writer, ds []Directive, f Format) error {
	switch f {
	case FormatLines, "":
		for _, d := range ds {
			if _, err := fmt.Fprintln(w, d.String()); err != nil {
				return err
			}
		}
		return nil
	case FormatLDFlags:
		_, err := fmt.Fprintln(w, strings.Join(LDFlags(ds), " "))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ds); err != nil {
			return fmt.Errorf("encoding directives: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown directive format: %q", f)
	}
}

// CgoFile returns a Go source file carrying ds as cgo linker flags
func CgoFile(pkg string, ds []Directive) []byte {
	var b strings.Builder
	b.WriteString("// Code generated by ggbuild. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	b.WriteString("/*\n")
	if flags := LDFlags(ds); len(flags) > 0 {
		fmt.Fprintf(&b, "#cgo LDFLAGS: %s\n", strings.Join(flags, " "))
	}
	b.WriteString("*/\n")
	b.WriteString("import \"C\"\n")
	return []byte(b.String())
}

// WriteCgoFile writes CgoFile(pkg, ds) to path
func WriteCgoFile(path, pkg string, ds []Directive) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating link file directory: %w", err)
	}
	if err := os.WriteFile(path, CgoFile(pkg, ds), 0644); err != nil {
		return fmt.Errorf("writing link file: %w", err)
	}
	return nil
}

package types

import (
	"fmt"
	"strings"
)

// DefaultExportFormat is the export line used when no template is given.
const DefaultExportFormat = `export * from "%s"`

// ExportTemplate formats one export line per resolved file.
type ExportTemplate struct {
	// Text is the template body between the backticks
	Text string

	// Expression is the interpolation expression inside ${...}
	Expression string
}

// Placeholder returns the interpolation marker as it appears in Text.
func (t ExportTemplate) Placeholder() string {
	return "${" + t.Expression + "}"
}

// Format substitutes path for every occurrence of the placeholder.
func (t ExportTemplate) Format(path string) string {
	return strings.ReplaceAll(t.Text, t.Placeholder(), path)
}

// LineFormatter turns an export path into an export line.
type LineFormatter interface {
	Format(path string) string
}

// FormatString is a LineFormatter backed by a fmt verb, e.g. DefaultExportFormat.
type FormatString string

// Format implements LineFormatter
func (f FormatString) Format(path string) string {
	return fmt.Sprintf(string(f), path)
}

// ResolvedFile is a file yielded by the resolver.
type ResolvedFile struct {
	// Path is relative to the root file's directory and starts with "./"
	Path string

	// Folder is true when the entry stands for a directory with its own index
	Folder bool
}

// ExportPath returns Path with the first matching source extension removed.
// Extensions are tried in order, so longer ones should come first.
func (f ResolvedFile) ExportPath(extensions []string) string {
	if f.Folder {
		return f.Path
	}
	for _, ext := range extensions {
		if strings.HasSuffix(f.Path, ext) {
			return strings.TrimSuffix(f.Path, ext)
		}
	}
	return f.Path
}

// RegeneratedContent is the ordered output of a run.
type RegeneratedContent struct {
	HeaderLine string
	Lines      []string
}

// String renders the content as rewrite mode persists it: the header line
// followed by one export line per line, each newline-terminated.
func (c RegeneratedContent) String() string {
	var b strings.Builder
	b.WriteString(c.HeaderLine)
	b.WriteString("\n")
	for _, line := range c.Lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

package regenerate

import (
	"strings"

	"github.com/arthur-debert/barrel/pkg/types"
)

// Renderer formats resolved files as export lines
type Renderer struct {
	Formatter  types.LineFormatter
	Extensions []string
}

// Line returns the export line of one file
func (r Renderer) Line(f types.ResolvedFile) string {
	return r.Formatter.Format(f.ExportPath(r.Extensions))
}

// Lines returns the export lines of files, in order
func (r Renderer) Lines(files []types.ResolvedFile) []string {
	lines := make([]string, 0, len(files))
	for _, f := range files {
		lines = append(lines, r.Line(f))
	}
	return lines
}

// Apply returns the content the root file has after persisting lines in
// the given mode.
func Apply(mode types.OperatingMode, original, header string, lines []string) string {
	if mode == types.ModeRewrite {
		return types.RegeneratedContent{HeaderLine: header, Lines: lines}.String()
	}
	if len(lines) == 0 {
		return original
	}
	return original + appendBlock(original, lines)
}

// appendBlock renders lines for appending after existing content. A
// separator is added when existing content lacks a trailing newline.
func appendBlock(existing string, lines []string) string {
	var b strings.Builder
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		b.WriteString("\n")
	}
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

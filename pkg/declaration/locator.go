// Package declaration finds the @index(...) directive in a root file.
//
// Only the first directive in a file is honoured. A second directive further
// down is ignored without a warning; nested or multi-line declarations are
// not supported.
package declaration

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/barrel/pkg/errors"
	"github.com/arthur-debert/barrel/pkg/logging"
	"github.com/arthur-debert/barrel/pkg/types"
)

// directivePattern matches a whole line: leading text, the marker, a
// non-empty parenthesised body and any trailing text. The body capture is
// greedy, so it ends at the last ")" on the line.
var directivePattern = regexp.MustCompile(`(?m)^([^\r\n]*)@index\(([^\r\n]+)\)[^\r\n]*\r?$`)

// Locate returns the first declaration in content.
func Locate(content string) (*types.Declaration, error) {
	logger := logging.GetLogger("declaration")

	loc := directivePattern.FindStringSubmatchIndex(content)
	if loc == nil {
		if strings.Contains(content, types.DeclarationMarker) {
			return nil, errors.New(errors.ErrMalformedDeclaration,
				"found @index( but no closed, non-empty body on the same line")
		}
		return nil, errors.New(errors.ErrDeclarationNotFound, "no @index(...) declaration found")
	}

	// Group 2 always participates when the expression matches; keep the
	// check so a regression surfaces as an error rather than a panic.
	if len(loc) < 6 || loc[4] < 0 {
		return nil, errors.New(errors.ErrMalformedDeclaration, "declaration body could not be captured")
	}

	decl := &types.Declaration{
		Line:       strings.TrimSuffix(content[loc[0]:loc[1]], "\r"),
		Leading:    content[loc[2]:loc[3]],
		RawBody:    content[loc[4]:loc[5]],
		HeaderLine: firstLine(content),
		LineNumber: strings.Count(content[:loc[0]], "\n") + 1,
	}

	logger.Debug().
		Int("line", decl.LineNumber).
		Str("leading", decl.Leading).
		Str("body", decl.RawBody).
		Msg("Located declaration")

	return decl, nil
}

// firstLine returns the first line of content without its terminator.
func firstLine(content string) string {
	line, _, _ := strings.Cut(content, "\n")
	return strings.TrimSuffix(line, "\r")
}

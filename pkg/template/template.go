// Package template extracts the export-line template of a templated
// declaration, e.g.
//
//	// @index(["./*.ts"], (f) => `export { default as X } from "${f.path}"`)
//
// The text between the backticks becomes the template and ${f.path} its
// placeholder; every resolved path is substituted for the placeholder.
package template

import (
	"strings"

	"github.com/arthur-debert/barrel/pkg/errors"
	"github.com/arthur-debert/barrel/pkg/logging"
	"github.com/arthur-debert/barrel/pkg/types"
)

// Extract returns the first backtick-delimited template in body.
func Extract(body string) (*types.ExportTemplate, error) {
	start := strings.IndexByte(body, '`')
	if start < 0 {
		return nil, errors.New(errors.ErrNoExportTemplate, "declaration has no backtick template string")
	}
	end := strings.IndexByte(body[start+1:], '`')
	if end < 0 {
		return nil, errors.New(errors.ErrNoExportTemplate, "template string is not closed")
	}
	text := body[start+1 : start+1+end]

	open := strings.Index(text, "${")
	if open < 0 {
		return nil, errors.Newf(errors.ErrMalformedTemplate, "template %q has no ${...} placeholder", text).
			WithDetail("template", text)
	}
	closing := strings.IndexByte(text[open:], '}')
	if closing < 0 {
		return nil, errors.Newf(errors.ErrMalformedTemplate, "template %q has an unclosed placeholder", text).
			WithDetail("template", text)
	}
	expression := strings.TrimSpace(text[open+2 : open+closing])
	if expression == "" {
		return nil, errors.Newf(errors.ErrMalformedTemplate, "template %q has an empty placeholder", text).
			WithDetail("template", text)
	}

	// The expression is kept as written so Placeholder() reproduces it.
	tmpl := &types.ExportTemplate{
		Text:       text,
		Expression: text[open+2 : open+closing],
	}

	// Only one expression is substituted, so any other ${...} would reach
	// the output verbatim. Repeats of the same expression are fine.
	rest := text[open+closing+1:]
	for {
		next := strings.Index(rest, "${")
		if next < 0 {
			break
		}
		end := strings.IndexByte(rest[next:], '}')
		if end < 0 {
			return nil, errors.Newf(errors.ErrMalformedTemplate, "template %q has an unclosed placeholder", text).
				WithDetail("template", text)
		}
		if other := rest[next+2 : next+end]; other != tmpl.Expression {
			return nil, errors.Newf(errors.ErrMalformedTemplate,
				"template %q uses more than one expression: ${%s} and ${%s}", text, tmpl.Expression, other).
				WithDetail("template", text)
		}
		rest = rest[next+end+1:]
	}

	logger := logging.GetLogger("template")
	logger.Debug().
		Str("template", tmpl.Text).
		Str("expression", tmpl.Expression).
		Msg("Extracted export template")

	return tmpl, nil
}

// Formatter returns the line formatter for a run: the declaration's template
// when templated is set, the default format otherwise. The template is not
// looked for at all in the default variant.
func Formatter(body string, templated bool, defaultFormat string) (types.LineFormatter, error) {
	if !templated {
		if defaultFormat == "" {
			defaultFormat = types.DefaultExportFormat
		}
		return types.FormatString(defaultFormat), nil
	}
	tmpl, err := Extract(body)
	if err != nil {
		return nil, err
	}
	return tmpl, nil
}

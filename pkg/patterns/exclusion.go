package patterns

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/barrel/pkg/errors"
	"github.com/arthur-debert/barrel/pkg/types"
)

// ExclusionExpr converts an exclusion glob into an unanchored regular
// expression. The leading "!" and "./" are dropped, literal text is quoted,
// a "**/" run becomes "zero or more directories" and every other run of
// "*" becomes "one or more characters". "?" and bracket expressions are
// matched literally.
func ExclusionExpr(glob string) string {
	glob = strings.TrimPrefix(glob, "!")
	glob = strings.TrimPrefix(glob, "./")

	var b strings.Builder
	for i := 0; i < len(glob); {
		if glob[i] != '*' {
			j := i
			for j < len(glob) && glob[j] != '*' {
				j++
			}
			b.WriteString(regexp.QuoteMeta(glob[i:j]))
			i = j
			continue
		}

		j := i
		for j < len(glob) && glob[j] == '*' {
			j++
		}
		if j-i >= 2 && j < len(glob) && glob[j] == '/' {
			b.WriteString("(.+/)?")
			j++
		} else {
			b.WriteString(".+")
		}
		i = j
	}

	return b.String()
}

// Exclusion is a compiled exclusion pattern.
type Exclusion struct {
	Pattern types.Pattern
	expr    *regexp.Regexp
}

// Match reports whether path contains a match for the exclusion.
func (e Exclusion) Match(path string) bool {
	return e.expr.MatchString(path)
}

// String returns the regular expression the pattern was converted to.
func (e Exclusion) String() string {
	return e.expr.String()
}

// CompileExclusions converts every exclusion pattern.
func CompileExclusions(exclusions []types.Pattern) ([]Exclusion, error) {
	compiled := make([]Exclusion, 0, len(exclusions))
	for _, p := range exclusions {
		expr := ExclusionExpr(p.Text)
		if expr == "" {
			return nil, errors.Newf(errors.ErrInvalidPattern, "exclusion %q matches nothing once converted", p.Text).
				WithDetail("pattern", p.Text)
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidPattern, "cannot convert exclusion %q", p.Text).
				WithDetail("pattern", p.Text)
		}
		compiled = append(compiled, Exclusion{Pattern: p, expr: re})
	}
	return compiled, nil
}

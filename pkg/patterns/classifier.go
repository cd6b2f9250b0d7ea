package patterns

import (
	"strings"
	"unicode"

	"github.com/arthur-debert/barrel/pkg/errors"
	"github.com/arthur-debert/barrel/pkg/logging"
	"github.com/arthur-debert/barrel/pkg/types"
)

// Classify extracts the pattern literals of body and splits them into
// inclusions and exclusions, preserving declaration order within each list.
// Repeated literals are kept once.
func Classify(body string) (types.PatternSet, error) {
	logger := logging.GetLogger("patterns")

	var set types.PatternSet
	seen := make(map[string]bool)

	for _, literal := range Literals(body) {
		if seen[literal] {
			logger.Debug().Str("pattern", literal).Msg("Skipping repeated pattern")
			continue
		}
		seen[literal] = true

		p := types.NewPattern(literal)
		if p.IsExclusion {
			set.Exclusions = append(set.Exclusions, p)
		} else {
			set.Inclusions = append(set.Inclusions, p)
		}
	}

	if len(set.Exclusions) > types.MaxExclusions {
		return types.PatternSet{}, errors.Newf(errors.ErrTooManyExclusions,
			"%d exclusion patterns declared, at most %d are allowed",
			len(set.Exclusions), types.MaxExclusions).
			WithDetail("count", len(set.Exclusions))
	}

	logger.Debug().
		Int("inclusions", len(set.Inclusions)).
		Int("exclusions", len(set.Exclusions)).
		Msg("Classified patterns")

	return set, nil
}

// Literals returns the unquoted pattern literals of body in order.
func Literals(body string) []string {
	var literals []string

	for i := 0; i < len(body); i++ {
		switch c := body[i]; c {
		case '`':
			end := strings.IndexByte(body[i+1:], '`')
			if end < 0 {
				return literals
			}
			i += end + 1
		case '"', '\'':
			end := strings.IndexByte(body[i+1:], c)
			if end < 0 {
				return literals
			}
			literal := body[i+1 : i+1+end]
			i += end + 1
			if isElement(body, i+1) && validLiteral(literal) {
				literals = append(literals, literal)
			}
		}
	}

	return literals
}

// isElement reports whether the character at pos terminates an array element.
func isElement(body string, pos int) bool {
	if pos >= len(body) {
		return true
	}
	switch body[pos] {
	case ',', ']', ')':
		return true
	}
	return false
}

func validLiteral(literal string) bool {
	if literal == "" {
		return false
	}
	return strings.IndexFunc(literal, unicode.IsSpace) < 0
}

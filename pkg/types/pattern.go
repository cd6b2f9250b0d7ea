package types

import "strings"

// MaxExclusions is the largest number of exclusion patterns a declaration
// may carry.
const MaxExclusions = 9

// Pattern is one quoted glob literal from a declaration body.
type Pattern struct {
	// Text is the literal as written, including a leading "!"
	Text string

	// IsExclusion is true when Text starts with "!"
	IsExclusion bool
}

// NewPattern classifies a raw literal.
func NewPattern(text string) Pattern {
	return Pattern{
		Text:        text,
		IsExclusion: strings.HasPrefix(text, "!"),
	}
}

// Glob returns the pattern without its negation marker.
func (p Pattern) Glob() string {
	return strings.TrimPrefix(p.Text, "!")
}

func (p Pattern) String() string {
	return p.Text
}

// PatternSet holds the classified patterns of a declaration, each list in
// declaration order.
type PatternSet struct {
	Inclusions []Pattern
	Exclusions []Pattern
}

// Empty reports whether the set has no inclusion patterns.
func (s PatternSet) Empty() bool {
	return len(s.Inclusions) == 0
}

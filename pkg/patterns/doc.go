// Package patterns classifies the glob literals of a declaration body into
// inclusion and exclusion patterns.
//
// The body is scanned with a small tokenizer, not parsed: a quoted literal
// (double or single quotes) counts as a pattern when it contains no
// whitespace and is immediately followed by ",", "]", ")" or the end of the
// body. Backtick-delimited template strings are skipped entirely. Escaped
// quotes inside a literal are not supported; a backslash is kept as an
// ordinary character and the literal ends at the next matching quote.
//
// Exclusion patterns are downgraded to unanchored regular expressions by
// ExclusionExpr. The conversion cannot express anchors or character classes.
package patterns

package types

// DeclarationMarker is the literal that introduces a directive.
const DeclarationMarker = "@index("

// Declaration is the directive line located in a root file.
type Declaration struct {
	// Line is the full text of the line carrying the directive
	Line string

	// Leading is the text before the marker, e.g. "// "
	Leading string

	// RawBody is everything between the marker's parentheses
	RawBody string

	// HeaderLine is the first line of the root file, kept verbatim on rewrite
	HeaderLine string

	// LineNumber is the 1-based line of the directive
	LineNumber int
}

// OperatingMode selects how generated export lines are persisted.
type OperatingMode string

const (
	// ModeAppend appends export lines below the existing content as they
	// are produced. Repeated runs duplicate lines.
	ModeAppend OperatingMode = "append"

	// ModeRewrite truncates the root file and writes the header line
	// followed by every export line in one write.
	ModeRewrite OperatingMode = "rewrite"
)

// Valid reports whether m is a known mode.
func (m OperatingMode) Valid() bool {
	return m == ModeAppend || m == ModeRewrite
}

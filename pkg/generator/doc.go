// Package generator runs the barrel pipeline on one root file.
//
// The stages run in order and the first failure ends the run:
//
//	read      the root file is read whole
//	locate    the @index(...) directive is found
//	classify  quoted literals become inclusion and exclusion patterns
//	template  the export line format is chosen (templated runs only)
//	resolve   each inclusion pattern is expanded below the root directory
//	write     export lines are persisted by the mode's sink
//
// Nothing touches the filesystem beyond the initial read until every
// declaration-level check has passed, so a declaration with too many
// exclusions or a broken template never causes a directory walk.
package generator

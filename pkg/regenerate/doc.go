// Package regenerate turns resolved files into export lines and persists
// them to the root file.
//
// Two sinks implement the two operating modes. The append sink writes each
// pattern's lines as soon as they are produced and leaves the existing
// content untouched, so running it twice duplicates every line. The rewrite
// sink buffers everything and replaces the file in a single write with the
// original first line followed by the export lines; running it twice on an
// unchanged tree gives byte-identical output.
package regenerate

// Package resolver expands inclusion patterns into the files a barrel
// re-exports.
//
// Each pattern is globbed (doublestar syntax) against the directory holding
// the root file. Candidates then pass three filters in order:
//
//   - the fixed ignore set: anything under a testUtils or __tests__
//     directory, files named types.d.ts or index.ts, and the root file itself;
//   - the declaration's exclusion patterns, tested against the candidate's
//     full path (see patterns.ExclusionExpr);
//   - with folder exports enabled, files below a subdirectory that has its
//     own index.ts collapse into one entry for that subdirectory.
//
// Symlinked directories are never descended into. A symlink to a regular
// file is exported; a link that cannot be resolved is a per-candidate
// resolution error, which either aborts the run or is logged and skipped.
//
// Results follow the order of the directory walk, which is lexical per
// directory for the filesystems used here but is not sorted across
// directories and may differ between platforms.
package resolver

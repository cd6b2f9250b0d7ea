// Package testutil provides utilities for testing barrel components.
//
// Key components:
//   - Project: an in-memory source tree (afero MemMapFs) with a root file,
//     used by resolver, regenerator and generator tests
//   - CreateTree: writes a source tree below a real temporary directory,
//     for tests that need symlinks or the OS filesystem
//
// All test data should be defined inline, not in external files.
package testutil

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// CreateFile creates a file with the given content in the specified directory.
// It fails the test if the file cannot be created.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(name))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}

	return path
}

// CreateTree writes every file of files below dir
func CreateTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		CreateFile(t, dir, name, content)
	}
}

// CreateSymlink creates a symlink at name (relative to dir) pointing to target.
// The test is skipped on platforms where symlinks cannot be created.
func CreateSymlink(t *testing.T, dir, target, name string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := os.Symlink(target, path); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	return path
}

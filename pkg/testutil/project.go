package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/barrel/pkg/filesystem"
	"github.com/arthur-debert/barrel/pkg/types"
	"github.com/spf13/afero"
)

// ProjectDir is the directory the in-memory root file lives in.
const ProjectDir = "/project/src"

// Project is an in-memory source tree with a root file
type Project struct {
	t        *testing.T
	Mem      afero.Fs
	FS       types.FS
	Dir      string
	RootFile string
}

// NewProject creates an in-memory tree below ProjectDir. files maps
// slash-separated paths relative to ProjectDir to their content; rootFile
// names the file carrying the declaration and must be one of them.
func NewProject(t *testing.T, rootFile string, files map[string]string) *Project {
	t.Helper()

	mem := afero.NewMemMapFs()
	p := &Project{
		t:        t,
		Mem:      mem,
		FS:       filesystem.NewAferoFS(mem),
		Dir:      ProjectDir,
		RootFile: filepath.Join(ProjectDir, filepath.FromSlash(rootFile)),
	}
	for rel, content := range files {
		p.Write(rel, content)
	}
	return p
}

// Write creates or replaces a file in the project
func (p *Project) Write(rel, content string) {
	p.t.Helper()

	path := filepath.Join(p.Dir, filepath.FromSlash(rel))
	if err := p.Mem.MkdirAll(filepath.Dir(path), 0755); err != nil {
		p.t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := afero.WriteFile(p.Mem, path, []byte(content), 0644); err != nil {
		p.t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// ReadRoot returns the current content of the root file
func (p *Project) ReadRoot() string {
	p.t.Helper()

	content, err := afero.ReadFile(p.Mem, p.RootFile)
	if err != nil {
		p.t.Fatalf("Failed to read root file %s: %v", p.RootFile, err)
	}
	return string(content)
}

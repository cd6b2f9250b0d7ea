package filesystem

import (
	"io"
	"io/fs"
	"os"

	"github.com/arthur-debert/barrel/pkg/types"
	"github.com/spf13/afero"
)

// aferoFS implements types.FS using afero
type aferoFS struct {
	fs afero.Fs
}

// NewAferoFS creates a new afero filesystem implementation
func NewAferoFS(fs afero.Fs) types.FS {
	return &aferoFS{fs: fs}
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFS) OpenAppend(name string) (io.WriteCloser, error) {
	return a.fs.OpenFile(name, os.O_WRONLY|os.O_APPEND, 0)
}

func (a *aferoFS) DirFS(dir string) fs.FS {
	return afero.NewIOFS(afero.NewBasePathFs(a.fs, dir))
}

package regenerate

import (
	"io/fs"

	"github.com/arthur-debert/barrel/pkg/errors"
	"github.com/arthur-debert/barrel/pkg/logging"
	"github.com/arthur-debert/barrel/pkg/types"
)

const defaultPerm fs.FileMode = 0644

// Sink receives the export lines of a run, one batch per inclusion pattern
type Sink interface {
	// Emit receives the lines of one pattern
	Emit(lines []string) error

	// Commit is called once after every pattern was emitted successfully
	Commit() error
}

// NewSink returns the sink for mode. original is the root file content as
// read at the start of the run.
func NewSink(mode types.OperatingMode, fsys types.FS, rootFile, original, header string) Sink {
	if mode == types.ModeAppend {
		return &appendSink{fsys: fsys, path: rootFile, last: original}
	}
	return &rewriteSink{fsys: fsys, path: rootFile, header: header}
}

// appendSink writes every batch immediately. A failure part way through a
// run leaves the batches written so far in the file.
type appendSink struct {
	fsys types.FS
	path string
	last string
}

func (s *appendSink) Emit(lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	block := appendBlock(s.last, lines)

	w, err := s.fsys.OpenAppend(s.path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot open %s for append", s.path).
			WithDetail("file", s.path)
	}
	if _, err := w.Write([]byte(block)); err != nil {
		_ = w.Close()
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot append to %s", s.path).
			WithDetail("file", s.path)
	}
	if err := w.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot close %s", s.path).
			WithDetail("file", s.path)
	}

	logger := logging.GetLogger("regenerate")
	logger.Debug().
		Str("file", s.path).
		Int("lines", len(lines)).
		Msg("Appended export lines")

	s.last = block
	return nil
}

func (s *appendSink) Commit() error {
	return nil
}

// rewriteSink buffers all batches and replaces the file on Commit.
type rewriteSink struct {
	fsys   types.FS
	path   string
	header string
	lines  []string
}

func (s *rewriteSink) Emit(lines []string) error {
	s.lines = append(s.lines, lines...)
	return nil
}

func (s *rewriteSink) Commit() error {
	perm := defaultPerm
	if info, err := s.fsys.Stat(s.path); err == nil {
		perm = info.Mode().Perm()
	}

	content := types.RegeneratedContent{HeaderLine: s.header, Lines: s.lines}.String()
	if err := s.fsys.WriteFile(s.path, []byte(content), perm); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", s.path).
			WithDetail("file", s.path)
	}

	logger := logging.GetLogger("regenerate")
	logger.Debug().
		Str("file", s.path).
		Int("lines", len(s.lines)).
		Msg("Rewrote root file")
	return nil
}

// Discard is a sink that persists nothing, used for dry runs and checks
var Discard Sink = discard{}

type discard struct{}

func (discard) Emit([]string) error { return nil }
func (discard) Commit() error       { return nil }

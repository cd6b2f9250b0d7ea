package generator

import (
	"github.com/arthur-debert/barrel/pkg/config"
	"github.com/arthur-debert/barrel/pkg/declaration"
	"github.com/arthur-debert/barrel/pkg/errors"
	"github.com/arthur-debert/barrel/pkg/filesystem"
	"github.com/arthur-debert/barrel/pkg/logging"
	"github.com/arthur-debert/barrel/pkg/patterns"
	"github.com/arthur-debert/barrel/pkg/regenerate"
	"github.com/arthur-debert/barrel/pkg/resolver"
	"github.com/arthur-debert/barrel/pkg/template"
	"github.com/arthur-debert/barrel/pkg/types"
)

// Options contains options for a generation run
type Options struct {
	// RootFile is the file carrying the @index(...) declaration
	RootFile string

	// Config holds the run settings (optional, defaults to config.Default())
	Config *config.Config

	// FileSystem is the filesystem to use (optional, defaults to OS filesystem)
	FileSystem types.FS

	// DryRun computes the new content without writing it
	DryRun bool

	// Check is DryRun that fails with OUT_OF_DATE when the file would change
	Check bool
}

// PatternResult is what one inclusion pattern contributed
type PatternResult struct {
	Pattern types.Pattern
	Files   []types.ResolvedFile
	Lines   []string
}

// Result summarises a run
type Result struct {
	RootFile    string
	Mode        types.OperatingMode
	Declaration *types.Declaration
	Exclusions  []types.Pattern
	Patterns    []PatternResult

	// Original is the root file content before the run
	Original string

	// Content is the root file content after the run. Dry runs compute it
	// without writing.
	Content string

	// Written is true when the file was modified
	Written bool
}

// Lines returns every export line of the run in output order
func (r *Result) Lines() []string {
	var lines []string
	for _, p := range r.Patterns {
		lines = append(lines, p.Lines...)
	}
	return lines
}

// FileCount returns the number of exported files
func (r *Result) FileCount() int {
	n := 0
	for _, p := range r.Patterns {
		n += len(p.Files)
	}
	return n
}

// Changed reports whether the run changes the root file
func (r *Result) Changed() bool {
	return r.Content != r.Original
}

// Diff returns a line diff from Original to Content
func (r *Result) Diff() string {
	return LineDiff(r.Original, r.Content)
}

// Run executes the pipeline on opts.RootFile
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("generator")
	defer logging.LogOperationStart(logger, "generate")()

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode := cfg.OperatingMode()

	data, err := fsys.ReadFile(opts.RootFile)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileUnreadable, "cannot read %s", opts.RootFile).
			WithDetail("file", opts.RootFile)
	}
	original := string(data)

	decl, err := declaration.Locate(original)
	if err != nil {
		return nil, withFile(err, opts.RootFile)
	}

	set, err := patterns.Classify(decl.RawBody)
	if err != nil {
		return nil, withFile(err, opts.RootFile)
	}

	formatter, err := template.Formatter(decl.RawBody, cfg.Templated, cfg.DefaultFormat)
	if err != nil {
		return nil, withFile(err, opts.RootFile)
	}

	exclusions, err := patterns.CompileExclusions(set.Exclusions)
	if err != nil {
		return nil, withFile(err, opts.RootFile)
	}

	// Append mode writes as it resolves, so every pattern is checked
	// before the first write.
	for _, inclusion := range set.Inclusions {
		if err := resolver.ValidatePattern(inclusion); err != nil {
			return nil, withFile(err, opts.RootFile)
		}
	}

	if set.Empty() {
		logger.Debug().Str("file", opts.RootFile).Msg("Declaration has no inclusion patterns")
	}

	logger.Info().
		Str("file", opts.RootFile).
		Str("mode", string(mode)).
		Int("inclusions", len(set.Inclusions)).
		Int("exclusions", len(set.Exclusions)).
		Msg("Generating exports")

	result := &Result{
		RootFile:    opts.RootFile,
		Mode:        mode,
		Declaration: decl,
		Exclusions:  set.Exclusions,
		Original:    original,
	}

	dryRun := opts.DryRun || opts.Check
	sink := regenerate.Discard
	if !dryRun {
		sink = regenerate.NewSink(mode, fsys, opts.RootFile, original, decl.HeaderLine)
	}

	res := resolver.New(resolver.Options{
		RootFile:           opts.RootFile,
		FileSystem:         fsys,
		Exclusions:         exclusions,
		AbortOnError:       cfg.AbortOnResolutionError,
		AllowFolderExports: cfg.AllowFolderExports,
	})
	renderer := regenerate.Renderer{Formatter: formatter, Extensions: cfg.SourceExtensions}

	exported := make(map[string]bool)
	for _, inclusion := range set.Inclusions {
		files, err := res.Resolve(inclusion)
		if err != nil {
			return result, withFile(err, opts.RootFile)
		}

		unique := files[:0]
		for _, f := range files {
			if exported[f.Path] {
				logger.Debug().
					Str("file", f.Path).
					Str("pattern", inclusion.Text).
					Msg("File already exported by an earlier pattern")
				continue
			}
			exported[f.Path] = true
			unique = append(unique, f)
		}

		lines := renderer.Lines(unique)
		if err := sink.Emit(lines); err != nil {
			return result, err
		}
		if !dryRun && mode == types.ModeAppend && len(lines) > 0 {
			result.Written = true
		}

		result.Patterns = append(result.Patterns, PatternResult{
			Pattern: inclusion,
			Files:   unique,
			Lines:   lines,
		})
	}

	if err := sink.Commit(); err != nil {
		return result, err
	}

	result.Content = regenerate.Apply(mode, original, decl.HeaderLine, result.Lines())
	if !dryRun && mode == types.ModeRewrite {
		result.Written = true
	}

	logger.Info().
		Int("files", result.FileCount()).
		Bool("changed", result.Changed()).
		Bool("dry_run", dryRun).
		Msg("Generation finished")

	if opts.Check && result.Changed() {
		return result, errors.Newf(errors.ErrOutOfDate, "%s is out of date", opts.RootFile).
			WithDetail("file", opts.RootFile)
	}

	return result, nil
}

// withFile records the root file on coded errors that do not name one yet
func withFile(err error, rootFile string) error {
	details := errors.GetErrorDetails(err)
	if details == nil {
		return err
	}
	if _, ok := details["root"]; !ok {
		details["root"] = rootFile
	}
	return err
}

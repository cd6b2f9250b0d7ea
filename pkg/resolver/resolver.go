package resolver

import (
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/barrel/pkg/errors"
	"github.com/arthur-debert/barrel/pkg/filesystem"
	"github.com/arthur-debert/barrel/pkg/logging"
	"github.com/arthur-debert/barrel/pkg/patterns"
	"github.com/arthur-debert/barrel/pkg/types"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// folderIndex is the file that marks a subdirectory as having its own barrel.
const folderIndex = "index.ts"

// Options configures a Resolver
type Options struct {
	// RootFile is the path of the file carrying the declaration
	RootFile string

	// FileSystem is the filesystem to use (optional, defaults to OS filesystem)
	FileSystem types.FS

	// Exclusions are the compiled exclusion patterns of the declaration
	Exclusions []patterns.Exclusion

	// AbortOnError makes a per-candidate resolution error fail the run
	// instead of skipping the candidate
	AbortOnError bool

	// AllowFolderExports exports subdirectories that carry their own
	// index.ts as a single entry
	AllowFolderExports bool
}

// Resolver expands inclusion patterns below one root directory
type Resolver struct {
	opts     Options
	rootDir  string
	rootName string
	fsys     fs.FS
	folders  map[string]bool
	logger   zerolog.Logger
}

// New creates a resolver rooted at the directory containing opts.RootFile
func New(opts Options) *Resolver {
	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	rootDir := filepath.Dir(opts.RootFile)

	return &Resolver{
		opts:     opts,
		rootDir:  rootDir,
		rootName: filepath.Base(opts.RootFile),
		fsys:     fsys.DirFS(rootDir),
		folders:  make(map[string]bool),
		logger:   logging.GetLogger("resolver"),
	}
}

// RootDir returns the directory patterns are resolved against
func (r *Resolver) RootDir() string {
	return r.rootDir
}

// Resolve returns the files matching one inclusion pattern, in walk order
func (r *Resolver) Resolve(p types.Pattern) ([]types.ResolvedFile, error) {
	if err := ValidatePattern(p); err != nil {
		return nil, err
	}
	glob := CleanPattern(p.Text)

	r.logger.Debug().
		Str("pattern", glob).
		Str("root", r.rootDir).
		Msg("Resolving pattern")

	var files []types.ResolvedFile
	seen := make(map[string]bool)

	walkOpts := []doublestar.GlobOption{doublestar.WithNoFollow()}
	if r.opts.AbortOnError {
		walkOpts = append(walkOpts, doublestar.WithFailOnIOErrors())
	}

	err := doublestar.GlobWalk(r.fsys, glob, func(rel string, d fs.DirEntry) error {
		file, ok, err := r.candidate(rel, d)
		if err != nil {
			resErr := errors.Wrapf(err, errors.ErrResolution, "cannot resolve %s", rel).
				WithDetail("pattern", p.Text).
				WithDetail("file", rel)
			if r.opts.AbortOnError {
				return resErr
			}
			r.logger.Warn().
				Err(err).
				Str("pattern", p.Text).
				Str("file", rel).
				Msg("Skipping file that could not be resolved")
			return nil
		}
		if !ok || seen[file.Path] {
			return nil
		}
		seen[file.Path] = true

		r.logger.Debug().Str("file", file.Path).Msg("File matched pattern")
		files = append(files, file)
		return nil
	}, walkOpts...)
	if err != nil {
		if errors.GetErrorCode(err) == errors.ErrResolution {
			return nil, err
		}
		return nil, errors.Wrapf(err, errors.ErrResolution, "cannot expand pattern %q", p.Text).
			WithDetail("pattern", p.Text)
	}

	r.logger.Debug().
		Str("pattern", p.Text).
		Int("files", len(files)).
		Msg("Pattern resolved")

	return files, nil
}

// candidate applies the filters to one walk entry. It returns ok=false for
// entries that are filtered out.
func (r *Resolver) candidate(rel string, d fs.DirEntry) (types.ResolvedFile, bool, error) {
	if d.IsDir() {
		return types.ResolvedFile{}, false, nil
	}

	if d.Type()&fs.ModeSymlink != 0 {
		info, err := fs.Stat(r.fsys, rel)
		if err != nil {
			return types.ResolvedFile{}, false, err
		}
		if !info.Mode().IsRegular() {
			return types.ResolvedFile{}, false, nil
		}
	} else if !d.Type().IsRegular() {
		return types.ResolvedFile{}, false, nil
	}

	if rel == r.rootName {
		return types.ResolvedFile{}, false, nil
	}

	folder := ""
	if r.opts.AllowFolderExports {
		folder = r.folderFor(rel)
	}

	// Inside a folder export only the directory part of the ignore set
	// applies: the folder's own index.ts stands for the folder.
	if folder == "" && IsIgnored(rel) || folder != "" && inIgnoredDir(rel) {
		return types.ResolvedFile{}, false, nil
	}

	full := path.Join(filepath.ToSlash(r.rootDir), rel)
	for _, exclusion := range r.opts.Exclusions {
		if exclusion.Match(full) {
			r.logger.Trace().
				Str("file", full).
				Str("exclusion", exclusion.Pattern.Text).
				Msg("File excluded")
			return types.ResolvedFile{}, false, nil
		}
	}

	if folder != "" {
		return types.ResolvedFile{Path: "./" + folder, Folder: true}, true, nil
	}

	return types.ResolvedFile{Path: "./" + rel}, true, nil
}

// folderFor returns the outermost subdirectory of rel that has its own
// index.ts, or "" when there is none.
func (r *Resolver) folderFor(rel string) string {
	dir := path.Dir(rel)
	if dir == "." {
		return ""
	}
	segments := strings.Split(dir, "/")
	for i := 1; i <= len(segments); i++ {
		candidate := strings.Join(segments[:i], "/")
		if r.hasIndex(candidate) {
			return candidate
		}
	}
	return ""
}

func (r *Resolver) hasIndex(dir string) bool {
	if has, ok := r.folders[dir]; ok {
		return has
	}
	info, err := fs.Stat(r.fsys, path.Join(dir, folderIndex))
	has := err == nil && info.Mode().IsRegular()
	r.folders[dir] = has
	return has
}

// ValidatePattern checks that p is a glob the resolver can expand: valid
// doublestar syntax, relative, and without ".." segments.
func ValidatePattern(p types.Pattern) error {
	glob := CleanPattern(p.Text)
	if !doublestar.ValidatePattern(glob) {
		return errors.Newf(errors.ErrInvalidPattern, "invalid glob %q", p.Text).
			WithDetail("pattern", p.Text)
	}
	if escapesRoot(glob) {
		return errors.Newf(errors.ErrInvalidPattern, "pattern %q leaves the root directory", p.Text).
			WithDetail("pattern", p.Text)
	}
	return nil
}

// CleanPattern removes a leading "./". The walk is always rooted at the root
// directory and the glob matcher does not accept the marker.
func CleanPattern(pattern string) string {
	return strings.TrimPrefix(pattern, "./")
}

func escapesRoot(glob string) bool {
	if strings.HasPrefix(glob, "/") {
		return true
	}
	for _, segment := range strings.Split(glob, "/") {
		if segment == ".." {
			return true
		}
	}
	return false
}

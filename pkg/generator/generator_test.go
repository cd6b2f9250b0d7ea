package generator_test

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/barrel/pkg/config"
	"github.com/arthur-debert/barrel/pkg/errors"
	"github.com/arthur-debert/barrel/pkg/filesystem"
	"github.com/arthur-debert/barrel/pkg/generator"
	"github.com/arthur-debert/barrel/pkg/testutil"
	"github.com/arthur-debert/barrel/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const e2eDeclaration = "// @index('./components/**/*.ts', '!./components/**/*.test.ts')"

func e2eProject(t *testing.T) *testutil.Project {
	return testutil.NewProject(t, "index.ts", map[string]string{
		"index.ts":                     e2eDeclaration + "\n",
		"components/Button.ts":         "export const Button = 1\n",
		"components/Button.test.ts":    "test()\n",
		"components/utils/format.ts":   "export const format = 1\n",
		"components/index.ts":          "",
		"components/types.d.ts":        "",
		"components/__tests__/list.ts": "",
	})
}

func withConfig(t *testing.T, modify func(*config.Config)) *config.Config {
	t.Helper()
	cfg := config.Default()
	modify(cfg)
	require.NoError(t, cfg.Validate())
	return cfg
}

func simpleConfig(t *testing.T) *config.Config {
	return withConfig(t, func(c *config.Config) {
		c.Mode = string(types.ModeAppend)
		c.AbortOnResolutionError = false
	})
}

func TestRun_EndToEndRewrite(t *testing.T) {
	p := e2eProject(t)

	result, err := generator.Run(generator.Options{RootFile: p.RootFile, FileSystem: p.FS})
	require.NoError(t, err)

	want := e2eDeclaration + "\n" +
		"export * from \"./components/Button\"\n" +
		"export * from \"./components/utils/format\"\n"
	assert.Equal(t, want, p.ReadRoot())
	assert.Equal(t, want, result.Content)
	assert.True(t, result.Written)
	assert.Equal(t, 2, result.FileCount())
	assert.Equal(t, types.ModeRewrite, result.Mode)
	require.Len(t, result.Patterns, 1)
	assert.Equal(t, "./components/**/*.ts", result.Patterns[0].Pattern.Text)
	require.Len(t, result.Exclusions, 1)
}

func TestRun_RewriteIsIdempotent(t *testing.T) {
	p := e2eProject(t)
	opts := generator.Options{RootFile: p.RootFile, FileSystem: p.FS}

	_, err := generator.Run(opts)
	require.NoError(t, err)
	first := p.ReadRoot()

	second, err := generator.Run(opts)
	require.NoError(t, err)
	assert.Equal(t, first, p.ReadRoot())
	assert.False(t, second.Changed())
}

func TestRun_RewriteKeepsHeaderLine(t *testing.T) {
	p := testutil.NewProject(t, "index.ts", map[string]string{
		"index.ts": "// Copyright ACME\n// @index(['./*.ts'])\nexport * from \"./gone\"\n",
		"a.ts":     "",
	})

	_, err := generator.Run(generator.Options{RootFile: p.RootFile, FileSystem: p.FS})
	require.NoError(t, err)
	assert.Equal(t, "// Copyright ACME\nexport * from \"./a\"\n", p.ReadRoot())
}

func TestRun_AppendDuplicatesAcrossRuns(t *testing.T) {
	declaration := "// @index(['./lib/*.ts'])\n"
	p := testutil.NewProject(t, "index.ts", map[string]string{
		"index.ts": declaration,
		"lib/a.ts": "",
	})
	opts := generator.Options{RootFile: p.RootFile, FileSystem: p.FS, Config: simpleConfig(t)}

	_, err := generator.Run(opts)
	require.NoError(t, err)
	assert.Equal(t, declaration+"export * from \"./lib/a\"\n", p.ReadRoot())

	result, err := generator.Run(opts)
	require.NoError(t, err)
	assert.True(t, result.Written)
	assert.Equal(t, declaration+"export * from \"./lib/a\"\nexport * from \"./lib/a\"\n", p.ReadRoot())
}

func TestRun_DuplicateSuppressionAcrossPatterns(t *testing.T) {
	p := testutil.NewProject(t, "index.ts", map[string]string{
		"index.ts":      "// @index(['./lib/*.ts', './lib/**/*.ts'])\n",
		"lib/a.ts":      "",
		"lib/deep/b.ts": "",
	})

	result, err := generator.Run(generator.Options{RootFile: p.RootFile, FileSystem: p.FS})
	require.NoError(t, err)

	assert.Equal(t, []string{
		`export * from "./lib/a"`,
		`export * from "./lib/deep/b"`,
	}, result.Lines())
	require.Len(t, result.Patterns, 2)
	assert.Len(t, result.Patterns[0].Files, 1)
	assert.Len(t, result.Patterns[1].Files, 1)
}

func TestRun_PatternOrderDrivesOutput(t *testing.T) {
	p := testutil.NewProject(t, "index.ts", map[string]string{
		"index.ts":  "// @index(['./z/*.ts', './a/*.ts'])\n",
		"a/one.ts":  "",
		"z/last.ts": "",
	})

	result, err := generator.Run(generator.Options{RootFile: p.RootFile, FileSystem: p.FS})
	require.NoError(t, err)
	assert.Equal(t, []string{
		`export * from "./z/last"`,
		`export * from "./a/one"`,
	}, result.Lines())
}

func TestRun_Templated(t *testing.T) {
	p := testutil.NewProject(t, "index.ts", map[string]string{
		"index.ts": "// @index(['./*.ts'], f => `export { default as x } from '${f.path}'`)\n",
		"a.ts":     "",
	})
	cfg := withConfig(t, func(c *config.Config) { c.Templated = true })

	_, err := generator.Run(generator.Options{RootFile: p.RootFile, FileSystem: p.FS, Config: cfg})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(p.ReadRoot(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "export { default as x } from './a'", lines[1])
}

func TestRun_ZeroLiteralsIsEmptyExport(t *testing.T) {
	p := testutil.NewProject(t, "index.ts", map[string]string{
		"index.ts": "// @index([])\nexport * from \"./old\"\n",
		"a.ts":     "",
	})

	result, err := generator.Run(generator.Options{RootFile: p.RootFile, FileSystem: p.FS})
	require.NoError(t, err)
	assert.Empty(t, result.Lines())
	assert.Equal(t, "// @index([])\n", p.ReadRoot())
}

func TestRun_ExclusionsOnlyIsEmptyExport(t *testing.T) {
	p := testutil.NewProject(t, "index.ts", map[string]string{
		"index.ts": "// @index(['!./*.test.ts'])\nexport * from \"./old\"\n",
		"a.ts":     "",
	})

	result, err := generator.Run(generator.Options{RootFile: p.RootFile, FileSystem: p.FS})
	require.NoError(t, err)
	assert.Empty(t, result.Patterns)
	assert.Len(t, result.Exclusions, 1)
	assert.Equal(t, "// @index(['!./*.test.ts'])\n", p.ReadRoot())
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		cfg     func(*config.Config)
		code    errors.ErrorCode
	}{
		{
			name:    "no declaration",
			content: "export * from './a'\n",
			code:    errors.ErrDeclarationNotFound,
		},
		{
			name:    "malformed declaration",
			content: "// @index(\n",
			code:    errors.ErrMalformedDeclaration,
		},
		{
			name:    "no template in templated mode",
			content: "// @index(['./*.ts'])\n",
			cfg:     func(c *config.Config) { c.Templated = true },
			code:    errors.ErrNoExportTemplate,
		},
		{
			name:    "template without placeholder",
			content: "// @index(['./*.ts'], f => `export * from 'x'`)\n",
			cfg:     func(c *config.Config) { c.Templated = true },
			code:    errors.ErrMalformedTemplate,
		},
		{
			name:    "template with two expressions",
			content: "// @index(['./*.ts'], f => `export { default as ${f.name} } from '${f.path}'`)\n",
			cfg:     func(c *config.Config) { c.Templated = true },
			code:    errors.ErrMalformedTemplate,
		},
		{
			name:    "invalid pattern",
			content: "// @index(['./[a-.ts'])\n",
			code:    errors.ErrInvalidPattern,
		},
		{
			name:    "pattern leaving the root",
			content: "// @index(['../*.ts'])\n",
			code:    errors.ErrInvalidPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testutil.NewProject(t, "index.ts", map[string]string{
				"index.ts": tt.content,
				"a.ts":     "",
			})
			cfg := config.Default()
			if tt.cfg != nil {
				tt.cfg(cfg)
			}

			_, err := generator.Run(generator.Options{RootFile: p.RootFile, FileSystem: p.FS, Config: cfg})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
			assert.Equal(t, p.RootFile, errors.GetErrorDetails(err)["root"])

			// aborted runs leave the file alone
			assert.Equal(t, tt.content, p.ReadRoot())
		})
	}
}

func TestRun_InvalidLaterPatternLeavesAppendTargetUntouched(t *testing.T) {
	content := "// @index([\"./a/*.ts\", \"./b/[.ts\"])\n"
	p := testutil.NewProject(t, "index.ts", map[string]string{
		"index.ts": content,
		"a/x.ts":   "",
	})

	_, err := generator.Run(generator.Options{RootFile: p.RootFile, FileSystem: p.FS, Config: simpleConfig(t)})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPattern), "got %v", err)
	assert.Equal(t, "./b/[.ts", errors.GetErrorDetails(err)["pattern"])
	assert.Equal(t, content, p.ReadRoot())
}

func TestRun_MissingRootFile(t *testing.T) {
	p := testutil.NewProject(t, "index.ts", map[string]string{"a.ts": ""})

	_, err := generator.Run(generator.Options{RootFile: p.RootFile, FileSystem: p.FS})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileUnreadable))
	assert.Equal(t, p.RootFile, errors.GetErrorDetails(err)["file"])
}

func TestRun_InvalidConfig(t *testing.T) {
	p := e2eProject(t)
	cfg := config.Default()
	cfg.Mode = "sideways"

	_, err := generator.Run(generator.Options{RootFile: p.RootFile, FileSystem: p.FS, Config: cfg})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

// walkSpy fails the test when the tree below the root is accessed
type walkSpy struct {
	types.FS
	t *testing.T
}

func (s walkSpy) DirFS(dir string) fs.FS {
	s.t.Errorf("unexpected directory access: %s", dir)
	return s.FS.DirFS(dir)
}

func (s walkSpy) Stat(name string) (fs.FileInfo, error) {
	s.t.Errorf("unexpected stat: %s", name)
	return s.FS.Stat(name)
}

func (s walkSpy) OpenAppend(name string) (io.WriteCloser, error) {
	s.t.Errorf("unexpected append: %s", name)
	return s.FS.OpenAppend(name)
}

func TestRun_TooManyExclusionsBeforeFilesystemAccess(t *testing.T) {
	var literals []string
	literals = append(literals, "'./**/*.ts'")
	for i := 0; i < 10; i++ {
		literals = append(literals, "'!./skip"+string(rune('a'+i))+"/**'")
	}
	content := "// @index([" + strings.Join(literals, ", ") + "])\n"
	p := testutil.NewProject(t, "index.ts", map[string]string{"index.ts": content})

	_, err := generator.Run(generator.Options{
		RootFile:   p.RootFile,
		FileSystem: walkSpy{FS: p.FS, t: t},
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTooManyExclusions))
	assert.Equal(t, content, p.ReadRoot())
}

func TestRun_DryRun(t *testing.T) {
	p := e2eProject(t)

	result, err := generator.Run(generator.Options{RootFile: p.RootFile, FileSystem: p.FS, DryRun: true})
	require.NoError(t, err)

	assert.False(t, result.Written)
	assert.True(t, result.Changed())
	assert.Equal(t, e2eDeclaration+"\n", p.ReadRoot())

	diff := result.Diff()
	assert.Contains(t, diff, "  "+e2eDeclaration+"\n")
	assert.Contains(t, diff, "+ export * from \"./components/Button\"\n")
	assert.Contains(t, diff, "+ export * from \"./components/utils/format\"\n")
}

func TestRun_DryRunAppend(t *testing.T) {
	p := testutil.NewProject(t, "index.ts", map[string]string{
		"index.ts": "// @index(['./*.ts'])",
		"a.ts":     "",
	})

	result, err := generator.Run(generator.Options{
		RootFile:   p.RootFile,
		FileSystem: p.FS,
		Config:     simpleConfig(t),
		DryRun:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, "// @index(['./*.ts'])\nexport * from \"./a\"\n", result.Content)
	assert.Equal(t, "// @index(['./*.ts'])", p.ReadRoot())
}

func TestRun_Check(t *testing.T) {
	p := e2eProject(t)
	opts := generator.Options{RootFile: p.RootFile, FileSystem: p.FS, Check: true}

	result, err := generator.Run(opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrOutOfDate))
	require.NotNil(t, result)
	assert.False(t, result.Written)

	_, err = generator.Run(generator.Options{RootFile: p.RootFile, FileSystem: p.FS})
	require.NoError(t, err)

	result, err = generator.Run(opts)
	require.NoError(t, err)
	assert.False(t, result.Changed())
}

func TestRun_FolderExports(t *testing.T) {
	p := testutil.NewProject(t, "index.ts", map[string]string{
		"index.ts":          "// @index(['./**/*.ts'])\n",
		"a.ts":              "",
		"widgets/index.ts":  "",
		"widgets/button.ts": "",
		"widgets/card.ts":   "",
	})
	cfg := withConfig(t, func(c *config.Config) { c.AllowFolderExports = true })

	result, err := generator.Run(generator.Options{RootFile: p.RootFile, FileSystem: p.FS, Config: cfg})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		`export * from "./a"`,
		`export * from "./widgets"`,
	}, result.Lines())
}

func TestRun_ResolutionErrorPolicy(t *testing.T) {
	dir := t.TempDir()
	content := "// @index(['./lib/*.ts'])\n"
	root := testutil.CreateFile(t, dir, "index.ts", content)
	testutil.CreateFile(t, dir, "lib/real.ts", "")
	testutil.CreateSymlink(t, dir, filepath.Join(dir, "missing.ts"), "lib/dangling.ts")

	t.Run("abort", func(t *testing.T) {
		_, err := generator.Run(generator.Options{RootFile: root, FileSystem: filesystem.NewOS()})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrResolution), "got %v", err)

		data, readErr := os.ReadFile(root)
		require.NoError(t, readErr)
		assert.Equal(t, content, string(data))
	})

	t.Run("skip", func(t *testing.T) {
		cfg := withConfig(t, func(c *config.Config) { c.AbortOnResolutionError = false })
		result, err := generator.Run(generator.Options{RootFile: root, FileSystem: filesystem.NewOS(), Config: cfg})
		require.NoError(t, err)
		assert.Equal(t, []string{`export * from "./lib/real"`}, result.Lines())
	})
}

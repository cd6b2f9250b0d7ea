package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/barrel/pkg/config"
	"github.com/arthur-debert/barrel/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user config at an empty temp dir
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load(config.LoadOptions{ProjectDir: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_Preset(t *testing.T) {
	isolate(t)

	cfg, err := config.Load(config.LoadOptions{Preset: config.PresetSimple})
	require.NoError(t, err)
	assert.Equal(t, "append", cfg.Mode)
	assert.False(t, cfg.Templated)
	assert.False(t, cfg.AbortOnResolutionError)

	cfg, err = config.Load(config.LoadOptions{Preset: config.PresetTemplated})
	require.NoError(t, err)
	assert.Equal(t, "rewrite", cfg.Mode)
	assert.True(t, cfg.Templated)
	assert.True(t, cfg.AbortOnResolutionError)

	_, err = config.Load(config.LoadOptions{Preset: "nope"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestLoad_Layering(t *testing.T) {
	home := isolate(t)
	project := t.TempDir()

	writeFile(t, filepath.Join(home, "barrel", "config.toml"), `
mode = "append"
allow_folder_exports = true
`)
	writeFile(t, filepath.Join(project, ".barrel.toml"), `
mode = "rewrite"
templated = true
`)

	t.Run("project over user", func(t *testing.T) {
		cfg, err := config.Load(config.LoadOptions{ProjectDir: project})
		require.NoError(t, err)
		assert.Equal(t, "rewrite", cfg.Mode)
		assert.True(t, cfg.Templated)
		assert.True(t, cfg.AllowFolderExports)
	})

	t.Run("files over preset", func(t *testing.T) {
		cfg, err := config.Load(config.LoadOptions{ProjectDir: project, Preset: config.PresetSimple})
		require.NoError(t, err)
		assert.Equal(t, "rewrite", cfg.Mode)
		assert.True(t, cfg.Templated)
		assert.False(t, cfg.AbortOnResolutionError)
	})

	t.Run("env over files", func(t *testing.T) {
		t.Setenv("BARREL_TEMPLATED", "false")
		t.Setenv("BARREL_SOURCE_EXTENSIONS", ".ts,.js")
		cfg, err := config.Load(config.LoadOptions{ProjectDir: project})
		require.NoError(t, err)
		assert.False(t, cfg.Templated)
		assert.Equal(t, []string{".ts", ".js"}, cfg.SourceExtensions)
	})

	t.Run("overrides over env", func(t *testing.T) {
		t.Setenv("BARREL_MODE", "rewrite")
		cfg, err := config.Load(config.LoadOptions{
			ProjectDir: project,
			Overrides:  map[string]interface{}{"mode": "append"},
		})
		require.NoError(t, err)
		assert.Equal(t, "append", cfg.Mode)
	})
}

func TestLoad_YAMLProjectConfig(t *testing.T) {
	isolate(t)
	project := t.TempDir()
	writeFile(t, filepath.Join(project, "barrel.yaml"), "mode: append\nallow_folder_exports: true\n")

	cfg, err := config.Load(config.LoadOptions{ProjectDir: project})
	require.NoError(t, err)
	assert.Equal(t, "append", cfg.Mode)
	assert.True(t, cfg.AllowFolderExports)
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)

	t.Run("invalid toml", func(t *testing.T) {
		project := t.TempDir()
		writeFile(t, filepath.Join(project, ".barrel.toml"), "[invalid toml content")
		_, err := config.Load(config.LoadOptions{ProjectDir: project})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
		assert.Equal(t, filepath.Join(project, ".barrel.toml"), errors.GetErrorDetails(err)["path"])
	})

	t.Run("invalid mode", func(t *testing.T) {
		project := t.TempDir()
		writeFile(t, filepath.Join(project, ".barrel.toml"), `mode = "sideways"`)
		_, err := config.Load(config.LoadOptions{ProjectDir: project})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})
}

func TestFindProjectConfig(t *testing.T) {
	project := t.TempDir()
	assert.Empty(t, config.FindProjectConfig(project))
	assert.Empty(t, config.FindProjectConfig(""))

	writeFile(t, filepath.Join(project, "barrel.yaml"), "mode: append\n")
	assert.Equal(t, filepath.Join(project, "barrel.yaml"), config.FindProjectConfig(project))

	writeFile(t, filepath.Join(project, "barrel.toml"), "mode = \"append\"\n")
	assert.Equal(t, filepath.Join(project, "barrel.toml"), config.FindProjectConfig(project))
}

func TestUserConfigPath(t *testing.T) {
	home := isolate(t)
	assert.Equal(t, filepath.Join(home, "barrel", "config.toml"), config.UserConfigPath())
}

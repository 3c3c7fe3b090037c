package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "README.md", cfg.Project.Source)
	assert.Equal(t, []string{"", "lisp", "src"}, cfg.Target.Dirs)
	assert.Equal(t, ".el", cfg.Target.Extension)
	assert.Equal(t, ";;; Commentary:", cfg.Format.CommentaryMarker)
	assert.Equal(t, ";;; Code:", cfg.Format.CodeMarker)
	assert.Equal(t, ";;", cfg.Format.CommentPrefix)
	assert.Equal(t, 75, cfg.Format.FillColumn)
}

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".commentary.yaml")
	content := "target:\n  file: lisp/special.el\nformat:\n  fill_column: 60\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "lisp/special.el", cfg.Target.File)
	assert.Equal(t, 60, cfg.Format.FillColumn)
	// untouched sections keep their defaults
	assert.Equal(t, "README.md", cfg.Project.Source)
	assert.Equal(t, ";;; Commentary:", cfg.Format.CommentaryMarker)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("COMMENTARY_TARGET_FILE", "env.el")
	t.Setenv("COMMENTARY_ROOT", "/somewhere")
	t.Setenv("COMMENTARY_FILL_COLUMN", "66")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env.el", cfg.Target.File)
	assert.Equal(t, "/somewhere", cfg.Project.Root)
	assert.Equal(t, 66, cfg.Format.FillColumn)
}

func TestLoadConfig_InvalidFillColumn(t *testing.T) {
	t.Setenv("COMMENTARY_FILL_COLUMN", "wide")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".commentary.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target: [unclosed\n"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", "")
	require.NoError(t, err)

	assert.Equal(t, "/data", cfg.DataDir)
	assert.Equal(t, filepath.Join("/data", "todos.db"), cfg.DBFile)
	assert.Empty(t, cfg.SchemaFile)
	assert.Empty(t, cfg.Marker)
	assert.False(t, cfg.DBFileExplicit())
}

func TestLoadLegacyEnvNames(t *testing.T) {
	t.Setenv("DB_FILE", "/srv/todo/todos.db")

	cfg, err := Load("", "")
	require.NoError(t, err)

	assert.Equal(t, "/srv/todo/todos.db", cfg.DBFile)
	assert.Equal(t, "/srv/todo", cfg.DataDir)
	assert.True(t, cfg.DBFileExplicit())
}

func TestLoadPrefixedEnvWinsOverDefaults(t *testing.T) {
	t.Setenv("TODODB_DATA_DIR", "/var/lib/todo")

	cfg, err := Load("", "")
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/todo", cfg.DataDir)
	assert.Equal(t, filepath.Join("/var/lib/todo", "todos.db"), cfg.DBFile)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tododb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"data_dir: /opt/todo\nschema_file: /opt/todo/schema.sql\nmarker: todos\n",
	), 0o644))

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, "/opt/todo", cfg.DataDir)
	assert.Equal(t, filepath.Join("/opt/todo", "todos.db"), cfg.DBFile)
	assert.Equal(t, "/opt/todo/schema.sql", cfg.SchemaFile)
	assert.Equal(t, "todos", cfg.Marker)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "sqlite.env")
	require.NoError(t, os.WriteFile(envFile, []byte("DB_FILE="+filepath.Join(dir, "todos.db")+"\n"), 0o644))
	// godotenv writes into the process environment; undo it.
	t.Cleanup(func() { os.Unsetenv("DB_FILE") })

	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "todos.db"), cfg.DBFile)
}

func TestLoadMissingFiles(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "")
	assert.Error(t, err)

	_, err = Load("", filepath.Join(t.TempDir(), "nope.env"))
	assert.Error(t, err)
}

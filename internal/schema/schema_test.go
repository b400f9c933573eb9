package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDefaultSchema(t *testing.T) {
	stmts := Split(Default())
	require.Len(t, stmts, 5)

	assert.Equal(t, "app_info", TableName(stmts[0]))
	assert.Equal(t, "users", TableName(stmts[1]))
	assert.Equal(t, "todos", TableName(stmts[2]))
	assert.True(t, strings.HasPrefix(strings.ToUpper(stmts[3]), "CREATE INDEX"))
	assert.Equal(t, "todos_set_updated_at", TriggerName(stmts[4]))

	// The trigger body must survive splitting as one statement.
	assert.Contains(t, stmts[4], "BEGIN")
	assert.Contains(t, strings.ToUpper(stmts[4]), "END;")
}

func TestSplitStripsComments(t *testing.T) {
	script := `
-- leading comment
CREATE TABLE IF NOT EXISTS a (
    n INTEGER -- inline comment
);
-- trailing comment
`
	stmts := Split(script)
	require.Len(t, stmts, 1)
	assert.NotContains(t, stmts[0], "--")
	assert.NotContains(t, stmts[0], "comment")
}

func TestSplitKeepsDashesInsideLiterals(t *testing.T) {
	script := `CREATE TABLE IF NOT EXISTS a (
    note TEXT DEFAULT '-- none', -- real comment
    "weird--name" TEXT
);`
	stmts := Split(script)
	require.Len(t, stmts, 1)
	assert.Contains(t, stmts[0], "'-- none'")
	assert.Contains(t, stmts[0], `"weird--name"`)
	assert.NotContains(t, stmts[0], "real comment")
}

func TestSplitMissingTrailingSemicolon(t *testing.T) {
	stmts := Split(`CREATE TABLE IF NOT EXISTS a (n INTEGER)`)
	require.Len(t, stmts, 1)
	assert.Equal(t, "a", TableName(stmts[0]))
}

func TestTableName(t *testing.T) {
	tests := []struct {
		stmt string
		want string
	}{
		{`CREATE TABLE todos (id INTEGER)`, "todos"},
		{`CREATE TABLE IF NOT EXISTS app_info (id INTEGER)`, "app_info"},
		{`create table if not exists users (id integer)`, "users"},
		{`CREATE INDEX IF NOT EXISTS idx ON todos(id)`, ""},
		{`CREATE TRIGGER t AFTER UPDATE ON todos BEGIN SELECT 1; END;`, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TableName(tt.stmt), "stmt: %s", tt.stmt)
	}
}

func TestMarker(t *testing.T) {
	tests := []struct {
		name  string
		stmts []string
		want  string
	}{
		{
			name:  "prefers todos over earlier tables",
			stmts: Split(Default()),
			want:  "todos",
		},
		{
			name:  "first table when no todos",
			stmts: []string{"CREATE TABLE IF NOT EXISTS notes (id INTEGER);", "CREATE TABLE IF NOT EXISTS tags (id INTEGER);"},
			want:  "notes",
		},
		{
			name:  "default when no tables at all",
			stmts: []string{"CREATE INDEX IF NOT EXISTS idx ON notes(id);"},
			want:  DefaultMarker,
		},
		{
			name:  "default for empty schema",
			stmts: nil,
			want:  DefaultMarker,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Marker(tt.stmts))
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns embedded default", func(t *testing.T) {
		script, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), script)
	})

	t.Run("reads asset file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schema.sql")
		require.NoError(t, os.WriteFile(path, []byte("CREATE TABLE IF NOT EXISTS a (n INTEGER);"), 0o644))
		script, err := Load(path)
		require.NoError(t, err)
		assert.Contains(t, script, "CREATE TABLE")
	})

	t.Run("missing asset reports error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.sql"))
		assert.Error(t, err)
	})

	t.Run("empty asset reports error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.sql")
		require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestFallbackShape(t *testing.T) {
	stmts := Split(Fallback)
	require.Len(t, stmts, 1)
	assert.Equal(t, "todos", TableName(stmts[0]))
	assert.Contains(t, stmts[0], "title TEXT NOT NULL")
	assert.Contains(t, stmts[0], "is_completed INTEGER NOT NULL DEFAULT 0")
	assert.Contains(t, stmts[0], "DEFAULT CURRENT_TIMESTAMP")
}

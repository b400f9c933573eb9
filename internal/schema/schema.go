// Package schema owns the todo-db schema definition: the embedded default
// script, the minimal fallback used when a schema asset is missing, and the
// helpers that split a script into statements and derive the structural
// marker probed during bootstrap.
package schema

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// DefaultMarker is the structure probed to decide whether initialization
// already happened when the schema yields no table of its own.
const DefaultMarker = "todos"

//go:embed schema.sql
var defaultSchema string

// Fallback is the minimal built-in definition applied when a requested schema
// asset cannot be read: one table with a generated id, a required title, a
// completion flag defaulting to 0, and a creation timestamp.
const Fallback = `
CREATE TABLE IF NOT EXISTS todos (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    is_completed INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Default returns the embedded full schema script.
func Default() string {
	return defaultSchema
}

// Load reads a schema script from path. An empty path selects the embedded
// default. A missing or unreadable file is not fatal to callers: they are
// expected to fall back to Fallback, so the error is returned for reporting
// rather than wrapped as a failure.
func Load(path string) (string, error) {
	if path == "" {
		return defaultSchema, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading schema asset %s: %w", path, err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return "", fmt.Errorf("schema asset %s is empty", path)
	}
	return string(b), nil
}

// Split breaks a schema script into individual statements. Line comments are
// stripped and trigger bodies (BEGIN ... END;) are kept as one statement so
// the interior semicolons do not split them.
func Split(script string) []string {
	var stmts []string
	var b strings.Builder
	inBody := false

	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			stmts = append(stmts, s)
		}
		b.Reset()
	}

	for _, line := range strings.Split(script, "\n") {
		line = stripLineComment(line)
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")

		upper := strings.ToUpper(trimmed)
		switch {
		case inBody:
			if strings.HasSuffix(upper, "END;") {
				inBody = false
				flush()
			}
		case strings.HasSuffix(upper, "BEGIN"):
			inBody = true
		case strings.HasSuffix(upper, ";"):
			flush()
		}
	}
	flush()
	return stmts
}

// stripLineComment removes a trailing -- comment, leaving quoted literals and
// identifiers alone. Quotes are tracked per line; literals spanning lines are
// not supported.
func stripLineComment(line string) string {
	var inSingle, inDouble bool
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\'':
			if !inDouble {
				inSingle = !inSingle
			}
		case '"':
			if !inSingle {
				inDouble = !inDouble
			}
		case '-':
			if !inSingle && !inDouble && i+1 < len(line) && line[i+1] == '-' {
				return line[:i]
			}
		}
	}
	return line
}

var (
	tableRe   = regexp.MustCompile(`(?is)^\s*CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?["'\x60\[]?([A-Za-z_][A-Za-z0-9_]*)`)
	triggerRe = regexp.MustCompile(`(?is)^\s*CREATE\s+TRIGGER\s+(?:IF\s+NOT\s+EXISTS\s+)?["'\x60\[]?([A-Za-z_][A-Za-z0-9_]*)`)
)

// TableName returns the table created by stmt, or "" if stmt is not a
// CREATE TABLE statement.
func TableName(stmt string) string {
	if m := tableRe.FindStringSubmatch(stmt); m != nil {
		return m[1]
	}
	return ""
}

// TriggerName returns the trigger created by stmt, or "" if stmt is not a
// CREATE TRIGGER statement.
func TriggerName(stmt string) string {
	if m := triggerRe.FindStringSubmatch(stmt); m != nil {
		return m[1]
	}
	return ""
}

// Marker derives the structural marker from a split schema. A table named
// "todos" wins, then the first created table, then DefaultMarker.
func Marker(stmts []string) string {
	first := ""
	for _, stmt := range stmts {
		name := TableName(stmt)
		if name == "" {
			continue
		}
		if name == DefaultMarker {
			return name
		}
		if first == "" {
			first = name
		}
	}
	if first != "" {
		return first
	}
	return DefaultMarker
}

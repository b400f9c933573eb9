package sqlite

import "fmt"

// appInfo holds the metadata rows upserted into app_info on every seed run.
var appInfo = [][2]string{
	{"project_name", "simple-todo-list"},
	{"version", "0.1.0"},
	{"author", "John Doe"},
	{"description", ""},
}

// sampleTodos are inserted only when the todos table is empty.
var sampleTodos = []struct {
	title       string
	description string
	completed   int
}{
	{"Set up project", "Initialize repository and basic structure", 1},
	{"Build backend", "Implement API endpoints for todos", 0},
	{"Create frontend", "Build UI for managing tasks", 0},
	{"Write tests", "Add unit/integration tests", 0},
}

// Seed writes the app_info metadata and, when the todos table holds no rows,
// a handful of sample todos. Safe to run repeatedly: metadata rows are
// upserted and sample todos are never duplicated.
// Returns the number of todos inserted.
func (s *SQLiteStore) Seed() (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}

	// The fallback schema has no app_info table; skip the metadata then.
	hasAppInfo, err := s.StructureExists("app_info")
	if err != nil {
		return 0, err
	}
	if hasAppInfo {
		for _, kv := range appInfo {
			_, err := s.db.Exec(
				`INSERT OR REPLACE INTO app_info (key, value) VALUES (?, ?)`,
				kv[0], kv[1],
			)
			if err != nil {
				return 0, fmt.Errorf("failed to seed app_info %q: %w", kv[0], err)
			}
		}
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM todos`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count todos: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	inserted := 0
	for _, todo := range sampleTodos {
		var err error
		if hasAppInfo {
			_, err = s.db.Exec(
				`INSERT INTO todos (title, description, is_completed) VALUES (?, ?, ?)`,
				todo.title, todo.description, todo.completed,
			)
		} else {
			// The fallback todos table has no description column.
			_, err = s.db.Exec(
				`INSERT INTO todos (title, is_completed) VALUES (?, ?)`,
				todo.title, todo.completed,
			)
		}
		if err != nil {
			return inserted, fmt.Errorf("failed to seed todo %q: %w", todo.title, err)
		}
		inserted++
	}
	return inserted, nil
}

// Stats summarizes the store contents for the status command.
type Stats struct {
	Tables         int `json:"tables"`
	Todos          int `json:"todos"`
	TodosCompleted int `json:"todos_completed"`
}

// CollectStats gathers table and todo counts. Todo counts are zero when the
// todos table does not exist yet.
func (s *SQLiteStore) CollectStats() (Stats, error) {
	var st Stats
	if s.db == nil {
		return st, fmt.Errorf("database not opened")
	}

	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`,
	).Scan(&st.Tables)
	if err != nil {
		return st, fmt.Errorf("failed to count tables: %w", err)
	}

	hasTodos, err := s.StructureExists("todos")
	if err != nil {
		return st, err
	}
	if !hasTodos {
		return st, nil
	}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM todos`).Scan(&st.Todos); err != nil {
		return st, fmt.Errorf("failed to count todos: %w", err)
	}
	err = s.db.QueryRow(`SELECT COUNT(*) FROM todos WHERE is_completed = 1`).Scan(&st.TodosCompleted)
	if err != nil {
		return st, fmt.Errorf("failed to count completed todos: %w", err)
	}
	return st, nil
}

package sqlite

import (
	"database/sql"
	"fmt"
)

// ExecStatement runs a single SQL statement and returns any result rows with
// every column rendered as a string. Statements that produce no rows (DDL,
// INSERT, UPDATE) return an empty result.
func (s *SQLiteStore) ExecStatement(stmt string) ([][]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(stmt)
	if err != nil {
		return nil, fmt.Errorf("statement failed: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var out [][]string
	for rows.Next() {
		raw := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make([]string, len(cols))
		for i, v := range raw {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "NULL"
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("statement failed: %w", err)
	}
	return out, nil
}

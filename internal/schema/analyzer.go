package schema

import (
	"database/sql"
	"fmt"
	"strings"

	"dump-salvage/internal/dialect"
)

// ---------------------------------------------------------------------
// Store introspection
// ---------------------------------------------------------------------

// Tables lists the base tables present in the store.
func Tables(db *sql.DB, d dialect.Dialect) ([]string, error) {
	rows, err := db.Query(d.TablesQuery())
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}
	return tables, nil
}

// Columns lists the columns of table in declaration order. A missing table
// yields an empty list.
func Columns(db *sql.DB, d dialect.Dialect, table string) ([]string, error) {
	rows, err := db.Query(d.ColumnsQuery(), table)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns of %s: %w", table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column (table: %s): %w", table, err)
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns: %w", err)
	}
	return cols, nil
}

// Missing returns the columns of want that are absent from have.
// Names compare case-insensitively, as every supported target resolves them.
func Missing(want *Table, have []string) []*Column {
	present := make(map[string]bool, len(have))
	for _, c := range have {
		// Store with normalized key (UPPERCASE) for robust lookups
		present[strings.ToUpper(c)] = true
	}
	var missing []*Column
	for _, c := range want.Columns {
		if !present[strings.ToUpper(c.Name)] {
			missing = append(missing, c)
		}
	}
	return missing
}

// Covers reports whether every name is a column of t, case-insensitively.
func Covers(t *Table, names []string) bool {
	known := make(map[string]bool, len(t.Columns))
	for _, c := range t.ColumnNames() {
		known[strings.ToUpper(c)] = true
	}
	for _, n := range names {
		if !known[strings.ToUpper(n)] {
			return false
		}
	}
	return len(names) > 0
}

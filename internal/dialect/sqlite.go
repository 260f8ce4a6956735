package dialect

import "fmt"

// SQLiteDialect is the default target: a throwaway database file.
type SQLiteDialect struct{}

func (d *SQLiteDialect) Name() string       { return "sqlite" }
func (d *SQLiteDialect) DriverName() string { return "sqlite" }

func (d *SQLiteDialect) QuoteIdent(name string) string { return quoteWith(name, `"`, `"`) }

func (d *SQLiteDialect) TypeInteger() string   { return "INTEGER" }
func (d *SQLiteDialect) TypeText() string      { return "TEXT" }
func (d *SQLiteDialect) TypeTimestamp() string { return "TEXT" }
func (d *SQLiteDialect) TypeReal() string      { return "REAL" }
func (d *SQLiteDialect) TypeBlob() string      { return "BLOB" }

func (d *SQLiteDialect) DropTableQuery(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", d.QuoteIdent(table))
}

func (d *SQLiteDialect) AddColumnQuery(table, column, colType string) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", d.QuoteIdent(table), d.QuoteIdent(column), colType)
}

func (d *SQLiteDialect) TablesQuery() string {
	return `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`
}

func (d *SQLiteDialect) ColumnsQuery() string {
	return `SELECT name FROM pragma_table_info(?) ORDER BY cid`
}

func (d *SQLiteDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.QuoteIdent(table))
}

func (d *SQLiteDialect) SetupQueries() []string {
	// The store is recreated every run, durability buys nothing.
	return []string{"PRAGMA journal_mode = MEMORY", "PRAGMA synchronous = OFF"}
}

func (d *SQLiteDialect) InsertVerb() string     { return "INSERT OR REPLACE INTO" }
func (d *SQLiteDialect) BackslashEscapes() bool { return false }

func (d *SQLiteDialect) Placeholder(index int) string {
	return "?"
}

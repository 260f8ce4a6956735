package dialect

import (
	"fmt"
)

type PostgresDialect struct{}

func (d *PostgresDialect) Name() string       { return "postgres" }
func (d *PostgresDialect) DriverName() string { return "postgres" }

func (d *PostgresDialect) QuoteIdent(name string) string { return quoteWith(name, `"`, `"`) }

func (d *PostgresDialect) TypeInteger() string   { return "BIGINT" }
func (d *PostgresDialect) TypeText() string      { return "TEXT" }
func (d *PostgresDialect) TypeTimestamp() string { return "TEXT" }
func (d *PostgresDialect) TypeReal() string      { return "DOUBLE PRECISION" }
func (d *PostgresDialect) TypeBlob() string      { return "BYTEA" }

func (d *PostgresDialect) DropTableQuery(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", d.QuoteIdent(table))
}

func (d *PostgresDialect) AddColumnQuery(table, column, colType string) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", d.QuoteIdent(table), d.QuoteIdent(column), colType)
}

func (d *PostgresDialect) TablesQuery() string {
	return `SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() AND table_type = 'BASE TABLE' ORDER BY table_name`
}

func (d *PostgresDialect) ColumnsQuery() string {
	return `SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1 ORDER BY ordinal_position`
}

func (d *PostgresDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.QuoteIdent(table))
}

func (d *PostgresDialect) SetupQueries() []string {
	// Backslashes in dump literals must stay literal.
	return []string{"SET standard_conforming_strings = on"}
}

// Duplicate keys fail the row; it is then dropped in isolation.
func (d *PostgresDialect) InsertVerb() string     { return "INSERT INTO" }
func (d *PostgresDialect) BackslashEscapes() bool { return false }

func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index+1)
}

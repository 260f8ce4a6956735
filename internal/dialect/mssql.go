package dialect

import (
	"fmt"
)

type MSSQLDialect struct{}

func (d *MSSQLDialect) Name() string       { return "sqlserver" }
func (d *MSSQLDialect) DriverName() string { return "sqlserver" }

func (d *MSSQLDialect) QuoteIdent(name string) string { return quoteWith(name, "[", "]") }

func (d *MSSQLDialect) TypeInteger() string   { return "BIGINT" }
func (d *MSSQLDialect) TypeText() string      { return "NVARCHAR(MAX)" }
func (d *MSSQLDialect) TypeTimestamp() string { return "NVARCHAR(MAX)" }
func (d *MSSQLDialect) TypeReal() string      { return "FLOAT" }
func (d *MSSQLDialect) TypeBlob() string      { return "VARBINARY(MAX)" }

// DROP ... IF EXISTS needs SQL Server 2016 or later.
func (d *MSSQLDialect) DropTableQuery(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", d.QuoteIdent(table))
}

func (d *MSSQLDialect) AddColumnQuery(table, column, colType string) string {
	return fmt.Sprintf("ALTER TABLE %s ADD %s %s", d.QuoteIdent(table), d.QuoteIdent(column), colType)
}

func (d *MSSQLDialect) TablesQuery() string {
	return `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`
}

func (d *MSSQLDialect) ColumnsQuery() string {
	return `SELECT COLUMN_NAME FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_NAME = @p1 ORDER BY ORDINAL_POSITION`
}

func (d *MSSQLDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.QuoteIdent(table))
}

func (d *MSSQLDialect) SetupQueries() []string {
	return []string{"SET QUOTED_IDENTIFIER ON"}
}

// A multi-row VALUES list is capped at 1000 rows; longer statements
// fail and are decomposed row by row.
func (d *MSSQLDialect) InsertVerb() string     { return "INSERT INTO" }
func (d *MSSQLDialect) BackslashEscapes() bool { return false }

// Helper: MSSQL Driver (go-mssqldb) prefers @p1, @p2 named parameters over ?
func (d *MSSQLDialect) Placeholder(index int) string {
	return fmt.Sprintf("@p%d", index+1)
}

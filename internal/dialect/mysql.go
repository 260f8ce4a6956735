package dialect

import (
	"fmt"
)

type MysqlDialect struct{}

func (d *MysqlDialect) Name() string       { return "mysql" }
func (d *MysqlDialect) DriverName() string { return "mysql" }

func (d *MysqlDialect) QuoteIdent(name string) string { return quoteWith(name, "`", "`") }

func (d *MysqlDialect) TypeInteger() string   { return "BIGINT" }
func (d *MysqlDialect) TypeText() string      { return "LONGTEXT" }
func (d *MysqlDialect) TypeTimestamp() string { return "LONGTEXT" }
func (d *MysqlDialect) TypeReal() string      { return "DOUBLE" }
func (d *MysqlDialect) TypeBlob() string      { return "LONGBLOB" }

func (d *MysqlDialect) DropTableQuery(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", d.QuoteIdent(table))
}

func (d *MysqlDialect) AddColumnQuery(table, column, colType string) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", d.QuoteIdent(table), d.QuoteIdent(column), colType)
}

func (d *MysqlDialect) TablesQuery() string {
	return `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = DATABASE() AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`
}

func (d *MysqlDialect) ColumnsQuery() string {
	return `SELECT COLUMN_NAME FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? ORDER BY ORDINAL_POSITION`
}

func (d *MysqlDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.QuoteIdent(table))
}

func (d *MysqlDialect) SetupQueries() []string {
	return []string{"SET FOREIGN_KEY_CHECKS = 0", "SET NAMES utf8mb4"}
}

func (d *MysqlDialect) InsertVerb() string     { return "REPLACE INTO" }
func (d *MysqlDialect) BackslashEscapes() bool { return true }

func (d *MysqlDialect) Placeholder(index int) string {
	return "?"
}

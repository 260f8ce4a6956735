package dialect

// Dialect abstracts the target engine a recovered table is written to.
type Dialect interface {
	// Identity
	Name() string
	DriverName() string // database/sql driver to open

	// Identifier quoting
	QuoteIdent(name string) string

	// DDL types for translated and canonical structures
	TypeInteger() string
	TypeText() string
	TypeTimestamp() string // timestamps are kept as text
	TypeReal() string
	TypeBlob() string

	// Structure statements
	DropTableQuery(table string) string
	AddColumnQuery(table, column, colType string) string

	// Introspection. ColumnsQuery takes the table name as its only parameter.
	TablesQuery() string
	ColumnsQuery() string
	CountQuery(table string) string

	// Session setup run once on the store connection.
	SetupQueries() []string

	// Data statements
	InsertVerb() string     // e.g. "INSERT INTO", "REPLACE INTO"
	BackslashEscapes() bool // whether '\'' is an escaped quote in string literals
	Placeholder(index int) string
}

package schema

import (
	"fmt"
	"strings"

	"dump-salvage/internal/dialect"
)

// DefaultTable is the table recovered when none is configured.
const DefaultTable = "wp_posts"

// integerColumns are the canonical columns stored as integers; every other
// canonical column is unbounded text.
var integerColumns = map[string]bool{
	"ID": true, "post_author": true, "post_parent": true, "menu_order": true, "comment_count": true,
}

// canonicalColumns lists the fallback columns in WordPress declaration order,
// so positional INSERTs from a WordPress dump land in the right place.
var canonicalColumns = []string{
	"ID",
	"post_author",
	"post_date",
	"post_date_gmt",
	"post_content",
	"post_title",
	"post_excerpt",
	"post_status",
	"comment_status",
	"ping_status",
	"post_password",
	"post_name",
	"to_ping",
	"pinged",
	"post_modified",
	"post_modified_gmt",
	"post_content_filtered",
	"post_parent",
	"guid",
	"menu_order",
	"post_type",
	"post_mime_type",
	"comment_count",
}

// Canonical returns the fallback structure for the named table. It is valid in
// every supported target dialect and is what readers rely on.
func Canonical(name string) *Table {
	t := &Table{Name: name}
	for _, c := range canonicalColumns {
		col := &Column{Name: c, Kind: KindText}
		if integerColumns[c] {
			col.Kind = KindInteger
		}
		if c == "ID" {
			col.IsPK = true
		}
		t.Columns = append(t.Columns, col)
	}
	return t
}

// ColumnType renders a column's type for the dialect.
func ColumnType(d dialect.Dialect, c *Column) string {
	if c.Kind == KindInteger {
		return d.TypeInteger()
	}
	return d.TypeText()
}

// CreateQuery renders a CREATE TABLE statement for t.
func CreateQuery(d dialect.Dialect, t *Table) string {
	defs := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		def := fmt.Sprintf("%s %s", d.QuoteIdent(c.Name), ColumnType(d, c))
		if c.IsPK {
			def += " PRIMARY KEY"
		}
		defs = append(defs, def)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", d.QuoteIdent(t.Name), strings.Join(defs, ", "))
}

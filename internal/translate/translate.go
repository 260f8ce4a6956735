// Package translate rewrites a MySQL CREATE TABLE statement into a target dialect.
//
// The rewrite is purely textual and token based. It does not validate the result
// against the target grammar; a statement that still fails is caught when the
// importer executes it.
package translate

import (
	"strings"

	"dump-salvage/internal/dialect"
	"dump-salvage/internal/sqlscan"
)

// Schema is a translated structural statement.
type Schema struct {
	SQL     string
	Table   string
	Columns []string // column names in source order
}

// Empty reports whether there is nothing to apply.
func (s Schema) Empty() bool { return s.SQL == "" }

// piece is a token whose quoted identifiers have been re-quoted for the target.
type piece struct {
	sqlscan.Token
	ident  string // unquoted name of a quoted identifier
	spaced bool   // whitespace or a comment preceded it in the source
}

func (p piece) name() string {
	if p.ident != "" {
		return p.ident
	}
	return p.Text
}

// Translate rewrites create for d. The statement creates table, or the table it
// names itself when table is empty. An empty create yields an empty Schema.
// Rules run in a fixed order; later rules rely on the shapes earlier ones leave.
func Translate(create, table string, d dialect.Dialect) Schema {
	if strings.TrimSpace(create) == "" {
		return Schema{}
	}
	toks := sqlscan.Tokenize(create)
	source, bodyStart := header(toks)
	if source == "" {
		// Not a CREATE TABLE we understand; let the target reject it.
		return Schema{SQL: terminate(create), Table: table}
	}
	if table == "" {
		table = source
	}

	pieces := normalizeQuoting(toks[bodyStart:], d) // 1
	body, ok := stripTableOptions(pieces)           // 2
	if !ok {
		return Schema{SQL: terminate(create), Table: table}
	}

	items := splitItems(body)
	for i := range items {
		items[i] = mapTypes(items[i], d)      // 3
		items[i] = dropModifiers(items[i], d) // 4
	}
	items = dropIndexes(items) // 5
	items = repairCommas(items) // 6

	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(d.QuoteIdent(table))
	b.WriteString(" (\n")
	var cols []string
	for i, it := range items {
		b.WriteString("  ")
		b.WriteString(render(it))
		if i < len(items)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
		if isColumn(it) {
			cols = append(cols, it[0].name())
		}
	}
	b.WriteString(")")
	return Schema{SQL: terminate(b.String()), Table: table, Columns: cols} // 7
}

// header parses CREATE [TEMPORARY] TABLE [IF NOT EXISTS] name and returns the
// unquoted table name and the index of the token after it.
func header(toks []sqlscan.Token) (string, int) {
	var sig []int
	for i, t := range toks {
		if t.Significant() {
			sig = append(sig, i)
		}
	}
	at := func(n int) sqlscan.Token {
		if n < len(sig) {
			return toks[sig[n]]
		}
		return sqlscan.Token{}
	}

	n := 0
	if !at(n).Is("CREATE") {
		return "", 0
	}
	n++
	if at(n).Is("TEMPORARY") {
		n++
	}
	if !at(n).Is("TABLE") {
		return "", 0
	}
	n++
	if at(n).Is("IF") && at(n+1).Is("NOT") && at(n+2).Is("EXISTS") {
		n += 3
	}

	sigToks := make([]sqlscan.Token, 0, len(sig)-n)
	for _, idx := range sig[n:] {
		sigToks = append(sigToks, toks[idx])
	}
	name, past := sqlscan.TableName(sigToks, 0)
	if name == "" || past == 0 {
		return "", 0
	}
	if n+past >= len(sig) {
		return name, len(toks)
	}
	return name, sig[n+past]
}

// 1. Quoted identifiers take the target's quoting.
func normalizeQuoting(toks []sqlscan.Token, d dialect.Dialect) []piece {
	out := make([]piece, 0, len(toks))
	spaced := false
	for _, t := range toks {
		switch t.Kind {
		case sqlscan.Ident, sqlscan.DQuoted:
			name := t.Name()
			out = append(out, piece{Token: sqlscan.Token{Kind: sqlscan.Ident, Text: d.QuoteIdent(name)}, ident: name, spaced: spaced})
		case sqlscan.Space, sqlscan.Comment:
			// Comments never survive translation.
			spaced = true
			continue
		default:
			out = append(out, piece{Token: t, spaced: spaced})
		}
		spaced = false
	}
	return out
}

// 2. Everything after the column list's closing parenthesis goes.
// It returns the tokens inside the parentheses.
func stripTableOptions(pieces []piece) ([]piece, bool) {
	open := -1
	depth := 0
	for i, p := range pieces {
		switch {
		case p.IsPunct('('):
			if open < 0 {
				open = i
			}
			depth++
		case p.IsPunct(')'):
			depth--
			if open >= 0 && depth == 0 {
				return pieces[open+1 : i], true
			}
		}
	}
	return nil, false
}

// splitItems splits the column list at top-level commas.
func splitItems(body []piece) [][]piece {
	var items [][]piece
	var cur []piece
	depth := 0
	for _, p := range body {
		switch {
		case p.IsPunct('('):
			depth++
		case p.IsPunct(')'):
			depth--
		case p.IsPunct(',') && depth == 0:
			items = append(items, significant(cur))
			cur = nil
			continue
		}
		cur = append(cur, p)
	}
	return append(items, significant(cur))
}

func significant(ps []piece) []piece {
	out := make([]piece, 0, len(ps))
	for _, p := range ps {
		if p.Significant() {
			out = append(out, p)
		}
	}
	return out
}

var clauseWords = []string{"PRIMARY", "KEY", "INDEX", "UNIQUE", "FULLTEXT", "SPATIAL", "CONSTRAINT", "FOREIGN", "CHECK"}

// isColumn reports whether an item defines a column rather than a key or constraint.
func isColumn(it []piece) bool {
	if len(it) < 2 {
		return false
	}
	for _, w := range clauseWords {
		if it[0].Is(w) {
			return false
		}
	}
	return true
}

// 3. Source type spellings map to target types.
func mapTypes(it []piece, d dialect.Dialect) []piece {
	if !isColumn(it) || it[1].Kind != sqlscan.Word {
		return it
	}
	if mapped, ok := MapType(it[1].Text, d); ok {
		it[1] = piece{Token: sqlscan.Token{Kind: sqlscan.Word, Text: mapped}, spaced: it[1].spaced}
	}
	return it
}

// 4. Length, precision and attribute modifiers the target lacks are removed,
// including prefix lengths in index column lists.
func dropModifiers(it []piece, d dialect.Dialect) []piece {
	if !isColumn(it) {
		return dropPrefixLengths(it)
	}
	out := append([]piece(nil), it[:2]...)
	i := 2
	if i < len(it) && it[i].IsPunct('(') {
		i = skipGroup(it, i)
	}
	for i < len(it) {
		p := it[i]
		switch {
		case p.Is("UNSIGNED"), p.Is("SIGNED"), p.Is("ZEROFILL"), p.Is("AUTO_INCREMENT"):
			i++
		case p.Is("CHARACTER") && i+1 < len(it) && it[i+1].Is("SET"):
			i += 3
		case p.Is("CHARSET"), p.Is("COLLATE"), p.Is("COMMENT"):
			i += 2
		case isNow(p):
			// DEFAULT CURRENT_TIMESTAMP(6), NOW(), LOCALTIME ...
			out = append(out, piece{Token: sqlscan.Token{Kind: sqlscan.Word, Text: "CURRENT_TIMESTAMP"}, spaced: p.spaced})
			i++
			if i < len(it) && it[i].IsPunct('(') {
				i = skipGroup(it, i)
			}
		case p.Is("ON") && i+1 < len(it) && it[i+1].Is("UPDATE"):
			i += 3
			if i < len(it) && it[i].IsPunct('(') {
				i = skipGroup(it, i)
			}
		default:
			out = append(out, p)
			i++
		}
	}
	return out
}

func isNow(p piece) bool {
	return p.Is("CURRENT_TIMESTAMP") || p.Is("NOW") || p.Is("LOCALTIME") || p.Is("LOCALTIMESTAMP")
}

// dropPrefixLengths removes "(191)" after identifiers inside a key's column
// list and any trailing USING clause.
func dropPrefixLengths(it []piece) []piece {
	out := make([]piece, 0, len(it))
	depth := 0
	for i := 0; i < len(it); i++ {
		p := it[i]
		switch {
		case p.IsPunct('(') && depth == 1 && isLengthGroup(it, i):
			i += 2
			continue
		case p.IsPunct('('):
			depth++
		case p.IsPunct(')'):
			depth--
		case p.Is("USING") && depth == 0:
			i++
			continue
		}
		out = append(out, p)
	}
	return out
}

// isLengthGroup reports whether it[i] opens "(n)" right after an identifier.
func isLengthGroup(it []piece, i int) bool {
	if i == 0 || i+2 >= len(it) {
		return false
	}
	prev := it[i-1].Kind
	if prev != sqlscan.Word && prev != sqlscan.Ident {
		return false
	}
	n := it[i+1]
	return n.Kind == sqlscan.Word && strings.Trim(n.Text, "0123456789") == "" && it[i+2].IsPunct(')')
}

// skipGroup returns the index just past the parenthesized group opening at i.
func skipGroup(it []piece, i int) int {
	depth := 0
	for ; i < len(it); i++ {
		switch {
		case it[i].IsPunct('('):
			depth++
		case it[i].IsPunct(')'):
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return i
}

// 5. Secondary keys and foreign keys are removed; the primary key stays.
func dropIndexes(items [][]piece) [][]piece {
	out := items[:0]
	for _, it := range items {
		if len(it) > 0 && !isColumn(it) && !keepClause(it) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func keepClause(it []piece) bool {
	switch {
	case it[0].Is("PRIMARY"), it[0].Is("CHECK"):
		return true
	case it[0].Is("CONSTRAINT"):
		for i := 1; i+1 < len(it); i++ {
			if it[i].Is("PRIMARY") && it[i+1].Is("KEY") {
				return true
			}
		}
	}
	return false
}

// 6. Empty items, left by a trailing comma in the source or by removals, go.
func repairCommas(items [][]piece) [][]piece {
	out := items[:0]
	for _, it := range items {
		if len(it) > 0 {
			out = append(out, it)
		}
	}
	return out
}

// 7. Exactly one terminator.
func terminate(sql string) string {
	sql = strings.TrimSpace(sql)
	for strings.HasSuffix(sql, ";") {
		sql = strings.TrimSpace(strings.TrimSuffix(sql, ";"))
	}
	return sql + ";"
}

// render joins an item's tokens, collapsing source whitespace to one space.
func render(it []piece) string {
	var b strings.Builder
	for i, p := range it {
		if i > 0 && p.spaced {
			b.WriteByte(' ')
		}
		b.WriteString(p.Text)
	}
	return b.String()
}

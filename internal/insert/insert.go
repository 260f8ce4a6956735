// Package insert normalizes extracted INSERT statements for a target dialect.
//
// Row values are kept verbatim. The one rewrite is quote normalization for
// targets that treat backslash as an ordinary character: \' becomes '' and
// "double quoted" literals become 'single quoted' ones.
package insert

import (
	"fmt"
	"strings"

	"dump-salvage/internal/dialect"
	"dump-salvage/internal/extract"
	"dump-salvage/internal/sqlscan"
)

// Statement is one normalized data statement.
type Statement struct {
	Line    int
	Columns []string // explicit column list, nil for positional inserts
	Tuples  []string // raw "(...)" row tuples
	// Malformed is set when the statement could not be fully read: no VALUES
	// list, a tuple left open at the end of the statement, or text other than
	// an ON DUPLICATE KEY clause after the last tuple.
	Malformed bool
	Dropped   string // trailing clause removed, e.g. ON DUPLICATE KEY UPDATE ...
}

// Batch is the ordered set of data statements for one table.
type Batch struct {
	Table      string
	Statements []Statement
}

// Rows returns the number of complete tuples in the batch.
func (b *Batch) Rows() int {
	n := 0
	for _, s := range b.Statements {
		n += len(s.Tuples)
	}
	return n
}

// Normalize parses every insert fragment of the block.
func Normalize(block *extract.Block, d dialect.Dialect) *Batch {
	b := &Batch{Table: block.Table}
	for _, f := range block.Inserts() {
		st := Parse(f.SQL)
		st.Line = f.Line
		if !d.BackslashEscapes() {
			for i, t := range st.Tuples {
				st.Tuples[i] = NormalizeQuotes(t)
			}
		}
		b.Statements = append(b.Statements, st)
	}
	return b
}

// Parse splits an INSERT statement into its column list and row tuples.
func Parse(sql string) Statement {
	var st Statement
	i, ok := header(sql, &st)
	if !ok {
		st.Malformed = true
		return st
	}

	for {
		i = skipSpace(sql, i)
		if i >= len(sql) || sql[i] != '(' {
			break
		}
		end, closed := tupleEnd(sql, i)
		if !closed {
			st.Malformed = true
			return st
		}
		st.Tuples = append(st.Tuples, sql[i:end])
		i = skipSpace(sql, end)
		if i < len(sql) && sql[i] == ',' {
			i++
			continue
		}
		break
	}

	// Only an upsert clause may follow the tuples. Anything else means a tuple
	// boundary was broken and the rows after it are lost.
	tail := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sql[min(i, len(sql)):]), ";"))
	if j := skipSpace(tail, 0); j < len(tail) {
		if t, _ := sqlscan.Next(tail, j); t.Is("ON") {
			st.Dropped = tail
		} else {
			st.Malformed = true
		}
	}
	if len(st.Tuples) == 0 {
		st.Malformed = true
	}
	return st
}

// header reads up to and including the VALUES keyword and returns the index after it.
func header(sql string, st *Statement) (int, bool) {
	var sig []sqlscan.Token
	i := 0
	for i < len(sql) {
		var t sqlscan.Token
		t, i = sqlscan.Next(sql, i)
		if !t.Significant() {
			continue
		}
		if t.Is("VALUES") || t.Is("VALUE") {
			st.Columns = columnList(sig)
			return i, true
		}
		if t.Is("SELECT") || t.Is("SET") {
			return i, false
		}
		sig = append(sig, t)
	}
	return i, false
}

// columnList returns the names inside the parentheses that follow the table name.
func columnList(sig []sqlscan.Token) []string {
	open := -1
	for i, t := range sig {
		if t.IsPunct('(') {
			open = i
			break
		}
	}
	if open < 0 {
		return nil
	}
	var cols []string
	for _, t := range sig[open+1:] {
		if t.IsPunct(')') {
			break
		}
		if t.IsPunct(',') {
			continue
		}
		cols = append(cols, t.Name())
	}
	return cols
}

// tupleEnd returns the index just past the tuple opening at sql[i].
func tupleEnd(sql string, i int) (int, bool) {
	depth := 0
	for j := i; j < len(sql); {
		switch c := sql[j]; c {
		case '\'', '"', '`':
			end, closed := sqlscan.QuotedEnd(sql, j)
			if !closed {
				return len(sql), false
			}
			j = end
			continue
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return j + 1, true
			}
		}
		j++
	}
	return len(sql), false
}

func skipSpace(sql string, i int) int {
	for i < len(sql) {
		t, end := sqlscan.Next(sql, i)
		if t.Significant() {
			return i
		}
		i = end
	}
	return i
}

// NormalizeQuotes rewrites the string literals of a tuple for targets without
// backslash escapes. Nothing outside quote characters changes.
func NormalizeQuotes(tuple string) string {
	if !strings.ContainsAny(tuple, `\"`) {
		return tuple
	}
	var b strings.Builder
	b.Grow(len(tuple))
	for i := 0; i < len(tuple); {
		c := tuple[i]
		if c != '\'' && c != '"' {
			b.WriteByte(c)
			i++
			continue
		}
		end, _ := sqlscan.QuotedEnd(tuple, i)
		writeLiteral(&b, tuple[i:end])
		i = end
	}
	return b.String()
}

// writeLiteral writes lit, a quoted literal including its quotes, as a
// single-quoted literal.
func writeLiteral(b *strings.Builder, lit string) {
	q := lit[0]
	body := lit[1:]
	if len(body) > 0 && body[len(body)-1] == q {
		body = body[:len(body)-1]
	}
	b.WriteByte('\'')
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body):
			next := body[i+1]
			switch next {
			case '\'':
				b.WriteString("''")
			case '"':
				b.WriteByte('"')
			default:
				b.WriteByte('\\')
				b.WriteByte(next)
			}
			i++
		case c == q && i+1 < len(body) && body[i+1] == q:
			// Doubled quote character.
			if q == '\'' {
				b.WriteString("''")
			} else {
				b.WriteByte('"')
			}
			i++
		case c == '\'' && q == '"':
			b.WriteString("''")
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('\'')
}

// Render builds an INSERT for the given tuples.
func Render(d dialect.Dialect, table string, columns []string, tuples []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", d.InsertVerb(), d.QuoteIdent(table))
	if len(columns) > 0 {
		quoted := make([]string, len(columns))
		for i, c := range columns {
			quoted[i] = d.QuoteIdent(c)
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(quoted, ", "))
	}
	b.WriteString(" VALUES ")
	b.WriteString(strings.Join(tuples, ","))
	return b.String()
}

// Package extract isolates the statements of one table from a full dump.
package extract

import (
	"io"
	"log"
	"strings"
	"unicode/utf8"

	"dump-salvage/internal/errors"
	"dump-salvage/internal/sqlscan"
)

// prefixLen bounds how much of a statement is tokenized to classify it.
// Extended INSERTs can run to megabytes; only their head matters here.
const prefixLen = 512

type FragmentKind int

const (
	Drop FragmentKind = iota
	Create
	Insert
)

func (k FragmentKind) String() string {
	switch k {
	case Drop:
		return "drop"
	case Create:
		return "create"
	case Insert:
		return "insert"
	default:
		return "unknown"
	}
}

// Fragment is one raw statement of the target table.
type Fragment struct {
	Kind       FragmentKind
	SQL        string
	Line       int
	Terminated bool
}

// Block holds the target table's fragments in dump order.
type Block struct {
	Table     string
	Fragments []Fragment
	// Discarded counts create statements for the table that were abandoned
	// because another table's CREATE started before their terminator.
	Discarded int
}

// Create returns the table's first structural statement, or nil.
func (b *Block) Create() *Fragment {
	for i := range b.Fragments {
		if b.Fragments[i].Kind == Create {
			return &b.Fragments[i]
		}
	}
	return nil
}

// Drop returns the first drop statement for the table, or nil.
func (b *Block) Drop() *Fragment {
	for i := range b.Fragments {
		if b.Fragments[i].Kind == Drop {
			return &b.Fragments[i]
		}
	}
	return nil
}

// Inserts returns every data statement for the table.
func (b *Block) Inserts() []Fragment {
	var out []Fragment
	for _, f := range b.Fragments {
		if f.Kind == Insert {
			out = append(out, f)
		}
	}
	return out
}

// Decode turns raw dump bytes into text. Invalid UTF-8 is dropped and a
// leading byte order mark removed.
func Decode(raw []byte) string {
	text := string(raw)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}
	return strings.TrimPrefix(text, "\ufeff")
}

// Extract scans dump for the drop, first create and every insert of table.
// It fails with a NotFound error when neither a create nor an insert exists.
func Extract(dump, table string, logger *log.Logger) (*Block, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	b := &Block{Table: table}
	haveCreate := false

	sqlscan.Each(dump, func(st sqlscan.Statement) bool {
		kind, ok := classify(st.SQL, table)
		if !ok {
			return true
		}
		switch kind {
		case Create:
			if haveCreate {
				return true
			}
			if other := nestedCreate(st.SQL, table); other != "" {
				b.Discarded++
				logger.Printf("Warning: CREATE TABLE %s at line %d runs into CREATE TABLE %s before its terminator, discarded", table, st.Line, other)
				return true
			}
			haveCreate = true
		}
		b.Fragments = append(b.Fragments, Fragment{Kind: kind, SQL: st.SQL, Line: st.Line, Terminated: st.Terminated})
		return true
	})

	if !haveCreate && len(b.Inserts()) == 0 {
		return nil, errors.New(errors.NotFound, "no CREATE TABLE or INSERT for "+table+" in dump")
	}
	logger.Printf("Extracted %s: create=%t inserts=%d discarded=%d", table, haveCreate, len(b.Inserts()), b.Discarded)
	return b, nil
}

// classify reports whether sql is a drop, create or insert targeting table.
func classify(sql, table string) (FragmentKind, bool) {
	head := sql
	if len(head) > prefixLen {
		head = head[:prefixLen]
	}
	toks := sqlscan.Significant(sqlscan.Tokenize(head))
	if len(toks) < 2 {
		return 0, false
	}

	var kind FragmentKind
	i := 1
	switch {
	case toks[0].Is("DROP"):
		if !toks[1].Is("TABLE") {
			return 0, false
		}
		kind, i = Drop, 2
		i = skipWords(toks, i, "IF", "EXISTS")
	case toks[0].Is("CREATE"):
		i = skipWords(toks, i, "TEMPORARY")
		if i >= len(toks) || !toks[i].Is("TABLE") {
			return 0, false
		}
		kind = Create
		i = skipWords(toks, i+1, "IF", "NOT", "EXISTS")
	case toks[0].Is("INSERT"), toks[0].Is("REPLACE"):
		kind = Insert
		i = skipWords(toks, i, "LOW_PRIORITY", "DELAYED", "HIGH_PRIORITY", "IGNORE", "INTO")
	default:
		return 0, false
	}

	name, _ := sqlscan.TableName(toks, i)
	return kind, name != "" && strings.EqualFold(name, table)
}

// nestedCreate returns the name of a different table whose CREATE TABLE appears
// inside sql after its own header, or "" when there is none.
func nestedCreate(sql, table string) string {
	toks := sqlscan.Significant(sqlscan.Tokenize(sql))
	for i := 1; i < len(toks); i++ {
		if !toks[i].Is("CREATE") {
			continue
		}
		j := skipWords(toks, i+1, "TEMPORARY")
		if j >= len(toks) || !toks[j].Is("TABLE") {
			continue
		}
		j = skipWords(toks, j+1, "IF", "NOT", "EXISTS")
		if name, _ := sqlscan.TableName(toks, j); name != "" && !strings.EqualFold(name, table) {
			return name
		}
	}
	return ""
}

// skipWords advances past any of the given keywords, in any order.
func skipWords(toks []sqlscan.Token, i int, words ...string) int {
	for i < len(toks) {
		matched := false
		for _, w := range words {
			if toks[i].Is(w) {
				matched = true
				break
			}
		}
		if !matched {
			return i
		}
		i++
	}
	return i
}

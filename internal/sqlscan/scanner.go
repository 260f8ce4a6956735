// Package sqlscan splits MySQL dump text into statements and tokens.
//
// It is not a parser. It only knows where quoted literals, quoted identifiers and
// comments begin and end, which is enough to find statement terminators and tuple
// boundaries without being fooled by a ';' or '),(' inside a value.
//
// Quoted tokens follow MySQL's default escape rules: a backslash escapes the next byte
// and a doubled quote character stands for itself. Dumps produced with
// NO_BACKSLASH_ESCAPES are not supported: a value ending in a backslash ('C:\') keeps
// the literal open past its real end, and the statement is cut at the next unquoted ';'.
package sqlscan

import "strings"

// Statement is one terminated (or trailing unterminated) statement of a dump.
type Statement struct {
	SQL        string // from the first significant byte through the ';'
	Line       int    // 1-based line of the first significant byte
	Terminated bool
}

// Split returns every statement in text in order of appearance.
func Split(text string) []Statement {
	var out []Statement
	Each(text, func(s Statement) bool {
		out = append(out, s)
		return true
	})
	return out
}

// Each calls fn for every statement in text until fn returns false.
// Statements made only of whitespace and comments are skipped.
func Each(text string, fn func(Statement) bool) {
	line := 1
	start := -1
	startLine := 0

	emit := func(end int, terminated bool) bool {
		if start < 0 {
			return true
		}
		s := Statement{SQL: strings.TrimRight(text[start:end], " \t\r\n"), Line: startLine, Terminated: terminated}
		start = -1
		return fn(s)
	}

	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == '\n':
			line++
			i++
		case c == ' ' || c == '\t' || c == '\r' || c == '\f':
			i++
		case isLineComment(text, i):
			end := lineEnd(text, i)
			i = end
		case c == '/' && i+1 < len(text) && text[i+1] == '*':
			end, _ := blockCommentEnd(text, i)
			line += strings.Count(text[i:end], "\n")
			i = end
		case c == '\'' || c == '"' || c == '`':
			if start < 0 {
				start, startLine = i, line
			}
			end, _ := QuotedEnd(text, i)
			line += strings.Count(text[i:end], "\n")
			i = end
		case c == ';':
			if start < 0 {
				// Bare terminator, e.g. after a conditional comment.
				i++
				continue
			}
			i++
			if !emit(i, true) {
				return
			}
		default:
			if start < 0 {
				start, startLine = i, line
			}
			i++
		}
	}
	emit(len(text), false)
}

// QuotedEnd returns the index just past the quoted token that opens at text[i].
// closed is false when the input ends before the closing quote.
func QuotedEnd(text string, i int) (end int, closed bool) {
	q := text[i]
	for j := i + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			if q != '`' {
				j++
			}
		case q:
			if j+1 < len(text) && text[j+1] == q {
				j++
				continue
			}
			return j + 1, true
		}
	}
	return len(text), false
}

func isLineComment(text string, i int) bool {
	if text[i] == '#' {
		return true
	}
	if text[i] != '-' || i+1 >= len(text) || text[i+1] != '-' {
		return false
	}
	// MySQL requires whitespace (or end of input) after "--".
	if i+2 >= len(text) {
		return true
	}
	switch text[i+2] {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

func lineEnd(text string, i int) int {
	if n := strings.IndexByte(text[i:], '\n'); n >= 0 {
		return i + n
	}
	return len(text)
}

func blockCommentEnd(text string, i int) (int, bool) {
	if n := strings.Index(text[i+2:], "*/"); n >= 0 {
		return i + 2 + n + 2, true
	}
	return len(text), false
}

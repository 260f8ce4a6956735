package sqlscan

import "strings"

// Kind classifies a token.
type Kind int

const (
	Space Kind = iota
	Comment
	Word    // keyword, bare identifier or number
	Ident   // `backtick` identifier
	DQuoted // "double quoted" identifier or string
	String  // 'single quoted' string
	Punct   // any other single byte
)

// Token is a lexical unit of a statement. Text is the exact source text.
type Token struct {
	Kind Kind
	Text string
}

// Is reports whether t is the given keyword, case-insensitively.
func (t Token) Is(word string) bool {
	return t.Kind == Word && strings.EqualFold(t.Text, word)
}

// IsPunct reports whether t is the single byte c.
func (t Token) IsPunct(c byte) bool {
	return t.Kind == Punct && len(t.Text) == 1 && t.Text[0] == c
}

// Significant reports whether t is neither whitespace nor a comment.
func (t Token) Significant() bool {
	return t.Kind != Space && t.Kind != Comment
}

// Name returns the identifier a token spells with its quotes removed.
// Doubled quote characters inside the identifier are collapsed.
func (t Token) Name() string {
	switch t.Kind {
	case Ident, DQuoted, String:
		if len(t.Text) < 2 {
			return t.Text
		}
		q := t.Text[:1]
		inner := t.Text[1:]
		if strings.HasSuffix(inner, q) {
			inner = inner[:len(inner)-1]
		}
		return strings.ReplaceAll(inner, q+q, q)
	default:
		return t.Text
	}
}

// Tokenize breaks a statement into tokens. Joining every Text gives back the input.
func Tokenize(text string) []Token {
	var toks []Token
	for i := 0; i < len(text); {
		var t Token
		t, i = Next(text, i)
		toks = append(toks, t)
	}
	return toks
}

// Next returns the token starting at text[i] and the index just past it.
func Next(text string, i int) (Token, int) {
	c := text[i]
	var end int
	var kind Kind
	switch {
	case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f':
		end = i + 1
		for end < len(text) && strings.IndexByte(" \t\r\n\f", text[end]) >= 0 {
			end++
		}
		kind = Space
	case isLineComment(text, i):
		end, kind = lineEnd(text, i), Comment
	case c == '/' && i+1 < len(text) && text[i+1] == '*':
		end, _ = blockCommentEnd(text, i)
		kind = Comment
	case c == '`':
		end, _ = QuotedEnd(text, i)
		kind = Ident
	case c == '"':
		end, _ = QuotedEnd(text, i)
		kind = DQuoted
	case c == '\'':
		end, _ = QuotedEnd(text, i)
		kind = String
	case isWordByte(c):
		end = i + 1
		for end < len(text) && isWordByte(text[end]) {
			end++
		}
		kind = Word
	default:
		end, kind = i+1, Punct
	}
	return Token{Kind: kind, Text: text[i:end]}, end
}

// Significant returns toks without whitespace and comments.
func Significant(toks []Token) []Token {
	out := make([]Token, 0, len(toks))
	for _, t := range toks {
		if t.Significant() {
			out = append(out, t)
		}
	}
	return out
}

// Join concatenates token texts.
func Join(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.Text)
	}
	return b.String()
}

func isWordByte(c byte) bool {
	return c == '_' || c == '$' ||
		c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

// TableName reads a possibly qualified table name starting at toks[i], which
// must hold only significant tokens. It returns the last name part unquoted and
// the index just past the name.
func TableName(toks []Token, i int) (string, int) {
	name := ""
	for i < len(toks) {
		t := toks[i]
		switch t.Kind {
		case Word, Ident, DQuoted, String:
			name = t.Name()
		default:
			return name, i
		}
		i++
		if i < len(toks) && toks[i].IsPunct('.') {
			i++
			continue
		}
		return name, i
	}
	return name, i
}

package dialect

import "strings"

// Placeholders joins n bind parameters for an IN list.
func Placeholders(n int, placeholder func(int) string) string {
	out := make([]string, n)
	for i := range out {
		out[i] = placeholder(i)
	}
	return strings.Join(out, ", ")
}

// quoteWith wraps name in open/close, doubling any embedded close character.
func quoteWith(name string, open, close string) string {
	return open + strings.ReplaceAll(name, close, close+close) + close
}

package assembler

import (
	"strings"

	"github.com/nwscript-tools/ncs/isa"
)

// tokenizeLine splits one source line into whitespace-separated tokens,
// per §4.5 Line tokenization: a double-quoted run preserves internal
// whitespace, and a backslash escapes the next character (the backslash is
// kept in the token; stripQuotes resolves it for String operands). An
// unterminated quote is fatal.
func tokenizeLine(line string, lineNo int) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	inToken := false
	inQuote := false
	escaped := false

	flush := func() {
		if inToken {
			tokens = append(tokens, cur.String())
			cur.Reset()
			inToken = false
		}
	}

	for _, r := range line {
		if escaped {
			cur.WriteRune('\\')
			cur.WriteRune(r)
			escaped = false
			inToken = true
			continue
		}
		switch {
		case r == '\\':
			escaped = true
			inToken = true
		case r == '"':
			inQuote = !inQuote
			cur.WriteRune(r)
			inToken = true
		case inQuote:
			cur.WriteRune(r)
		case r == ' ' || r == '\t':
			flush()
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	if inQuote {
		return nil, isa.ParseError{Msg: "unclosed delimiter", Line: lineNo}
	}
	flush()
	return tokens, nil
}

// stripQuotes removes the surrounding quote characters and resolves
// backslash escapes from a String operand token.
func stripQuotes(tok string) string {
	if len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"' {
		tok = tok[1 : len(tok)-1]
	}
	var b strings.Builder
	escaped := false
	for _, r := range tok {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

package checks

import (
	"github.com/codewithboateng/noqalint/internal/ir"
	"github.com/codewithboateng/noqalint/internal/scanner"
)

func init() {
	Register(Check{
		ID:       "E226",
		Summary:  "missing whitespace around arithmetic operator",
		Severity: "ERROR",
		Eval:     evalE226,
	})
}

func evalE226(line ir.SourceLine) (int, bool) {
	text := scanner.MaskStrings(line.Text)
	end := len(text)
	if line.CommentCol > 0 {
		end = line.CommentCol - 1
	}
	for i := 1; i+1 < end; i++ {
		c := text[i]
		if c != '+' && c != '-' && c != '*' && c != '/' {
			continue
		}
		// ** and // are their own operators; += etc. belong to E225's family
		if text[i-1] == c || text[i+1] == c || text[i+1] == '=' {
			continue
		}
		// exponent sign in a float literal (1e-5)
		if (c == '+' || c == '-') && i >= 2 &&
			(text[i-1] == 'e' || text[i-1] == 'E') && isDigit(text[i-2]) {
			continue
		}
		if isWord(text[i-1]) && isWord(text[i+1]) {
			return i + 1, true
		}
	}
	return 0, false
}

func isWord(c byte) bool {
	return c == '_' || isDigit(c) ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

package checks

import (
	"strings"

	"github.com/codewithboateng/noqalint/internal/ir"
	"github.com/codewithboateng/noqalint/internal/scanner"
)

func init() {
	Register(Check{
		ID:       "E225",
		Summary:  "missing whitespace around assignment operator",
		Severity: "ERROR",
		Eval:     evalE225,
	})
}

// Only top-level assignments count: keyword arguments and defaults inside
// brackets are legitimately unspaced, and compound or comparison operators
// are out of scope for this check.
func evalE225(line ir.SourceLine) (int, bool) {
	text := scanner.MaskStrings(line.Text)
	end := len(text)
	if line.CommentCol > 0 {
		end = line.CommentCol - 1
	}
	depth := 0
	for i := 0; i < end; i++ {
		switch text[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case '=':
			if depth != 0 {
				continue
			}
			if i+1 < end && text[i+1] == '=' {
				i++
				continue
			}
			if i > 0 && strings.IndexByte("=!<>+-*/%&|^:@", text[i-1]) >= 0 {
				continue
			}
			leftOK := i > 0 && text[i-1] == ' '
			rightOK := i+1 < end && text[i+1] == ' '
			if !leftOK || !rightOK {
				return i + 1, true
			}
		}
	}
	return 0, false
}

package checks

import (
	"strings"

	"github.com/codewithboateng/noqalint/internal/ir"
)

func init() {
	Register(Check{
		ID:       "E262",
		Summary:  "inline comment should start with '# '",
		Severity: "ERROR",
		Eval:     evalE262,
	})
}

func evalE262(line ir.SourceLine) (int, bool) {
	cc := line.CommentCol
	if cc <= 1 {
		// whole-line comments are block comments, not inline
		return 0, false
	}
	if strings.TrimSpace(line.Text[:cc-1]) == "" {
		return 0, false
	}
	comment := line.Text[cc-1:]
	if strings.HasPrefix(comment, "##") || (len(comment) > 1 && comment[1] != ' ') {
		return cc, true
	}
	return 0, false
}

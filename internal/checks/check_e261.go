package checks

import (
	"strings"

	"github.com/codewithboateng/noqalint/internal/ir"
)

func init() {
	Register(Check{
		ID:       "E261",
		Summary:  "at least two spaces before inline comment",
		Severity: "ERROR",
		Eval:     evalE261,
	})
}

func evalE261(line ir.SourceLine) (int, bool) {
	cc := line.CommentCol
	if cc <= 1 {
		return 0, false
	}
	prefix := line.Text[:cc-1]
	if strings.TrimSpace(prefix) == "" {
		return 0, false
	}
	if !strings.HasSuffix(prefix, "  ") {
		return cc, true
	}
	return 0, false
}

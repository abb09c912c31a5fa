package checks

import (
	"strings"

	"github.com/codewithboateng/noqalint/internal/ir"
)

func init() {
	Register(Check{
		ID:       "E101",
		Summary:  "indentation contains mixed spaces and tabs",
		Severity: "ERROR",
		Eval:     evalE101,
	})
}

func evalE101(line ir.SourceLine) (int, bool) {
	indent := line.Text[:len(line.Text)-len(strings.TrimLeft(line.Text, " \t"))]
	if strings.Contains(indent, " ") && strings.Contains(indent, "\t") {
		return 1, true
	}
	return 0, false
}

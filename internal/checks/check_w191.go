package checks

import (
	"strings"

	"github.com/codewithboateng/noqalint/internal/ir"
)

func init() {
	Register(Check{
		ID:       "W191",
		Summary:  "indentation contains tabs",
		Severity: "WARNING",
		Eval:     evalW191,
	})
}

func evalW191(line ir.SourceLine) (int, bool) {
	indent := line.Text[:len(line.Text)-len(strings.TrimLeft(line.Text, " \t"))]
	if strings.Contains(indent, "\t") {
		return 1, true
	}
	return 0, false
}

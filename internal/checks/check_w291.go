package checks

import (
	"strings"

	"github.com/codewithboateng/noqalint/internal/ir"
)

func init() {
	Register(Check{
		ID:       "W291",
		Summary:  "trailing whitespace",
		Severity: "WARNING",
		Eval:     evalW291,
	})
}

func evalW291(line ir.SourceLine) (int, bool) {
	trimmed := strings.TrimRight(line.Text, " \t")
	if trimmed == line.Text || strings.TrimSpace(line.Text) == "" {
		return 0, false
	}
	return len(trimmed) + 1, true
}

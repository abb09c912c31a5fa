package checks

import "github.com/codewithboateng/noqalint/internal/ir"

func init() {
	Register(Check{
		ID:       "E501",
		Summary:  "line too long",
		Severity: "ERROR",
		Eval:     evalE501,
	})
}

func evalE501(line ir.SourceLine) (int, bool) {
	max := csettings.MaxLineLength
	if max <= 0 {
		max = 79
	}
	if len(line.Text) > max {
		return max + 1, true
	}
	return 0, false
}

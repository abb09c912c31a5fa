package checks

import "github.com/codewithboateng/noqalint/internal/ir"

// Check represents a single line-level check executed over source lines.
type Check struct {
	ID       string
	Summary  string
	Severity string
	// Eval inspects one line and returns the 1-based column where the
	// violation starts.
	Eval func(line ir.SourceLine) (int, bool)
}

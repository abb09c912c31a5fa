package perf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/codewithboateng/noqalint/internal/checks"
	"github.com/codewithboateng/noqalint/internal/engine"
	"github.com/codewithboateng/noqalint/internal/ir"
	"github.com/codewithboateng/noqalint/internal/scanner"
)

// A few hundred lines mixing clean code, violations, and annotations.
var benchSample = strings.Repeat(strings.Join([]string{
	"import os",
	"x=1  # noqa: E225",
	"y = 2   ",
	"def add(a, b):",
	"    return a+b  # noqa",
	"z = '# not a comment'  ## bad",
	"",
}, "\n"), 40)

func BenchmarkAnalyze_Small(b *testing.B) {
	dir := b.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bench.py"), []byte(benchSample), 0o644); err != nil {
		b.Fatal(err)
	}

	checks.SetSettings(checks.Settings{
		SeverityThreshold: "INFO",
		Disabled:          map[string]bool{},
		MaxLineLength:     79,
	})
	ctx := ir.Context{MaxLineLength: 79, SeverityThreshold: "INFO"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		files, _ := scanner.Scan(dir)
		run := engine.Analyze(dir, files, ctx, nil)
		if len(run.Files) == 0 {
			b.Fatal("no files scanned")
		}
	}
}

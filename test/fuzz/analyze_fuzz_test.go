package fuzz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/codewithboateng/noqalint/internal/checks"
	"github.com/codewithboateng/noqalint/internal/engine"
	"github.com/codewithboateng/noqalint/internal/ir"
	"github.com/codewithboateng/noqalint/internal/scanner"
)

// Fuzz the scanner and engine with arbitrary content to ensure we never
// panic. Annotation-shaped seeds steer the mutator toward the grammar.
func FuzzAnalyzeNoPanic(f *testing.F) {
	seeds := [][]byte{
		[]byte("x = 1  # noqa\n"),
		[]byte("x=1  # noqa: E225\n"),
		[]byte("# flake8: noqa\nx=1\n"),
		[]byte("y = 2  #noqa:E501,E501\n"),
		[]byte("s = 'unterminated\n"),
		[]byte("# noqa : E101\tE202  ,,\n"),
		[]byte("garbage \x00\xff but should not panic\n"),
	}
	for _, s := range seeds {
		f.Add(s)
	}

	checks.SetSettings(checks.Settings{
		SeverityThreshold: "INFO",
		Disabled:          map[string]bool{},
		MaxLineLength:     79,
	})

	f.Fuzz(func(t *testing.T, data []byte) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "fuzz.py"), data, 0o644); err != nil {
			t.Skipf("write failed: %v", err)
		}
		files, _ := scanner.Scan(dir)
		ctx := ir.Context{MaxLineLength: 79, SeverityThreshold: "INFO"}
		_ = engine.Analyze(dir, files, ctx, nil) // we only assert "no panic"
	})
}

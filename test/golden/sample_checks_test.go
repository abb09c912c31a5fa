package golden

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

func analyzeStrings(t *testing.T, files map[string]string, severity string) ir.Run {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	scanned, _ := scanner.Scan(dir)

	checks.SetSettings(checks.Settings{
		SeverityThreshold: strings.ToUpper(severity),
		Disabled:          map[string]bool{},
		MaxLineLength:     79,
	})

	return engine.Analyze(dir, scanned, ir.Context{
		MaxLineLength:     79,
		SeverityThreshold: strings.ToUpper(severity),
	}, nil)
}

// One line per shape; the trailing blanks near the end are load-bearing.
var sampleMessy = strings.Join([]string{
	"import os",
	"x=1",
	"area = 3*w",
	"y = 2 # comment",
	"z = 5  ## double",
	"\tdef f():",
	"\t    pass",
	"msg = \"" + strings.Repeat("a", 80) + "\"",
	"w = 1  # noqa: E999",
	"v=2  # noqa: E225, E501",
	"u = 3  #noqa",
	"t = 4  ",
	"",
}, "\n")

const sampleDirective = `# flake8: noqa
x=1
y = 2` + "   " + `
`

func TestSample_InfoSeverity_ContainsKeyDiagnostics(t *testing.T) {
	run := analyzeStrings(t, map[string]string{
		"messy.py":    sampleMessy,
		"silenced.py": sampleDirective,
	}, "INFO")

	counts := map[string]int{}
	for _, d := range run.Diagnostics {
		counts[d.Code]++
	}

	// Presence checks for the builtin checks and the validator on our sample
	required := []string{
		"E101", "E225", "E226", "E261", "E262", "E501", "W191", "W291",
		"NQA001", "NQA102", "NQA103",
	}
	for _, code := range required {
		if counts[code] == 0 {
			t.Fatalf("expected at least 1 diagnostic for %s; got 0; counts=%v", code, counts)
		}
	}

	suppressed := 0
	for _, f := range run.Files {
		suppressed += f.Suppressed
	}
	if suppressed != 3 {
		t.Fatalf("expected 3 suppressed violations (1 coded + 2 file-wide); got %d", suppressed)
	}

	fileScope, invalid := 0, 0
	for _, a := range run.Annotations {
		if a.Scope == "file" {
			fileScope++
		}
		if !a.Valid {
			invalid++
		}
	}
	if fileScope != 1 {
		t.Fatalf("expected exactly 1 file-scope annotation; got %d", fileScope)
	}
	if invalid != 1 {
		t.Fatalf("expected exactly 1 invalid annotation (the #noqa defect); got %d", invalid)
	}
}

func TestSample_ErrorSeverity_FiltersCheckWarnings(t *testing.T) {
	runInfo := analyzeStrings(t, map[string]string{"messy.py": sampleMessy}, "INFO")
	runErr := analyzeStrings(t, map[string]string{"messy.py": sampleMessy}, "ERROR")

	if len(runErr.Diagnostics) >= len(runInfo.Diagnostics) {
		t.Fatalf("expected ERROR to have fewer diagnostics than INFO; got ERROR=%d INFO=%d",
			len(runErr.Diagnostics), len(runInfo.Diagnostics))
	}

	for _, d := range runErr.Diagnostics {
		if d.Code == "W191" || d.Code == "W291" {
			t.Fatalf("threshold leak: %s survived ERROR threshold", d.Code)
		}
		// Annotation hygiene is the point of the tool, so validator
		// diagnostics surface regardless of the check threshold.
		if d.Severity == "WARNING" && !strings.HasPrefix(d.Code, "NQA") {
			t.Fatalf("threshold leak: %+v", d)
		}
	}

	found := false
	for _, d := range runErr.Diagnostics {
		if d.Code == "E225" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected E225 to remain at ERROR threshold")
	}
}

func TestSample_FileDirective_SuppressesWholeFile(t *testing.T) {
	run := analyzeStrings(t, map[string]string{"silenced.py": sampleDirective}, "INFO")

	if len(run.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics under a valid file directive; got %+v", run.Diagnostics)
	}
	if len(run.Files) != 1 {
		t.Fatalf("expected 1 file; got %d", len(run.Files))
	}
	if got := run.Files[0]; got.Violations != 2 || got.Suppressed != 2 {
		t.Fatalf("expected violations=2 suppressed=2; got %+v", got)
	}
	if len(run.Annotations) != 1 || run.Annotations[0].Scope != "file" || !run.Annotations[0].Valid {
		t.Fatalf("expected one valid file-scope annotation; got %+v", run.Annotations)
	}
}

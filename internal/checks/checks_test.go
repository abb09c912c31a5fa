package checks

import (
	"strings"
	"testing"

	"github.com/codewithboateng/noqalint/internal/ir"
	"github.com/codewithboateng/noqalint/internal/scanner"
	"github.com/codewithboateng/noqalint/internal/storage"
)

func mkLine(text string) ir.SourceLine {
	return ir.SourceLine{Num: 1, Text: text, CommentCol: scanner.CommentStart(text)}
}

func resetSettings(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		SetSettings(Settings{SeverityThreshold: "INFO", Disabled: map[string]bool{}, MaxLineLength: 79})
	})
}

func TestEvalTable(t *testing.T) {
	cases := []struct {
		check   string
		text    string
		wantCol int
		wantHit bool
	}{
		{"E101", "\t    x = 1", 1, true},
		{"E101", "    x = 1", 0, false},
		{"E101", "\tx = 1", 0, false},

		{"E225", "x=1", 2, true},
		{"E225", "x = 1", 0, false},
		{"E225", "x ==y", 0, false},
		{"E225", "f(a=1)", 0, false},
		{"E225", "x += 1", 0, false},
		{"E225", "x: int=1", 7, true},
		{"E225", "d[k]=v", 5, true},
		{"E225", `s = "a=b"`, 0, false},
		{"E225", "# x=1 in a comment", 0, false},

		{"E226", "x = a*b", 6, true},
		{"E226", "y = a+b", 6, true},
		{"E226", "x = a * b", 0, false},
		{"E226", "x = a**b", 0, false},
		{"E226", "c = a//b", 0, false},
		{"E226", "x = 1e-5", 0, false},

		{"E261", "x = 1 # c", 7, true},
		{"E261", "x = 1  # c", 0, false},
		{"E261", "# block comment", 0, false},
		{"E261", "    # indented block", 0, false},

		{"E262", "x = 1  ## c", 8, true},
		{"E262", "x = 1  #c", 8, true},
		{"E262", "x = 1  # ok", 0, false},
		{"E262", "## block", 0, false},

		{"W191", "\tx = 1", 1, true},
		{"W191", "    x = 1", 0, false},

		{"W291", "x = 1   ", 6, true},
		{"W291", "x = 1", 0, false},
		{"W291", "   ", 0, false},
	}
	for _, tc := range cases {
		c, ok := Get(tc.check)
		if !ok {
			t.Fatalf("check %s not registered", tc.check)
		}
		col, hit := c.Eval(mkLine(tc.text))
		if hit != tc.wantHit || col != tc.wantCol {
			t.Fatalf("%s(%q) = (%d, %v); want (%d, %v)", tc.check, tc.text, col, hit, tc.wantCol, tc.wantHit)
		}
	}
}

func TestE501_Threshold(t *testing.T) {
	resetSettings(t)
	c, _ := Get("E501")

	long := strings.Repeat("a", 80)
	if col, hit := c.Eval(mkLine(long)); !hit || col != 80 {
		t.Fatalf("80-char line: (%d, %v); want (80, true)", col, hit)
	}
	if _, hit := c.Eval(mkLine(strings.Repeat("a", 79))); hit {
		t.Fatal("79-char line must pass at the default limit")
	}

	SetSettings(Settings{MaxLineLength: 10})
	if col, hit := c.Eval(mkLine("x = 1234567")); !hit || col != 11 {
		t.Fatalf("custom limit: (%d, %v); want (11, true)", col, hit)
	}
}

func TestList_SortedAndDisabled(t *testing.T) {
	resetSettings(t)

	ids := func() []string {
		var out []string
		for _, c := range List() {
			out = append(out, c.ID)
		}
		return out
	}

	got := ids()
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Fatalf("List not sorted: %v", got)
		}
	}
	for _, want := range []string{"E101", "E225", "E226", "E261", "E262", "E501", "W191", "W291"} {
		if _, ok := Get(want); !ok {
			t.Fatalf("builtin %s missing", want)
		}
	}

	SetSettings(Settings{Disabled: map[string]bool{"E501": true}})
	for _, id := range ids() {
		if id == "E501" {
			t.Fatal("disabled check still listed")
		}
	}
}

func TestEvaluate(t *testing.T) {
	resetSettings(t)

	file := ir.SourceFile{
		Path: "sample/app.py",
		Lines: []ir.SourceLine{
			mkLine("x=1"),
			mkLine("y = 2   "),
		},
	}
	file.Lines[1].Num = 2

	diags := Evaluate(&file)
	byCode := map[string]ir.Diagnostic{}
	for _, d := range diags {
		byCode[d.Code] = d
	}
	e225, ok := byCode["E225"]
	if !ok {
		t.Fatalf("E225 missing from %v", diags)
	}
	if e225.File != "sample/app.py" || e225.Line != 1 || e225.Col != 2 || e225.Severity != "ERROR" {
		t.Fatalf("E225 diagnostic = %+v", e225)
	}
	if !strings.HasPrefix(e225.ID, "E225-") {
		t.Fatalf("content-addressed ID missing code prefix: %s", e225.ID)
	}
	if w291, ok := byCode["W291"]; !ok || w291.Line != 2 {
		t.Fatalf("W291 = %+v, ok=%v", w291, ok)
	}

	// identical input, identical identity
	again := Evaluate(&file)
	if len(again) != len(diags) || again[0].ID != diags[0].ID {
		t.Fatalf("Evaluate not deterministic: %v vs %v", again, diags)
	}

	SetSettings(Settings{SeverityThreshold: "ERROR"})
	for _, d := range Evaluate(&file) {
		if d.Severity != "ERROR" {
			t.Fatalf("threshold leak: %+v", d)
		}
	}
}

func TestApplyWaivers(t *testing.T) {
	in := []ir.Diagnostic{
		{ID: "E501-1", Code: "E501", File: "a.py", Message: "line too long", Evidence: "aaaa"},
		{ID: "E225-1", Code: "E225", File: "b.py", Message: "missing whitespace around assignment operator", Evidence: "x=1"},
	}

	kept, waived := ApplyWaivers(in, nil)
	if waived != 0 || len(kept) != 2 {
		t.Fatalf("no-waiver pass changed the input: kept=%d waived=%d", len(kept), waived)
	}

	kept, waived = ApplyWaivers(in, []storage.Waiver{{Code: "e501"}})
	if waived != 1 || len(kept) != 1 || kept[0].Code != "E225" {
		t.Fatalf("code waiver: kept=%v waived=%d", kept, waived)
	}

	kept, waived = ApplyWaivers(in, []storage.Waiver{{Code: "E501", Path: "other.py"}})
	if waived != 0 || len(kept) != 2 {
		t.Fatalf("path-scoped waiver must not match a.py: kept=%v", kept)
	}

	kept, waived = ApplyWaivers(in, []storage.Waiver{{Code: "E225", PatternSub: "x=1"}})
	if waived != 1 || kept[0].Code != "E501" {
		t.Fatalf("substring waiver: kept=%v waived=%d", kept, waived)
	}
	if _, waived = ApplyWaivers(in, []storage.Waiver{{Code: "E225", PatternSub: "nope"}}); waived != 0 {
		t.Fatal("substring waiver matched where it should not")
	}
}

package ir

import "time"

const Version = "1.0"

type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Source    string    `json:"source,omitempty"`
	IRVersion string    `json:"ir_version,omitempty"`

	Context     Context      `json:"context"`
	Files       []FileStat   `json:"files"`
	Annotations []Annotation `json:"annotations,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
	Waived      int          `json:"waived,omitempty"`
}

// Context is the per-run configuration snapshot. It never changes after the
// run starts, so reports and the API can reproduce exactly what was checked.
type Context struct {
	RequireCode       bool     `json:"require_code,omitempty"`
	IncludeName       bool     `json:"include_name,omitempty"`
	MaxLineLength     int      `json:"max_line_length,omitempty"`
	SeverityThreshold string   `json:"severity_threshold,omitempty"`
	DisabledChecks    []string `json:"disabled_checks,omitempty"`
}

type FileStat struct {
	Path       string `json:"path"`
	LineCount  int    `json:"line_count"`
	Violations int    `json:"violations,omitempty"`
	Suppressed int    `json:"suppressed,omitempty"`
}

// SourceLine is one physical line of a scanned file. CommentCol is the
// 1-based column of the first '#' outside a string literal, 0 when the line
// has no comment.
type SourceLine struct {
	Num        int    `json:"num"`
	Text       string `json:"text"`
	CommentCol int    `json:"comment_col,omitempty"`
}

type SourceFile struct {
	Path  string       `json:"path"`
	Lines []SourceLine `json:"lines"`
}

// Annotation is a recognized suppression comment, valid or not, recorded on
// the run for reporting. Scope is "line" or "file".
type Annotation struct {
	File  string   `json:"file"`
	Line  int      `json:"line"`
	Col   int      `json:"col"`
	Text  string   `json:"text"`
	Scope string   `json:"scope"`
	Codes []string `json:"codes,omitempty"`
	Valid bool     `json:"valid"`
}

type Diagnostic struct {
	ID       string `json:"id"`
	File     string `json:"file"`
	Line     int    `json:"line"`
	Col      int    `json:"col,omitempty"`
	Code     string `json:"code"`
	Severity string `json:"severity"` // ERROR|WARNING|INFO
	Message  string `json:"message"`
	Evidence string `json:"evidence,omitempty"`
}

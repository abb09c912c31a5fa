package reporting

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/codewithboateng/noqalint/internal/ir"
)

func WriteHTML(runID, outDir string, run *ir.Run) (string, error) {
	path := filepath.Join(outDir, runID+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// Totals
	var totalLines, totalSuppressed int
	for _, fs := range run.Files {
		totalLines += fs.LineCount
		totalSuppressed += fs.Suppressed
	}

	// Head + styles
	fmt.Fprintf(f, "<!doctype html><html><head><meta charset='utf-8'><title>%s</title>", html.EscapeString(runID))
	fmt.Fprint(f, "<style>body{font-family:system-ui,Arial,sans-serif;padding:20px;line-height:1.4} table{border-collapse:collapse;margin:8px 0} td,th{border:1px solid #ddd;padding:6px} h1,h2{margin:6px 0 4px} .dim{color:#666} .mono{font-family:ui-monospace,Menlo,Consolas,monospace}</style>")
	fmt.Fprint(f, "</head><body>")

	// Title + summary
	fmt.Fprintf(f, "<h1>noqalint report – <span class='mono'>%s</span></h1>", html.EscapeString(runID))
	fmt.Fprintf(f, "<p>Files: %d &nbsp; Lines: %d &nbsp; Diagnostics: %d</p>", len(run.Files), totalLines, len(run.Diagnostics))
	fmt.Fprintf(f, "<p><b>Suppressed</b>: %d by noqa annotations &nbsp; %d by waivers</p>", totalSuppressed, run.Waived)

	// Severity/disabled banner
	fmt.Fprintf(f, "<p class='dim'>Severity threshold: %s", html.EscapeString(run.Context.SeverityThreshold))
	if n := len(run.Context.DisabledChecks); n > 0 {
		fmt.Fprintf(f, " &nbsp; Disabled checks: %d", n)
	}
	fmt.Fprint(f, "</p>")

	// Policy banner
	fmt.Fprintf(f, "<p class='dim'>Policy: require-code=%t &nbsp; include-name=%t &nbsp; max-line-length=%d</p>",
		run.Context.RequireCode,
		run.Context.IncludeName,
		run.Context.MaxLineLength,
	)

	// Noisiest Codes (by count desc, then code)
	if len(run.Diagnostics) > 0 {
		counts := map[string]int{}
		sevs := map[string]string{}
		for _, d := range run.Diagnostics {
			counts[d.Code]++
			sevs[d.Code] = d.Severity
		}
		type cc struct {
			code, severity string
			n              int
		}
		var tops []cc
		for code, n := range counts {
			tops = append(tops, cc{code: code, severity: sevs[code], n: n})
		}
		sort.Slice(tops, func(i, j int) bool {
			if tops[i].n == tops[j].n {
				return tops[i].code < tops[j].code
			}
			return tops[i].n > tops[j].n
		})
		fmt.Fprint(f, "<h2>Noisiest Codes</h2><table><tr><th>Code</th><th>Severity</th><th>Count</th></tr>")
		limit := len(tops)
		if limit > 20 {
			limit = 20
		}
		for i := 0; i < limit; i++ {
			fmt.Fprintf(f, "<tr><td class='mono'>%s</td><td>%s</td><td>%d</td></tr>",
				html.EscapeString(tops[i].code),
				html.EscapeString(tops[i].severity),
				tops[i].n,
			)
		}
		fmt.Fprint(f, "</table>")
	}

	// Per-file stats
	if len(run.Files) > 0 {
		fmt.Fprint(f, "<h2>Files</h2><table><tr><th>Path</th><th>Lines</th><th>Violations</th><th>Suppressed</th></tr>")
		for _, fs := range run.Files {
			fmt.Fprintf(f, "<tr><td class='mono'>%s</td><td>%d</td><td>%d</td><td>%d</td></tr>",
				html.EscapeString(fs.Path), fs.LineCount, fs.Violations, fs.Suppressed)
		}
		fmt.Fprint(f, "</table>")
	}

	// All diagnostics
	if len(run.Diagnostics) > 0 {
		fmt.Fprint(f, "<h2>All Diagnostics</h2><table><tr><th>Severity</th><th>Code</th><th>Location</th><th>Message</th><th>Evidence</th></tr>")
		for _, d := range run.Diagnostics {
			fmt.Fprintf(f, "<tr><td>%s</td><td class='mono'>%s</td><td class='mono'>%s:%d:%d</td><td>%s</td><td class='mono'>%s</td></tr>",
				html.EscapeString(d.Severity),
				html.EscapeString(d.Code),
				html.EscapeString(d.File), d.Line, d.Col,
				html.EscapeString(d.Message),
				html.EscapeString(d.Evidence),
			)
		}
		fmt.Fprint(f, "</table>")
	} else {
		fmt.Fprint(f, "<h2>All Diagnostics</h2><p class='dim'>No diagnostics at or above the configured threshold.</p>")
	}

	// Annotations
	if len(run.Annotations) > 0 {
		fmt.Fprint(f, "<h2>Noqa Annotations</h2><table><tr><th>Location</th><th>Scope</th><th>Codes</th><th>Text</th><th>Valid</th></tr>")
		for _, a := range run.Annotations {
			valid := "yes"
			if !a.Valid {
				valid = "no"
			}
			fmt.Fprintf(f, "<tr><td class='mono'>%s:%d:%d</td><td>%s</td><td class='mono'>%s</td><td class='mono'>%s</td><td>%s</td></tr>",
				html.EscapeString(a.File), a.Line, a.Col,
				html.EscapeString(a.Scope),
				html.EscapeString(strings.Join(a.Codes, ", ")),
				html.EscapeString(a.Text),
				valid,
			)
		}
		fmt.Fprint(f, "</table>")
	}

	fmt.Fprint(f, "</body></html>")
	return path, nil
}

package checks

import (
	"fmt"
	"hash/crc32"
	"sort"
	"strings"

	"github.com/codewithboateng/noqalint/internal/ir"
)

var (
	registry   []Check
	checkIndex = map[string]int{} // UPPER(checkID) -> index
)

func Register(c Check) {
	registry = append(registry, c)
	checkIndex[strings.ToUpper(strings.TrimSpace(c.ID))] = len(registry) - 1
}

func List() []Check {
	out := make([]Check, 0, len(registry))
	for _, c := range registry {
		if csettings.Disabled[strings.ToUpper(c.ID)] {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Evaluate runs every enabled check over every line of the file. Checks
// below the severity threshold are skipped; IDs are content-addressed so
// the same input always yields the same diagnostic identity.
func Evaluate(file *ir.SourceFile) []ir.Diagnostic {
	var all []ir.Diagnostic
	cs := List()

	for i := range file.Lines {
		line := file.Lines[i]
		for _, c := range cs {
			if !severityOK(c.Severity) {
				continue
			}
			col, ok := c.Eval(line)
			if !ok {
				continue
			}
			all = append(all, ir.Diagnostic{
				ID:       makeID(c.ID, file.Path, line.Num, col),
				File:     file.Path,
				Line:     line.Num,
				Col:      col,
				Code:     c.ID,
				Severity: c.Severity,
				Message:  c.Summary,
				Evidence: snippet(line.Text),
			})
		}
	}
	return all
}

func makeID(code, file string, line, col int) string {
	data := fmt.Sprintf("%s|%s|%d|%d", code, file, line, col)
	sum := crc32.ChecksumIEEE([]byte(data))
	return fmt.Sprintf("%s-%08x", code, sum)
}

func snippet(text string) string {
	s := strings.TrimRight(text, " \t")
	if len(s) > 80 {
		s = s[:80] + "..."
	}
	return s
}

// Get returns a check by ID if registered (used by the API inventory and
// the HTML report).
func Get(id string) (Check, bool) {
	idx, ok := checkIndex[strings.ToUpper(strings.TrimSpace(id))]
	if !ok || idx < 0 || idx >= len(registry) {
		return Check{}, false
	}
	return registry[idx], true
}

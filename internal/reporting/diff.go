package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/codewithboateng/noqalint/internal/ir"
)

type diffPayload struct {
	BaseID  string        `json:"base_id"`
	HeadID  string        `json:"head_id"`
	Summary diffSummary   `json:"summary"`
	New     []diffDiag    `json:"new"`
	Removed []diffDiag    `json:"removed"`
	Changed []diffChanged `json:"changed"`
}

type diffSummary struct {
	NewCount     int `json:"new"`
	RemovedCount int `json:"removed"`
	ChangedCount int `json:"changed"`
}

type diffDiag struct {
	Code     string `json:"code"`
	File     string `json:"file"`
	Line     int    `json:"line"`
	Col      int    `json:"col,omitempty"`
	Severity string `json:"severity,omitempty"`
	Message  string `json:"message,omitempty"`
}

type diffChanged struct {
	Key     string   `json:"key"`
	Base    diffDiag `json:"base"`
	Head    diffDiag `json:"head"`
	Changed []string `json:"fields_changed"`
}

func WriteDiffJSON(baseID, headID, outDir string, base, head *ir.Run) (string, error) {
	path := filepath.Join(outDir, "diff_"+baseID+"__"+headID+".json")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}

	// index diagnostics
	bm := map[string]ir.Diagnostic{}
	hm := map[string]ir.Diagnostic{}
	for _, d := range base.Diagnostics {
		bm[keyOf(d)] = d
	}
	for _, d := range head.Diagnostics {
		hm[keyOf(d)] = d
	}

	var added []diffDiag
	var removed []diffDiag
	var changed []diffChanged

	// additions & changes
	for k, hd := range hm {
		if bd, ok := bm[k]; !ok {
			added = append(added, asDiff(hd))
		} else {
			var fields []string
			if norm(bd.Severity) != norm(hd.Severity) {
				fields = append(fields, "severity")
			}
			if strings.TrimSpace(bd.Message) != strings.TrimSpace(hd.Message) {
				fields = append(fields, "message")
			}
			if bd.Col != hd.Col {
				fields = append(fields, "col")
			}
			if len(fields) > 0 {
				changed = append(changed, diffChanged{
					Key:     k,
					Base:    asDiff(bd),
					Head:    asDiff(hd),
					Changed: fields,
				})
			}
		}
	}
	// removals
	for k, bd := range bm {
		if _, ok := hm[k]; !ok {
			removed = append(removed, asDiff(bd))
		}
	}

	// stable sort
	sort.Slice(added, func(i, j int) bool { return diffLess(added[i], added[j]) })
	sort.Slice(removed, func(i, j int) bool { return diffLess(removed[i], removed[j]) })
	sort.Slice(changed, func(i, j int) bool { return changed[i].Key < changed[j].Key })

	payload := diffPayload{
		BaseID: baseID, HeadID: headID,
		Summary: diffSummary{
			NewCount:     len(added),
			RemovedCount: len(removed),
			ChangedCount: len(changed),
		},
		New:     added,
		Removed: removed,
		Changed: changed,
	}
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, b, 0o644)
}

func keyOf(d ir.Diagnostic) string {
	sb := strings.Builder{}
	sb.WriteString(norm(d.Code))
	sb.WriteByte('|')
	sb.WriteString(norm(d.File))
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(d.Line))
	sb.WriteByte('|')
	// evidence ties identity to line content, not just position
	sb.WriteString(norm(d.Evidence))
	return sb.String()
}

func asDiff(d ir.Diagnostic) diffDiag {
	return diffDiag{
		Code:     d.Code,
		File:     d.File,
		Line:     d.Line,
		Col:      d.Col,
		Severity: d.Severity,
		Message:  d.Message,
	}
}

func diffLess(a, b diffDiag) bool {
	if a.File != b.File {
		return a.File < b.File
	}
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Code < b.Code
}

func norm(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

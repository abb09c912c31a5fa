package checks

import (
	"strings"

	"github.com/codewithboateng/noqalint/internal/ir"
	"github.com/codewithboateng/noqalint/internal/storage"
)

// ApplyWaivers filters out diagnostics that match any active waiver.
// Returns (kept, waivedCount)
func ApplyWaivers(in []ir.Diagnostic, waivers []storage.Waiver) ([]ir.Diagnostic, int) {
	if len(waivers) == 0 || len(in) == 0 {
		return in, 0
	}
	var out []ir.Diagnostic
	waived := 0
nextDiag:
	for _, d := range in {
		for _, w := range waivers {
			if !eqCI(d.Code, w.Code) {
				continue
			}
			if w.Path != "" && !eqCI(d.File, w.Path) {
				continue
			}
			if w.PatternSub != "" {
				ps := strings.ToUpper(w.PatternSub)
				if !strings.Contains(strings.ToUpper(d.Evidence), ps) &&
					!strings.Contains(strings.ToUpper(d.Message), ps) {
					continue
				}
			}
			// matched → waive it
			waived++
			continue nextDiag
		}
		out = append(out, d)
	}
	return out, waived
}

func eqCI(a, b string) bool { return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) }

package api

import (
	"net/http"

	"github.com/codewithboateng/noqalint/internal/checks"
	"github.com/codewithboateng/noqalint/internal/noqa"
)

func (s *Server) handleChecksMeta(w http.ResponseWriter, r *http.Request) {
	type C struct {
		ID       string `json:"id"`
		Summary  string `json:"summary"`
		Severity string `json:"severity"`
	}
	var out []C
	for _, c := range checks.List() {
		out = append(out, C{ID: c.ID, Summary: c.Summary, Severity: c.Severity})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out, "count": len(out)})
}

// handlePatterns exposes the annotation grammar tables in evaluation order,
// so clients can show which shapes exist and which diagnostic each defect
// shape produces.
func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	items := noqa.Inventory()
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

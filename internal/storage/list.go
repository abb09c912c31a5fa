package storage

import (
	"database/sql"
	"strings"
	"time"

	"github.com/codewithboateng/noqalint/internal/ir"
)

// ListRuns returns a lightweight list of runs with counts.
func (db *DB) ListRuns(limit, offset int) ([]RunRow, error) {
	const q = `
		SELECT r.id, r.started_at, r.source, r.ir_version,
		       (SELECT COUNT(1) FROM diagnostics d WHERE d.run_id = r.id) AS diagnostics
		  FROM runs r
		 ORDER BY r.started_at DESC, r.id DESC
		 LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var rr RunRow
		var startedAtStr string
		if err := rows.Scan(&rr.ID, &startedAtStr, &rr.Source, &rr.IRVersion, &rr.Diagnostics); err != nil {
			return nil, err
		}
		// Parse RFC3339Nano first, fallback to RFC3339
		if t, err := time.Parse(time.RFC3339Nano, startedAtStr); err == nil {
			rr.StartedAt = t
		} else if t2, err2 := time.Parse(time.RFC3339, startedAtStr); err2 == nil {
			rr.StartedAt = t2
		} else {
			// leave zero time if unparsable (shouldn't happen)
			rr.StartedAt = time.Time{}
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

// ListDiagnostics returns diagnostics for a run at or above a minimum severity.
func (db *DB) ListDiagnostics(runID, minSeverity string) ([]ir.Diagnostic, error) {
	const q = `
		SELECT id, file, line, col, code, severity, message, evidence
		  FROM diagnostics
		 WHERE run_id = ?
		   AND (CASE severity WHEN 'ERROR' THEN 3 WHEN 'WARNING' THEN 2 ELSE 1 END)
		       >= (CASE ? WHEN 'ERROR' THEN 3 WHEN 'WARNING' THEN 2 ELSE 1 END)
		 ORDER BY
		       (CASE severity WHEN 'ERROR' THEN 3 WHEN 'WARNING' THEN 2 ELSE 1 END) DESC,
		       file, line, col, id`
	rows, err := db.conn.Query(q, runID, minSeverity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ir.Diagnostic
	for rows.Next() {
		var d ir.Diagnostic
		if err := rows.Scan(&d.ID, &d.File, &d.Line, &d.Col, &d.Code, &d.Severity, &d.Message, &d.Evidence); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListAnnotations returns the annotations recorded for a run.
func (db *DB) ListAnnotations(runID string) ([]ir.Annotation, error) {
	const q = `
		SELECT file, line, col, text, scope, codes, valid
		  FROM annotations
		 WHERE run_id = ?
		 ORDER BY file, line, col`
	rows, err := db.conn.Query(q, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ir.Annotation
	for rows.Next() {
		var a ir.Annotation
		var codes string
		var valid int
		if err := rows.Scan(&a.File, &a.Line, &a.Col, &a.Text, &a.Scope, &codes, &valid); err != nil {
			return nil, err
		}
		if codes != "" {
			a.Codes = strings.Split(codes, ",")
		}
		a.Valid = valid != 0
		out = append(out, a)
	}
	return out, rows.Err()
}

// HasRun reports whether a run exists without loading its payload.
func (db *DB) HasRun(id string) (bool, error) {
	const q = `SELECT 1 FROM runs WHERE id = ? LIMIT 1`
	var one int
	err := db.conn.QueryRow(q, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

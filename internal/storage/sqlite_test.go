package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/codewithboateng/noqalint/internal/ir"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.CreateSchema(); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return db
}

func sampleRun(id string, at time.Time) ir.Run {
	return ir.Run{
		ID:        id,
		StartedAt: at,
		Source:    "sample",
		IRVersion: ir.Version,
		Files: []ir.FileStat{
			{Path: "a.py", LineCount: 3, Violations: 2, Suppressed: 1},
		},
		Annotations: []ir.Annotation{
			{File: "a.py", Line: 1, Col: 6, Text: "# noqa: E225", Scope: "line", Codes: []string{"E225"}, Valid: true},
			{File: "a.py", Line: 2, Col: 1, Text: "# flake8: noqa", Scope: "file", Valid: true},
		},
		Diagnostics: []ir.Diagnostic{
			{ID: "E501-00000001", File: "a.py", Line: 3, Col: 80, Code: "E501", Severity: "ERROR", Message: "line too long", Evidence: "aaa"},
			{ID: "NQA101-000001", File: "a.py", Line: 2, Col: 1, Code: "NQA101", Severity: "WARNING", Message: `"# flake8: noqa" has no violations`, Evidence: "# flake8: noqa"},
		},
	}
}

func TestSaveLoadRun(t *testing.T) {
	db := openTest(t)
	run := sampleRun("r1", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	if err := db.SaveRun(&run); err != nil {
		t.Fatalf("save: %v", err)
	}
	// upsert is idempotent
	if err := db.SaveRun(&run); err != nil {
		t.Fatalf("re-save: %v", err)
	}

	got, err := db.LoadRun("r1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.ID != run.ID || !got.StartedAt.Equal(run.StartedAt) || got.IRVersion != ir.Version {
		t.Fatalf("round-trip header = %+v", got)
	}
	if len(got.Diagnostics) != 2 || len(got.Annotations) != 2 || len(got.Files) != 1 {
		t.Fatalf("round-trip payload: %d diags, %d anns, %d files",
			len(got.Diagnostics), len(got.Annotations), len(got.Files))
	}
	if got.Diagnostics[1].Message != run.Diagnostics[1].Message {
		t.Fatalf("message lost: %q", got.Diagnostics[1].Message)
	}

	ok, err := db.HasRun("r1")
	if err != nil || !ok {
		t.Fatalf("HasRun(r1) = %v, %v", ok, err)
	}
	if ok, _ := db.HasRun("missing"); ok {
		t.Fatal("HasRun(missing) = true")
	}
	if _, err := db.LoadRun("missing"); err == nil {
		t.Fatal("LoadRun(missing) succeeded")
	}
}

func TestListRunsAndDiagnostics(t *testing.T) {
	db := openTest(t)
	r1 := sampleRun("r1", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	r2 := sampleRun("r2", time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	for _, r := range []*ir.Run{&r1, &r2} {
		if err := db.SaveRun(r); err != nil {
			t.Fatalf("save %s: %v", r.ID, err)
		}
	}

	rows, err := db.ListRuns(10, 0)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != "r2" || rows[0].Diagnostics != 2 {
		t.Fatalf("rows = %+v; want r2 first with 2 diagnostics", rows)
	}

	latest, err := db.LoadLatestRun()
	if err != nil || latest.ID != "r2" {
		t.Fatalf("latest = %+v, %v", latest.ID, err)
	}

	all, err := db.ListDiagnostics("r1", "INFO")
	if err != nil {
		t.Fatalf("list diagnostics: %v", err)
	}
	if len(all) != 2 || all[0].Code != "E501" {
		t.Fatalf("diagnostics = %+v; want severity-ordered with E501 first", all)
	}
	errsOnly, err := db.ListDiagnostics("r1", "ERROR")
	if err != nil {
		t.Fatalf("list diagnostics: %v", err)
	}
	if len(errsOnly) != 1 || errsOnly[0].Code != "E501" {
		t.Fatalf("min-severity filter: %+v", errsOnly)
	}

	anns, err := db.ListAnnotations("r1")
	if err != nil {
		t.Fatalf("list annotations: %v", err)
	}
	if len(anns) != 2 {
		t.Fatalf("annotations = %+v", anns)
	}
	if anns[0].Scope != "line" || len(anns[0].Codes) != 1 || anns[0].Codes[0] != "E225" {
		t.Fatalf("annotation round-trip: %+v", anns[0])
	}
	if anns[1].Scope != "file" || anns[1].Codes != nil {
		t.Fatalf("file annotation round-trip: %+v", anns[1])
	}
}

func TestWaivers(t *testing.T) {
	db := openTest(t)

	id, err := db.CreateWaiver("E501", "a.py", "", "legacy module", "admin", time.Now().Add(24*time.Hour))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := db.CreateWaiver("E225", "", "x=1", "expired", "admin", time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("create expired: %v", err)
	}

	active, err := db.ListWaivers(true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 1 || active[0].Code != "E501" || active[0].Path != "a.py" {
		t.Fatalf("active waivers = %+v", active)
	}

	if err := db.RevokeWaiver(id, "admin"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if active, _ = db.ListWaivers(true); len(active) != 0 {
		t.Fatalf("revoked waiver still active: %+v", active)
	}
	all, _ := db.ListWaivers(false)
	if len(all) != 2 {
		t.Fatalf("all waivers = %+v", all)
	}
	for _, w := range all {
		if w.ID == id && w.RevokedAt == nil {
			t.Fatal("revoked_at not recorded")
		}
	}
}

func TestUsersAndSessions(t *testing.T) {
	db := openTest(t)

	uid, err := db.CreateUser("ops", "hash", "admin")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := db.CreateUser("ops", "hash2", "viewer"); err == nil {
		t.Fatal("duplicate username accepted")
	}

	u, ph, err := db.GetUserByUsername("ops")
	if err != nil || u.ID != uid || u.Role != "admin" || ph != "hash" {
		t.Fatalf("get user = %+v, %q, %v", u, ph, err)
	}

	if err := db.CreateSession(uid, "tok", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("create session: %v", err)
	}
	su, err := db.GetSession("tok")
	if err != nil || su.Username != "ops" {
		t.Fatalf("get session = %+v, %v", su, err)
	}

	if err := db.CreateSession(uid, "old", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("create expired session: %v", err)
	}
	if _, err := db.GetSession("old"); err == nil {
		t.Fatal("expired session honored")
	}

	if err := db.DeleteSession("tok"); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, err := db.GetSession("tok"); err == nil {
		t.Fatal("deleted session honored")
	}

	if err := db.LogAudit("ops", "login", "", map[string]any{"ip": "127.0.0.1"}); err != nil {
		t.Fatalf("audit: %v", err)
	}
}

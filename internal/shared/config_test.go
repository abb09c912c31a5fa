package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.Database.DSN != "./noqalint.db" || c.Analysis.MaxLineLength != 79 ||
		c.Analysis.SeverityThreshold != "INFO" || c.Server.Addr != ":8080" {
		t.Fatalf("defaults = %+v", c)
	}
	if c.Noqa.RequireCode || c.Noqa.IncludeName {
		t.Fatal("noqa options must default off")
	}
	if c.Server.SessionHours != 24 || len(c.Server.Origins) != 0 {
		t.Fatalf("server defaults = %+v", c.Server)
	}
}

func TestLoadConfig_File(t *testing.T) {
	p := filepath.Join(t.TempDir(), "noqalint.yaml")
	content := `
database:
  dsn: ./custom.db
analysis:
  sources: ["./src"]
  max_line_length: 100
  disabled_checks: ["E226"]
  check_packs: ["./configs/checks-extra.yaml"]
noqa:
  require_code: true
logging:
  format: text
  level: debug
server:
  addr: ":9090"
  origins: ["https://ci.example.com"]
`
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Database.DSN != "./custom.db" || c.Analysis.MaxLineLength != 100 {
		t.Fatalf("config = %+v", c)
	}
	if len(c.Analysis.Sources) != 1 || c.Analysis.Sources[0] != "./src" {
		t.Fatalf("sources = %v", c.Analysis.Sources)
	}
	if len(c.Analysis.DisabledChecks) != 1 || len(c.Analysis.CheckPacks) != 1 {
		t.Fatalf("analysis lists = %+v", c.Analysis)
	}
	if !c.Noqa.RequireCode {
		t.Fatal("require_code not read")
	}
	if c.Logging.Format != "text" || c.Server.Addr != ":9090" {
		t.Fatalf("config = %+v", c)
	}
	if len(c.Server.Origins) != 1 || c.Server.Origins[0] != "https://ci.example.com" {
		t.Fatalf("origins = %v", c.Server.Origins)
	}
	if c.Server.SessionHours != 24 {
		t.Fatalf("session_hours default lost: %d", c.Server.SessionHours)
	}
	// untouched sections keep their defaults
	if c.Reporting.OutDir != "./reports" {
		t.Fatalf("out_dir = %q", c.Reporting.OutDir)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("NOQALINT_DB_DSN", "./env.db")
	t.Setenv("NOQALINT_REQUIRE_CODE", "true")
	t.Setenv("NOQALINT_INCLUDE_NAME", "1")
	t.Setenv("NOQALINT_LOG_LEVEL", "warn")

	c, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Database.DSN != "./env.db" || c.Logging.Level != "warn" {
		t.Fatalf("config = %+v", c)
	}
	if !c.Noqa.RequireCode || !c.Noqa.IncludeName {
		t.Fatalf("noqa env overrides = %+v", c.Noqa)
	}

	t.Setenv("NOQALINT_REQUIRE_CODE", "notabool")
	c, _ = LoadConfig("")
	if c.Noqa.RequireCode {
		t.Fatal("unparsable bool must not flip the default")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	c, err := LoadConfig("/nonexistent/noqalint.yaml")
	if err != nil {
		t.Fatalf("missing config must fall back to defaults, got %v", err)
	}
	if c.Database.DSN != "./noqalint.db" {
		t.Fatalf("config = %+v", c)
	}
}

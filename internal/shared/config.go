package shared

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database struct {
		Driver string `yaml:"driver"` // "sqlite" (default)
		DSN    string `yaml:"dsn"`    // "./noqalint.db"
	} `yaml:"database"`

	Analysis struct {
		Sources           []string `yaml:"sources"`            // ["./src"]
		MaxLineLength     int      `yaml:"max_line_length"`    // 79
		SeverityThreshold string   `yaml:"severity_threshold"` // "INFO"|"WARNING"|"ERROR"
		DisabledChecks    []string `yaml:"disabled_checks"`    // ["E226"]
		CheckPacks        []string `yaml:"check_packs"`        // YAML packs of extra checks
	} `yaml:"analysis"`

	Noqa struct {
		RequireCode bool `yaml:"require_code"` // flag blanket annotations
		IncludeName bool `yaml:"include_name"` // prefix messages with the tool name
	} `yaml:"noqa"`

	Reporting struct {
		OutDir string `yaml:"out_dir"` // "./reports"
	} `yaml:"reporting"`

	Logging struct {
		Format string `yaml:"format"` // "json"|"text"
		Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
	} `yaml:"logging"`

	Server struct {
		Addr         string   `yaml:"addr"`          // ":8080"
		Origins      []string `yaml:"origins"`       // CORS allow-list; empty means "*"
		SessionHours int      `yaml:"session_hours"` // 24
	} `yaml:"server"`
}

func DefaultConfig() Config {
	var c Config
	c.Database.Driver = "sqlite"
	c.Database.DSN = "./noqalint.db"
	c.Analysis.MaxLineLength = 79
	c.Analysis.SeverityThreshold = "INFO"
	c.Reporting.OutDir = "./reports"
	c.Logging.Format = "json"
	c.Logging.Level = "info"
	c.Server.Addr = ":8080"
	c.Server.SessionHours = 24
	return c
}

func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}
	// Env overrides (simple, explicit)
	if v := os.Getenv("NOQALINT_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("NOQALINT_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("NOQALINT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("NOQALINT_OUT_DIR"); v != "" {
		c.Reporting.OutDir = v
	}
	if v := os.Getenv("NOQALINT_REQUIRE_CODE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Noqa.RequireCode = b
		}
	}
	if v := os.Getenv("NOQALINT_INCLUDE_NAME"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Noqa.IncludeName = b
		}
	}
	return c, nil
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/codewithboateng/noqalint/internal/api"
	"github.com/codewithboateng/noqalint/internal/checks"
	"github.com/codewithboateng/noqalint/internal/checksdsl"
	"github.com/codewithboateng/noqalint/internal/engine"
	"github.com/codewithboateng/noqalint/internal/ir"
	"github.com/codewithboateng/noqalint/internal/reporting"
	"github.com/codewithboateng/noqalint/internal/scanner"
	"github.com/codewithboateng/noqalint/internal/security"
	"github.com/codewithboateng/noqalint/internal/shared"
	"github.com/codewithboateng/noqalint/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "check":
		checkCmd(os.Args[2:])
	case "report":
		reportCmd(os.Args[2:])
	case "diff":
		diffCmd(os.Args[2:])
	case "serve":
		serveCmd(os.Args[2:])
	case "useradd":
		useraddCmd(os.Args[2:])
	case "version":
		fmt.Println("noqalint IR:", ir.Version)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `noqalint – flake8 noqa comment linter

Usage:
  noqalint check   --path <src-dir>  --out <reports-dir> [--db ./noqalint.db] [--config ./configs/noqalint.yaml]
  noqalint report  [--run <run-id>]  --out <reports-dir> [--db ./noqalint.db] [--config ./configs/noqalint.yaml]
  noqalint diff    --base <run-id> --head <run-id> --out <reports-dir> [--db ./noqalint.db]
  noqalint serve   [--addr :8080] [--db ./noqalint.db] [--config ./configs/noqalint.yaml]
  noqalint useradd --username <name> [--role viewer] [--db ./noqalint.db]
  noqalint version
`)
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	inPath := fs.String("path", "", "Path to a Python source directory")
	outDir := fs.String("out", "", "Output directory for reports")
	dbPath := fs.String("db", "", "SQLite database path")
	maxLen := fs.Int("max-line-length", 0, "Maximum line length (default from config)")
	severity := fs.String("severity", "", "Minimum severity: INFO, WARNING or ERROR")
	disable := fs.String("disable", "", "Comma-separated check codes to disable")
	requireCode := fs.Bool("require-code", false, "Flag blanket noqa annotations as dead")
	includeName := fs.Bool("include-name", false, "Prefix messages with the tool name")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	// precedence: flags > config > defaults
	paths := fs.Args()
	if *inPath != "" {
		paths = append([]string{*inPath}, paths...)
	}
	if len(paths) == 0 {
		paths = cfg.Analysis.Sources
	}
	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *maxLen == 0 {
		*maxLen = cfg.Analysis.MaxLineLength
	}
	if *severity == "" {
		*severity = cfg.Analysis.SeverityThreshold
	}
	*severity = strings.ToUpper(*severity)
	reqCode := *requireCode || cfg.Noqa.RequireCode
	incName := *includeName || cfg.Noqa.IncludeName

	disabled := append([]string(nil), cfg.Analysis.DisabledChecks...)
	if *disable != "" {
		for _, code := range strings.Split(*disable, ",") {
			if code = strings.TrimSpace(code); code != "" {
				disabled = append(disabled, code)
			}
		}
	}

	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "check: --path (or analysis.sources in config) is required")
		os.Exit(2)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "check: cannot create out dir:", err)
		os.Exit(1)
	}

	disabledSet := make(map[string]bool, len(disabled))
	for _, code := range disabled {
		disabledSet[code] = true
	}
	checks.SetSettings(checks.Settings{
		SeverityThreshold: *severity,
		Disabled:          disabledSet,
		MaxLineLength:     *maxLen,
	})

	for _, pack := range cfg.Analysis.CheckPacks {
		n, err := checksdsl.LoadAndRegister(pack)
		if err != nil {
			slog.Error("check pack error", "path", pack, "err", err)
			os.Exit(1)
		}
		slog.Info("check pack loaded", "path", pack, "checks", n)
	}

	// Scan
	var files []ir.SourceFile
	for _, p := range paths {
		fl, diags := scanner.Scan(p)
		if len(diags.Warnings) > 0 {
			slog.Warn("scan warnings", "path", p, "warnings", diags.Warnings)
		}
		files = append(files, fl...)
	}

	// Persist & report
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}
	waivers, err := db.ListWaivers(true)
	if err != nil {
		slog.Error("db waiver list error", "err", err)
		os.Exit(1)
	}

	run := engine.Analyze(strings.Join(paths, ","), files, ir.Context{
		RequireCode:       reqCode,
		IncludeName:       incName,
		MaxLineLength:     *maxLen,
		SeverityThreshold: *severity,
		DisabledChecks:    disabled,
	}, waivers)

	if err := db.SaveRun(&run); err != nil {
		slog.Error("db save run error", "err", err)
		os.Exit(1)
	}

	jsonPath, _ := reporting.WriteJSON(run.ID, *outDir, &run)
	htmlPath, _ := reporting.WriteHTML(run.ID, *outDir, &run)
	slog.Info("check complete",
		"run", run.ID,
		"files", len(run.Files),
		"diagnostics", len(run.Diagnostics),
		"waived", run.Waived,
		"json", jsonPath,
		"html", htmlPath,
		"db", filepath.Clean(*dbPath),
	)

	console := reporting.NewConsole(os.Stdout)
	fmt.Print(console.Render(&run))

	if len(run.Diagnostics) > 0 {
		os.Exit(1)
	}
}

func reportCmd(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	runID := fs.String("run", "", "Run ID (default: latest run)")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	var run ir.Run
	if *runID == "" {
		run, err = db.LoadLatestRun()
	} else {
		run, err = db.LoadRun(*runID)
	}
	if err != nil {
		slog.Error("load run error", "err", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		slog.Error("cannot create out dir", "err", err)
		os.Exit(1)
	}
	jsonPath, _ := reporting.WriteJSON(run.ID, *outDir, &run)
	htmlPath, _ := reporting.WriteHTML(run.ID, *outDir, &run)
	fmt.Printf("Report OK\n  Run: %s\n  JSON: %s\n  HTML: %s\n", run.ID, jsonPath, htmlPath)
}

func diffCmd(args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	base := fs.String("base", "", "Base run ID")
	head := fs.String("head", "", "Head run ID")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *base == "" || *head == "" {
		fmt.Fprintln(os.Stderr, "diff: --base and --head are required")
		os.Exit(2)
	}
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	br, err := db.LoadRun(*base)
	if err != nil {
		slog.Error("load base run error", "err", err)
		os.Exit(1)
	}
	hr, err := db.LoadRun(*head)
	if err != nil {
		slog.Error("load head run error", "err", err)
		os.Exit(1)
	}
	path, err := reporting.WriteDiffJSON(*base, *head, *outDir, &br, &hr)
	if err != nil {
		slog.Error("diff write error", "err", err)
		os.Exit(1)
	}
	fmt.Printf("Diff OK\n  %s\n", path)
}

func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	addr := fs.String("addr", "", "Listen address")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	logger := shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *addr == "" {
		*addr = cfg.Server.Addr
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	sessionHours := cfg.Server.SessionHours
	if sessionHours <= 0 {
		sessionHours = 24
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}

	s := &api.Server{
		DB:              db,
		UserStore:       db,
		Logger:          logger,
		AllowedOrigins:  cfg.Server.Origins,
		SessionDuration: time.Duration(sessionHours) * time.Hour,
	}
	srv := &http.Server{
		Addr:              *addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("api listening", "addr", *addr, "db", filepath.Clean(*dbPath))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func useraddCmd(args []string) {
	fs := flag.NewFlagSet("useradd", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	dbPath := fs.String("db", "", "SQLite database path")
	username := fs.String("username", "", "Username to create")
	role := fs.String("role", "viewer", "Role: viewer or admin")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *username == "" {
		fmt.Fprintln(os.Stderr, "useradd: --username is required")
		os.Exit(2)
	}
	if *role != "viewer" && *role != "admin" {
		fmt.Fprintln(os.Stderr, "useradd: --role must be viewer or admin")
		os.Exit(2)
	}

	pw := os.Getenv("NOQALINT_PASSWORD")
	if pw == "" {
		var err error
		pw, err = promptPassword()
		if err != nil {
			fmt.Fprintln(os.Stderr, "useradd:", err)
			os.Exit(1)
		}
	}
	if len(pw) < 8 {
		fmt.Fprintln(os.Stderr, "useradd: password must be at least 8 characters")
		os.Exit(1)
	}

	hash, err := security.HashPassword(pw)
	if err != nil {
		slog.Error("hash error", "err", err)
		os.Exit(1)
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}
	id, err := db.CreateUser(*username, hash, *role)
	if err != nil {
		slog.Error("create user error", "err", err)
		os.Exit(1)
	}
	slog.Info("user created", "id", id, "username", *username, "role", *role)
	fmt.Printf("User %q created (role %s)\n", *username, *role)
}

// promptPassword reads the password twice from the terminal, echo off.
func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal; set NOQALINT_PASSWORD")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	fmt.Fprint(os.Stderr, "Confirm:  ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}

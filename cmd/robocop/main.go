package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar"
	"github.com/google/uuid"

	"github.com/MarketSquare/robotframework-robocop-sub003/internal/extrules"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/fix"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/history"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/issue"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/reporting"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/rules"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/runner"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/shared"
	"github.com/MarketSquare/robotframework-robocop-sub003/internal/version"
)

const toolVersion = "0.3.0"

// defaultTarget is the newest Robot Framework release the rules know.
var defaultTarget = version.New(7, 0, 0)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(runner.ExitConfig)
	}
	switch os.Args[1] {
	case "check":
		os.Exit(checkCmd(os.Args[2:], fixNone))
	case "fix":
		os.Exit(checkCmd(os.Args[2:], fixWrite))
	case "list":
		os.Exit(listCmd(os.Args[2:]))
	case "diff":
		os.Exit(diffCmd(os.Args[2:]))
	case "version":
		fmt.Println("robocop", toolVersion)
	default:
		usage()
		os.Exit(runner.ExitConfig)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `robocop – Robot Framework static analysis

Usage:
  robocop check [flags] [glob ...]     lint files and print issues
  robocop fix   [flags] [glob ...]     lint files and apply proposed fixes
  robocop list  [--config <file>]      list registered rules and parameters
  robocop diff  --base <run> --head <run> [--db <file>] [--out <dir>]
  robocop version
`)
}

type multiFlag []string

func (m *multiFlag) String() string     { return strings.Join(*m, ",") }
func (m *multiFlag) Set(v string) error { *m = append(*m, v); return nil }

type fixAction int

const (
	fixNone fixAction = iota
	fixWrite
)

func checkCmd(args []string, action fixAction) int {
	name := "check"
	if action == fixWrite {
		name = "fix"
	}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	targetFlag := fs.String("target-version", "", "Robot Framework release to lint against, e.g. 6.1")
	template := fs.String("template", "", "Output template: default or extended")
	failAt := fs.String("fail-threshold", "", "Lowest severity that fails the run (info|warning|error)")
	concurrency := fs.Int("concurrency", 0, "Worker limit, 0 = GOMAXPROCS")
	diffOnly := fs.Bool("diff", false, "With fix: print unified diffs instead of writing files")
	save := fs.Bool("save", false, "Persist this run to the history store")
	dbPath := fs.String("db", "", "History store path")
	outDir := fs.String("out", "", "Also write a JSON report into this directory")
	var selects, includes, excludes, configures, packs multiFlag
	fs.Var(&selects, "select", "Force-enable a rule (repeatable, globs allowed)")
	fs.Var(&includes, "include", "Enable a rule if not already (repeatable)")
	fs.Var(&excludes, "exclude", "Force-disable a rule (repeatable, highest precedence)")
	fs.Var(&configures, "configure", "rule-id.param=value (repeatable)")
	fs.Var(&packs, "pack", "External YAML rule pack (repeatable)")
	_ = fs.Parse(args)

	cfg, err := shared.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, name+": cannot load config:", err)
		return runner.ExitConfig
	}
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	// precedence: flags > config > defaults
	sel := rules.Selection{
		Select:  append(cfg.Rules.Select, selects...),
		Include: append(cfg.Rules.Include, includes...),
		Exclude: append(cfg.Rules.Exclude, excludes...),
	}
	tokens := append(cfg.Rules.Configure, configures...)
	if *template == "" {
		*template = cfg.Output.Template
	}
	if *failAt == "" {
		*failAt = cfg.Output.FailThreshold
	}
	if *concurrency == 0 {
		*concurrency = cfg.Concurrency
	}
	if *dbPath == "" {
		*dbPath = cfg.History.DSN
	}

	active := defaultTarget
	if *targetFlag != "" {
		v, err := version.Parse(*targetFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, name+":", err)
			return runner.ExitConfig
		}
		active = v
	}
	if len(cfg.TargetVersion) > 0 {
		ok, err := version.MatchesAny(cfg.TargetVersion, active)
		if err != nil {
			fmt.Fprintln(os.Stderr, name+": target_version filter:", err)
			return runner.ExitConfig
		}
		if !ok {
			slog.Info("target version outside the configured filter, nothing to do",
				"active", active.String(), "filter", strings.Join(cfg.TargetVersion, " | "))
			return runner.ExitOK
		}
	}

	threshold, ok := issue.ParseSeverity(*failAt)
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: invalid fail threshold %q\n", name, *failAt)
		return runner.ExitConfig
	}
	tmpl, err := pickTemplate(*template)
	if err != nil {
		fmt.Fprintln(os.Stderr, name+":", err)
		return runner.ExitConfig
	}

	reg := rules.Default()
	for _, p := range append(cfg.Rules.Packs, packs...) {
		n, err := extrules.LoadAndRegister(p, reg)
		if err != nil {
			fmt.Fprintln(os.Stderr, name+":", err)
			return runner.ExitConfig
		}
		slog.Debug("loaded rule pack", "path", p, "rules", n)
	}

	selected, err := reg.Resolve(sel, active)
	if err != nil {
		fmt.Fprintln(os.Stderr, name+":", err)
		return runner.ExitConfig
	}
	configured, err := reg.Configure(selected, tokens)
	if err != nil {
		fmt.Fprintln(os.Stderr, name+":", err)
		return runner.ExitConfig
	}

	globs := fs.Args()
	if len(globs) == 0 {
		globs = cfg.Sources
	}
	paths, err := discover(globs)
	if err != nil {
		fmt.Fprintln(os.Stderr, name+":", err)
		return runner.ExitConfig
	}
	if len(paths) == 0 {
		slog.Warn("no files matched", "globs", strings.Join(globs, " "))
		return runner.ExitOK
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := runner.Options{Concurrency: *concurrency, FailThreshold: threshold}
	res := runner.Run(ctx, paths, configured, opts)

	for _, line := range res.Sink.Finalize(tmpl) {
		fmt.Println(line)
	}
	for _, sk := range res.Skipped {
		fmt.Fprintf(os.Stderr, "skipped %s: %v\n", sk.Path, sk.Err)
	}

	if action == fixWrite && len(res.Edits) > 0 {
		mode := fix.ModeWrite
		if *diffOnly {
			mode = fix.ModeDiff
		}
		for _, fr := range fix.Apply(res.Edits, mode) {
			switch {
			case fr.Err != nil:
				fmt.Fprintf(os.Stderr, "fix %s: %v\n", fr.Path, fr.Err)
			case mode == fix.ModeDiff:
				fmt.Print(fr.Diff)
			default:
				fmt.Fprintf(os.Stderr, "fixed %s (%d edits)\n", fr.Path, fr.Applied)
			}
		}
	}

	if *save || *outDir != "" {
		run := &history.Run{
			ID:            "run-" + uuid.NewString(),
			StartedAt:     time.Now().UTC(),
			Source:        strings.Join(globs, " "),
			TargetVersion: active.String(),
			Issues:        res.Sink.Issues(),
		}
		if *outDir != "" {
			if path, err := reporting.WriteRunJSON(*outDir, run); err != nil {
				slog.Error("write json report", "err", err)
			} else {
				slog.Info("json report written", "path", path)
			}
		}
		if *save {
			if err := saveRun(*dbPath, run); err != nil {
				slog.Error("save run", "err", err)
			} else {
				slog.Info("run saved", "run", run.ID, "db", *dbPath)
			}
		}
	}

	return res.ExitStatus(opts)
}

func saveRun(dbPath string, run *history.Run) error {
	db, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		return err
	}
	return db.SaveRun(run)
}

func listCmd(args []string) int {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	var packs multiFlag
	fs.Var(&packs, "pack", "External YAML rule pack (repeatable)")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	reg := rules.Default()
	for _, p := range append(cfg.Rules.Packs, packs...) {
		if _, err := extrules.LoadAndRegister(p, reg); err != nil {
			fmt.Fprintln(os.Stderr, "list:", err)
			return runner.ExitConfig
		}
	}
	for _, r := range reg.All() {
		state := "disabled"
		if r.Enabled {
			state = "enabled"
		}
		fmt.Printf("%s [%s] (%s) – %s\n", r.ID, r.Severity, state, r.Summary)
		if len(r.Version) > 0 {
			fmt.Printf("    version: %s\n", strings.Join(r.Version, " | "))
		}
		for _, p := range r.Params {
			fmt.Printf("    %s (%s, default=%s): %s\n", p.Name, p.Kind, p.DefaultString(), p.Help)
		}
	}
	return runner.ExitOK
}

func diffCmd(args []string) int {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	base := fs.String("base", "", "Base run ID")
	head := fs.String("head", "", "Head run ID")
	dbPath := fs.String("db", "", "History store path")
	outDir := fs.String("out", "", "Output directory for the diff JSON")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)
	if *dbPath == "" {
		*dbPath = cfg.History.DSN
	}
	if *base == "" || *head == "" {
		fmt.Fprintln(os.Stderr, "diff: --base and --head are required")
		return runner.ExitConfig
	}

	db, err := history.Open(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		return runner.ExitConfig
	}
	defer db.Close()

	br, err := db.LoadRun(*base)
	if err != nil {
		slog.Error("load base run", "err", err)
		return runner.ExitConfig
	}
	hr, err := db.LoadRun(*head)
	if err != nil {
		slog.Error("load head run", "err", err)
		return runner.ExitConfig
	}
	d := history.DiffRuns(&br, &hr)
	if *outDir != "" {
		path, err := reporting.WriteDiffJSON(*outDir, d)
		if err != nil {
			slog.Error("write diff", "err", err)
			return runner.ExitConfig
		}
		fmt.Println("diff written:", path)
	}
	fmt.Printf("new: %d  fixed: %d  severity-changed: %d\n", len(d.New), len(d.Fixed), len(d.Changed))
	return runner.ExitOK
}

func pickTemplate(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return issue.DefaultTemplate, nil
	case "extended":
		return issue.ExtendedTemplate, nil
	default:
		return "", fmt.Errorf("unknown output template %q (default, extended)", name)
	}
}

// discover expands glob patterns into a sorted, de-duplicated file list.
// Literal paths that do not exist surface as configuration errors.
func discover(globs []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, g := range globs {
		if !strings.ContainsAny(g, "*?[{") {
			if _, err := os.Stat(g); err != nil {
				return nil, fmt.Errorf("source %q: %w", g, err)
			}
			if !seen[g] {
				seen[g] = true
				out = append(out, g)
			}
			continue
		}
		matches, err := doublestar.Glob(g)
		if err != nil {
			return nil, fmt.Errorf("source pattern %q: %w", g, err)
		}
		for _, m := range matches {
			if info, err := os.Stat(m); err == nil && !info.IsDir() && !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kvit-s/tagedit/internal/config"
	"github.com/kvit-s/tagedit/internal/engine"
	"github.com/kvit-s/tagedit/internal/logging"
	"github.com/kvit-s/tagedit/internal/tools"
	"github.com/kvit-s/tagedit/internal/ui"
	"github.com/kvit-s/tagedit/internal/workspace"
)

// Version info set by ldflags at build time
var (
	version    = "dev"
	commitHash = "dev"
	commitDate = "unknown"
)

// Exit codes: 0 success (including a pure no-op batch), 1 batch rejected
// (stale tag, conflict, malformed request), 2 usage or IO failure.
const (
	exitOK       = 0
	exitRejected = 1
	exitUsage    = 2
)

func main() {
	viewPath := flag.String("view", "", "print FILE with tagged lines and exit")
	fromLine := flag.Int("from", 0, "first line to view (1-based, with -view)")
	toLine := flag.Int("to", 0, "last line to view (1-based, with -view)")
	applyPath := flag.String("apply", "", "apply an edit batch to FILE")
	editsPath := flag.String("edits", "", "batch JSON file, or '-' for stdin (with -apply)")
	confirm := flag.Bool("confirm", false, "ask before writing the file")
	dryRun := flag.Bool("dry-run", false, "validate and show the diff without writing")
	configPath := flag.String("config", "config.yaml", "path to config file")
	logFile := flag.String("log", "", "log file path (empty to disable)")
	quiet := flag.Bool("quiet", false, "suppress info output")
	showVersion := flag.Bool("version", false, "show version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s-%s-%s\n", version, commitDate, commitHash)
		return
	}

	writer := ui.NewWriter()
	writer.SetQuiet(*quiet)

	if *viewPath == "" && *applyPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: tagedit -view FILE [-from N -to M]")
		fmt.Fprintln(os.Stderr, "       tagedit -apply FILE -edits FILE|- [-confirm] [-dry-run]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Options:")
		flag.PrintDefaults()
		os.Exit(exitUsage)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		writer.Error(fmt.Sprintf("Failed to load config: %v", err))
		os.Exit(exitUsage)
	}

	logger, err := logging.New(*logFile, false)
	if err != nil {
		writer.Error(fmt.Sprintf("Failed to initialize logger: %v", err))
		os.Exit(exitUsage)
	}
	defer logger.Close()

	if *viewPath != "" {
		os.Exit(runView(cfg, writer, *viewPath, *fromLine, *toLine))
	}
	os.Exit(runApply(cfg, writer, logger, *applyPath, *editsPath, *confirm, *dryRun))
}

func runView(cfg *config.Config, writer *ui.Writer, path string, from, to int) int {
	if !cfg.IsToolEnabled("view") {
		writer.Error("view tool is disabled in config")
		return exitUsage
	}
	tool := tools.NewViewFileTool(cfg)

	args := map[string]any{"path": path}
	if from > 0 {
		args["from"] = from
	}
	if to > 0 {
		args["to"] = to
	}
	raw, _ := json.Marshal(args)

	res, err := tool.Call(context.Background(), raw)
	if err != nil {
		writer.Error(err.Error())
		return exitUsage
	}

	out, ok := res.(map[string]any)
	if !ok {
		writer.Error(fmt.Sprintf("unexpected view result type %T", res))
		return exitUsage
	}
	if content, _ := out["content"].(string); content != "" {
		writer.Print(content)
	}
	if out["truncated"] == true {
		writer.Warn(fmt.Sprintf("output truncated at line %v of %v", out["to"], out["total_lines"]))
	}
	return exitOK
}

func runApply(cfg *config.Config, writer *ui.Writer, logger *logging.Logger, path, editsPath string, confirm, dryRun bool) int {
	if !cfg.IsToolEnabled("edit") {
		writer.Error("edit tool is disabled in config")
		return exitUsage
	}
	if editsPath == "" {
		writer.Error("-apply requires -edits FILE|-")
		return exitUsage
	}

	batchJSON, err := readEdits(editsPath)
	if err != nil {
		writer.Error(fmt.Sprintf("Failed to read edits: %v", err))
		return exitUsage
	}

	reqs, err := engine.DecodeRequests(batchJSON)
	if err != nil {
		writer.Error(err.Error())
		logger.BatchRejected(path, err)
		return exitRejected
	}

	fullPath, _, err := tools.NormalizeAndValidatePath(cfg.Workspace.Root, path)
	if err != nil {
		writer.Error(fmt.Sprintf("Invalid path: %v", err))
		return exitUsage
	}
	if cfg.IsPathDenied(fullPath) {
		writer.Error(fmt.Sprintf("Access denied: %s", path))
		return exitUsage
	}

	// Serialize against other tagedit processes on the same workspace. The
	// fingerprint check only catches writers that land between view and apply.
	lock, err := workspace.AcquireLock(cfg.Workspace.Root)
	if err != nil {
		writer.Error(err.Error())
		return exitUsage
	}
	defer lock.Release()

	raw, err := os.ReadFile(fullPath)
	if err != nil {
		writer.Error(fmt.Sprintf("Failed to read %s: %v", path, err))
		return exitUsage
	}
	if max := cfg.Tools.Edit.MaxFileSizeKB; max > 0 && len(raw) > max*1024 {
		writer.Error(fmt.Sprintf("File too large to edit: %d KB (limit %d KB)", len(raw)/1024, max))
		return exitUsage
	}

	start := time.Now()
	result, newRaw, err := engine.Apply(raw, reqs)
	if err != nil {
		writer.Error(err.Error())
		var editErr *engine.EditError
		if errors.As(err, &editErr) {
			writer.Info(fmt.Sprintf("batch rejected at edit %d; nothing was applied", editErr.Edit))
		}
		logger.BatchRejected(path, err)
		return exitRejected
	}

	diff, err := tools.UnifiedDiff(string(raw), string(newRaw), path)
	if err != nil {
		writer.Error(fmt.Sprintf("Failed to generate diff: %v", err))
		return exitUsage
	}

	if result.FirstChanged == 0 {
		writer.Info(fmt.Sprintf("no-op: %s already matches the requested content", path))
		return exitOK
	}

	writer.Diff(diff)
	if len(result.NoopEdits) > 0 {
		writer.Info(fmt.Sprintf("no-op edits in batch: %v", result.NoopEdits))
	}

	if dryRun {
		writer.Info(fmt.Sprintf("dry run: %s not written", path))
		return exitOK
	}

	if confirm {
		ok, err := ui.Confirm(fmt.Sprintf("Apply %d edit(s) to %s?", len(reqs), path))
		if err != nil {
			writer.Error(fmt.Sprintf("Confirmation failed: %v", err))
			return exitUsage
		}
		if !ok {
			writer.Info("aborted; file not written")
			return exitOK
		}
	}

	if err := tools.WriteFileAtomic(fullPath, newRaw); err != nil {
		writer.Error(fmt.Sprintf("Failed to write %s: %v", path, err))
		return exitUsage
	}

	logger.BatchApplied(path, len(reqs), len(result.NoopEdits), result.FirstChanged, time.Since(start))
	writer.Info(fmt.Sprintf("applied %d edit(s) to %s (first changed line %d)", len(reqs), path, result.FirstChanged))
	return exitOK
}

func readEdits(editsPath string) ([]byte, error) {
	if editsPath == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(editsPath)
}

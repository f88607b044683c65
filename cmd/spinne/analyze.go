package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spinnegraph/spinne/internal/config"
	"github.com/spinnegraph/spinne/internal/pipeline"
	"github.com/spinnegraph/spinne/internal/report"
	"github.com/spinnegraph/spinne/internal/spinnelog"
	"github.com/spinnegraph/spinne/pkg/types"
)

var (
	entryFlag       string
	formatFlag      string
	includeFlag     string
	excludeFlag     string
	entryPointsFlag string
	fileNameFlag    string
	logLevelFlag    int
)

func bindAnalyzeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&entryFlag, "entry", "e", "", "root directory to analyze (default: current working directory)")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "file", "output format: file, console, html, json")
	cmd.Flags().StringVar(&includeFlag, "include", "", "comma-separated include globs, unioned with spinne.json")
	cmd.Flags().StringVar(&excludeFlag, "exclude", "", "comma-separated exclude globs, unioned with spinne.json")
	cmd.Flags().StringVar(&entryPointsFlag, "entry-points", "", "comma-separated entry point files for the auxiliary exports report")
	cmd.Flags().StringVar(&fileNameFlag, "file-name", "spinne-report", "output base name for the file/html formats")
	cmd.Flags().CountVarP(&logLevelFlag, "verbose", "l", "increase log verbosity (repeatable, 0-4)")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	entry := entryFlag
	if entry == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}
		entry = wd
	}
	entry, err := filepath.Abs(entry)
	if err != nil {
		return fmt.Errorf("resolve entry path: %w", err)
	}

	level := spinnelog.Level(logLevelFlag)
	if level > spinnelog.LevelAll {
		level = spinnelog.LevelAll
	}
	logger := spinnelog.New(cmd.ErrOrStderr(), level)

	fileCfg, err := config.Load(entry)
	if err != nil {
		return asExitError(err, 1)
	}
	merged := config.Merge(fileCfg, config.CLIOverrides{
		Include:     splitCSV(includeFlag),
		Exclude:     splitCSV(excludeFlag),
		EntryPoints: splitCSV(entryPointsFlag),
	})
	if len(merged.EntryPoints) > 0 {
		logger.Debug("entry points accepted but not processed by the core graph extraction", "count", len(merged.EntryPoints))
	}

	p := pipeline.New(pipeline.Options{
		IncludeGlobs: merged.Include,
		ExcludeGlobs: merged.Exclude,
		Logger:       logger,
	})

	graphs, summary, err := p.Run(context.Background(), entry)
	if err != nil {
		return asExitError(err, 1)
	}
	for _, pe := range summary.ParseErrors {
		logger.Warn("parse error", "file", pe.File, "message", pe.Message)
	}
	for _, rc := range summary.ReexportCycles {
		logger.Warn("re-export cycle", "file", rc.File, "specifier", rc.ModuleSpecifier, "depth", rc.Depth)
	}

	rep := report.Build(graphs)

	switch formatFlag {
	case "console":
		report.RenderConsole(cmd.OutOrStdout(), rep)
	case "json":
		if err := report.RenderJSON(cmd.OutOrStdout(), rep); err != nil {
			return fmt.Errorf("render json: %w", err)
		}
	case "html":
		path, err := report.RenderFile(rep, "", fileNameFlag, "html")
		if err != nil {
			return fmt.Errorf("render html: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "HTML report written to %s\n", path)
	default: // "file"
		path, err := report.RenderFile(rep, "", fileNameFlag, "json")
		if err != nil {
			return fmt.Errorf("render report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
	}

	return nil
}

// asExitError wraps a fatal pipeline/config error with an exit code, so
// Execute reports 1 without cobra also printing a usage banner.
func asExitError(err error, code int) error {
	if err == nil {
		return nil
	}
	var exitErr *types.ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &types.ExitError{Code: code, Message: err.Error()}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Command iconsort is the entrypoint for the icon classifier CLI.
// It loads config, validates paths, and either runs diagnostics (--check) or
// the fetch/classify/copy pipeline.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/backmassage/iconsort/internal/catalog"
	"github.com/backmassage/iconsort/internal/check"
	"github.com/backmassage/iconsort/internal/config"
	"github.com/backmassage/iconsort/internal/display"
	"github.com/backmassage/iconsort/internal/logging"
	"github.com/backmassage/iconsort/internal/pipeline"
)

// version and commit are set at build time via -ldflags (e.g. Makefile).
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 1. Load config: defaults, config file, environment, then flags.
	config.Version = version
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "iconsort: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "iconsort: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "iconsort: %v\n", err)
		return 1
	}
	defer log.Close()

	display.PrintBanner(os.Stdout)

	// SIGINT/SIGTERM stop the run between files.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := catalog.NewFetcher(catalog.Options{
		UserAgent:   cfg.UserAgent,
		InsecureTLS: cfg.InsecureTLS,
		Timeout:     cfg.FetchTimeout,
	})

	// 2. Diagnostics only.
	if cfg.CheckOnly {
		if !check.RunCheck(ctx, &cfg, log, fetcher) {
			return 1
		}
		return 0
	}

	// 3. Destination must not sit inside the source. Neither directory is
	// created here; the pipeline reports a missing source itself.
	if sourceAbs, destAbs, err := resolvePaths(cfg.SourceDir, cfg.DestDir); err == nil {
		if err := cfg.ValidatePaths(sourceAbs, destAbs); err != nil {
			log.Error("%v", err)
			log.Error("Choose a destination outside: %s", cfg.SourceDir)
			return 1
		}
	}

	log.Info("=== iconsort v%s (%s) ===", version, commit)
	log.Info("In:  %s", cfg.SourceDir)
	log.Info("Out: %s", cfg.DestDir)
	if cfg.DryRun {
		log.Warn("DRY RUN")
	}

	// 4. Fetch, classify, copy.
	if _, err := pipeline.Run(ctx, &cfg, log, fetcher); err != nil {
		return 1
	}
	return 0
}

// resolvePaths returns absolute source and destination paths for the
// containment check. Symlinks are resolved for whichever part of each path
// already exists.
func resolvePaths(source, dest string) (string, string, error) {
	sourceAbs, err := absPath(source)
	if err != nil {
		return "", "", err
	}
	destAbs, err := absPath(dest)
	if err != nil {
		return "", "", err
	}
	return sourceAbs, destAbs, nil
}

// absPath returns the absolute path with symlinks resolved in its longest
// existing prefix, so a destination that does not exist yet still compares
// correctly against the source.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	var missing []string
	dir := abs
	for {
		resolved, err := filepath.EvalSymlinks(dir)
		if err == nil {
			return filepath.Join(append([]string{resolved}, missing...)...), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}
		missing = append([]string{filepath.Base(dir)}, missing...)
		dir = parent
	}
}

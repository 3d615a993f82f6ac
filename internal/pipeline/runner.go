package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/backmassage/iconsort/internal/catalog"
	"github.com/backmassage/iconsort/internal/config"
	"github.com/backmassage/iconsort/internal/display"
	"github.com/backmassage/iconsort/internal/logging"
	"github.com/backmassage/iconsort/internal/naming"
	"github.com/backmassage/iconsort/internal/planner"
	"github.com/backmassage/iconsort/internal/taxonomy"
	"github.com/backmassage/iconsort/internal/term"
)

// Fatal conditions. Each aborts the run before the destination is touched.
var (
	ErrSourceMissing        = errors.New("source directory not found")
	ErrFetchFailed          = errors.New("catalog fetch failed")
	ErrInsufficientTaxonomy = errors.New("catalog mapping below threshold")
	ErrInterrupted          = errors.New("interrupted")
)

// MarkupSource returns the catalog page markup. [catalog.Fetcher] is the
// production implementation.
type MarkupSource interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Run is the top-level entry point. It verifies the source directory, fetches
// and extracts the taxonomy, plans every icon, and copies sequentially.
// The returned error wraps one of the sentinels above or the first per-file
// copy failure.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, src MarkupSource) (RunStats, error) {
	stats := RunStats{RunID: uuid.NewString()}
	log.Info("Run %s started", stats.RunID)

	// --- Source check (before any network activity) ---
	if fi, err := os.Stat(cfg.SourceDir); err != nil || !fi.IsDir() {
		log.Error("Source directory not found: %s", cfg.SourceDir)
		return stats, fmt.Errorf("%w: %s", ErrSourceMissing, cfg.SourceDir)
	}

	// --- Taxonomy ---
	m, err := loadMapping(ctx, cfg, log, src)
	if err != nil {
		return stats, err
	}
	stats.Mapped = m.Len()

	if cfg.MappingOut != "" {
		if err := writeMapping(cfg.MappingOut, m, stats.RunID); err != nil {
			log.Warn("Cannot write mapping to %s: %v", cfg.MappingOut, err)
		} else {
			log.Info("Mapping written to %s", cfg.MappingOut)
		}
	}

	// --- Discover and plan ---
	files, err := Discover(cfg.SourceDir, cfg.ImageExt)
	if err != nil {
		log.Error("File discovery failed: %v", err)
		return stats, err
	}
	stats.Total = len(files)
	log.Info("Found %s %s files in %s", display.FormatCount(stats.Total), cfg.ImageExt, cfg.SourceDir)

	entries := planner.Build(files, m, cfg.DestDir, cfg.ImageExt, naming.NewCollisionResolver())
	if cfg.DryRun {
		log.Warn("DRY RUN: nothing will be written")
		logPlan(log, planner.Summarize(entries))
	}

	// --- Copy ---
	if !cfg.DryRun {
		if err := os.MkdirAll(cfg.DestDir, 0o755); err != nil {
			log.Error("Cannot create destination directory: %v", err)
			return stats, err
		}
	}

	for i, e := range entries {
		if ctx.Err() != nil {
			log.Warn("Interrupted after %d of %d files", i, stats.Total)
			logSummary(cfg, log, &stats)
			return stats, ErrInterrupted
		}
		if err := processEntry(cfg, log, e, &stats); err != nil {
			stats.Failed++
			log.Error("Copy failed for %s: %v", filepath.Base(e.Source), err)
			logSummary(cfg, log, &stats)
			return stats, fmt.Errorf("copy %s: %w", e.Source, err)
		}
		if stats.Copied%cfg.ProgressEvery == 0 {
			log.Info("%s %s files...", progressVerb(cfg), display.FormatCount(stats.Copied))
		}
	}

	logSummary(cfg, log, &stats)
	return stats, nil
}

// loadMapping fetches the catalog markup, extracts the mapping, and applies
// the size threshold.
func loadMapping(ctx context.Context, cfg *config.Config, log *logging.Logger, src MarkupSource) (taxonomy.Mapping, error) {
	log.Info("Connecting to %s", cfg.CatalogURL)
	fetchCtx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	markup, err := src.Fetch(fetchCtx, cfg.CatalogURL)
	if err != nil {
		log.Error("Cannot fetch catalog: %v", err)
		log.Error("%s", catalog.KindOf(err).HumanMessage())
		return taxonomy.Mapping{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	m := taxonomy.Extract(markup)
	log.Info("Mapped %s icons to %s categories",
		display.FormatCount(m.Len()), display.FormatCount(len(m.Categories())))

	if m.Len() < cfg.MinMappings {
		log.Error("Only %d icons mapped (minimum %d); the catalog layout has probably changed",
			m.Len(), cfg.MinMappings)
		return taxonomy.Mapping{}, fmt.Errorf("%w: %d < %d", ErrInsufficientTaxonomy, m.Len(), cfg.MinMappings)
	}
	return m, nil
}

// processEntry copies one planned icon, or logs it in dry-run.
func processEntry(cfg *config.Config, log *logging.Logger, e planner.Entry, stats *RunStats) error {
	name := filepath.Base(e.Source)
	if e.Rule != "" {
		log.Debug(cfg.Verbose, "%s -> key %q (%s) -> %s", name, e.Key, e.Rule, e.Category)
	} else {
		log.Debug(cfg.Verbose, "%s -> key %q -> %s", name, e.Key, e.Category)
	}
	if e.Renamed {
		log.Warn("Name taken in %s, writing %s", e.Category, term.Fallback.Paint(filepath.Base(e.Destination)))
	}

	if cfg.DryRun {
		log.Debug(cfg.Verbose, "[DRY] Would copy to %s", e.Destination)
		countEntry(stats, e, 0)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(e.Destination), 0o755); err != nil {
		return err
	}
	n, err := copyFile(e.Source, e.Destination)
	if err != nil {
		return err
	}
	countEntry(stats, e, n)
	return nil
}

func countEntry(stats *RunStats, e planner.Entry, n int64) {
	stats.Copied++
	stats.BytesCopied += n
	if e.Uncategorized() {
		stats.Uncategorized++
	}
	if e.Renamed {
		stats.Renamed++
	}
}

// progressVerb names what the loop did to each file so far.
func progressVerb(cfg *config.Config) string {
	if cfg.DryRun {
		return "Planned"
	}
	return "Copied"
}

func writeMapping(path string, m taxonomy.Mapping, runID string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.WriteYAML(f, runID); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	if cfg.DryRun {
		log.Success("Done (dry run): %s files planned into %s",
			display.FormatCount(stats.Copied), cfg.DestDir)
	} else {
		log.Success("Done: %s files copied into %s (%s)",
			display.FormatCount(stats.Copied), cfg.DestDir, display.FormatBytes(stats.BytesCopied))
	}
	log.Info("  Run ID:            %s", stats.RunID)
	log.Info("  Icons mapped:      %s", display.FormatCount(stats.Mapped))
	log.Info("  Uncategorized:     %s (%s)",
		display.FormatCount(stats.Uncategorized), display.FormatShare(stats.Uncategorized, stats.Copied))
	log.Info("  Duplicates renamed: %s", display.FormatCount(stats.Renamed))
	if stats.Failed > 0 {
		log.Warn("  Failed:            %d", stats.Failed)
	}
}

// Package check provides the --check diagnostics: source directory, destination
// writability, and catalog reachability with the size of the mapping it yields.
package check

import (
	"context"
	"os"
	"path/filepath"

	"github.com/backmassage/iconsort/internal/catalog"
	"github.com/backmassage/iconsort/internal/config"
	"github.com/backmassage/iconsort/internal/pipeline"
	"github.com/backmassage/iconsort/internal/taxonomy"
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs every diagnostic and reports whether all of them passed.
// It never writes outside a temporary probe file in the destination.
func RunCheck(ctx context.Context, cfg *config.Config, log Logger, src pipeline.MarkupSource) bool {
	log.Info("=== System Check ===")

	ok := true
	if cfg.SourceDir != "" {
		ok = checkSource(cfg, log) && ok
	}
	if cfg.DestDir != "" {
		ok = checkDest(cfg, log) && ok
	}
	ok = checkCatalog(ctx, cfg, log, src) && ok

	if ok {
		log.Success("All checks passed")
	} else {
		log.Error("Some checks failed")
	}
	return ok
}

// checkSource verifies the source directory exists and counts its images.
func checkSource(cfg *config.Config, log Logger) bool {
	files, err := pipeline.Discover(cfg.SourceDir, cfg.ImageExt)
	if err != nil {
		log.Error("Source: %v", err)
		return false
	}
	if len(files) == 0 {
		log.Warn("Source: %s has no %s files", cfg.SourceDir, cfg.ImageExt)
		return true
	}
	log.Success("Source: %d %s files in %s", len(files), cfg.ImageExt, cfg.SourceDir)
	return true
}

// checkDest verifies the destination (or its nearest existing parent) accepts
// new files.
func checkDest(cfg *config.Config, log Logger) bool {
	dir := nearestExisting(cfg.DestDir)
	f, err := os.CreateTemp(dir, ".iconsort-check-*")
	if err != nil {
		log.Error("Destination: %s is not writable: %v", dir, err)
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	if dir != filepath.Clean(cfg.DestDir) {
		log.Success("Destination: %s will be created under %s", cfg.DestDir, dir)
	} else {
		log.Success("Destination: %s is writable", cfg.DestDir)
	}
	return true
}

// checkCatalog fetches the catalog and reports the mapping size against the
// abort threshold.
func checkCatalog(ctx context.Context, cfg *config.Config, log Logger, src pipeline.MarkupSource) bool {
	log.Info("Fetching %s...", cfg.CatalogURL)
	fetchCtx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	markup, err := src.Fetch(fetchCtx, cfg.CatalogURL)
	if err != nil {
		log.Error("Catalog: %v", err)
		log.Error("%s", catalog.KindOf(err).HumanMessage())
		return false
	}
	m := taxonomy.Extract(markup)
	if m.Len() < cfg.MinMappings {
		log.Error("Catalog: %d icons mapped, below the minimum of %d", m.Len(), cfg.MinMappings)
		return false
	}
	log.Success("Catalog: %d icons in %d categories", m.Len(), len(m.Categories()))
	return true
}

// nearestExisting walks up from path to the first directory that exists.
func nearestExisting(path string) string {
	dir := filepath.Clean(path)
	for {
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

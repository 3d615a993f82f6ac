// Package config holds runtime configuration: defaults, an optional YAML file,
// ICONSORT_* environment overrides, CLI flag parsing, and validation.
// Defaults match the legacy fix_icons script so a bare invocation behaves
// the same way.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Default catalog settings.
const (
	DefaultCatalogURL = "https://game-icons.net/tags.html"
	DefaultUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then layered with [LoadFile], [ApplyEnv] and [ParseFlags] (in that order)
// before being passed by pointer to the packages that need it.
type Config struct {
	// Paths (set from positional args, file, or env).
	SourceDir string `yaml:"source_dir" env:"SOURCE_DIR"`
	DestDir   string `yaml:"dest_dir" env:"DEST_DIR"`

	// Catalog fetch.
	CatalogURL   string        `yaml:"catalog_url" env:"CATALOG_URL"`
	UserAgent    string        `yaml:"user_agent" env:"USER_AGENT"`
	InsecureTLS  bool          `yaml:"insecure_tls" env:"INSECURE_TLS"`   // Default: true. Cleared by --strict-tls.
	FetchTimeout time.Duration `yaml:"fetch_timeout" env:"FETCH_TIMEOUT"` // Default: 30s.

	// Classification.
	MinMappings   int    `yaml:"min_mappings" env:"MIN_MAPPINGS"`     // Default: 100. Abort threshold.
	ImageExt      string `yaml:"image_ext" env:"IMAGE_EXT"`           // Default: ".svg".
	ProgressEvery int    `yaml:"progress_every" env:"PROGRESS_EVERY"` // Default: 500 files.

	// Behavior flags.
	DryRun     bool   `yaml:"dry_run" env:"DRY_RUN"`
	MappingOut string `yaml:"mapping_out" env:"MAPPING_OUT"` // Optional YAML dump of the extracted mapping.

	// Display and logging.
	Verbose    bool      `yaml:"verbose" env:"VERBOSE"`
	ColorMode  ColorMode `yaml:"color" env:"COLOR"` // Default: "auto".
	LogFile    string    `yaml:"log_file" env:"LOG_FILE"`
	CheckOnly  bool      `yaml:"-"` // Run --check diagnostics and exit.
	ConfigFile string    `yaml:"-"` // Path given by --config.
}

// DefaultConfig returns a Config with defaults matching the legacy script.
// Used as the base before the file, env and flag layers are applied.
func DefaultConfig() Config {
	return Config{
		CatalogURL:    DefaultCatalogURL,
		UserAgent:     DefaultUserAgent,
		InsecureTLS:   true,
		FetchTimeout:  30 * time.Second,
		MinMappings:   100,
		ImageExt:      ".svg",
		ProgressEvery: 500,
		ColorMode:     ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum and numeric fields and the catalog URL. When not in
// CheckOnly mode, it also requires both directory paths.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.MinMappings < 1 {
		return fmt.Errorf("min mappings must be at least 1 (got %d)", c.MinMappings)
	}
	if c.ProgressEvery < 1 {
		return fmt.Errorf("progress interval must be at least 1 (got %d)", c.ProgressEvery)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive (got %s)", c.FetchTimeout)
	}
	if len(c.ImageExt) < 2 || !strings.HasPrefix(c.ImageExt, ".") {
		return fmt.Errorf("invalid image extension %q (use e.g. .svg)", c.ImageExt)
	}
	if err := validateCatalogURL(c.CatalogURL); err != nil {
		return err
	}

	if c.CheckOnly {
		return nil
	}
	if c.SourceDir == "" || c.DestDir == "" {
		return errors.New("need exactly source_dir and dest_dir")
	}
	return nil
}

func validateCatalogURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid catalog URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid catalog URL %q (need absolute http or https URL)", raw)
	}
	return nil
}

// ValidatePaths ensures the resolved destination directory is not inside (or
// equal to) the resolved source directory, so copied icons are never picked up
// as sources. Both arguments must be absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(sourceAbs, destAbs string) error {
	sep := string(filepath.Separator)
	if destAbs == sourceAbs || strings.HasPrefix(destAbs+sep, sourceAbs+sep) {
		return errors.New("destination directory must not be inside source directory")
	}
	return nil
}

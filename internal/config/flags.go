package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into catalog, classification, behavior, display, and utility.
// Negated flags (e.g. --strict-tls) are applied after Parse so earlier layers hold unless set.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// Version is shown in --version and help; cmd/iconsort overrides it with the
// value injected at build time.
var Version = "1.0.0-dev"

// ParseFlags parses args (without the program name) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil (e.g. unknown
// flag, wrong number of positional args).
func ParseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("iconsort", flag.ContinueOnError)
	fs.Usage = func() { printUsage() }

	var negated negatedFlags

	defineCatalogFlags(fs, cfg, &negated)
	defineClassificationFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, cfg, &negated)

	if err := fs.Parse(args); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage()
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "iconsort v"+Version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
// These either invert a default (e.g. strictTLS -> InsecureTLS=false) or trigger exit (showHelp, showVersion).
type negatedFlags struct {
	strictTLS   bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineCatalogFlags registers --catalog-url, --user-agent, --timeout, --strict-tls.
func defineCatalogFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.StringVar(&cfg.CatalogURL, "catalog-url", cfg.CatalogURL, "Taxonomy page to scrape")
	fs.StringVar(&cfg.UserAgent, "user-agent", cfg.UserAgent, "User-Agent header sent to the catalog")
	fs.DurationVar(&cfg.FetchTimeout, "timeout", cfg.FetchTimeout, "Catalog fetch timeout")
	fs.BoolVar(&n.strictTLS, "strict-tls", false, "Verify the catalog's TLS certificate")
}

// defineClassificationFlags registers --min-mappings, --ext, --progress-every.
func defineClassificationFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.MinMappings, "min-mappings", cfg.MinMappings, "Abort when fewer icons are mapped")
	fs.StringVar(&cfg.ImageExt, "ext", cfg.ImageExt, "Image file suffix to classify")
	fs.IntVar(&cfg.ProgressEvery, "progress-every", cfg.ProgressEvery, "Log progress every N copied files")
}

// defineBehaviorFlags registers dry-run and mapping-out.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Plan only; do not create folders or copy")
	fs.BoolVar(&cfg.DryRun, "d", cfg.DryRun, "Same as --dry-run")
	fs.StringVar(&cfg.MappingOut, "mapping-out", cfg.MappingOut, "Write the extracted mapping as YAML")
}

// defineDisplayFlags registers --color-mode, --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.Var(&colorModeValue{&cfg.ColorMode}, "color-mode", "Color output: auto | always | never")
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
}

// defineUtilityFlags registers --config, --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.StringVar(&cfg.ConfigFile, "config", "", "YAML config file (applied before env and flags)")
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated and override flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.strictTLS {
		cfg.InsecureTLS = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets SourceDir and DestDir from the two positional args.
// With no positional args the file/env values are kept.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	switch len(args) {
	case 0:
		if cfg.CheckOnly || (cfg.SourceDir != "" && cfg.DestDir != "") {
			cfg.SourceDir = NormalizeDirArg(cfg.SourceDir)
			cfg.DestDir = NormalizeDirArg(cfg.DestDir)
			return nil
		}
	case 2:
		cfg.SourceDir = NormalizeDirArg(args[0])
		cfg.DestDir = NormalizeDirArg(args[1])
		return nil
	}
	return fmt.Errorf("need exactly source_dir and dest_dir")
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage() {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "iconsort v" + Version + " - sort icon files into catalog categories"},
		{"", ""},
		{"  iconsort [OPTIONS] <source_dir> <dest_dir>", ""},
		{"", ""},
		{"Catalog", ""},
		{"  --catalog-url <url>", "Taxonomy page (default: " + DefaultCatalogURL + ")"},
		{"  --user-agent <ua>", "User-Agent header (default: desktop Chrome)"},
		{"  --timeout <dur>", "Fetch timeout (default: 30s)"},
		{"  --strict-tls", "Verify TLS certificates (default: relaxed)"},
		{"", ""},
		{"Classification", ""},
		{"  --min-mappings <n>", "Abort below n mapped icons (default: 100)"},
		{"  --ext <suffix>", "Image suffix to classify (default: .svg)"},
		{"  --progress-every <n>", "Progress line every n copies (default: 500)"},
		{"", ""},
		{"Output & behavior", ""},
		{"  -d, --dry-run", "Plan only; do not create folders or copy"},
		{"  --mapping-out <path>", "Write the extracted mapping as YAML"},
		{"", ""},
		{"Display", ""},
		{"  --color-mode <mode>", "auto | always | never (default: auto)"},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Per-file key and category"},
		{"", ""},
		{"Utility", ""},
		{"  --config <path>", "YAML config file"},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "Diagnostics (source, destination, catalog)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
		{"", ""},
		{"", "Environment: " + EnvPrefix + "SOURCE_DIR, " + EnvPrefix + "DEST_DIR, " + EnvPrefix + "CATALOG_URL, ..."},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapter so ColorMode can be used with flag.Var.
type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string {
	if c.p == nil {
		return ""
	}
	return string(*c.p)
}

func (c *colorModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "auto":
		*c.p = ColorAuto
	case "always":
		*c.p = ColorAlways
	case "never":
		*c.p = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}

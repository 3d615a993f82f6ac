package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every env tag in [Config].
const EnvPrefix = "ICONSORT_"

// LoadFile overlays the YAML file at path onto cfg. Keys missing from the
// file keep their current values. ${VAR} references are expanded before
// decoding.
func LoadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	expanded := os.ExpandEnv(string(raw))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays ICONSORT_* environment variables onto cfg. Unset
// variables leave the field untouched.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load builds the effective configuration from args (without the program
// name): defaults, then the --config file when given, then env, then flags.
func Load(args []string) (Config, error) {
	cfg := DefaultConfig()
	if path := configFlagValue(args); path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := ParseFlags(&cfg, args); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// configFlagValue finds --config ahead of the full flag parse, since the file
// has to be applied before flags override it.
func configFlagValue(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			return ""
		}
		name := strings.TrimLeft(a, "-")
		if name == a {
			continue
		}
		if v, ok := strings.CutPrefix(name, "config="); ok {
			return v
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/gorewood/membank/internal/bank"
)

// ProjectFile is the per-project config file name, looked up in the target root.
const ProjectFile = ".membank.yaml"

// EnvPrefix prefixes environment variables: MEMBANK_SKIP_EXISTING -> skip_existing.
const EnvPrefix = "MEMBANK_"

// Config holds the resolved settings for one membank run.
type Config struct {
	Template     string `koanf:"template"`
	Force        bool   `koanf:"force"`
	SkipExisting bool   `koanf:"skip_existing"`
	Prompt       bool   `koanf:"prompt"`
	PromptPath   string `koanf:"prompt_path"`
	Color        string `koanf:"color"`
	Verbose      bool   `koanf:"verbose"`

	// Files lists the config files that were read, lowest precedence first.
	Files []string `koanf:"-"`
}

// Policy returns the installer overwrite policy.
func (c *Config) Policy() bank.Policy {
	return bank.Policy{Force: c.Force, SkipExisting: c.SkipExisting}
}

// Defaults returns the built-in settings.
func Defaults() map[string]any {
	return map[string]any{
		"template":      "",
		"force":         false,
		"skip_existing": false,
		"prompt":        false,
		"prompt_path":   bank.DefaultPromptPath,
		"color":         "auto",
		"verbose":       false,
	}
}

// Options select the sources Load reads.
type Options struct {
	// Root is the target directory searched for ProjectFile.
	Root string
	// File is an explicit config file (--config). It must exist.
	File string
	// Flags are the command flags; only flags set on the command line are applied.
	Flags *pflag.FlagSet
}

// Load resolves the configuration.
// Precedence, highest first: flags > MEMBANK_* env > project file > --config
// file or global file > defaults.
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	var files []string
	if opts.File != "" {
		if err := loadFile(k, opts.File, true); err != nil {
			return nil, err
		}
		files = append(files, opts.File)
	} else if global := GlobalFile(); global != "" {
		if ok, err := loadOptionalFile(k, global); err != nil {
			return nil, err
		} else if ok {
			files = append(files, global)
		}
	}

	if opts.Root != "" {
		project := filepath.Join(opts.Root, ProjectFile)
		if ok, err := loadOptionalFile(k, project); err != nil {
			return nil, err
		} else if ok {
			files = append(files, project)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if opts.Flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, flagKey(opts.Flags)), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Files = files
	return &cfg, nil
}

// envKey maps MEMBANK_PROMPT_PATH to prompt_path.
func envKey(name string) string {
	return strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
}

// flagKey maps explicitly set flags to config keys (kebab-case to snake_case).
// Unset flags and flags that are not config keys are ignored.
func flagKey(flags *pflag.FlagSet) func(*pflag.Flag) (string, any) {
	known := Defaults()
	return func(f *pflag.Flag) (string, any) {
		if !f.Changed {
			return "", nil
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		if _, ok := known[key]; !ok {
			return "", nil
		}
		return key, posflag.FlagVal(flags, f)
	}
}

// loadFile merges the YAML file at path into k. A relative template path in
// the file is taken relative to the file's directory, not the working directory.
func loadFile(k *koanf.Koanf, path string, required bool) error {
	layer := koanf.New(".")
	if err := layer.Load(file.Provider(path), yaml.Parser()); err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	if tmpl := layer.String("template"); tmpl != "" && !filepath.IsAbs(tmpl) {
		if err := layer.Set("template", filepath.Join(filepath.Dir(path), tmpl)); err != nil {
			return fmt.Errorf("resolving template in %s: %w", path, err)
		}
	}

	if err := k.Merge(layer); err != nil {
		return fmt.Errorf("merging config file %s: %w", path, err)
	}
	return nil
}

// loadOptionalFile loads path if it exists and reports whether it did.
func loadOptionalFile(k *koanf.Koanf, path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("checking config file %s: %w", path, err)
	}
	return true, loadFile(k, path, false)
}

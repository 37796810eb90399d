package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/metadir/pkg/codec"
	"github.com/arthur-debert/metadir/pkg/errors"
	"github.com/arthur-debert/metadir/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read into Settings
const EnvPrefix = "METADIR_"

// Settings are the user preferences of the command line tool
type Settings struct {
	// BaseDir is the directory the repository lives in
	BaseDir string `koanf:"base_dir"`
	// Prefix is folded into every repository file name
	Prefix string `koanf:"prefix"`
	// Format is the record format used when a repository is created
	Format    string `koanf:"format"`
	Verbosity int    `koanf:"verbosity"`
	NoColor   bool   `koanf:"no_color"`
	// Output selects the output format: auto, term, text or json
	Output string `koanf:"output"`
}

func defaultSettings() map[string]interface{} {
	return map[string]interface{}{
		"base_dir":  paths.DefaultBaseDir(),
		"prefix":    "",
		"format":    codec.DefaultFormat,
		"verbosity": 0,
		"no_color":  os.Getenv("NO_COLOR") != "",
		"output":    "auto",
	}
}

// LoadSettings layers defaults, the user settings file, environment variables
// and overrides, in that order. Overrides are usually the command line flags
// the user set explicitly.
func LoadSettings(overrides map[string]interface{}) (*Settings, error) {
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(confmap.Provider(defaultSettings(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load default settings: %w", err)
	}

	// 2. User settings file if it exists
	settingsPath := paths.SettingsFilePath()
	if _, err := os.Stat(settingsPath); err == nil {
		if err := k.Load(file.Provider(settingsPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load settings from %s: %w", settingsPath, err)
		}
	}

	// 3. Env vars, ignoring empty ones
	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Explicit overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load overrides: %w", err)
		}
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	s.BaseDir = paths.ExpandHome(s.BaseDir)
	c, err := codec.ForFormat(s.Format)
	if err != nil {
		return nil, err
	}
	s.Format = c.Format()

	switch s.Output {
	case "auto", "term", "text", "json":
	default:
		return nil, errors.Newf(errors.ErrInvalidInput,
			"unsupported output format: %s. Supported formats are auto, term, text, json", s.Output)
	}

	return &s, nil
}

// RepoConfig returns the default repository layout for these settings
func (s *Settings) RepoConfig() RepoConfig {
	return DefaultWithFormat(s.BaseDir, s.Prefix, s.Format)
}

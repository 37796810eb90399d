package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/metadir/pkg/codec"
	"github.com/arthur-debert/metadir/pkg/errors"
	"github.com/arthur-debert/metadir/pkg/logging"
	"github.com/arthur-debert/metadir/pkg/types"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Default file and directory names inside a repository base directory
const (
	LockFileName   = "lock"
	ConfigFileName = "config"
	LinksDirName   = "links"
	DataDirName    = "data"
	SharedDirName  = "shared"
)

// RepoConfig holds the paths a repository instance uses
type RepoConfig struct {
	LockPath     string `koanf:"lock_path" yaml:"lock_path" toml:"lock_path" json:"lock_path"`
	ConfigPath   string `koanf:"config_path" yaml:"config_path" toml:"config_path" json:"config_path"`
	LinksDir     string `koanf:"links_dir" yaml:"links_dir" toml:"links_dir" json:"links_dir"`
	ContainerDir string `koanf:"container_dir" yaml:"container_dir" toml:"container_dir" json:"container_dir"`
	SharedDir    string `koanf:"shared_dir" yaml:"shared_dir" toml:"shared_dir" json:"shared_dir"`
	// Format is the record format for links and manifests
	Format string `koanf:"format" yaml:"format" toml:"format" json:"format"`
}

// Default computes the repository layout for baseDir. A non-empty prefix is
// folded into every name so several repositories can share a base directory.
func Default(baseDir, prefix string) RepoConfig {
	return DefaultWithFormat(baseDir, prefix, codec.DefaultFormat)
}

// DefaultWithFormat is Default with an explicit record format. The format
// also selects the extension of the persisted config file.
func DefaultWithFormat(baseDir, prefix, format string) RepoConfig {
	ext := codec.MustForFormat(codec.DefaultFormat).Ext()
	if c, err := codec.ForFormat(format); err == nil {
		format = c.Format()
		ext = c.Ext()
	} else {
		format = codec.DefaultFormat
	}

	name := func(s string) string {
		if prefix == "" {
			return s
		}
		return prefix + "-" + s
	}

	return RepoConfig{
		LockPath:     filepath.Join(baseDir, "."+name(LockFileName)),
		ConfigPath:   filepath.Join(baseDir, name(ConfigFileName)+"."+ext),
		LinksDir:     filepath.Join(baseDir, name(LinksDirName)),
		ContainerDir: filepath.Join(baseDir, name(DataDirName)),
		SharedDir:    filepath.Join(baseDir, name(SharedDirName)),
		Format:       format,
	}
}

// Codec returns the record codec for the configured format
func (c RepoConfig) Codec() (codec.Codec, error) {
	return codec.ForFormat(c.Format)
}

// Validate checks that every path is absolute and the format is known
func (c RepoConfig) Validate() error {
	for key, p := range c.pathsByKey() {
		if !filepath.IsAbs(p) {
			return errors.Newf(errors.ErrInvalidInput, "%s must be an absolute path, got %q", key, p).
				WithDetail("key", key)
		}
	}
	if _, err := c.Codec(); err != nil {
		return err
	}
	return nil
}

func (c RepoConfig) pathsByKey() map[string]string {
	return map[string]string{
		"lock_path":     c.LockPath,
		"config_path":   c.ConfigPath,
		"links_dir":     c.LinksDir,
		"container_dir": c.ContainerDir,
		"shared_dir":    c.SharedDir,
	}
}

func (c RepoConfig) toMap() map[string]interface{} {
	m := make(map[string]interface{}, 6)
	for k, v := range c.pathsByKey() {
		m[k] = v
	}
	m["format"] = c.Format
	return m
}

// Resolve returns the configuration a repository should be opened with.
// If a config file exists at cfg.ConfigPath it is loaded over cfg and wins;
// otherwise cfg is written there atomically.
func Resolve(fs types.FS, cfg RepoConfig) (RepoConfig, error) {
	logger := logging.GetLogger("config")

	data, err := fs.ReadFile(cfg.ConfigPath)
	if err != nil {
		if !errors.IsNotFound(err) {
			return RepoConfig{}, errors.Other(err, "failed to read repository config %s", cfg.ConfigPath)
		}
		if err := Save(fs, cfg); err != nil {
			return RepoConfig{}, err
		}
		logger.Debug().Str("path", cfg.ConfigPath).Msg("Persisted repository config")
		return cfg, nil
	}

	loaded, err := load(data, cfg)
	if err != nil {
		return RepoConfig{}, err
	}
	logger.Debug().
		Str("path", cfg.ConfigPath).
		Str("linksDir", loaded.LinksDir).
		Str("containerDir", loaded.ContainerDir).
		Msg("Loaded repository config")
	return loaded, nil
}

// Save writes cfg to its config path
func Save(fs types.FS, cfg RepoConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c, err := fileCodec(cfg.ConfigPath)
	if err != nil {
		return err
	}
	data, err := c.Marshal(cfg)
	if err != nil {
		return errors.Other(err, "failed to encode repository config")
	}
	if err := fs.WriteFileAtomic(cfg.ConfigPath, data, 0644); err != nil {
		return errors.Other(err, "failed to write repository config %s", cfg.ConfigPath)
	}
	return nil
}

func load(data []byte, defaults RepoConfig) (RepoConfig, error) {
	k := koanf.New(".")

	// 1. Freshly computed defaults
	if err := k.Load(confmap.Provider(defaults.toMap(), "."), nil); err != nil {
		return RepoConfig{}, fmt.Errorf("failed to load config defaults: %w", err)
	}

	// 2. Persisted file
	parser, err := fileParser(defaults.ConfigPath)
	if err != nil {
		return RepoConfig{}, err
	}
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return RepoConfig{}, errors.Other(err, "failed to parse repository config %s", defaults.ConfigPath)
	}

	var cfg RepoConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return RepoConfig{}, errors.Other(err, "failed to decode repository config %s", defaults.ConfigPath)
	}
	if err := cfg.Validate(); err != nil {
		return RepoConfig{}, err
	}
	return cfg, nil
}

func fileCodec(path string) (codec.Codec, error) {
	return codec.ForFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

func fileParser(path string) (koanf.Parser, error) {
	c, err := fileCodec(path)
	if err != nil {
		return nil, err
	}
	if c.Format() == codec.FormatTOML {
		return toml.Parser(), nil
	}
	return yaml.Parser(), nil
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxbake/pkg/errors"
	"github.com/matzehuels/boxbake/pkg/pipeline"
	"github.com/matzehuels/boxbake/pkg/store"
)

// configFileName is looked up in the config directory.
const configFileName = "config.toml"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the optional config file. Flags override it; it overrides the
// built-in defaults.
type Config struct {
	Width   int      `toml:"width"`
	Height  int      `toml:"height"`
	Formats []string `toml:"formats"`
	Theme   string   `toml:"theme"`

	Cache  CacheConfig  `toml:"cache"`
	Mongo  MongoConfig  `toml:"mongo"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"`
	Redis   RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// MongoConfig configures the layout store. An empty URI keeps layouts in
// memory.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures `boxbake serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Formats: []string{pipeline.FormatSVG},
		Theme:   pipeline.DefaultTheme,
		Cache: CacheConfig{
			Backend: CacheFile,
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
		Mongo: MongoConfig{
			Database:   store.DefaultMongoDatabase,
			Collection: store.DefaultMongoCollection,
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid cache backend %q (must be %s, %s or %s)", c.Cache.Backend, CacheFile, CacheRedis, CacheNone)
	}
	if c.Width != 0 || c.Height != 0 {
		if err := errors.ValidateDimensions(c.Width, c.Height); err != nil {
			return err
		}
	}
	if err := pipeline.ValidateFormats(c.Formats); err != nil {
		return err
	}
	return pipeline.ValidateTheme(c.Theme)
}

// defaultConfigPath returns $XDG_CONFIG_HOME/boxbake/config.toml.
func defaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// readConfig reads path over the defaults. A missing file is an error only
// when the path was given explicitly.
func readConfig(path string, explicit bool) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s: %v", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// loadConfig replaces c.Config with the --config file or the default one.
func (c *CLI) loadConfig() error {
	path, explicit := c.configPath, c.configPath != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			return nil
		}
		path = p
	}
	cfg, err := readConfig(path, explicit)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("config", "path", path, "cache", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Flag Precedence
// =============================================================================

// sizeFromConfig fills width and height from the config unless either flag
// was set on the command line.
func (c *CLI) sizeFromConfig(cmd *cobra.Command, opts *pipeline.Options) {
	if changed(cmd, "width", "height", "size") {
		return
	}
	if c.Config.Width > 0 && c.Config.Height > 0 {
		opts.Width, opts.Height = c.Config.Width, c.Config.Height
	}
}

// renderFromConfig fills formats and theme from the config unless set by flag.
func (c *CLI) renderFromConfig(cmd *cobra.Command, opts *pipeline.Options) {
	if !changed(cmd, "format") && len(c.Config.Formats) > 0 {
		opts.Formats = append([]string(nil), c.Config.Formats...)
	}
	if !changed(cmd, "theme") && c.Config.Theme != "" {
		opts.Theme = c.Config.Theme
	}
}

func changed(cmd *cobra.Command, names ...string) bool {
	for _, n := range names {
		if f := cmd.Flags().Lookup(n); f != nil && f.Changed {
			return true
		}
	}
	return false
}

// Package config loads palettekit settings.
//
// Values are resolved in order: struct defaults, then a YAML file, then
// environment variables (optionally seeded from dotenv files). The result is
// validated before it is returned.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no config path is given, if it exists.
const DefaultFile = "palettekit.yaml"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config is the full application configuration.
type Config struct {
	Session SessionConfig `yaml:"session"`
	Store   StoreConfig   `yaml:"store"`
	Log     LogConfig     `yaml:"log"`
}

// SessionConfig controls edit sessions.
type SessionConfig struct {
	Debounce time.Duration `yaml:"debounce" default:"500ms" validate:"gte=0"`
}

// StoreConfig selects and configures project storage.
type StoreConfig struct {
	Backend string      `yaml:"backend" default:"file" validate:"oneof=memory file redis"`
	Dir     string      `yaml:"dir" default:".palettekit" validate:"required_if=Backend file"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig is used when the store backend is redis.
type RedisConfig struct {
	Addr   string `yaml:"addr" default:"localhost:6379" validate:"required,hostname_port"`
	DB     int    `yaml:"db" validate:"gte=0"`
	Prefix string `yaml:"prefix" default:"palettekit:"`
}

// LogConfig is passed to commonlog.Configure.
type LogConfig struct {
	Verbosity int    `yaml:"verbosity" default:"1" validate:"gte=0,lte=5"`
	File      string `yaml:"file"`
}

// Options tells Load where to look.
type Options struct {
	// Fs is used to read the YAML file. Defaults to the OS filesystem.
	Fs afero.Fs
	// File is the YAML path. Empty means DefaultFile, which may be absent.
	File string
	// EnvFiles are dotenv files loaded before environment overrides.
	// Missing files are skipped. Existing variables are not overwritten.
	EnvFiles []string
}

// Default returns a Config holding only default values.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("applying defaults: %w", err)
	}
	return cfg, nil
}

// Load resolves and validates the configuration.
func Load(opts Options) (*Config, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if err := loadYAML(opts.Fs, opts.File, cfg); err != nil {
		return nil, err
	}

	if err := loadDotenv(opts.EnvFiles); err != nil {
		return nil, err
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func loadYAML(fsys afero.Fs, path string, cfg *Config) error {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	f, err := fsys.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func loadDotenv(files []string) error {
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("loading env files: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	var errs []error

	str := func(key string, dest *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dest = v
		}
	}
	num := func(key string, dest *int) {
		if v, ok := os.LookupEnv(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dest = n
		}
	}

	if v, ok := os.LookupEnv("PALETTEKIT_DEBOUNCE"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("PALETTEKIT_DEBOUNCE: %w", err))
		} else {
			cfg.Session.Debounce = d
		}
	}
	str("PALETTEKIT_STORE_BACKEND", &cfg.Store.Backend)
	str("PALETTEKIT_STORE_DIR", &cfg.Store.Dir)
	str("PALETTEKIT_REDIS_ADDR", &cfg.Store.Redis.Addr)
	num("PALETTEKIT_REDIS_DB", &cfg.Store.Redis.DB)
	str("PALETTEKIT_REDIS_PREFIX", &cfg.Store.Redis.Prefix)
	num("PALETTEKIT_LOG_VERBOSITY", &cfg.Log.Verbosity)
	str("PALETTEKIT_LOG_FILE", &cfg.Log.File)

	if len(errs) > 0 {
		return fmt.Errorf("environment: %w", errors.Join(errs...))
	}
	return nil
}

// LogPath returns the log file path for commonlog.Configure, or nil for
// stderr.
func (c *Config) LogPath() *string {
	if c.Log.File == "" {
		return nil
	}
	return &c.Log.File
}

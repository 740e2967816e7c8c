// Package config loads the console's settings from a YAML file, the
// environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g.
// MUSHEET_ADMIN_SERVER_BASE_URL.
const EnvPrefix = "MUSHEET_ADMIN"

// Config is the console configuration.
type Config struct {
	Server   ServerConfig `mapstructure:"server"`
	List     ListConfig   `mapstructure:"list"`
	Toast    ToastConfig  `mapstructure:"toast"`
	StateDir string       `mapstructure:"state_dir"`
	Log      LogConfig    `mapstructure:"log"`
}

// ServerConfig locates the backend.
type ServerConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ListConfig controls paginated tables.
type ListConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// ToastConfig controls notifications.
type ToastConfig struct {
	Duration time.Duration `mapstructure:"duration"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			BaseURL: "http://127.0.0.1:8080",
			Timeout: 10 * time.Second,
		},
		List:     ListConfig{PageSize: 20},
		Toast:    ToastConfig{Duration: 4 * time.Second},
		StateDir: defaultStateDir(),
		Log:      LogConfig{Level: "info"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/musheet-admin/config.yaml, falling
// back to ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "musheet-admin", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "musheet-admin", "config.yaml"), nil
}

func defaultStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "musheet-admin")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", "musheet-admin")
	}
	return filepath.Join(os.TempDir(), "musheet-admin")
}

// Load reads configuration from path. An empty path means DefaultPath, which
// may be missing; an explicit path must exist. Flags named "url" and
// "state-dir" in flags, when changed, override the file and environment.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	def := Default()
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("server.base_url", def.Server.BaseURL)
	v.SetDefault("server.timeout", def.Server.Timeout)
	v.SetDefault("list.page_size", def.List.PageSize)
	v.SetDefault("toast.duration", def.Toast.Duration)
	v.SetDefault("state_dir", def.StateDir)
	v.SetDefault("log.level", def.Log.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if f := flags.Lookup("url"); f != nil {
			if err := v.BindPFlag("server.base_url", f); err != nil {
				return Config{}, err
			}
		}
		if f := flags.Lookup("state-dir"); f != nil {
			if err := v.BindPFlag("state_dir", f); err != nil {
				return Config{}, err
			}
		}
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
	} else if explicit || !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.StateDir = os.ExpandEnv(cfg.StateDir)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values Load cannot type-check.
func (c Config) Validate() error {
	u, err := url.Parse(strings.TrimSpace(c.Server.BaseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("server.base_url must include scheme and host (e.g. http://127.0.0.1:8080)")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive")
	}
	if c.List.PageSize <= 0 {
		return fmt.Errorf("list.page_size must be positive")
	}
	if c.Toast.Duration <= 0 {
		return fmt.Errorf("toast.duration must be positive")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// fileLayout is what WriteDefault puts on disk. Durations are written in
// their string form so the file stays hand-editable.
type fileLayout struct {
	Server struct {
		BaseURL string `yaml:"base_url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"server"`
	List struct {
		PageSize int `yaml:"page_size"`
	} `yaml:"list"`
	Toast struct {
		Duration string `yaml:"duration"`
	} `yaml:"toast"`
	StateDir string `yaml:"state_dir"`
	Log      struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// WriteDefault writes the default configuration to path (DefaultPath when
// empty) and returns the path written.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return "", err
		}
		path = p
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	def := Default()
	var out fileLayout
	out.Server.BaseURL = def.Server.BaseURL
	out.Server.Timeout = def.Server.Timeout.String()
	out.List.PageSize = def.List.PageSize
	out.Toast.Duration = def.Toast.Duration.String()
	out.StateDir = def.StateDir
	out.Log.Level = def.Log.Level

	data, err := yaml.Marshal(out)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

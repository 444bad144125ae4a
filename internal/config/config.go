// Package config loads codenav settings. Sources are applied in order:
// built-in defaults, the YAML config file, a .env file, CODENAV_*
// environment variables and finally command line flags (applied by the
// caller before Validate).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kk-code-lab/codenav/internal/logger"
)

const envPrefix = "CODENAV_"

// Config holds all runtime settings.
type Config struct {
	BackendURL      string `yaml:"backend_url" validate:"required,url"`
	RequestTimeout  string `yaml:"request_timeout" validate:"required,posduration"`
	ContentCacheTTL string `yaml:"content_cache_ttl" validate:"omitempty,nonnegduration"`
	LogFile         string `yaml:"log_file"`
	Debug           bool   `yaml:"debug"`
	TabWidth        int    `yaml:"tab_width" validate:"gte=1,lte=16"`
}

// LoadOptions selects the files Load reads. Empty fields use the defaults.
type LoadOptions struct {
	Path    string
	EnvFile string
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		BackendURL:      "http://localhost:8000",
		RequestTimeout:  "15s",
		ContentCacheTTL: "5m",
		LogFile:         logger.DefaultPath(),
		TabWidth:        4,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/codenav/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ""
	}
	return filepath.Join(dir, "codenav", "config.yaml")
}

// Load builds a Config from defaults, files and the environment. A missing
// default config file or .env file is not an error; a missing explicit
// config file is.
func Load(opts LoadOptions) (*Config, error) {
	cfg := DefaultConfig()

	path := opts.Path
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.readFile(path, explicit); err != nil {
			return nil, err
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
		dotenv = nil
	}

	if err := cfg.applyEnvOverrides(func(key string) string {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v
		}
		return dotenv[key]
	}); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides(getenv func(string) string) error {
	if v := getenv(envPrefix + "BACKEND_URL"); v != "" {
		c.BackendURL = v
	}
	if v := getenv(envPrefix + "REQUEST_TIMEOUT"); v != "" {
		c.RequestTimeout = v
	}
	if v := getenv(envPrefix + "CONTENT_CACHE_TTL"); v != "" {
		c.ContentCacheTTL = v
	}
	if v := getenv(envPrefix + "LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := getenv(envPrefix + "DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sDEBUG %q: %w", envPrefix, v, err)
		}
		c.Debug = debug
	}
	if v := getenv(envPrefix + "TAB_WIDTH"); v != "" {
		width, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sTAB_WIDTH %q: %w", envPrefix, v, err)
		}
		c.TabWidth = width
	}
	return nil
}

// Validate checks field constraints and reports every violation.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("posduration", validPositiveDuration); err != nil {
		return err
	}
	if err := validate.RegisterValidation("nonnegduration", validNonNegativeDuration); err != nil {
		return err
	}

	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", yamlName(fe.StructField()), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// Timeout returns the per-request backend timeout.
func (c *Config) Timeout() time.Duration {
	d, _ := time.ParseDuration(c.RequestTimeout)
	return d
}

// CacheTTL returns the content cache lifetime; zero disables the cache.
func (c *Config) CacheTTL() time.Duration {
	if c.ContentCacheTTL == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.ContentCacheTTL)
	return d
}

func validPositiveDuration(fl validator.FieldLevel) bool {
	d, err := time.ParseDuration(fl.Field().String())
	return err == nil && d > 0
}

func validNonNegativeDuration(fl validator.FieldLevel) bool {
	d, err := time.ParseDuration(fl.Field().String())
	return err == nil && d >= 0
}

func yamlName(field string) string {
	switch field {
	case "BackendURL":
		return "backend_url"
	case "RequestTimeout":
		return "request_timeout"
	case "ContentCacheTTL":
		return "content_cache_ttl"
	case "TabWidth":
		return "tab_width"
	default:
		return field
	}
}

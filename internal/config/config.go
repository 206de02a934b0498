package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Assets   AssetsConfig   `yaml:"assets"`
	Render   RenderConfig   `yaml:"render"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AssetsConfig holds resource and texture pack locations.
type AssetsConfig struct {
	ResourceDir string `yaml:"resource_dir"`
	PackDir     string `yaml:"pack_dir"`
	Watch       bool   `yaml:"watch"`
}

// RenderConfig holds rendering defaults.
type RenderConfig struct {
	FontPath  string `yaml:"font_path"`
	OutputDir string `yaml:"output_dir"`
}

// LoggingConfig holds logging settings. An empty file path logs to
// stdout only; a set path adds a rotating log file.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Database: DatabaseConfig{
			Path: "/data/scplabel.db",
		},
		Assets: AssetsConfig{
			ResourceDir: "resources",
			PackDir:     "texturepacks",
			Watch:       true,
		},
		Render: RenderConfig{
			OutputDir: "output",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads config from a YAML file (if it exists) and overrides with
// environment variables. Environment variables take precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFromFile(path); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) loadFromEnv() {
	if v := os.Getenv("SL_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("SL_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("SL_RESOURCE_DIR"); v != "" {
		c.Assets.ResourceDir = v
	}
	if v := os.Getenv("SL_PACK_DIR"); v != "" {
		c.Assets.PackDir = v
	}
	if v := os.Getenv("SL_ASSET_WATCH"); v != "" {
		if watch, err := strconv.ParseBool(v); err == nil {
			c.Assets.Watch = watch
		}
	}
	if v := os.Getenv("SL_FONT_PATH"); v != "" {
		c.Render.FontPath = v
	}
	if v := os.Getenv("SL_OUTPUT_DIR"); v != "" {
		c.Render.OutputDir = v
	}
	if v := os.Getenv("SL_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SL_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("SL_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if c.Assets.ResourceDir == "" {
		return fmt.Errorf("asset resource directory is required")
	}
	return nil
}

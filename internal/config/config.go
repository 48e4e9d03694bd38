package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	SourceFile = "file"
	SourceDB   = "db"

	defaultConfigPath   = "~/.config/carousel/config.toml"
	defaultDocumentPath = "data.json"
	defaultDBPath       = "carousel.db"
	defaultDocumentName = "default"
	defaultLogPath      = "carousel.log"
	defaultLogLevel     = "info"
	defaultPrefetchRows = 3
)

// Config holds runtime settings for the CLI app.
type Config struct {
	Source       string
	DocumentPath string
	DBPath       string
	DocumentName string
	LogPath      string
	LogLevel     string
	PrefetchRows int
}

type fileConfig struct {
	Source       string `toml:"source"`
	DocumentPath string `toml:"document_path"`
	DBPath       string `toml:"db_path"`
	DocumentName string `toml:"document_name"`
	LogPath      string `toml:"log_path"`
	LogLevel     string `toml:"log_level"`
	PrefetchRows int    `toml:"prefetch_rows"`
}

func Defaults() Config {
	return Config{
		Source:       SourceFile,
		DocumentPath: defaultDocumentPath,
		DBPath:       defaultDBPath,
		DocumentName: defaultDocumentName,
		LogPath:      defaultLogPath,
		LogLevel:     defaultLogLevel,
		PrefetchRows: defaultPrefetchRows,
	}
}

// Load layers defaults, the optional TOML file and CAROUSEL_* environment
// variables, in that order. An explicit path wins over CAROUSEL_CONFIG, and a
// missing file falls back to defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.mergeFile(resolved); err != nil {
		return Config{}, err
	}
	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}

	cfg.DocumentPath = mustExpand(cfg.DocumentPath)
	cfg.DBPath = mustExpand(cfg.DBPath)
	cfg.LogPath = mustExpand(cfg.LogPath)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Overrides are command-line values layered over a loaded Config.
type Overrides struct {
	DocumentPath string
	DBPath       string
	DocumentName string
}

// Apply layers non-empty overrides and validates the result. A document path
// selects the file source. A document name selects the db source unless a
// document path is also given.
func (c Config) Apply(o Overrides) (Config, error) {
	path := strings.TrimSpace(o.DocumentPath)
	if path != "" {
		c.Source = SourceFile
		c.DocumentPath = mustExpand(path)
	}
	if db := strings.TrimSpace(o.DBPath); db != "" {
		c.DBPath = mustExpand(db)
	}
	if name := strings.TrimSpace(o.DocumentName); name != "" {
		c.DocumentName = name
		if path == "" {
			c.Source = SourceDB
		}
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) mergeFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	setIfPresent(&c.Source, raw.Source)
	setIfPresent(&c.DocumentPath, raw.DocumentPath)
	setIfPresent(&c.DBPath, raw.DBPath)
	setIfPresent(&c.DocumentName, raw.DocumentName)
	setIfPresent(&c.LogPath, raw.LogPath)
	setIfPresent(&c.LogLevel, raw.LogLevel)
	if raw.PrefetchRows != 0 {
		c.PrefetchRows = raw.PrefetchRows
	}
	return nil
}

func (c *Config) mergeEnv() error {
	setIfPresent(&c.Source, os.Getenv("CAROUSEL_SOURCE"))
	setIfPresent(&c.DocumentPath, os.Getenv("CAROUSEL_DOCUMENT_PATH"))
	setIfPresent(&c.DBPath, os.Getenv("CAROUSEL_DB_PATH"))
	setIfPresent(&c.DocumentName, os.Getenv("CAROUSEL_DOCUMENT_NAME"))
	setIfPresent(&c.LogPath, os.Getenv("CAROUSEL_LOG_PATH"))
	setIfPresent(&c.LogLevel, os.Getenv("CAROUSEL_LOG_LEVEL"))

	if raw := strings.TrimSpace(os.Getenv("CAROUSEL_PREFETCH_ROWS")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("CAROUSEL_PREFETCH_ROWS must be an integer: %s", raw)
		}
		c.PrefetchRows = n
	}
	return nil
}

func (c Config) Validate() error {
	if c.Source != SourceFile && c.Source != SourceDB {
		return fmt.Errorf("Source must be file or db: %s", c.Source)
	}
	if c.Source == SourceFile && c.DocumentPath == "" {
		return errors.New("DocumentPath is required")
	}
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	if c.DocumentName == "" {
		return errors.New("DocumentName is required")
	}
	if c.LogPath == "" {
		return errors.New("LogPath is required")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LogLevel must be debug, info, warn or error: %s", c.LogLevel)
	}
	if c.PrefetchRows < 1 {
		return fmt.Errorf("PrefetchRows must be at least 1: %d", c.PrefetchRows)
	}
	return nil
}

func setIfPresent(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) != "" {
		return expandPath(path)
	}
	if env := strings.TrimSpace(os.Getenv("CAROUSEL_CONFIG")); env != "" {
		return expandPath(env)
	}
	return expandPath(defaultConfigPath)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything CreaHut reads at startup.
type Config struct {
	Endpoint            string
	Model               string
	Size                string
	StyleSuffix         string
	APIKeyEnv           string
	PlaceholderInterval time.Duration
	RequestTimeout      time.Duration // zero leaves the transport default in place
	LogFile             string
	LogLevel            string
}

const (
	defaultConfigPath  = "~/.config/creahut/config.toml"
	defaultEnvPath     = ".env"
	defaultLogFile     = "~/.local/share/creahut/creahut.log"
	defaultEndpoint    = "https://api.openai.com/v1/images/generations"
	defaultSize        = "512x512"
	defaultStyleSuffix = ", black and white coloring book page, clean line art, thick outlines, no shading, white background"
	defaultAPIKeyEnv   = "OPENAI_API_KEY"
	defaultLogLevel    = "info"
	defaultInterval    = time.Second
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Endpoint:            defaultEndpoint,
		Size:                defaultSize,
		StyleSuffix:         defaultStyleSuffix,
		APIKeyEnv:           defaultAPIKeyEnv,
		PlaceholderInterval: defaultInterval,
		LogFile:             mustExpand(defaultLogFile),
		LogLevel:            defaultLogLevel,
	}
}

// Load locates and parses the CreaHut config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Endpoint            string `toml:"endpoint"`
		Model               string `toml:"model"`
		Size                string `toml:"size"`
		StyleSuffix         string `toml:"style_suffix"`
		APIKeyEnv           string `toml:"api_key_env"`
		PlaceholderInterval string `toml:"placeholder_interval"`
		RequestTimeout      string `toml:"request_timeout"`
		LogFile             string `toml:"log_file"`
		LogLevel            string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Endpoint = orDefault(raw.Endpoint, defaultEndpoint)
	cfg.Model = strings.TrimSpace(raw.Model)
	cfg.Size = orDefault(raw.Size, defaultSize)
	cfg.APIKeyEnv = orDefault(raw.APIKeyEnv, defaultAPIKeyEnv)
	cfg.LogLevel = strings.ToLower(orDefault(raw.LogLevel, defaultLogLevel))
	cfg.LogFile = mustExpand(orDefault(raw.LogFile, defaultLogFile))

	// The suffix is appended verbatim, so only a fully blank value falls back.
	if strings.TrimSpace(raw.StyleSuffix) != "" {
		cfg.StyleSuffix = raw.StyleSuffix
	}

	if cfg.PlaceholderInterval, err = parseDuration(raw.PlaceholderInterval, defaultInterval); err != nil {
		return Config{}, fmt.Errorf("parse placeholder_interval: %w", err)
	}
	if cfg.PlaceholderInterval <= 0 {
		cfg.PlaceholderInterval = defaultInterval
	}
	if cfg.RequestTimeout, err = parseDuration(raw.RequestTimeout, 0); err != nil {
		return Config{}, fmt.Errorf("parse request_timeout: %w", err)
	}
	if cfg.RequestTimeout < 0 {
		cfg.RequestTimeout = 0
	}

	return cfg, nil
}

// LoadEnv reads a dotenv file into the process environment. Variables already
// set in the environment win. A missing default file is not an error; a
// missing explicit file is.
func LoadEnv(path string) error {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = defaultEnvPath
	}
	resolved, err := ExpandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(resolved); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("stat env file: %w", err)
	}
	if err := godotenv.Load(resolved); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// APIKey returns the credential from the configured environment variable.
// It is read on every call so a key exported after startup is picked up.
func (c Config) APIKey() string {
	name := strings.TrimSpace(c.APIKeyEnv)
	if name == "" {
		name = defaultAPIKeyEnv
	}
	return strings.TrimSpace(os.Getenv(name))
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	return time.ParseDuration(trimmed)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ against the home directory and returns an
// absolute path.
func ExpandPath(path string) (string, error) {
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

package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/piwi3910/FormPanel/internal/model"
)

// Environment variables that override the config file.
const (
	EnvStandardWidths = "FORMPANEL_STANDARD_WIDTHS"
	EnvMinCustomWidth = "FORMPANEL_MIN_CUSTOM_WIDTH"
	EnvAlgorithm      = "FORMPANEL_ALGORITHM"
	EnvCatalogPreset  = "FORMPANEL_CATALOG_PRESET"
	EnvListenAddr     = "FORMPANEL_LISTEN_ADDR"
	EnvLogLevel       = "FORMPANEL_LOG_LEVEL"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.formpanel/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".formpanel")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// SaveAppConfig persists an AppConfig to the given path, as YAML for .yaml
// and .yml files and JSON otherwise. It creates any missing parent
// directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path on top of the
// defaults. If the file does not exist, it returns DefaultAppConfig with no
// error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return model.AppConfig{}, err
	}
	if isYAML(path) {
		err = yaml.Unmarshal(data, &config)
	} else {
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	// Ensure RecentProjects is never nil
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	return config, nil
}

// LoadEnvFile loads KEY=VALUE pairs from a .env file into the process
// environment. Variables already set are not overwritten and a missing file
// is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides config fields from FORMPANEL_* variables looked up with
// getenv. Empty variables are ignored.
func ApplyEnv(config *model.AppConfig, getenv func(string) string) error {
	if v := getenv(EnvStandardWidths); v != "" {
		widths, err := ParseWidths(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvStandardWidths, err)
		}
		config.StandardWidths = widths
	}
	if v := getenv(EnvMinCustomWidth); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 {
			return fmt.Errorf("%s: invalid width %q", EnvMinCustomWidth, v)
		}
		config.MinCustomWidth = n
	}
	if v := getenv(EnvAlgorithm); v != "" {
		a := model.Algorithm(strings.ToLower(strings.TrimSpace(v)))
		if !a.Valid() {
			return fmt.Errorf("%s: unknown algorithm %q", EnvAlgorithm, v)
		}
		config.Algorithm = a
	}
	if v := getenv(EnvCatalogPreset); v != "" {
		config.CatalogPreset = v
	}
	if v := getenv(EnvListenAddr); v != "" {
		config.ListenAddr = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		config.LogLevel = strings.ToLower(v)
	}
	return nil
}

// LoadEffectiveConfig applies the full loading order: defaults, the config
// file, the .env file, then the process environment.
func LoadEffectiveConfig(configPath, envPath string) (model.AppConfig, error) {
	config, err := LoadAppConfig(configPath)
	if err != nil {
		return model.AppConfig{}, err
	}
	if envPath != "" {
		if err := LoadEnvFile(envPath); err != nil {
			return model.AppConfig{}, err
		}
	}
	if err := ApplyEnv(&config, os.Getenv); err != nil {
		return model.AppConfig{}, err
	}
	return config, nil
}

// ParseWidths parses a list of panel widths such as "100,200, 300".
func ParseWidths(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' '
	})
	if len(fields) == 0 {
		return nil, errors.New("no widths given")
	}
	widths := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid width %q", f)
		}
		widths[i] = n
	}
	return widths, nil
}

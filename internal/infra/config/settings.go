package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/YoshitsuguKoike/fixinspect/internal/app/config"
)

// RawSettings represents the structure of setting.yml / setting.toml.
// Pointer fields distinguish "unset" from zero values so defaults can be applied.
type RawSettings struct {
	// Core settings
	Home       *string `yaml:"home" toml:"home"`
	Dictionary *string `yaml:"dictionary" toml:"dictionary"`
	Delimiter  *string `yaml:"delimiter" toml:"delimiter"`
	Workers    *int    `yaml:"workers" toml:"workers"`

	// Storage
	ArchivePath *string `yaml:"archive_path" toml:"archive_path"`
	S3Region    *string `yaml:"s3_region" toml:"s3_region"`

	// Output and logging
	MetricsTextfile *string `yaml:"metrics_textfile" toml:"metrics_textfile"`
	ServeAddr       *string `yaml:"serve_addr" toml:"serve_addr"`
	StderrLevel     *string `yaml:"stderr_level" toml:"stderr_level"`
}

// settingFiles lists the candidate file names in lookup order.
var settingFiles = []string{"setting.yml", "setting.yaml", "setting.toml"}

// LoadSettings loads configuration from the first setting file found in baseDir.
// Priority: environment > setting file > defaults
func LoadSettings(fs afero.Fs, baseDir string) (*config.AppConfig, error) {
	settings := &RawSettings{}
	configSource := "default"
	settingPath := ""

	for _, name := range settingFiles {
		path := filepath.Join(baseDir, name)
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			continue
		}
		source, err := decodeSettings(path, data, settings)
		if err != nil {
			return nil, err
		}
		configSource = source
		settingPath = path
		break
	}

	return finish(settings, configSource, settingPath)
}

// LoadSettingsFile loads configuration from an explicit file path.
// A missing file is an error here, unlike LoadSettings.
func LoadSettingsFile(fs afero.Fs, path string) (*config.AppConfig, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	settings := &RawSettings{}
	source, err := decodeSettings(path, data, settings)
	if err != nil {
		return nil, err
	}
	return finish(settings, source, path)
}

func finish(settings *RawSettings, configSource, settingPath string) (*config.AppConfig, error) {
	applyEnvOverrides(settings, os.LookupEnv)
	applyDefaults(settings)

	delim, err := ParseDelimiter(*settings.Delimiter)
	if err != nil {
		return nil, err
	}
	if *settings.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", *settings.Workers)
	}
	return buildAppConfig(settings, delim, configSource, settingPath), nil
}

func decodeSettings(path string, data []byte, settings *RawSettings) (string, error) {
	switch filepath.Ext(path) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(settings); err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return "toml", nil
	default:
		if len(bytes.TrimSpace(data)) == 0 {
			return "yaml", nil
		}
		if err := yaml.Unmarshal(data, settings); err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return "yaml", nil
	}
}

// applyDefaults fills in default values for any nil fields
func applyDefaults(settings *RawSettings) {
	if settings.Home == nil {
		v := ".fixinspect"
		settings.Home = &v
	}
	if settings.Dictionary == nil {
		v := "dict/FIX44.xml"
		settings.Dictionary = &v
	}
	if settings.Delimiter == nil {
		v := "|"
		settings.Delimiter = &v
	}
	if settings.Workers == nil {
		v := 4
		settings.Workers = &v
	}

	if settings.ArchivePath == nil {
		v := filepath.Join(*settings.Home, "archive.db")
		settings.ArchivePath = &v
	}
	if settings.S3Region == nil {
		v := ""
		settings.S3Region = &v
	}

	if settings.MetricsTextfile == nil {
		v := ""
		settings.MetricsTextfile = &v
	}
	if settings.ServeAddr == nil {
		v := ":8080"
		settings.ServeAddr = &v
	}
	if settings.StderrLevel == nil {
		v := "warn" // Default to WARN level
		settings.StderrLevel = &v
	}
}

// buildAppConfig converts RawSettings to AppConfig
func buildAppConfig(settings *RawSettings, delim byte, configSource, settingPath string) *config.AppConfig {
	return config.NewAppConfig(
		*settings.Home,
		*settings.Dictionary,
		delim,
		*settings.Workers,
		*settings.ArchivePath,
		*settings.S3Region,
		*settings.MetricsTextfile,
		*settings.ServeAddr,
		*settings.StderrLevel,
		configSource,
		settingPath,
	)
}

// CreateDefaultSettings creates a default setting.yml content
func CreateDefaultSettings() []byte {
	settings := &RawSettings{}
	applyDefaults(settings)

	data, _ := yaml.Marshal(settings)
	return data
}

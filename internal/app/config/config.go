package config

// Config provides read-only access to application configuration.
// This interface abstracts the configuration source (YAML, TOML, ENV, defaults)
// and ensures the app layer doesn't depend on infrastructure details.
type Config interface {
	// Core settings
	Home() string           // Base directory for fixinspect state (FIXINSPECT_HOME)
	DictionaryPath() string // Dictionary location, file path or s3://bucket/key (FIXINSPECT_DICT)
	Delimiter() byte        // Field delimiter, '|' or SOH
	Workers() int           // Decode workers for batch inspection

	// Storage
	ArchivePath() string // SQLite decode archive path
	S3Region() string    // AWS region for s3:// dictionaries

	// Output
	MetricsTextfile() string // Prometheus textfile written after batch runs, empty to disable
	ServeAddr() string       // Listen address for the serve command
	StderrLevel() string     // Stderr log level (FIXINSPECT_LOG_LEVEL)

	// Metadata
	ConfigSource() string // Source of configuration: "yaml", "toml" or "default"
	SettingPath() string  // Path to the setting file if loaded from file
}

// AppConfig is the concrete implementation of Config interface.
// It holds all configuration values loaded from various sources.
type AppConfig struct {
	home           string
	dictionaryPath string
	delimiter      byte
	workers        int

	archivePath string
	s3Region    string

	metricsTextfile string
	serveAddr       string
	stderrLevel     string

	configSource string
	settingPath  string
}

// Home returns the base directory for fixinspect state
func (c *AppConfig) Home() string {
	return c.home
}

// DictionaryPath returns the dictionary location
func (c *AppConfig) DictionaryPath() string {
	return c.dictionaryPath
}

// Delimiter returns the field delimiter byte
func (c *AppConfig) Delimiter() byte {
	return c.delimiter
}

// Workers returns the number of decode workers
func (c *AppConfig) Workers() int {
	return c.workers
}

// ArchivePath returns the SQLite archive path
func (c *AppConfig) ArchivePath() string {
	return c.archivePath
}

// S3Region returns the AWS region for S3 dictionaries
func (c *AppConfig) S3Region() string {
	return c.s3Region
}

// MetricsTextfile returns the metrics textfile path
func (c *AppConfig) MetricsTextfile() string {
	return c.metricsTextfile
}

// ServeAddr returns the HTTP listen address
func (c *AppConfig) ServeAddr() string {
	return c.serveAddr
}

// StderrLevel returns the stderr log level
func (c *AppConfig) StderrLevel() string {
	return c.stderrLevel
}

// ConfigSource returns the source of configuration
func (c *AppConfig) ConfigSource() string {
	return c.configSource
}

// SettingPath returns the path to the setting file if loaded from file
func (c *AppConfig) SettingPath() string {
	return c.settingPath
}

// NewAppConfig creates a new AppConfig with the given values.
// This is typically called by the infrastructure layer after loading and merging configurations.
func NewAppConfig(
	home, dictionaryPath string, delimiter byte, workers int,
	archivePath, s3Region string,
	metricsTextfile, serveAddr, stderrLevel string,
	configSource, settingPath string,
) *AppConfig {
	return &AppConfig{
		home:            home,
		dictionaryPath:  dictionaryPath,
		delimiter:       delimiter,
		workers:         workers,
		archivePath:     archivePath,
		s3Region:        s3Region,
		metricsTextfile: metricsTextfile,
		serveAddr:       serveAddr,
		stderrLevel:     stderrLevel,
		configSource:    configSource,
		settingPath:     settingPath,
	}
}

// Overrides carries command-line values that take precedence over loaded settings.
// Nil fields leave the loaded value in place.
type Overrides struct {
	DictionaryPath *string
	Delimiter      *byte
	StderrLevel    *string
	ArchivePath    *string
	ServeAddr      *string
	Workers        *int
}

// WithOverrides returns a copy of c with the non-nil overrides applied
func (c *AppConfig) WithOverrides(o Overrides) *AppConfig {
	out := *c
	if o.DictionaryPath != nil {
		out.dictionaryPath = *o.DictionaryPath
	}
	if o.Delimiter != nil {
		out.delimiter = *o.Delimiter
	}
	if o.StderrLevel != nil {
		out.stderrLevel = *o.StderrLevel
	}
	if o.ArchivePath != nil {
		out.archivePath = *o.ArchivePath
	}
	if o.ServeAddr != nil {
		out.serveAddr = *o.ServeAddr
	}
	if o.Workers != nil && *o.Workers > 0 {
		out.workers = *o.Workers
	}
	return &out
}

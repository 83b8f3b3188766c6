package cli

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/YoshitsuguKoike/fixinspect/internal/app"
	"github.com/YoshitsuguKoike/fixinspect/internal/app/config"
	infraConfig "github.com/YoshitsuguKoike/fixinspect/internal/infra/config"
	"github.com/YoshitsuguKoike/fixinspect/internal/interface/cli/version"
)

// rootOptions holds global flags and the per-invocation container
type rootOptions struct {
	fs         afero.Fs
	configPath string
	dict       string
	delimiter  string
	logLevel   string
	workers    int

	container *Container
}

// NewRoot builds the fixinspect command tree over the OS filesystem
func NewRoot() *cobra.Command {
	return newRoot(afero.NewOsFs())
}

func newRoot(fs afero.Fs) *cobra.Command {
	opts := &rootOptions{fs: fs}

	cmd := &cobra.Command{
		Use:           "fixinspect",
		Short:         "Decode and verify FIX tag=value messages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.container == nil {
				return nil
			}
			return opts.container.Close()
		},
		RunE: func(c *cobra.Command, _ []string) error { return c.Help() },
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "setting file (.yml, .yaml or .toml)")
	flags.StringVar(&opts.dict, "dict", "", "dictionary path or s3://bucket/key (overrides setting)")
	flags.StringVar(&opts.delimiter, "delimiter", "", `field delimiter: "|" or SOH (overrides setting)`)
	flags.StringVar(&opts.logLevel, "log-level", "", "stderr log level: debug, info, warn, error")
	flags.IntVar(&opts.workers, "workers", 0, "decode workers for batch input")

	cmd.AddCommand(newDecodeCmd(opts))
	cmd.AddCommand(newVerifyCmd(opts))
	cmd.AddCommand(newFieldCmd(opts))
	cmd.AddCommand(newHistoryCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newDoctorCmd(opts))
	cmd.AddCommand(version.NewCommand())
	return cmd
}

// setup loads configuration, applies flag overrides and initializes logging
func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}

	var ov config.Overrides
	if o.dict != "" {
		ov.DictionaryPath = &o.dict
	}
	if o.delimiter != "" {
		d, err := infraConfig.ParseDelimiter(o.delimiter)
		if err != nil {
			return err
		}
		ov.Delimiter = &d
	}
	if o.logLevel != "" {
		ov.StderrLevel = &o.logLevel
	}
	if o.workers > 0 {
		ov.Workers = &o.workers
	}
	cfg = cfg.WithOverrides(ov)

	logger := NewLogger(LogLevelFromString(cfg.StderrLevel()), cmd.ErrOrStderr())
	globalLogger = logger
	InitializeLoggers(logger)

	logger.Debug("config: source=%s dictionary=%s", cfg.ConfigSource(), cfg.DictionaryPath())
	o.container = NewContainer(cfg, o.fs, app.GetLogger())
	return nil
}

func (o *rootOptions) loadConfig() (*config.AppConfig, error) {
	if o.configPath != "" {
		return infraConfig.LoadSettingsFile(o.fs, o.configPath)
	}
	home := app.ResolvePaths(os.Getenv(infraConfig.EnvHome)).Home
	cfg, err := infraConfig.LoadSettings(o.fs, home)
	if err != nil {
		return nil, fmt.Errorf("load settings from %s: %w", home, err)
	}
	return cfg, nil
}

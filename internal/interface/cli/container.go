package cli

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/spf13/afero"

	"github.com/YoshitsuguKoike/fixinspect/internal/app"
	"github.com/YoshitsuguKoike/fixinspect/internal/app/config"
	"github.com/YoshitsuguKoike/fixinspect/internal/application/usecase/inspect"
	"github.com/YoshitsuguKoike/fixinspect/internal/domain/repository"
	"github.com/YoshitsuguKoike/fixinspect/internal/domain/service/decoder"
	"github.com/YoshitsuguKoike/fixinspect/internal/infrastructure/dictionary"
	"github.com/YoshitsuguKoike/fixinspect/internal/infrastructure/metrics"
	"github.com/YoshitsuguKoike/fixinspect/internal/infrastructure/persistence/sqlite"
)

// Container builds the collaborators a command needs from the loaded config.
// Everything is created lazily so commands only pay for what they use.
type Container struct {
	cfg    config.Config
	fs     afero.Fs
	logger app.Logger

	mu      sync.Mutex
	dict    *dictionary.Index
	db      *sql.DB
	records repository.DecodeRecordRepository
	metrics *metrics.Recorder
}

// NewContainer creates a container over fs
func NewContainer(cfg config.Config, fs afero.Fs, logger app.Logger) *Container {
	return &Container{cfg: cfg, fs: fs, logger: logger}
}

// Config returns the effective configuration
func (c *Container) Config() config.Config {
	return c.cfg
}

// FS returns the filesystem commands read from
func (c *Container) FS() afero.Fs {
	return c.fs
}

// Dictionary loads the configured dictionary once
func (c *Container) Dictionary(ctx context.Context) (*dictionary.Index, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dict != nil {
		return c.dict, nil
	}

	loader := dictionary.NewLoader(c.fs, nil)
	loader.Logger = c.logger
	location := c.cfg.DictionaryPath()
	if dictionary.IsS3Location(location) {
		client, err := dictionary.NewS3Client(ctx, c.cfg.S3Region())
		if err != nil {
			return nil, err
		}
		loader.S3 = client
	}

	dict, err := loader.Load(ctx, location)
	if err != nil {
		return nil, err
	}
	c.dict = dict
	return dict, nil
}

// Decoder builds a decoder over the configured dictionary and delimiter
func (c *Container) Decoder(ctx context.Context) (*decoder.Decoder, error) {
	dict, err := c.Dictionary(ctx)
	if err != nil {
		return nil, err
	}
	return decoder.NewDecoder(dict,
		decoder.WithDelimiter(c.cfg.Delimiter()),
		decoder.WithLogger(c.logger),
	), nil
}

// Metrics returns the process-wide recorder
func (c *Container) Metrics() *metrics.Recorder {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.metrics == nil {
		c.metrics = metrics.NewRecorder()
	}
	return c.metrics
}

// Records opens the archive database on first use
func (c *Container) Records() (repository.DecodeRecordRepository, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.records != nil {
		return c.records, nil
	}
	db, err := sqlite.Open(c.cfg.ArchivePath())
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", c.cfg.ArchivePath(), err)
	}
	c.db = db
	c.records = sqlite.NewDecodeRecordRepository(db)
	return c.records, nil
}

// InspectUseCase wires decoder, metrics and (when requested) the archive
func (c *Container) InspectUseCase(ctx context.Context, withArchive bool) (*inspect.InspectUseCase, error) {
	dec, err := c.Decoder(ctx)
	if err != nil {
		return nil, err
	}
	opts := []inspect.Option{
		inspect.WithMetrics(c.Metrics()),
		inspect.WithWorkers(c.cfg.Workers()),
		inspect.WithLogger(c.logger),
	}
	if withArchive {
		records, err := c.Records()
		if err != nil {
			return nil, err
		}
		opts = append(opts, inspect.WithArchive(records))
	}
	return inspect.NewInspectUseCase(dec, opts...), nil
}

// WriteMetrics writes the textfile when one is configured
func (c *Container) WriteMetrics() error {
	path := c.cfg.MetricsTextfile()
	if path == "" {
		return nil
	}
	return c.Metrics().WriteTextfile(c.fs, path)
}

// Close releases the archive database if it was opened
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	c.records = nil
	return err
}

// Package inspect decodes, verifies and optionally archives batches of FIX messages.
package inspect

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/YoshitsuguKoike/fixinspect/internal/app"
	"github.com/YoshitsuguKoike/fixinspect/internal/application/dto"
	"github.com/YoshitsuguKoike/fixinspect/internal/application/port/input"
	"github.com/YoshitsuguKoike/fixinspect/internal/application/port/output"
	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/archive"
	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/fix"
	"github.com/YoshitsuguKoike/fixinspect/internal/domain/repository"
	"github.com/YoshitsuguKoike/fixinspect/internal/domain/service/decoder"
)

// ErrArchiveUnavailable is returned when archiving is requested without a repository
var ErrArchiveUnavailable = errors.New("inspect: archive not configured")

// DefaultWorkers is used when neither the use case nor the input set a worker count
const DefaultWorkers = 4

// InspectUseCase handles decode + verify (+ archive) of message batches
type InspectUseCase struct {
	decoder *decoder.Decoder
	records repository.DecodeRecordRepository
	metrics output.DecodeMetrics
	ids     *archive.IDGenerator
	logger  app.Logger
	workers int
	now     func() time.Time
}

// Option configures an InspectUseCase
type Option func(*InspectUseCase)

// WithArchive enables archiving into records
func WithArchive(records repository.DecodeRecordRepository) Option {
	return func(u *InspectUseCase) { u.records = records }
}

// WithMetrics reports outcomes to m
func WithMetrics(m output.DecodeMetrics) Option {
	return func(u *InspectUseCase) {
		if m != nil {
			u.metrics = m
		}
	}
}

// WithWorkers sets the default worker count
func WithWorkers(n int) Option {
	return func(u *InspectUseCase) {
		if n > 0 {
			u.workers = n
		}
	}
}

func WithLogger(l app.Logger) Option {
	return func(u *InspectUseCase) {
		if l != nil {
			u.logger = l
		}
	}
}

// NewInspectUseCase creates a new inspect use case
func NewInspectUseCase(dec *decoder.Decoder, opts ...Option) *InspectUseCase {
	u := &InspectUseCase{
		decoder: dec,
		metrics: output.NopDecodeMetrics{},
		ids:     archive.NewIDGenerator(),
		logger:  app.GetLogger(),
		workers: DefaultWorkers,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

var _ input.InspectUseCase = (*InspectUseCase)(nil)

// Decoder returns the decoder the use case runs
func (u *InspectUseCase) Decoder() *decoder.Decoder {
	return u.decoder
}

// Delimiter returns the decoder's field delimiter
func (u *InspectUseCase) Delimiter() byte {
	return u.decoder.Delimiter()
}

// Execute decodes every message in input. Per-message failures are reported in
// the items; the returned error is reserved for archive failures and cancellation.
func (u *InspectUseCase) Execute(ctx context.Context, input *dto.InspectInput) (*dto.InspectOutput, error) {
	if input.Archive && u.records == nil {
		return nil, ErrArchiveUnavailable
	}
	start := u.now()

	workers := input.Workers
	if workers <= 0 {
		workers = u.workers
	}
	raws := make([]string, len(input.Messages))
	for i, m := range input.Messages {
		raws[i] = m.Text
	}

	results := u.decoder.DecodeAll(ctx, raws, workers)

	out := &dto.InspectOutput{Items: make([]dto.InspectItem, 0, len(results))}
	for i, res := range results {
		item := dto.InspectItem{
			Line:     input.Messages[i].Line,
			Message:  res.Message,
			Checksum: res.Checksum,
			Err:      res.Err,
		}
		u.tally(out, item)

		if input.Archive && item.Err == nil {
			id, err := u.archive(ctx, input.Source, item)
			if err != nil {
				return out, err
			}
			item.RecordID = id
		}
		out.Items = append(out.Items, item)
	}
	out.Duration = u.now().Sub(start)

	u.logger.Info("inspect: %d decoded, %d failed, %d checksum failures (%s)",
		out.Decoded, out.Failed, out.ChecksumFailures, input.Source)

	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}

func (u *InspectUseCase) tally(out *dto.InspectOutput, item dto.InspectItem) {
	if item.Err != nil {
		out.Failed++
		u.metrics.RecordDecodeFailure()
		return
	}
	out.Decoded++
	out.UnknownTags += len(item.Message.Unknown)
	u.metrics.RecordDecoded(len(item.Message.Unknown))

	if item.Checksum.Err != nil {
		out.ChecksumFailures++
		u.metrics.RecordChecksumFailure(ChecksumFailureReason(item.Checksum.Err))
	}
}

func (u *InspectUseCase) archive(ctx context.Context, source string, item dto.InspectItem) (string, error) {
	rec := archive.NewDecodeRecord(
		u.ids.NewID(), source, item.Line, item.Message,
		item.Checksum.Valid, item.Checksum.Computed, item.Checksum.Declared, item.Checksum.Err,
		u.now(),
	)
	if err := u.records.Save(ctx, rec); err != nil {
		return "", fmt.Errorf("archive line %d: %w", item.Line, err)
	}
	return rec.ID, nil
}

// ChecksumFailureReason maps a checksum error to its metrics label
func ChecksumFailureReason(err error) string {
	switch {
	case errors.Is(err, fix.ErrChecksumMismatch):
		return output.ChecksumReasonMismatch
	case errors.Is(err, fix.ErrChecksumMissing):
		return output.ChecksumReasonMissing
	default:
		return output.ChecksumReasonMalformed
	}
}

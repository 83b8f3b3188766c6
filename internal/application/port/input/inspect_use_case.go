package input

import (
	"context"

	"github.com/YoshitsuguKoike/fixinspect/internal/application/dto"
)

// InspectUseCase defines the interface for decoding and verifying message batches
type InspectUseCase interface {
	// Execute decodes every message, verifies checksums and optionally archives
	Execute(ctx context.Context, input *dto.InspectInput) (*dto.InspectOutput, error)

	// Delimiter returns the field delimiter the decoder splits on
	Delimiter() byte
}

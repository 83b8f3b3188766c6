package repository

import (
	"context"

	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/archive"
)

// DecodeRecordRepository defines the interface for decode archive persistence
type DecodeRecordRepository interface {
	Save(ctx context.Context, rec *archive.DecodeRecord) error
	FindByID(ctx context.Context, id string) (*archive.DecodeRecord, error)

	// FindRecent returns at most limit records, newest first.
	FindRecent(ctx context.Context, limit int) ([]*archive.DecodeRecord, error)
	FindByMsgType(ctx context.Context, msgType string, limit int) ([]*archive.DecodeRecord, error)
	Count(ctx context.Context) (int, error)
}

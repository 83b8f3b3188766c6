package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/archive"
	"github.com/YoshitsuguKoike/fixinspect/internal/domain/repository"
)

// DecodeRecordRepositoryImpl implements repository.DecodeRecordRepository with SQLite
type DecodeRecordRepositoryImpl struct {
	db *sql.DB
}

// NewDecodeRecordRepository creates a new SQLite-based decode archive
func NewDecodeRecordRepository(db *sql.DB) repository.DecodeRecordRepository {
	return &DecodeRecordRepositoryImpl{db: db}
}

// timeLayout is fixed width so decoded_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const selectDecodeRecord = `
	SELECT id, source, line, raw, msg_type, checksum_valid, checksum_computed,
	       checksum_declared, checksum_error, unknown_tags, fields, decoded_at
	FROM decode_records`

// Save persists a record; saving an existing ID replaces it.
func (r *DecodeRecordRepositoryImpl) Save(ctx context.Context, rec *archive.DecodeRecord) error {
	unknownJSON, err := json.Marshal(nonNilInts(rec.UnknownTags))
	if err != nil {
		return fmt.Errorf("marshal unknown_tags failed: %w", err)
	}
	fieldsJSON, err := json.Marshal(nonNilFields(rec.Fields))
	if err != nil {
		return fmt.Errorf("marshal fields failed: %w", err)
	}

	query := `
		INSERT OR REPLACE INTO decode_records (id, source, line, raw, msg_type,
		                    checksum_valid, checksum_computed, checksum_declared,
		                    checksum_error, unknown_tags, fields, decoded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		rec.ID, rec.Source, rec.Line, rec.Raw, rec.MsgType,
		rec.ChecksumValid, rec.Computed, rec.Declared,
		rec.ChecksumError, string(unknownJSON), string(fieldsJSON),
		rec.DecodedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("save decode record failed: %w", err)
	}
	return nil
}

// FindByID retrieves a record by its ULID
func (r *DecodeRecordRepositoryImpl) FindByID(ctx context.Context, id string) (*archive.DecodeRecord, error) {
	row := r.db.QueryRowContext(ctx, selectDecodeRecord+" WHERE id = ?", id)
	rec, err := scanDecodeRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", archive.ErrRecordNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("find decode record failed: %w", err)
	}
	return rec, nil
}

// FindRecent returns the newest records first
func (r *DecodeRecordRepositoryImpl) FindRecent(ctx context.Context, limit int) ([]*archive.DecodeRecord, error) {
	return r.query(ctx, selectDecodeRecord+" ORDER BY decoded_at DESC, id DESC LIMIT ?", limit)
}

// FindByMsgType returns the newest records of one message type
func (r *DecodeRecordRepositoryImpl) FindByMsgType(ctx context.Context, msgType string, limit int) ([]*archive.DecodeRecord, error) {
	return r.query(ctx, selectDecodeRecord+" WHERE msg_type = ? ORDER BY decoded_at DESC, id DESC LIMIT ?", msgType, limit)
}

// Count returns the number of archived records
func (r *DecodeRecordRepositoryImpl) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM decode_records").Scan(&n); err != nil {
		return 0, fmt.Errorf("count decode records failed: %w", err)
	}
	return n, nil
}

func (r *DecodeRecordRepositoryImpl) query(ctx context.Context, query string, args ...any) ([]*archive.DecodeRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query decode records failed: %w", err)
	}
	defer rows.Close()

	var out []*archive.DecodeRecord
	for rows.Next() {
		rec, err := scanDecodeRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan decode record failed: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDecodeRecord(s scanner) (*archive.DecodeRecord, error) {
	var (
		rec         archive.DecodeRecord
		unknownJSON string
		fieldsJSON  string
		decodedAt   string
	)
	if err := s.Scan(
		&rec.ID, &rec.Source, &rec.Line, &rec.Raw, &rec.MsgType,
		&rec.ChecksumValid, &rec.Computed, &rec.Declared, &rec.ChecksumError,
		&unknownJSON, &fieldsJSON, &decodedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(unknownJSON), &rec.UnknownTags); err != nil {
		return nil, fmt.Errorf("unmarshal unknown_tags failed: %w", err)
	}
	if err := json.Unmarshal([]byte(fieldsJSON), &rec.Fields); err != nil {
		return nil, fmt.Errorf("unmarshal fields failed: %w", err)
	}
	t, err := time.Parse(timeLayout, decodedAt)
	if err != nil {
		return nil, fmt.Errorf("parse decoded_at failed: %w", err)
	}
	rec.DecodedAt = t
	return &rec, nil
}

func nonNilInts(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}

func nonNilFields(v []archive.RecordField) []archive.RecordField {
	if v == nil {
		return []archive.RecordField{}
	}
	return v
}

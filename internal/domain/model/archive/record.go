// Package archive holds the decode record persisted for later inspection.
package archive

import (
	"errors"
	"time"

	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/fix"
)

// ErrRecordNotFound is returned when no record matches an ID.
var ErrRecordNotFound = errors.New("archive: record not found")

// RecordField is the flattened, section-tagged view of a resolved field.
type RecordField struct {
	Section     string `json:"section"`
	Number      int    `json:"number"`
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// DecodeRecord is one archived decode of one message.
type DecodeRecord struct {
	ID            string        `json:"id"`
	Source        string        `json:"source"` // file path or "args"/"http"
	Line          int           `json:"line"`
	Raw           string        `json:"raw"`
	MsgType       string        `json:"msg_type"`
	ChecksumValid bool          `json:"checksum_valid"`
	Computed      int           `json:"checksum_computed"`
	Declared      int           `json:"checksum_declared"`
	ChecksumError string        `json:"checksum_error,omitempty"`
	UnknownTags   []int         `json:"unknown_tags,omitempty"`
	Fields        []RecordField `json:"fields"`
	DecodedAt     time.Time     `json:"decoded_at"`
}

// NewDecodeRecord flattens msg into a record. checksumErr is nil when the
// checksum validated.
func NewDecodeRecord(id, source string, line int, msg *fix.DecodedMessage, valid bool, computed, declared int, checksumErr error, at time.Time) *DecodeRecord {
	rec := &DecodeRecord{
		ID:            id,
		Source:        source,
		Line:          line,
		Raw:           msg.Raw,
		MsgType:       msg.MsgType(),
		ChecksumValid: valid,
		Computed:      computed,
		Declared:      declared,
		DecodedAt:     at.UTC(),
	}
	if checksumErr != nil {
		rec.ChecksumError = checksumErr.Error()
	}
	for _, kind := range []fix.SectionKind{fix.SectionHeader, fix.SectionBody, fix.SectionTrailer} {
		for _, f := range msg.Section(kind) {
			rec.Fields = append(rec.Fields, RecordField{
				Section:     kind.String(),
				Number:      f.Number,
				Name:        f.Name,
				Value:       f.Value,
				Description: f.Description,
			})
		}
	}
	for _, u := range msg.Unknown {
		rec.UnknownTags = append(rec.UnknownTags, u.Tag)
	}
	return rec
}

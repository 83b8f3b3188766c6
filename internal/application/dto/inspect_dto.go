package dto

import (
	"errors"
	"time"

	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/fix"
	"github.com/YoshitsuguKoike/fixinspect/internal/domain/service/decoder"
)

// MessageInput is one raw message with its 1-based position in the source
type MessageInput struct {
	Line int
	Text string
}

// InspectInput represents input for a batch inspection
type InspectInput struct {
	Messages []MessageInput
	Source   string // file path, "args" or "http"
	Archive  bool   // persist every decoded message
	Workers  int    // 0 means the use case default
}

// InspectItem is the outcome for one message
type InspectItem struct {
	Line     int
	Message  *fix.DecodedMessage
	Checksum decoder.ChecksumResult
	Err      error  // decode failure; Message is nil when set
	RecordID string // archive ID when archived
}

// InspectOutput represents the result of a batch inspection
type InspectOutput struct {
	Items            []InspectItem
	Decoded          int
	Failed           int
	ChecksumFailures int
	UnknownTags      int
	Duration         time.Duration
}

// FieldDTO represents a resolved field in data transfer format
type FieldDTO struct {
	Number      int    `json:"number"`
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// UnknownFieldDTO is a field whose tag the dictionary does not define
type UnknownFieldDTO struct {
	Tag   int    `json:"tag"`
	Value string `json:"value"`
}

// ChecksumDTO reports checksum verification
type ChecksumDTO struct {
	Computed string `json:"computed,omitempty"`
	Declared string `json:"declared,omitempty"`
	Valid    bool   `json:"valid"`
	Skipped  bool   `json:"skipped,omitempty"`
	Error    string `json:"error,omitempty"`
}

// MessageDTO is the JSON view of one inspected message
type MessageDTO struct {
	Line     int               `json:"line,omitempty"`
	Raw      string            `json:"raw,omitempty"`
	MsgType  string            `json:"msg_type,omitempty"`
	Header   []FieldDTO        `json:"header"`
	Body     []FieldDTO        `json:"body"`
	Trailer  []FieldDTO        `json:"trailer"`
	Unknown  []UnknownFieldDTO `json:"unknown,omitempty"`
	Checksum *ChecksumDTO      `json:"checksum,omitempty"`
	RecordID string            `json:"record_id,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// FieldDefinitionDTO is the JSON view of a dictionary entry
type FieldDefinitionDTO struct {
	Number  int             `json:"number"`
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Section string          `json:"section"`
	Values  []fix.EnumValue `json:"values,omitempty"`
}

// ToFieldDTOs converts a section preserving wire order
func ToFieldDTOs(s fix.Section) []FieldDTO {
	out := make([]FieldDTO, 0, len(s))
	for _, f := range s {
		out = append(out, FieldDTO{
			Number:      f.Number,
			Name:        f.Name,
			Type:        f.Type,
			Value:       f.Value,
			Description: f.Description,
		})
	}
	return out
}

// ToChecksumDTO converts a checksum result
func ToChecksumDTO(r decoder.ChecksumResult) *ChecksumDTO {
	c := &ChecksumDTO{Valid: r.Valid, Skipped: r.Skipped()}
	if !c.Skipped || errors.Is(r.Err, fix.ErrInvalidChecksum) {
		c.Computed = decoder.FormatChecksum(r.Computed)
	}
	if !c.Skipped {
		c.Declared = decoder.FormatChecksum(r.Declared)
	}
	if r.Err != nil {
		c.Error = r.Err.Error()
	}
	return c
}

// ToMessageDTO converts an inspect item to its JSON view
func ToMessageDTO(item InspectItem) MessageDTO {
	if item.Err != nil || item.Message == nil {
		out := MessageDTO{Line: item.Line, Header: []FieldDTO{}, Body: []FieldDTO{}, Trailer: []FieldDTO{}}
		if item.Err != nil {
			out.Error = item.Err.Error()
		}
		return out
	}
	msg := item.Message
	out := MessageDTO{
		Line:     item.Line,
		Raw:      msg.Raw,
		MsgType:  msg.MsgType(),
		Header:   ToFieldDTOs(msg.Header),
		Body:     ToFieldDTOs(msg.Body),
		Trailer:  ToFieldDTOs(msg.Trailer),
		Checksum: ToChecksumDTO(item.Checksum),
		RecordID: item.RecordID,
	}
	for _, u := range msg.Unknown {
		out.Unknown = append(out.Unknown, UnknownFieldDTO{Tag: u.Tag, Value: u.Value})
	}
	return out
}

// ToFieldDefinitionDTO converts a dictionary entry with its section membership
func ToFieldDefinitionDTO(def *fix.FieldDefinition, dict fix.Dictionary) FieldDefinitionDTO {
	return FieldDefinitionDTO{
		Number:  def.Number,
		Name:    def.Name,
		Type:    def.Type,
		Section: decoder.Classify(dict, def.Name).String(),
		Values:  def.Values,
	}
}

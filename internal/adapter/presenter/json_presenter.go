package presenter

import (
	"encoding/json"
	"io"

	"github.com/YoshitsuguKoike/fixinspect/internal/application/dto"
	"github.com/YoshitsuguKoike/fixinspect/internal/application/port/output"
	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/archive"
)

// JSONPresenter implements output.Presenter emitting indented JSON
type JSONPresenter struct {
	output io.Writer
}

// NewJSONPresenter creates a new JSON presenter
func NewJSONPresenter(output io.Writer) output.Presenter {
	return &JSONPresenter{output: output}
}

// InspectReport is the JSON document for a batch inspection
type InspectReport struct {
	Messages []dto.MessageDTO `json:"messages"`
	Summary  InspectSummary   `json:"summary"`
}

// InspectSummary counts batch outcomes
type InspectSummary struct {
	Messages         int `json:"messages"`
	Decoded          int `json:"decoded"`
	Failed           int `json:"failed"`
	ChecksumFailures int `json:"checksum_failures"`
	UnknownTags      int `json:"unknown_tags"`
}

// NewInspectReport converts use case output into its JSON document
func NewInspectReport(out *dto.InspectOutput) InspectReport {
	report := InspectReport{
		Messages: make([]dto.MessageDTO, 0, len(out.Items)),
		Summary: InspectSummary{
			Messages:         len(out.Items),
			Decoded:          out.Decoded,
			Failed:           out.Failed,
			ChecksumFailures: out.ChecksumFailures,
			UnknownTags:      out.UnknownTags,
		},
	}
	for _, item := range out.Items {
		report.Messages = append(report.Messages, dto.ToMessageDTO(item))
	}
	return report
}

// PresentSuccess writes data as JSON; message is not part of the document
func (p *JSONPresenter) PresentSuccess(message string, data interface{}) error {
	switch v := data.(type) {
	case *dto.InspectOutput:
		return p.encode(NewInspectReport(v))
	case []*archive.DecodeRecord:
		if v == nil {
			v = []*archive.DecodeRecord{}
		}
		return p.encode(map[string]interface{}{"records": v, "count": len(v)})
	default:
		return p.encode(data)
	}
}

// PresentError writes {"error": "..."} and returns err
func (p *JSONPresenter) PresentError(err error) error {
	if encErr := p.encode(map[string]string{"error": err.Error()}); encErr != nil {
		return encErr
	}
	return err
}

func (p *JSONPresenter) encode(v interface{}) error {
	enc := json.NewEncoder(p.output)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package presenter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/YoshitsuguKoike/fixinspect/internal/application/dto"
	"github.com/YoshitsuguKoike/fixinspect/internal/application/port/output"
	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/archive"
	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/fix"
	"github.com/YoshitsuguKoike/fixinspect/internal/domain/service/decoder"
	"github.com/YoshitsuguKoike/fixinspect/internal/validator/common"
)

// CLIMessagePresenter implements output.Presenter for terminal output
type CLIMessagePresenter struct {
	output      io.Writer
	showUnknown bool
}

// NewCLIMessagePresenter creates a new CLI presenter. showUnknown adds an
// "Unrecognized" block listing tags the dictionary does not define.
func NewCLIMessagePresenter(output io.Writer, showUnknown bool) output.Presenter {
	return &CLIMessagePresenter{output: output, showUnknown: showUnknown}
}

// PresentSuccess presents a successful result
func (p *CLIMessagePresenter) PresentSuccess(message string, data interface{}) error {
	if message != "" {
		fmt.Fprintf(p.output, "✓ %s\n\n", message)
	}

	switch v := data.(type) {
	case *dto.InspectOutput:
		p.presentInspect(v)
	case *common.ValidationResult:
		p.presentValidation(v)
	case *dto.FieldDefinitionDTO:
		p.presentDefinition(v)
	case []*archive.DecodeRecord:
		p.presentRecords(v)
	case *archive.DecodeRecord:
		p.presentRecord(v)
	case nil:
	default:
		fmt.Fprintf(p.output, "%+v\n", data)
	}
	return nil
}

// PresentError presents an error
func (p *CLIMessagePresenter) PresentError(err error) error {
	fmt.Fprintf(p.output, "✗ Error: %v\n", err)
	return err
}

func (p *CLIMessagePresenter) presentInspect(out *dto.InspectOutput) {
	for _, item := range out.Items {
		if item.Err != nil {
			fmt.Fprintf(p.output, "✗ line %d: %v\n\n", item.Line, item.Err)
			continue
		}
		p.presentMessage(item)
	}
}

// presentMessage prints one message as raw text followed by its three sections
func (p *CLIMessagePresenter) presentMessage(item dto.InspectItem) {
	msg := item.Message
	fmt.Fprintln(p.output, "FIX message:")
	fmt.Fprintf(p.output, "%s\n\n", msg.Raw)

	p.presentSection("Header", msg.Header)
	p.presentSection("Body", msg.Body)
	p.presentSection("Trailer", msg.Trailer)

	if p.showUnknown && len(msg.Unknown) > 0 {
		fmt.Fprintln(p.output, "Unrecognized:")
		for _, u := range msg.Unknown {
			fmt.Fprintf(p.output, "%5d%20s: %s\n", u.Tag, "?", u.Value)
		}
		fmt.Fprintln(p.output)
	}

	fmt.Fprintf(p.output, "Checksum: %s\n", checksumLine(item.Checksum))
	if item.RecordID != "" {
		fmt.Fprintf(p.output, "Archived: %s\n", item.RecordID)
	}
	fmt.Fprintln(p.output)
}

func (p *CLIMessagePresenter) presentSection(title string, s fix.Section) {
	fmt.Fprintf(p.output, "%s:\n", title)
	for _, f := range s {
		fmt.Fprintf(p.output, "%5d%20s: %s\n", f.Number, f.Name, f.Display())
	}
	fmt.Fprintln(p.output)
}

func checksumLine(r decoder.ChecksumResult) string {
	switch {
	case r.Valid:
		return fmt.Sprintf("OK (%s)", decoder.FormatChecksum(r.Computed))
	case r.Err != nil:
		return fmt.Sprintf("FAILED (%v)", r.Err)
	default:
		return "not verified"
	}
}

func (p *CLIMessagePresenter) presentValidation(r *common.ValidationResult) {
	for _, line := range r.Lines {
		status := strings.ToUpper(line.Worst())
		fmt.Fprintf(p.output, "line %d [%s]", line.Line, status)
		if line.MsgType != "" {
			fmt.Fprintf(p.output, " MsgType=%s", line.MsgType)
		}
		fmt.Fprintln(p.output)
		for _, issue := range line.Issues {
			fmt.Fprintf(p.output, "  %-5s %s\n", issue.Type, issue.Message)
		}
	}
	fmt.Fprintf(p.output, "\n%s: %d messages, %d ok, %d warn, %d error\n",
		r.File, r.Summary.Lines, r.Summary.OK, r.Summary.Warn, r.Summary.Error)
}

func (p *CLIMessagePresenter) presentDefinition(d *dto.FieldDefinitionDTO) {
	fmt.Fprintf(p.output, "%5d%20s\n", d.Number, d.Name)
	fmt.Fprintf(p.output, "Type: %s\n", d.Type)
	fmt.Fprintf(p.output, "Section: %s\n", d.Section)
	if len(d.Values) > 0 {
		fmt.Fprintln(p.output, "Values:")
		for _, v := range d.Values {
			fmt.Fprintf(p.output, "  %-6s %s\n", v.Enum, v.Description)
		}
	}
}

func (p *CLIMessagePresenter) presentRecords(recs []*archive.DecodeRecord) {
	if len(recs) == 0 {
		fmt.Fprintln(p.output, "No archived messages")
		return
	}
	for _, r := range recs {
		mark := "✓"
		if !r.ChecksumValid {
			mark = "✗"
		}
		fmt.Fprintf(p.output, "%s %s  %s  %-3s %s:%d\n",
			mark, r.ID, r.DecodedAt.Format(time.RFC3339), r.MsgType, r.Source, r.Line)
	}
	fmt.Fprintf(p.output, "\nTotal: %d messages\n", len(recs))
}

func (p *CLIMessagePresenter) presentRecord(r *archive.DecodeRecord) {
	fmt.Fprintf(p.output, "ID: %s\n", r.ID)
	fmt.Fprintf(p.output, "Source: %s:%d\n", r.Source, r.Line)
	fmt.Fprintf(p.output, "Decoded At: %s\n", r.DecodedAt.Format(time.RFC3339))
	fmt.Fprintf(p.output, "FIX message:\n%s\n", r.Raw)

	section := ""
	for _, f := range r.Fields {
		if f.Section != section {
			section = f.Section
			fmt.Fprintf(p.output, "\n%s:\n", section)
		}
		value := f.Value
		if f.Description != "" {
			value = f.Description
		}
		fmt.Fprintf(p.output, "%5d%20s: %s\n", f.Number, f.Name, value)
	}

	if r.ChecksumValid {
		fmt.Fprintf(p.output, "\nChecksum: OK (%s)\n", decoder.FormatChecksum(r.Computed))
	} else {
		fmt.Fprintf(p.output, "\nChecksum: FAILED (%s)\n", r.ChecksumError)
	}
}

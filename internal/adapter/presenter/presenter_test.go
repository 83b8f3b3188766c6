package presenter_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YoshitsuguKoike/fixinspect/internal/adapter/presenter"
	"github.com/YoshitsuguKoike/fixinspect/internal/application/dto"
	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/archive"
	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/fix"
	"github.com/YoshitsuguKoike/fixinspect/internal/domain/service/decoder"
	"github.com/YoshitsuguKoike/fixinspect/internal/validator/common"
)

func sampleOutput() *dto.InspectOutput {
	msg := &fix.DecodedMessage{Raw: "8=FIX.4.4|35=D|54=1|9999=x|10=092|"}
	msg.Append(fix.SectionHeader, fix.ResolvedField{Number: 8, Name: "BeginString", Type: "STRING", Value: "FIX.4.4"})
	msg.Append(fix.SectionHeader, fix.ResolvedField{Number: 35, Name: "MsgType", Type: "STRING", Value: "D", Description: "ORDER_SINGLE"})
	msg.Append(fix.SectionBody, fix.ResolvedField{Number: 54, Name: "Side", Type: "CHAR", Value: "1", Description: "BUY"})
	msg.Append(fix.SectionTrailer, fix.ResolvedField{Number: 10, Name: "CheckSum", Type: "STRING", Value: "092"})
	msg.Unknown = []fix.RawField{{Tag: 9999, Value: "x"}}

	return &dto.InspectOutput{
		Items: []dto.InspectItem{
			{Line: 1, Message: msg, Checksum: decoder.ChecksumResult{Computed: 92, Declared: 92, Valid: true}, RecordID: "01JB6X8Y2K9FQR4T3VWHGP5M2C"},
			{Line: 2, Err: &fix.DecodeError{Op: "decode", Cause: fix.ErrDictionaryUnavailable}},
		},
		Decoded:     1,
		Failed:      1,
		UnknownTags: 1,
	}
}

func TestCLIMessagePresenter_Inspect(t *testing.T) {
	buf := &bytes.Buffer{}
	p := presenter.NewCLIMessagePresenter(buf, false)
	require.NoError(t, p.PresentSuccess("", sampleOutput()))

	out := buf.String()
	assert.Contains(t, out, "FIX message:\n8=FIX.4.4|35=D|54=1|9999=x|10=092|\n\n")
	assert.Contains(t, out, "Header:\n    8         BeginString: FIX.4.4\n   35             MsgType: ORDER_SINGLE\n")
	assert.Contains(t, out, "Body:\n   54                Side: BUY\n")
	assert.Contains(t, out, "Trailer:\n   10            CheckSum: 092\n")
	assert.Contains(t, out, "Checksum: OK (092)")
	assert.Contains(t, out, "Archived: 01JB6X8Y2K9FQR4T3VWHGP5M2C")
	assert.Contains(t, out, "✗ line 2: fix: decode: fix: dictionary unavailable")
	assert.NotContains(t, out, "Unrecognized")
}

func TestCLIMessagePresenter_ShowUnknown(t *testing.T) {
	buf := &bytes.Buffer{}
	p := presenter.NewCLIMessagePresenter(buf, true)
	require.NoError(t, p.PresentSuccess("", sampleOutput()))
	assert.Contains(t, buf.String(), fmt.Sprintf("Unrecognized:\n%5d%20s: x\n", 9999, "?"))
}

func TestCLIMessagePresenter_ChecksumFailure(t *testing.T) {
	out := sampleOutput()
	out.Items[0].Checksum = decoder.ChecksumResult{Computed: 90, Declared: 92, Err: fix.ErrChecksumMismatch}
	buf := &bytes.Buffer{}
	require.NoError(t, presenter.NewCLIMessagePresenter(buf, false).PresentSuccess("", out))
	assert.Contains(t, buf.String(), "Checksum: FAILED (fix: checksum mismatch)")
}

func TestCLIMessagePresenter_Validation(t *testing.T) {
	vr := common.NewValidationResult("orders.fix", time.Now())
	var issues []common.ValidationIssue
	common.Errorf(&issues, "CheckSum", "checksum mismatch: computed 090, declared 092")
	vr.AddLineResult(common.LineResult{Line: 1, MsgType: "D", Issues: issues})
	vr.AddLineResult(common.LineResult{Line: 2, Issues: []common.ValidationIssue{}})

	buf := &bytes.Buffer{}
	require.NoError(t, presenter.NewCLIMessagePresenter(buf, false).PresentSuccess("", vr))
	out := buf.String()
	assert.Contains(t, out, "line 1 [ERROR] MsgType=D")
	assert.Contains(t, out, "  error checksum mismatch")
	assert.Contains(t, out, "line 2 [OK]")
	assert.Contains(t, out, "orders.fix: 2 messages, 1 ok, 0 warn, 1 error")
}

func TestCLIMessagePresenter_Definition(t *testing.T) {
	buf := &bytes.Buffer{}
	def := &dto.FieldDefinitionDTO{Number: 54, Name: "Side", Type: "CHAR", Section: "Body",
		Values: []fix.EnumValue{{Enum: "1", Description: "BUY"}}}
	require.NoError(t, presenter.NewCLIMessagePresenter(buf, false).PresentSuccess("", def))
	assert.Contains(t, buf.String(), "   54                Side\n")
	assert.Contains(t, buf.String(), "Section: Body")
	assert.Contains(t, buf.String(), "  1      BUY")
}

func TestCLIMessagePresenter_Records(t *testing.T) {
	at := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	recs := []*archive.DecodeRecord{
		{ID: "A", MsgType: "D", Source: "orders.fix", Line: 2, ChecksumValid: true, DecodedAt: at},
		{ID: "B", MsgType: "0", Source: "args", Line: 1, DecodedAt: at},
	}
	buf := &bytes.Buffer{}
	p := presenter.NewCLIMessagePresenter(buf, false)
	require.NoError(t, p.PresentSuccess("", recs))
	assert.Contains(t, buf.String(), "✓ A  2026-04-01T12:00:00Z  D   orders.fix:2")
	assert.Contains(t, buf.String(), "✗ B")
	assert.Contains(t, buf.String(), "Total: 2 messages")

	buf.Reset()
	require.NoError(t, p.PresentSuccess("", []*archive.DecodeRecord{}))
	assert.Equal(t, "No archived messages\n", buf.String())
}

func TestCLIMessagePresenter_Record(t *testing.T) {
	rec := &archive.DecodeRecord{
		ID: "A", Source: "orders.fix", Line: 1, Raw: "8=FIX.4.4|35=D|10=092|",
		Fields: []archive.RecordField{
			{Section: "Header", Number: 8, Name: "BeginString", Value: "FIX.4.4"},
			{Section: "Header", Number: 35, Name: "MsgType", Value: "D", Description: "ORDER_SINGLE"},
			{Section: "Trailer", Number: 10, Name: "CheckSum", Value: "092"},
		},
		ChecksumValid: true, Computed: 92,
	}
	buf := &bytes.Buffer{}
	require.NoError(t, presenter.NewCLIMessagePresenter(buf, false).PresentSuccess("", rec))
	out := buf.String()
	assert.Contains(t, out, "\nHeader:\n    8         BeginString: FIX.4.4\n   35             MsgType: ORDER_SINGLE\n")
	assert.Contains(t, out, "\nTrailer:\n   10            CheckSum: 092\n")
	assert.Contains(t, out, "Checksum: OK (092)")
}

func TestCLIMessagePresenter_PresentError(t *testing.T) {
	buf := &bytes.Buffer{}
	boom := errors.New("boom")
	err := presenter.NewCLIMessagePresenter(buf, false).PresentError(boom)
	assert.Equal(t, boom, err)
	assert.Equal(t, "✗ Error: boom\n", buf.String())
}

func TestJSONPresenter_Inspect(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, presenter.NewJSONPresenter(buf).PresentSuccess("ignored", sampleOutput()))

	var report presenter.InspectReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	require.Len(t, report.Messages, 2)
	assert.Equal(t, presenter.InspectSummary{Messages: 2, Decoded: 1, Failed: 1, UnknownTags: 1}, report.Summary)

	first := report.Messages[0]
	assert.Equal(t, "D", first.MsgType)
	require.Len(t, first.Header, 2)
	assert.Equal(t, "ORDER_SINGLE", first.Header[1].Description)
	assert.Equal(t, []dto.UnknownFieldDTO{{Tag: 9999, Value: "x"}}, first.Unknown)
	require.NotNil(t, first.Checksum)
	assert.True(t, first.Checksum.Valid)
	assert.Equal(t, "092", first.Checksum.Computed)

	assert.Contains(t, report.Messages[1].Error, "dictionary unavailable")
	assert.Empty(t, report.Messages[1].Body)
}

func TestJSONPresenter_RecordsAndError(t *testing.T) {
	buf := &bytes.Buffer{}
	p := presenter.NewJSONPresenter(buf)
	require.NoError(t, p.PresentSuccess("", []*archive.DecodeRecord(nil)))
	assert.JSONEq(t, `{"records": [], "count": 0}`, buf.String())

	buf.Reset()
	boom := errors.New("boom")
	assert.Equal(t, boom, p.PresentError(boom))
	assert.JSONEq(t, `{"error": "boom"}`, buf.String())
}

package message

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YoshitsuguKoike/fixinspect/internal/app"
	"github.com/YoshitsuguKoike/fixinspect/internal/application/dto"
	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/fix"
	"github.com/YoshitsuguKoike/fixinspect/internal/domain/service/decoder"
	"github.com/YoshitsuguKoike/fixinspect/internal/infrastructure/dictionary"
	"github.com/YoshitsuguKoike/fixinspect/internal/validator/common"
)

func newDecoder() *decoder.Decoder {
	b := dictionary.NewBuilder("FIX.4.4")
	for _, def := range []fix.FieldDefinition{
		{Number: 8, Name: "BeginString", Type: "STRING"},
		{Number: 9, Name: "BodyLength", Type: "LENGTH"},
		{Number: 10, Name: "CheckSum", Type: "STRING"},
		{Number: 35, Name: "MsgType", Type: "STRING"},
		{Number: 55, Name: "Symbol", Type: "STRING"},
	} {
		b.AddField(def)
	}
	b.AddHeader("BeginString")
	b.AddHeader("BodyLength")
	b.AddHeader("MsgType")
	b.AddTrailer("CheckSum")
	return decoder.NewDecoder(b.Build(), decoder.WithLogger(app.NopLogger()))
}

func inspect(t *testing.T, lines ...string) []dto.InspectItem {
	t.Helper()
	d := newDecoder()
	items := make([]dto.InspectItem, 0, len(lines))
	for i, raw := range lines {
		msg, err := d.Decode(raw)
		require.NoError(t, err)
		items = append(items, dto.InspectItem{Line: i + 1, Message: msg, Checksum: d.Verify(msg)})
	}
	return items
}

func messages(lr common.LineResult) string {
	var parts []string
	for _, i := range lr.Issues {
		parts = append(parts, i.Type+":"+i.Message)
	}
	return strings.Join(parts, "; ")
}

func TestValidateItems(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantWorst string
		contains  []string
	}{
		{
			name:      "valid heartbeat",
			raw:       "8=FIX.4.4|9=5|35=0|10=163|",
			wantWorst: common.IssueOK,
		},
		{
			name:      "checksum mismatch",
			raw:       "8=FIX.4.4|9=5|35=0|10=000|",
			wantWorst: common.IssueError,
			contains:  []string{"checksum mismatch: computed 163, declared 000"},
		},
		{
			name:      "checksum missing",
			raw:       "8=FIX.4.4|9=5|35=0|",
			wantWorst: common.IssueError,
			contains:  []string{"checksum field missing"},
		},
		{
			name:      "invalid checksum value",
			raw:       "8=FIX.4.4|9=5|35=0|10=abc|",
			wantWorst: common.IssueError,
			contains:  []string{"checksum not verified"},
		},
		{
			name:      "unknown tag warns",
			raw:       "8=FIX.4.4|9=5|35=0|9999=x|10=061|",
			wantWorst: common.IssueWarn,
			contains:  []string{"unknown tag 9999 dropped", "BodyLength declares 5, counted 12"},
		},
		{
			name:      "body length mismatch",
			raw:       "8=FIX.4.4|9=6|35=0|10=164|",
			wantWorst: common.IssueWarn,
			contains:  []string{"BodyLength declares 6, counted 5"},
		},
		{
			name:      "missing MsgType and BeginString out of place",
			raw:       "9=5|8=FIX.4.4|55=X|10=000|",
			wantWorst: common.IssueError,
			contains:  []string{"BeginString is not the first field", "MsgType missing from header"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator("orders.fix", decoder.Pipe)
			result := v.ValidateItems(inspect(t, tt.raw))
			require.Len(t, result.Lines, 1)
			lr := result.Lines[0]
			assert.Equal(t, tt.wantWorst, lr.Worst(), messages(lr))
			for _, want := range tt.contains {
				assert.Contains(t, messages(lr), want)
			}
		})
	}
}

func TestValidateItemsDecodeFailure(t *testing.T) {
	v := NewValidator("orders.fix", decoder.Pipe)
	result := v.ValidateItems([]dto.InspectItem{
		{Line: 3, Err: &fix.DecodeError{Op: "decode", Cause: fix.ErrDictionaryUnavailable}},
	})
	require.Len(t, result.Lines, 1)
	assert.Equal(t, 3, result.Lines[0].Line)
	assert.Equal(t, common.IssueError, result.Lines[0].Worst())
	assert.Contains(t, result.Lines[0].Issues[0].Message, "dictionary unavailable")
}

func TestValidateItemsSummary(t *testing.T) {
	v := NewValidator("orders.fix", decoder.Pipe)
	v.now = func() time.Time { return time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC) }

	items := inspect(t,
		"8=FIX.4.4|9=5|35=0|10=163|",
		"8=FIX.4.4|9=5|35=0|10=000|",
		"8=FIX.4.4|9=6|35=0|10=164|",
	)
	items = append(items, dto.InspectItem{Line: 4, Err: errors.New("boom")})

	result := v.ValidateItems(items)
	assert.Equal(t, "orders.fix", result.File)
	assert.Equal(t, "2026-02-03T04:05:06Z", result.GeneratedAt)
	assert.Equal(t, common.Summary{Lines: 4, OK: 1, Warn: 1, Error: 2}, result.Summary)
	assert.True(t, result.HasErrors())
	assert.Equal(t, "0", result.Lines[0].MsgType)
}

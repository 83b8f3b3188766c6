// Package message checks decoded FIX messages and reports per-line issues.
package message

import (
	"errors"
	"strconv"
	"time"

	"github.com/YoshitsuguKoike/fixinspect/internal/application/dto"
	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/fix"
	"github.com/YoshitsuguKoike/fixinspect/internal/domain/service/decoder"
	"github.com/YoshitsuguKoike/fixinspect/internal/validator/common"
)

// Validator contains validation configuration
type Validator struct {
	filePath string
	delim    byte
	now      func() time.Time
}

// NewValidator creates a new message validator for messages read from filePath
func NewValidator(filePath string, delim byte) *Validator {
	return &Validator{filePath: filePath, delim: delim, now: time.Now}
}

// ValidateItems builds a result with one line per inspected message
func (v *Validator) ValidateItems(items []dto.InspectItem) *common.ValidationResult {
	result := common.NewValidationResult(v.filePath, v.now())
	for _, item := range items {
		result.AddLineResult(v.validateItem(item))
	}
	return result
}

func (v *Validator) validateItem(item dto.InspectItem) common.LineResult {
	lr := common.LineResult{Line: item.Line, Issues: []common.ValidationIssue{}}

	if item.Err != nil {
		common.Errorf(&lr.Issues, "", "decode failed: %v", item.Err)
		return lr
	}
	msg := item.Message
	lr.MsgType = msg.MsgType()

	v.validateChecksum(item.Checksum, &lr.Issues)
	v.validateHeader(msg, &lr.Issues)
	v.validateBodyLength(msg, &lr.Issues)

	for _, u := range msg.Unknown {
		common.Warnf(&lr.Issues, strconv.Itoa(u.Tag), "unknown tag %d dropped", u.Tag)
	}
	return lr
}

func (v *Validator) validateChecksum(res decoder.ChecksumResult, issues *[]common.ValidationIssue) {
	switch {
	case res.Err == nil:
		return
	case errors.Is(res.Err, fix.ErrChecksumMismatch):
		common.Errorf(issues, fix.CheckSumFieldName, "checksum mismatch: computed %s, declared %s",
			decoder.FormatChecksum(res.Computed), decoder.FormatChecksum(res.Declared))
	case errors.Is(res.Err, fix.ErrChecksumMissing):
		common.Errorf(issues, fix.CheckSumFieldName, "checksum field missing")
	default:
		common.Errorf(issues, fix.CheckSumFieldName, "checksum not verified: %v", res.Err)
	}
}

func (v *Validator) validateHeader(msg *fix.DecodedMessage, issues *[]common.ValidationIssue) {
	if len(msg.Header) == 0 || msg.Header[0].Number != fix.TagBeginString {
		common.Warnf(issues, "BeginString", "BeginString is not the first field")
	}
	if msg.MsgType() == "" {
		common.Warnf(issues, "MsgType", "MsgType missing from header")
	}
}

func (v *Validator) validateBodyLength(msg *fix.DecodedMessage, issues *[]common.ValidationIssue) {
	declared, ok := msg.Header.Find(fix.TagBodyLength)
	if !ok {
		return
	}
	want, err := strconv.Atoi(declared.Value)
	if err != nil {
		common.Warnf(issues, declared.Name, "BodyLength %q is not an integer", declared.Value)
		return
	}
	got, err := decoder.ComputeBodyLength(msg.Raw, v.delim)
	if err != nil {
		return
	}
	if got != want {
		common.Warnf(issues, declared.Name, "BodyLength declares %d, counted %d", want, got)
	}
}

package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddLineResult(t *testing.T) {
	vr := NewValidationResult("orders.fix", time.Date(2026, 1, 1, 9, 0, 0, 0, time.FixedZone("JST", 9*3600)))
	assert.Equal(t, "2026-01-01T00:00:00Z", vr.GeneratedAt)

	var warn, errs []ValidationIssue
	Warnf(&warn, "9999", "unknown tag %d", 9999)
	Errorf(&errs, "CheckSum", "mismatch")
	Warnf(&errs, "", "also a warning")

	vr.AddLineResult(LineResult{Line: 1, Issues: []ValidationIssue{}})
	vr.AddLineResult(LineResult{Line: 2, Issues: warn})
	vr.AddLineResult(LineResult{Line: 3, Issues: errs})

	assert.Equal(t, Summary{Lines: 3, OK: 1, Warn: 1, Error: 1}, vr.Summary)
	assert.True(t, vr.HasErrors())
	assert.Equal(t, "unknown tag 9999", warn[0].Message)
}

func TestWorst(t *testing.T) {
	assert.Equal(t, IssueOK, LineResult{}.Worst())
	assert.Equal(t, IssueWarn, LineResult{Issues: []ValidationIssue{{Type: IssueWarn}}}.Worst())
	assert.Equal(t, IssueError, LineResult{Issues: []ValidationIssue{{Type: IssueWarn}, {Type: IssueError}}}.Worst())
}

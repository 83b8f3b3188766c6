package common

import "time"

// Issue severities
const (
	IssueOK    = "ok"
	IssueWarn  = "warn"
	IssueError = "error"
)

// ValidationIssue represents a single validation issue
type ValidationIssue struct {
	Type    string `json:"type"` // "ok", "warn", "error"
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// LineResult represents validation result for a single message line
type LineResult struct {
	Line    int               `json:"line"`
	MsgType string            `json:"msg_type,omitempty"`
	Issues  []ValidationIssue `json:"issues"`
}

// Worst returns the most severe issue type on the line
func (lr LineResult) Worst() string {
	worst := IssueOK
	for _, issue := range lr.Issues {
		switch issue.Type {
		case IssueError:
			return IssueError
		case IssueWarn:
			worst = IssueWarn
		}
	}
	return worst
}

// ValidationResult represents the complete validation result
type ValidationResult struct {
	Version     int          `json:"version"`
	GeneratedAt string       `json:"generated_at"`
	File        string       `json:"file"`
	Lines       []LineResult `json:"lines"`
	Summary     Summary      `json:"summary"`
}

// Summary contains validation statistics
type Summary struct {
	Lines int `json:"lines"`
	OK    int `json:"ok"`
	Warn  int `json:"warn"`
	Error int `json:"error"`
}

// NewValidationResult creates a new validation result
func NewValidationResult(file string, now time.Time) *ValidationResult {
	return &ValidationResult{
		Version:     1,
		GeneratedAt: now.UTC().Format(time.RFC3339Nano),
		File:        file,
		Lines:       []LineResult{},
		Summary:     Summary{},
	}
}

// AddLineResult adds a line result and updates summary
func (vr *ValidationResult) AddLineResult(lr LineResult) {
	vr.Lines = append(vr.Lines, lr)
	vr.Summary.Lines++

	switch lr.Worst() {
	case IssueError:
		vr.Summary.Error++
	case IssueWarn:
		vr.Summary.Warn++
	default:
		vr.Summary.OK++
	}
}

// HasErrors reports whether any line carries an error issue
func (vr *ValidationResult) HasErrors() bool {
	return vr.Summary.Error > 0
}

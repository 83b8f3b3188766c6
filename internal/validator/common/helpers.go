package common

import "fmt"

// Errorf appends an error issue
func Errorf(issues *[]ValidationIssue, field, format string, args ...any) {
	*issues = append(*issues, ValidationIssue{
		Type:    IssueError,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

// Warnf appends a warning issue
func Warnf(issues *[]ValidationIssue, field, format string, args ...any) {
	*issues = append(*issues, ValidationIssue{
		Type:    IssueWarn,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

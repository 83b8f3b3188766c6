package decoder

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/fix"
)

const (
	// SOH is the canonical FIX field delimiter
	SOH byte = 0x01
	// Pipe is the printable delimiter used by log files and fixtures
	Pipe byte = '|'
)

// TrimMessage strips trailing whitespace and control characters.
// The delimiter itself is kept even when it is a control character (SOH).
func TrimMessage(raw string, delim byte) string {
	return strings.TrimRightFunc(raw, func(r rune) bool {
		if r == rune(delim) {
			return false
		}
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
}

// Tokenize splits a raw message into tag/value pairs in wire order.
// Empty chunks, chunks without a numeric tag and tags below 1 are skipped.
func Tokenize(raw string, delim byte) []fix.RawField {
	msg := TrimMessage(raw, delim)
	if msg == "" {
		return nil
	}

	chunks := strings.Split(msg, string(delim))
	out := make([]fix.RawField, 0, len(chunks))
	for _, chunk := range chunks {
		if f, ok := parseChunk(chunk); ok {
			out = append(out, f)
		}
	}
	return out
}

func parseChunk(chunk string) (fix.RawField, bool) {
	if chunk == "" {
		return fix.RawField{}, false
	}
	tagText, value, _ := strings.Cut(chunk, "=")
	if !isDigits(tagText) {
		return fix.RawField{}, false
	}
	tag, err := strconv.Atoi(tagText)
	if err != nil || tag < 1 {
		return fix.RawField{}, false
	}
	return fix.RawField{Tag: tag, Value: value}, true
}

// isDigits rejects signs and spaces that strconv.Atoi would otherwise accept
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
)

// ErrSourceUnavailable is returned when a message file cannot be opened or read
var ErrSourceUnavailable = errors.New("source: message file unavailable")

// maxLineSize bounds a single message line; FIX messages with large DATA fields
// can exceed bufio's 64KiB default.
const maxLineSize = 1 << 20

// Message is one raw message and the line it came from (1-based)
type Message struct {
	Line int
	Text string
}

// LineReader reads one message per line from a file
type LineReader struct {
	FS afero.Fs
}

// NewLineReader creates a reader over fs
func NewLineReader(fs afero.Fs) *LineReader {
	return &LineReader{FS: fs}
}

// ReadMessages reads every non-blank line of path
func (r *LineReader) ReadMessages(path string) ([]Message, error) {
	f, err := r.FS.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, path, err)
	}
	defer f.Close()

	msgs, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, path, err)
	}
	return msgs, nil
}

// ReadFrom reads every non-blank line of r
func ReadFrom(r io.Reader) ([]Message, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var msgs []Message
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		msgs = append(msgs, Message{Line: line, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading messages: %w", err)
	}
	return msgs, nil
}

// FromStrings wraps in-memory messages, numbering them from 1
func FromStrings(texts []string) []Message {
	msgs := make([]Message, 0, len(texts))
	for i, t := range texts {
		msgs = append(msgs, Message{Line: i + 1, Text: t})
	}
	return msgs
}

// Texts returns the raw text of each message
func Texts(msgs []Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Text
	}
	return out
}

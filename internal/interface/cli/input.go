package cli

import (
	"errors"
	"io"

	"github.com/spf13/afero"

	"github.com/YoshitsuguKoike/fixinspect/internal/application/dto"
	"github.com/YoshitsuguKoike/fixinspect/internal/infrastructure/source"
)

var errNoInput = errors.New("no messages: pass them as arguments or use --file")

// readInput collects messages from --file ("-" for stdin) or positional args.
// It returns the messages and the source label used in reports and the archive.
func readInput(fs afero.Fs, stdin io.Reader, file string, args []string) ([]dto.MessageInput, string, error) {
	var (
		msgs  []source.Message
		label string
		err   error
	)
	switch {
	case file == "-":
		msgs, err = source.ReadFrom(stdin)
		label = "stdin"
	case file != "":
		msgs, err = source.NewLineReader(fs).ReadMessages(file)
		label = file
	default:
		msgs = source.FromStrings(args)
		label = "args"
	}
	if err != nil {
		return nil, "", err
	}

	out := make([]dto.MessageInput, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, dto.MessageInput{Line: m.Line, Text: m.Text})
	}
	if len(out) == 0 {
		return nil, "", errNoInput
	}
	return out, label, nil
}

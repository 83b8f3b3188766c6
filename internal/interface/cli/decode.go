package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/YoshitsuguKoike/fixinspect/internal/adapter/presenter"
	"github.com/YoshitsuguKoike/fixinspect/internal/application/dto"
	"github.com/YoshitsuguKoike/fixinspect/internal/application/port/output"
)

type decodeFlags struct {
	file        string
	format      string
	archive     bool
	showUnknown bool
}

func newDecodeCmd(opts *rootOptions) *cobra.Command {
	flags := &decodeFlags{}

	cmd := &cobra.Command{
		Use:   "decode [message]...",
		Short: "Decode FIX messages into header, body and trailer",
		Long: `Decode FIX messages and print every field with its dictionary name.
Enumerated values are shown by description. Each message is checksum-verified;
a mismatch is reported but never stops decoding.`,
		Example: `  fixinspect decode '8=FIX.4.4|9=5|35=0|10=163|'
  fixinspect decode --file samples/orders.fix --format json
  cat capture.log | fixinspect decode --file - --delimiter SOH`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, opts, flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "f", "", `read one message per line from file ("-" for stdin)`)
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text or json")
	cmd.Flags().BoolVar(&flags.archive, "archive", false, "store decoded messages in the local archive")
	cmd.Flags().BoolVar(&flags.showUnknown, "show-unknown", false, "list tags the dictionary does not define")
	return cmd
}

func runDecode(cmd *cobra.Command, opts *rootOptions, flags *decodeFlags, args []string) error {
	p, err := newPresenter(cmd.OutOrStdout(), flags.format, flags.showUnknown)
	if err != nil {
		return err
	}
	msgs, label, err := readInput(opts.fs, cmd.InOrStdin(), flags.file, args)
	if err != nil {
		return err
	}

	c := opts.container
	uc, err := c.InspectUseCase(cmd.Context(), flags.archive)
	if err != nil {
		return err
	}
	out, err := uc.Execute(cmd.Context(), &dto.InspectInput{
		Messages: msgs,
		Source:   label,
		Archive:  flags.archive,
	})
	if err != nil {
		return err
	}
	if err := p.PresentSuccess("", out); err != nil {
		return err
	}
	if err := c.WriteMetrics(); err != nil {
		GetLogger().Warn("metrics: %v", err)
	}
	return nil
}

func newPresenter(w io.Writer, format string, showUnknown bool) (output.Presenter, error) {
	switch format {
	case "", "text":
		return presenter.NewCLIMessagePresenter(w, showUnknown), nil
	case "json":
		return presenter.NewJSONPresenter(w), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want text or json)", format)
	}
}

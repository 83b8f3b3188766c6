package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YoshitsuguKoike/fixinspect/internal/application/dto"
	"github.com/YoshitsuguKoike/fixinspect/internal/validator/message"
)

type verifyFlags struct {
	file   string
	format string
}

func newVerifyCmd(opts *rootOptions) *cobra.Command {
	flags := &verifyFlags{}

	cmd := &cobra.Command{
		Use:   "verify [message]...",
		Short: "Check checksums, BodyLength and unknown tags",
		Long: `Verify every message and report one line per message with ok, warn or error issues.
Exits non-zero when any message has an error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, opts, flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "f", "", `read one message per line from file ("-" for stdin)`)
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text or json")
	return cmd
}

func runVerify(cmd *cobra.Command, opts *rootOptions, flags *verifyFlags, args []string) error {
	p, err := newPresenter(cmd.OutOrStdout(), flags.format, false)
	if err != nil {
		return err
	}
	msgs, label, err := readInput(opts.fs, cmd.InOrStdin(), flags.file, args)
	if err != nil {
		return err
	}

	c := opts.container
	uc, err := c.InspectUseCase(cmd.Context(), false)
	if err != nil {
		return err
	}
	out, err := uc.Execute(cmd.Context(), &dto.InspectInput{Messages: msgs, Source: label})
	if err != nil {
		return err
	}

	result := message.NewValidator(label, c.Config().Delimiter()).ValidateItems(out.Items)
	if err := p.PresentSuccess("", result); err != nil {
		return err
	}
	if err := c.WriteMetrics(); err != nil {
		GetLogger().Warn("metrics: %v", err)
	}
	if result.HasErrors() {
		return fmt.Errorf("%d of %d messages failed verification", result.Summary.Error, result.Summary.Lines)
	}
	return nil
}

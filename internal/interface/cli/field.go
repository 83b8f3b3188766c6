package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YoshitsuguKoike/fixinspect/internal/application/dto"
	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/fix"
)

func newFieldCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "field <tag|name>...",
		Short: "Look up field definitions in the dictionary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPresenter(cmd.OutOrStdout(), format, false)
			if err != nil {
				return err
			}
			dict, err := opts.container.Dictionary(cmd.Context())
			if err != nil {
				return err
			}
			for i, key := range args {
				def, ok := fix.Lookup(dict, key)
				if !ok {
					return fmt.Errorf("unknown field %q in %s", key, dict.Version())
				}
				if i > 0 && format != "json" {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				d := dto.ToFieldDefinitionDTO(def, dict)
				if err := p.PresentSuccess("", &d); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	return cmd
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/archive"
)

type historyFlags struct {
	limit   int
	msgType string
	id      string
	format  string
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	flags := &historyFlags{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List messages stored with decode --archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPresenter(cmd.OutOrStdout(), flags.format, false)
			if err != nil {
				return err
			}
			records, err := opts.container.Records()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if flags.id != "" {
				rec, err := records.FindByID(ctx, flags.id)
				if err != nil {
					return err
				}
				return p.PresentSuccess("", rec)
			}

			var recs []*archive.DecodeRecord
			if flags.msgType != "" {
				recs, err = records.FindByMsgType(ctx, flags.msgType, flags.limit)
			} else {
				recs, err = records.FindRecent(ctx, flags.limit)
			}
			if err != nil {
				return err
			}
			if recs == nil {
				recs = []*archive.DecodeRecord{}
			}
			return p.PresentSuccess("", recs)
		},
	}

	cmd.Flags().IntVarP(&flags.limit, "limit", "n", 20, "maximum records to list")
	cmd.Flags().StringVar(&flags.msgType, "msg-type", "", "only records with this MsgType (35)")
	cmd.Flags().StringVar(&flags.id, "id", "", "show one record in full")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text or json")
	return cmd
}

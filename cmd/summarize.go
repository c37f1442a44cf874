package cmd

import (
	"encoding/json"
	"errors"

	"github.com/bnema/page-push/internal/application"
	"github.com/spf13/cobra"
)

func newSummarizeCmd(app *app) *cobra.Command {
	var textFile string

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize page text without saving it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := readPageText(cmd, textFile)
			if err != nil {
				return err
			}

			reply := app.newDispatcher(nil).Handle(cmd.Context(), application.Message{
				Type:    application.MessageGetSummary,
				Content: text,
			})
			if reply.Error != "" {
				return errors.New(reply.Error)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(reply.SummaryRecord)
		},
	}

	cmd.Flags().StringVar(&textFile, "text-file", "", "File holding the page text, or - for stdin")
	_ = cmd.MarkFlagRequired("text-file")

	return cmd
}

package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/page-push/internal/application"
	"github.com/spf13/cobra"
)

var errBlankAPIKey = errors.New("Please enter a Google AI API key")

func newAPIKeyCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Manage the Google AI API key",
	}

	cmd.AddCommand(newAPIKeySetCmd(app))

	return cmd
}

func newAPIKeySetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key>",
		Short: "Store the Google AI API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.profiles.SetModelAPIKey(cmd.Context(), args[0]); err != nil {
				if errors.Is(err, application.ErrBlankModelAPIKey) {
					return errBlankAPIKey
				}
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "API key saved")
			return err
		},
	}
}

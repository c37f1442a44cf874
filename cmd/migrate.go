package cmd

import (
	"fmt"

	"github.com/bnema/page-push/internal/domain"
	"github.com/spf13/cobra"
)

func newMigrateCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Convert the legacy single-destination settings into a profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			migrated, err := app.profiles.MigrateLegacyIfNeeded(cmd.Context())
			if err != nil {
				return err
			}

			message := "nothing to migrate"
			if migrated {
				message = fmt.Sprintf("migrated legacy settings to profile %q", domain.DefaultMigratedProfileName)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), message)
			return err
		},
	}
}

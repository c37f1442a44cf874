package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bnema/page-push/internal/adapters/render/report"
	"github.com/bnema/page-push/internal/domain"
	"github.com/spf13/cobra"
)

var errIncompleteProfile = errors.New("Please fill in all fields")

func newProfileCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage Notion destination profiles",
	}

	cmd.AddCommand(
		newProfileListCmd(app),
		newProfileAddCmd(app),
		newProfileEditCmd(app),
		newProfileDeleteCmd(app),
		withoutStartupMigration(newProfileClearCmd(app)),
	)

	return cmd
}

func newProfileListCmd(app *app) *cobra.Command {
	var (
		showKeys bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles, err := app.profiles.List(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(profiles)
			}

			rendered, err := app.profileRenderer(profiles, report.ProfileOptions{ShowCredentials: showKeys})
			if err != nil {
				return fmt.Errorf("render profiles: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&showKeys, "show-keys", false, "Print Notion keys unmasked")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newProfileAddCmd(app *app) *cobra.Command {
	var profile domain.Profile

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a destination profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return saveProfile(cmd, app, profile)
		},
	}

	bindProfileFlags(cmd, &profile)

	return cmd
}

func newProfileEditCmd(app *app) *cobra.Command {
	var changes domain.Profile

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a destination profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := app.profiles.Get(cmd.Context(), domain.ProfileID(args[0]))
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				profile.Name = changes.Name
			}
			if cmd.Flags().Changed("key") {
				profile.Credential = changes.Credential
			}
			if cmd.Flags().Changed("database") {
				profile.TargetCollectionID = changes.TargetCollectionID
			}

			return saveProfile(cmd, app, profile)
		},
	}

	bindProfileFlags(cmd, &changes)

	return cmd
}

func newProfileDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a destination profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.profiles.Delete(cmd.Context(), domain.ProfileID(args[0])); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted profile %s\n", args[0])
			return err
		},
	}
}

func newProfileClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every profile, including an unreadable profile list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.profiles.Clear(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "cleared all profiles")
			return err
		},
	}
}

func bindProfileFlags(cmd *cobra.Command, profile *domain.Profile) {
	cmd.Flags().StringVar(&profile.Name, "name", "", "Profile name")
	cmd.Flags().StringVar(&profile.Credential, "key", "", "Notion integration key")
	cmd.Flags().StringVar(&profile.TargetCollectionID, "database", "", "Notion database ID")
}

func saveProfile(cmd *cobra.Command, app *app, profile domain.Profile) error {
	saved, err := app.profiles.Upsert(cmd.Context(), profile)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidProfile) {
			return fmt.Errorf("%w (%w)", errIncompleteProfile, err)
		}
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", saved.ID, saved.Name)
	return err
}

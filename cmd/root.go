package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pp",
		Short:         "Page Push (pp): summarize pages with Gemini and save them to Notion",
		Long:          "pp (Page Push) extracts the readable text of a page, asks Gemini for a structured summary, and files the result into a Notion database chosen from your saved profiles.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if skipsStartupMigration(cmd) {
			return nil
		}
		if _, err := app.profiles.MigrateLegacyIfNeeded(cmd.Context()); err != nil {
			return fmt.Errorf("migrate legacy settings in %s: %w (run 'pp profile clear' to reset the profile list)", app.settingsPath, err)
		}
		return nil
	}
	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return app.Close()
	}

	rootCmd.AddCommand(
		withoutStartupMigration(newVersionCmd()),
		newPushCmd(app),
		newSummarizeCmd(app),
		newProfileCmd(app),
		withoutStartupMigration(newAPIKeyCmd(app)),
		withoutStartupMigration(newMigrateCmd(app)),
		newServeCmd(app),
	)

	return rootCmd
}

// skipStartupMigration marks commands that must work even when the stored
// profile list cannot be decoded.
const skipStartupMigration = "pp/skip-startup-migration"

func skipsStartupMigration(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipStartupMigration] == "true" {
			return true
		}
	}
	return false
}

func withoutStartupMigration(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[skipStartupMigration] = "true"
	return cmd
}

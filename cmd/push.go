package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bnema/page-push/internal/adapters/notify"
	"github.com/bnema/page-push/internal/application"
	"github.com/bnema/page-push/internal/domain"
	"github.com/bnema/page-push/internal/ports"
	"github.com/spf13/cobra"
)

const stdinPath = "-"

// The URL becomes the Notion page title and URL property, so a push always
// needs one even when the text comes from a file.
var errMissingPageURL = errors.New("--url is required")

func newPushCmd(app *app) *cobra.Command {
	var (
		pageURL   string
		textFile  string
		profileID string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Summarize a page and save it to a Notion database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPush(cmd, app, pageURL, textFile, domain.ProfileID(profileID), asJSON)
		},
	}

	cmd.Flags().StringVar(&pageURL, "url", "", "Page URL, saved as the record title (fetched when no text is given)")
	cmd.Flags().StringVar(&textFile, "text-file", "", "File holding the page text, or - for stdin")
	cmd.Flags().StringVar(&profileID, "profile", "", "Destination profile ID")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func runPush(cmd *cobra.Command, app *app, pageURL, textFile string, profileID domain.ProfileID, asJSON bool) error {
	if strings.TrimSpace(pageURL) == "" {
		return errMissingPageURL
	}

	text, err := readPageText(cmd, textFile)
	if err != nil {
		return err
	}

	handle := domain.PageHandle{URL: strings.TrimSpace(pageURL), Text: text}

	var notifier ports.Notifier = notify.Terminal{Out: cmd.OutOrStdout()}
	if asJSON {
		notifier = notify.Log{Logger: app.logger}
	}
	pipeline := app.newPipeline(notifier)
	run := func(ctx context.Context, progress application.ProgressFunc) application.RunResult {
		return pipeline.RunProfile(ctx, handle, profileID, progress)
	}

	var result application.RunResult
	if asJSON {
		result = run(cmd.Context(), nil)
	} else {
		result, err = runPushSpinner(cmd.Context(), cmd.ErrOrStderr(), run)
		if err != nil {
			return err
		}
	}

	return writePushResult(cmd, app, result, asJSON)
}

func writePushResult(cmd *cobra.Command, app *app, result application.RunResult, asJSON bool) error {
	if asJSON {
		if result.Err != nil {
			return result.Err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result.Record)
	}

	if result.Err != nil && result.Summary.Summary == "" {
		return result.Err
	}

	rendered, err := app.resultRenderer(result)
	if err != nil {
		return fmt.Errorf("render result: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), rendered); err != nil {
		return err
	}

	return result.Err
}

func readPageText(cmd *cobra.Command, path string) (string, error) {
	if path == "" {
		return "", nil
	}

	var (
		data []byte
		err  error
	)
	if path == stdinPath {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read page text: %w", err)
	}

	return string(data), nil
}

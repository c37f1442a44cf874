package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
)

// Log records notifications through a structured logger. It is used by the
// HTTP bridge, which has no terminal to write to.
type Log struct {
	Logger *slog.Logger
}

func (n Log) Notify(ctx context.Context, title, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "notification", "title", title, "message", message)

	return nil
}

// Terminal prints notifications as a single styled line.
type Terminal struct {
	Out io.Writer
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

func (n Terminal) Notify(ctx context.Context, title, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.Out == nil {
		return nil
	}

	if _, err := fmt.Fprintf(n.Out, "%s %s\n", titleStyle.Render(title), messageStyle.Render(message)); err != nil {
		return fmt.Errorf("write notification: %w", err)
	}

	return nil
}

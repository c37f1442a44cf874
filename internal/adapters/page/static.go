package page

import (
	"context"

	"github.com/bnema/page-push/internal/domain"
	"github.com/bnema/page-push/internal/ports"
)

// Static returns the text the caller already captured.
type Static struct{}

var _ ports.PageExtractor = Static{}

func (Static) Extract(ctx context.Context, page domain.PageHandle) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := CheckScriptable(page.URL); err != nil {
		return "", err
	}

	return page.Text, nil
}

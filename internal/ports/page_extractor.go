package ports

import (
	"context"

	"github.com/bnema/page-push/internal/domain"
)

type PageExtractor interface {
	Extract(ctx context.Context, page domain.PageHandle) (string, error)
}

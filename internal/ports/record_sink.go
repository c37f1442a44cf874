package ports

import (
	"context"

	"github.com/bnema/page-push/internal/domain"
)

type RecordSink interface {
	CreateRecord(ctx context.Context, credential string, targetCollectionID string, record domain.PushRecord) error
}

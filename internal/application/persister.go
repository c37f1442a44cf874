package application

import (
	"context"
	"errors"
	"strings"

	"github.com/bnema/page-push/internal/domain"
	"github.com/bnema/page-push/internal/ports"
)

const (
	msgDestinationKeyNotSet = "Notion API key not set. Run 'pp profile edit <id> --key <key>' to set it."
	msgDestinationNoTarget  = "Notion database ID not set. Run 'pp profile edit <id> --database <id>' to set it."
	msgDestinationSaveError = "Failed to save to Notion"
)

// ErrMissingSourceURL is returned before any request when the record has no
// page URL; the destination uses it as the page title.
var ErrMissingSourceURL = errors.New("page url is required")

type Persister struct {
	sink  ports.RecordSink
	clock ports.Clock
}

func NewPersister(sink ports.RecordSink, clock ports.Clock) *Persister {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Persister{sink: sink, clock: clock}
}

// Persist creates one destination record for record. Nothing is sent when
// the profile lacks a credential or a target.
func (p *Persister) Persist(ctx context.Context, record domain.SummaryRecord, sourceURL string, profile domain.Profile) (domain.PushRecord, error) {
	credential := strings.TrimSpace(profile.Credential)
	if credential == "" {
		return domain.PushRecord{}, domain.NewError(domain.KindMissingCredential, msgDestinationKeyNotSet, nil)
	}
	target := strings.TrimSpace(profile.TargetCollectionID)
	if target == "" {
		return domain.PushRecord{}, domain.NewError(domain.KindMissingTarget, msgDestinationNoTarget, nil)
	}

	sourceURL = strings.TrimSpace(sourceURL)
	if sourceURL == "" {
		return domain.PushRecord{}, ErrMissingSourceURL
	}

	push := domain.NewPushRecord(record, sourceURL, p.clock.Now())
	if err := p.sink.CreateRecord(ctx, credential, target, push); err != nil {
		if _, ok := domain.KindOf(err); ok {
			return domain.PushRecord{}, err
		}
		return domain.PushRecord{}, domain.NewError(domain.KindUpstream, msgDestinationSaveError, err)
	}

	return push, nil
}

package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/page-push/internal/domain"
	"github.com/bnema/page-push/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPersisterCreatesRecord(t *testing.T) {
	sink := mocks.NewMockRecordSink(t)
	clock := mocks.NewMockClock(t)
	persister := NewPersister(sink, clock)

	clock.EXPECT().Now().Return(time.Date(2023, 6, 15, 10, 0, 0, 0, time.UTC))
	want := domain.PushRecord{
		Title:        "https://example.com/post",
		URL:          "https://example.com/post",
		Summary:      "S.",
		WhyItMatters: "W.",
		Tags:         []string{"ai"},
		Status:       domain.StatusNotRead,
		Date:         "2023-06-15",
		Week:         24,
	}
	sink.EXPECT().CreateRecord(mockAnyContext(), "nk", "db1", want).Return(nil)

	got, err := persister.Persist(
		context.Background(),
		domain.SummaryRecord{Summary: "S.", WhyItMatters: "W.", Tags: []string{"ai"}},
		"https://example.com/post",
		domain.Profile{ID: "p1", Name: "Work", Credential: "nk", TargetCollectionID: "db1"},
	)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPersisterChecksProfileBeforeRequest(t *testing.T) {
	tests := []struct {
		name    string
		profile domain.Profile
		wantErr error
	}{
		{name: "missing credential", profile: domain.Profile{TargetCollectionID: "db1"}, wantErr: domain.ErrMissingCredential},
		{name: "missing target", profile: domain.Profile{Credential: "nk"}, wantErr: domain.ErrMissingTarget},
		{name: "blank target", profile: domain.Profile{Credential: "nk", TargetCollectionID: "  "}, wantErr: domain.ErrMissingTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := mocks.NewMockRecordSink(t)
			persister := NewPersister(sink, mocks.NewMockClock(t))

			_, err := persister.Persist(context.Background(), domain.SummaryRecord{}, "https://example.com", tt.profile)
			assert.ErrorIs(t, err, tt.wantErr)
			sink.AssertNotCalled(t, "CreateRecord", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestPersisterWrapsUnkindedSinkErrors(t *testing.T) {
	sink := mocks.NewMockRecordSink(t)
	persister := NewPersister(sink, nil)
	sinkErr := errors.New("tls handshake timeout")

	sink.EXPECT().CreateRecord(mockAnyContext(), "nk", "db1", mock.Anything).Return(sinkErr)

	_, err := persister.Persist(context.Background(), domain.SummaryRecord{}, "https://example.com",
		domain.Profile{Credential: "nk", TargetCollectionID: "db1"})
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.ErrorIs(t, err, sinkErr)
	assert.EqualError(t, err, "Failed to save to Notion: tls handshake timeout")
}

func TestPersisterMissingProfileFieldsPointAtCLI(t *testing.T) {
	persister := NewPersister(mocks.NewMockRecordSink(t), mocks.NewMockClock(t))

	_, err := persister.Persist(context.Background(), domain.SummaryRecord{}, "https://example.com",
		domain.Profile{TargetCollectionID: "db1"})
	assert.EqualError(t, err, "Notion API key not set. Run 'pp profile edit <id> --key <key>' to set it.")

	_, err = persister.Persist(context.Background(), domain.SummaryRecord{}, "https://example.com",
		domain.Profile{Credential: "nk"})
	assert.EqualError(t, err, "Notion database ID not set. Run 'pp profile edit <id> --database <id>' to set it.")
}

func TestPersisterRejectsBlankSourceURL(t *testing.T) {
	sink := mocks.NewMockRecordSink(t)
	persister := NewPersister(sink, mocks.NewMockClock(t))

	for _, sourceURL := range []string{"", "   "} {
		_, err := persister.Persist(context.Background(), domain.SummaryRecord{Summary: "S."}, sourceURL,
			domain.Profile{Credential: "nk", TargetCollectionID: "db1"})
		assert.ErrorIs(t, err, ErrMissingSourceURL)
	}
	sink.AssertNotCalled(t, "CreateRecord", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

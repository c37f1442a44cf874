package report

import (
	"errors"
	"testing"

	"github.com/bnema/page-push/internal/application"
	"github.com/bnema/page-push/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProfilesListsDestinations(t *testing.T) {
	output, err := RenderProfiles([]domain.Profile{
		{ID: "lx3k9abc1", Name: "Reading list", Credential: "secret_abcdefgh1234", TargetCollectionID: "db-1"},
		{ID: "lx3k9abc2", Name: "Work", Credential: "secret_zzzz9876", TargetCollectionID: "db-2"},
	}, ProfileOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "profiles: 2")
	assert.Contains(t, output, "Reading list")
	assert.Contains(t, output, "lx3k9abc1")
	assert.Contains(t, output, "db-2")
	assert.Contains(t, output, "********1234")
	assert.NotContains(t, output, "secret_abcdefgh1234")
}

func TestRenderProfilesShowsCredentialsWhenAsked(t *testing.T) {
	output, err := RenderProfiles([]domain.Profile{
		{ID: "p1", Name: "Reading list", Credential: "secret_abcdefgh1234", TargetCollectionID: "db-1"},
	}, ProfileOptions{ShowCredentials: true})

	require.NoError(t, err)
	assert.Contains(t, output, "secret_abcdefgh1234")
}

func TestRenderProfilesEmptyState(t *testing.T) {
	output, err := RenderProfiles(nil, ProfileOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "profiles: 0")
	assert.Contains(t, output, "No profiles configured.")
}

func TestMaskCredentialShortValues(t *testing.T) {
	assert.Equal(t, "", maskCredential(""))
	assert.Equal(t, "***", maskCredential("abc"))
	assert.Equal(t, "********cdef", maskCredential("abcdef"))
}

func TestRenderResultSucceeded(t *testing.T) {
	output, err := RenderResult(application.RunResult{
		State: domain.StateSucceeded,
		Record: domain.PushRecord{
			Title:        "https://example.com/a",
			URL:          "https://example.com/a",
			Summary:      "S.",
			WhyItMatters: "W.",
			Tags:         []string{"ai", "policy"},
			Status:       domain.StatusNotRead,
			Date:         "2023-06-15",
			Week:         24,
		},
	})

	require.NoError(t, err)
	assert.Contains(t, output, "Saved to Notion")
	assert.Contains(t, output, "https://example.com/a")
	assert.Contains(t, output, "#ai")
	assert.Contains(t, output, "#policy")
	assert.Contains(t, output, "2023-06-15 (week 24)")
	assert.Contains(t, output, "Not Read")
}

func TestRenderResultFailedKeepsSummary(t *testing.T) {
	output, err := RenderResult(application.RunResult{
		State:   domain.StateFailed,
		Summary: domain.SummaryRecord{Summary: "S.", WhyItMatters: "W.", Tags: []string{}},
		Err:     errors.New("Failed to save to Notion: Unauthorized"),
	})

	require.NoError(t, err)
	assert.Contains(t, output, "Failed to save to Notion: Unauthorized")
	assert.Contains(t, output, "S.")
	assert.Contains(t, output, "none")
	assert.NotContains(t, output, "Saved to Notion")
}

func TestRenderResultFailedWithoutError(t *testing.T) {
	output, err := RenderResult(application.RunResult{State: domain.StateFailed})

	require.NoError(t, err)
	assert.Contains(t, output, "Push failed")
}

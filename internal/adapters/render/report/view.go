package report

import (
	"fmt"
	"strings"

	"github.com/bnema/page-push/internal/application"
	"github.com/bnema/page-push/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type ProfileOptions struct {
	// ShowCredentials prints credentials in full instead of masked.
	ShowCredentials bool
}

func renderProfiles(profiles []domain.Profile, opts ProfileOptions, s styles) string {
	lines := []string{
		s.title.Render("Notion Destinations"),
		s.header.Render(fmt.Sprintf("profiles: %d", len(profiles))),
	}

	if len(profiles) == 0 {
		lines = append(lines, s.empty.Render("No profiles configured."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, profile := range profiles {
		lines = append(lines, s.section.Render(renderProfile(profile, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderProfile(profile domain.Profile, opts ProfileOptions, s styles) string {
	credential := profile.Credential
	if !opts.ShowCredentials {
		credential = maskCredential(credential)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.profile.Render(profile.Name),
		field("id", string(profile.ID), s),
		field("database", profile.TargetCollectionID, s),
		field("key", credential, s),
	)
}

func renderResult(result application.RunResult, s styles) string {
	if result.State == domain.StateSucceeded {
		lines := []string{s.success.Render("Saved to Notion")}
		lines = append(lines, s.section.Render(renderRecord(result.Record, s)))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	message := "Push failed"
	if result.Err != nil {
		message = result.Err.Error()
	}
	lines := []string{s.failure.Render(message)}

	if hasSummary(result.Summary) {
		lines = append(lines, s.section.Render(renderSummary(result.Summary, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderRecord(record domain.PushRecord, s styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		s.profile.Render(record.Title),
		field("summary", record.Summary, s),
		field("why it matters", record.WhyItMatters, s),
		field("tags", renderTags(record.Tags, s), s),
		field("date", fmt.Sprintf("%s (week %d)", record.Date, record.Week), s),
		field("status", record.Status, s),
	)
}

func renderSummary(record domain.SummaryRecord, s styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		field("summary", record.Summary, s),
		field("why it matters", record.WhyItMatters, s),
		field("tags", renderTags(record.Tags, s), s),
	)
}

func hasSummary(record domain.SummaryRecord) bool {
	return record.Summary != "" || record.WhyItMatters != "" || len(record.Tags) > 0
}

func renderTags(tags []string, s styles) string {
	if len(tags) == 0 {
		return s.empty.Render("none")
	}

	rendered := make([]string, 0, len(tags))
	for _, tag := range tags {
		rendered = append(rendered, s.tag.Render("#"+tag))
	}

	return strings.Join(rendered, " ")
}

func field(key, value string, s styles) string {
	if value == "" {
		value = s.empty.Render("n/a")
	} else {
		value = s.detail.Render(value)
	}

	return s.key.Render(key+":") + " " + value
}

// maskCredential keeps the last four characters of a secret.
func maskCredential(credential string) string {
	runes := []rune(credential)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}

	return strings.Repeat("*", 8) + string(runes[len(runes)-4:])
}

package report

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	profile lipgloss.Style
	key     lipgloss.Style
	detail  lipgloss.Style
	tag     lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	section lipgloss.Style
	empty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		profile: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		key:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		detail:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		tag:     lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		failure: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section: lipgloss.NewStyle().MarginTop(1),
		empty:   lipgloss.NewStyle().Faint(true),
	}
}

package ui

import "charm.land/lipgloss/v2"

// theme groups the styles for one render pass. A no-color theme keeps the
// layout but drops every attribute, so piped output stays clean.
type theme struct {
	Title     lipgloss.Style
	Border    lipgloss.Style
	Cursor    lipgloss.Style
	Dim       lipgloss.Style
	Label     lipgloss.Style
	Status    lipgloss.Style
	FooterKey lipgloss.Style
}

func newTheme(noColor bool) theme {
	if noColor {
		plain := lipgloss.NewStyle()
		return theme{
			Title:     plain,
			Border:    plain.Border(lipgloss.NormalBorder()),
			Cursor:    plain.Reverse(true),
			Dim:       plain,
			Label:     plain,
			Status:    plain,
			FooterKey: plain.Reverse(true),
		}
	}
	return theme{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
		Border:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
		Cursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("33")).Bold(true),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		FooterKey: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("240")).Bold(true),
	}
}

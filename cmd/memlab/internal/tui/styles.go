package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	platform lipgloss.Style
	panel    lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	selected lipgloss.Style
	dim      lipgloss.Style
	dirty    lipgloss.Style
	err      lipgloss.Style
	ok       lipgloss.Style
}

func defaultStyles() styles {
	brand := lipgloss.AdaptiveColor{Light: "26", Dark: "81"}
	subtle := lipgloss.AdaptiveColor{Light: "245", Dark: "244"}
	border := lipgloss.AdaptiveColor{Light: "250", Dark: "238"}
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(brand),
		platform: lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("15")).Background(brand),
		panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		label:    lipgloss.NewStyle().Width(14).Foreground(subtle),
		value:    lipgloss.NewStyle().Bold(true),
		selected: lipgloss.NewStyle().Bold(true).Foreground(brand),
		dim:      lipgloss.NewStyle().Foreground(subtle),
		dirty:    lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")),
		err:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		ok:       lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
}

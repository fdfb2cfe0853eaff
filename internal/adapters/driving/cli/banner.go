package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#7C3AED"))

	bannerLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6C7086")).
				Width(10)

	bannerValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#06B6D4"))

	bannerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1)
)

// renderBanner summarises a network server for the operator.
func renderBanner(cfg *appConfig, endpoint string) string {
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			bannerLabelStyle.Render(label),
			bannerValueStyle.Render(value))
	}

	return bannerBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		bannerTitleStyle.Render("mcpdoc "+version),
		"",
		row("transport", cfg.Transport.Description()),
		row("endpoint", endpoint),
		row("sources", fmt.Sprintf("%d", len(cfg.Sources))),
	))
}

package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#14B8A6") // teal
	green  = lipgloss.Color("#22C55E")
	yellow = lipgloss.Color("#F59E0B")
	red    = lipgloss.Color("#EF4444")
	slate  = lipgloss.Color("#94A3B8")
	ink    = lipgloss.Color("#E5E7EB")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ink).
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderTop(false).
			BorderRight(false).
			BorderBottom(false).
			BorderForeground(accent).
			Padding(0, 1)

	projectStyle = lipgloss.NewStyle().Bold(true).Foreground(ink)
	issueStyle   = lipgloss.NewStyle().Foreground(yellow)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(red)
	okStyle      = lipgloss.NewStyle().Foreground(green)
	dimStyle     = lipgloss.NewStyle().Foreground(slate)
)

// Title renders a section heading.
func Title(s string) string { return titleStyle.Render(s) }

// OK, Warn and Fail render a status word for check listings.
func OK(s string) string   { return okStyle.Render(s) }
func Warn(s string) string { return issueStyle.Render(s) }
func Fail(s string) string { return errorStyle.Render(s) }

// Dim renders secondary text.
func Dim(s string) string { return dimStyle.Render(s) }

package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette of the TUI. Colors are ANSI 256-color
// codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	TitleForeground  lipgloss.Color
	TitleBackground  lipgloss.Color
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color

	CaughtBadge   lipgloss.Color
	CatchAction   lipgloss.Color
	ReleaseAction lipgloss.Color

	NoticeText lipgloss.Color
	ErrorText  lipgloss.Color
}

// DefaultTheme is tuned for dark terminals, borrowing the red and yellow
// of the Pokédex itself.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	TitleForeground:  lipgloss.Color("220"), // yellow
	TitleBackground:  lipgloss.Color("160"), // red
	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),

	CaughtBadge:   lipgloss.Color("220"),
	CatchAction:   lipgloss.Color("75"), // blue
	ReleaseAction: lipgloss.Color("220"),

	NoticeText: lipgloss.Color("114"), // green
	ErrorText:  lipgloss.Color("196"),
}

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	faint     lipgloss.Style
	normal    lipgloss.Style
	selected  lipgloss.Style
	badge     lipgloss.Style
	catch     lipgloss.Style
	release   lipgloss.Style
	notice    lipgloss.Style
	err       lipgloss.Style
	selector  lipgloss.Style
	detailBox lipgloss.Style
}

func newStyles(theme Theme) styles {
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.TitleForeground).
			Background(theme.TitleBackground).
			Padding(0, 1),
		header:   lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground),
		faint:    lipgloss.NewStyle().Foreground(theme.FaintText),
		normal:   lipgloss.NewStyle().Foreground(theme.NormalText),
		selected: lipgloss.NewStyle().Foreground(theme.SelectedForeground).Background(theme.SelectedBackground),
		badge:    lipgloss.NewStyle().Bold(true).Foreground(theme.CaughtBadge),
		catch:    lipgloss.NewStyle().Foreground(theme.CatchAction),
		release:  lipgloss.NewStyle().Foreground(theme.ReleaseAction),
		notice:   lipgloss.NewStyle().Foreground(theme.NoticeText),
		err:      lipgloss.NewStyle().Bold(true).Foreground(theme.ErrorText),
		selector: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.BorderColor).
			Padding(0, 1),
		detailBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.CaughtBadge).
			Padding(0, 1),
	}
}

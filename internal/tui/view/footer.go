package view

import "github.com/charmbracelet/lipgloss"

// FooterViewState holds the strings needed to render the footer section.
type FooterViewState struct {
	InnerW      int
	StatusLine  string
	HelpLine    string
	StatusStyle lipgloss.Style
	HelpStyle   lipgloss.Style
	Bg          lipgloss.Color
}

// RenderFooter renders the status and help lines.
func RenderFooter(state FooterViewState) string {
	if state.InnerW <= 0 {
		return ""
	}
	s := state.StatusStyle.Render(Fit(state.StatusLine, state.InnerW)) + "\n" +
		state.HelpStyle.Render(Fit(state.HelpLine, state.InnerW))
	return PlaceBox(state.InnerW, 2, lipgloss.Bottom, s, state.Bg)
}

// RenderTitleBar renders the title on the left and info on the right.
func RenderTitleBar(width int, title, info string, titleStyle, infoStyle lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	info = Fit(info, min(width/2, lipgloss.Width(info)))
	left := Fit(title, width-lipgloss.Width(info))
	return titleStyle.Render(left) + infoStyle.Render(info)
}

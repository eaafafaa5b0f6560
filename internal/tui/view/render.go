// Package view provides view composition helpers for the TUI.
package view

import "github.com/charmbracelet/lipgloss"

// ViewState contains pre-rendered content and overlay metadata.
type ViewState struct {
	Width            int
	Height           int
	BaseContent      string
	OverlayContent   string
	ShowOverlay      bool
	OverlayBg        lipgloss.Color
	EmptyPlaceholder string
}

// Render composes the final view output.
func Render(state ViewState) string {
	if state.Width == 0 || state.Height == 0 {
		if state.EmptyPlaceholder != "" {
			return state.EmptyPlaceholder
		}
		return "Loading..."
	}

	if state.ShowOverlay && state.OverlayContent != "" {
		return RenderOverlay(state.BaseContent, state.OverlayContent, state.Width, state.Height, state.OverlayBg)
	}
	return state.BaseContent
}

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/resched/internal/tui/theme"
	"github.com/javiermolinar/resched/internal/tui/view"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	colorBg lipgloss.Color

	// Title bar
	TitleStyle lipgloss.Style
	InfoStyle  lipgloss.Style

	// Column headers
	Header view.HeaderStyles

	// Grid body
	Grid view.GridStyles

	// Event blocks
	EventStyle    lipgloss.Style
	EventAltStyle lipgloss.Style
	SelectedStyle lipgloss.Style

	// Footer
	StatusStyle  lipgloss.Style
	WarningStyle lipgloss.Style
	HelpStyle    lipgloss.Style

	// Detail overlay
	DetailStyle      lipgloss.Style
	DetailBgColor    lipgloss.Color
	DetailTitleStyle lipgloss.Style
	DetailBodyStyle  lipgloss.Style
	DetailMetaStyle  lipgloss.Style

	// App container
	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{palette: p, colorBg: p.Bg}

	base := lipgloss.NewStyle().Background(p.Bg).Foreground(p.Fg)

	s.TitleStyle = base.Foreground(p.Accent).Bold(true)
	s.InfoStyle = base.Foreground(p.FgMuted)

	s.Header = view.HeaderStyles{
		Primary:        base.Bold(true),
		Secondary:      base.Foreground(p.FgMuted),
		Today:          base.Foreground(p.Today).Bold(true),
		Focused:        lipgloss.NewStyle().Background(p.BgSelection).Foreground(p.Accent).Bold(true),
		Gutter:         base.Foreground(p.Accent),
		Separator:      base.Foreground(p.Grid),
		GroupSeparator: base.Foreground(p.Accent),
	}

	s.Grid = view.GridStyles{
		Empty:          base,
		Cursor:         lipgloss.NewStyle().Background(p.BgSelection).Foreground(p.Accent),
		Line:           base.Foreground(p.Grid),
		Gutter:         base.Foreground(p.FgMuted),
		Separator:      base.Foreground(p.Grid),
		GroupSeparator: base.Foreground(p.Accent),
	}

	s.EventStyle = lipgloss.NewStyle().Background(p.EventBg).Foreground(p.TextOnEvent).Bold(true)
	s.EventAltStyle = lipgloss.NewStyle().Background(p.EventBgAlt).Foreground(p.TextOnEvent).Bold(true)
	s.SelectedStyle = lipgloss.NewStyle().Background(p.Accent).Foreground(p.TextOnAccent).Bold(true)

	s.StatusStyle = base.Foreground(p.Fg)
	s.WarningStyle = base.Foreground(p.Warning).Bold(true)
	s.HelpStyle = base.Foreground(p.FgMuted)

	s.DetailBgColor = p.BgHighlight
	s.DetailStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		BorderBackground(p.BgHighlight).
		Background(p.BgHighlight).
		Foreground(p.Fg).
		Padding(0, 1)
	s.DetailTitleStyle = lipgloss.NewStyle().Background(p.BgHighlight).Foreground(p.Accent).Bold(true)
	s.DetailBodyStyle = lipgloss.NewStyle().Background(p.BgHighlight).Foreground(p.Fg)
	s.DetailMetaStyle = lipgloss.NewStyle().Background(p.BgHighlight).Foreground(p.FgMuted)

	s.AppStyle = base

	return s
}

// blockStyle returns the style of an event block. Events in odd overlap
// columns use the alternate shade; a per-event color overrides both.
func (s *Styles) blockStyle(color string, column int, selected bool) lipgloss.Style {
	if selected {
		return s.SelectedStyle
	}
	if color != "" {
		bg, fg := s.palette.EventColor(color, column%2 == 1)
		return lipgloss.NewStyle().Background(bg).Foreground(fg).Bold(true)
	}
	if column%2 == 1 {
		return s.EventAltStyle
	}
	return s.EventStyle
}

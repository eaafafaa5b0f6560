package view

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

type stringRenderer interface {
	Render(...string) string
}

// DetailLineStyle indicates how a detail line should be styled.
type DetailLineStyle int

const (
	DetailLineBody DetailLineStyle = iota
	DetailLineMeta
	DetailLineTitle
)

// DetailLine is a display-ready line of the event detail box.
type DetailLine struct {
	Text  string
	Style DetailLineStyle
}

// DetailStyles groups styles for detail rendering.
type DetailStyles struct {
	BodyStyle  stringRenderer
	MetaStyle  stringRenderer
	TitleStyle stringRenderer
}

// RenderDetailBody renders detail lines wrapped to contentWidth.
func RenderDetailBody(lines []DetailLine, styles DetailStyles, contentWidth int) string {
	if len(lines) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		rendered = append(rendered, wrapDetailLine(line, styles, contentWidth)...)
	}
	return strings.Join(rendered, "\n")
}

func wrapDetailLine(line DetailLine, styles DetailStyles, width int) []string {
	switch line.Style {
	case DetailLineTitle:
		return wrapText(styles.TitleStyle, line.Text, width)
	case DetailLineMeta:
		return wrapText(styles.MetaStyle, line.Text, width)
	default:
		return wrapText(styles.BodyStyle, line.Text, width)
	}
}

// WrapText wraps on word boundaries and hard-wraps words longer than width.
func WrapText(text string, width int) []string {
	if width <= 0 || text == "" {
		return nil
	}
	wrapped := wrap.String(wordwrap.String(text, width), width)
	return strings.Split(wrapped, "\n")
}

func wrapText(style stringRenderer, text string, width int) []string {
	lines := WrapText(text, width)
	if len(lines) == 0 {
		return []string{style.Render("")}
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, style.Render(line))
	}
	return out
}

package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceBox renders content in a lipgloss.Place box with background fill.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(
		w,
		h,
		lipgloss.Left,
		vAlign,
		content,
		lipgloss.WithWhitespaceBackground(bg),
	)
	return PadLinesWithBackground(placed, w, h, bg)
}

// PadLinesWithBackground pads content to width/height with a background color.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	paddingStyle := lipgloss.NewStyle().Background(bg)
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := 0; i < height; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		lineWidth := lipgloss.Width(line)
		if lineWidth > width {
			lines[i] = line
			continue
		}
		lines[i] = line + paddingStyle.Render(strings.Repeat(" ", width-lineWidth))
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// RenderOverlay centers the overlay box and splices it over the base content.
func RenderOverlay(baseContent, overlay string, width, height int, bg lipgloss.Color) string {
	boxLines := strings.Split(overlay, "\n")
	boxHeight := len(boxLines)
	if boxHeight == 0 {
		return baseContent
	}

	boxWidth := 0
	for _, line := range boxLines {
		if w := lipgloss.Width(line); w > boxWidth {
			boxWidth = w
		}
	}
	if boxWidth == 0 {
		return baseContent
	}
	if boxWidth > width {
		boxWidth = width
	}

	top := (height - boxHeight) / 2
	left := (width - boxWidth) / 2
	if top < 0 {
		top = 0
	}
	if left < 0 {
		left = 0
	}

	for i, line := range boxLines {
		lineWidth := lipgloss.Width(line)
		if lineWidth > boxWidth {
			line = ansi.Cut(line, 0, boxWidth)
		}
		if lineWidth < boxWidth {
			paddingStyle := lipgloss.NewStyle().Background(bg)
			line += paddingStyle.Render(strings.Repeat(" ", boxWidth-lineWidth))
		}
		line = reapplyBackground(line, bg)
		boxLines[i] = line + ansi.ResetStyle
	}

	emptyBg := lipgloss.Color("")
	baseLines := strings.Split(PadLinesWithBackground(baseContent, width, height, emptyBg), "\n")

	lines := make([]string, 0, height)
	for row := 0; row < height; row++ {
		if row < top || row >= top+boxHeight {
			lines = append(lines, baseLines[row])
			continue
		}

		boxLine := boxLines[row-top]
		baseLine := baseLines[row]
		leftSlice := ansi.Cut(baseLine, 0, left)
		rightSlice := ansi.Cut(baseLine, left+boxWidth, width)
		lines = append(lines, leftSlice+boxLine+rightSlice)
	}

	return strings.Join(lines, "\n")
}

// reapplyBackground restores the overlay background after ANSI resets so
// styled spans inside the box do not punch holes into it.
func reapplyBackground(line string, bg lipgloss.Color) string {
	bgSeq := backgroundSeq(bg)
	if bgSeq == "" {
		return line
	}
	line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[0m", "\x1b[0m"+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[49m", "\x1b[49m"+bgSeq)
	return line
}

func backgroundSeq(bg lipgloss.Color) string {
	if bg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(bg))).String()
}

// Fit truncates s to width cells and pads it with spaces to exactly width.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// Center truncates s to width cells and centers it.
func Center(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	pad := width - ansi.StringWidth(s)
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderCell is the secondary title above one grid cell.
type HeaderCell struct {
	Title   string
	Width   int
	Today   bool
	Focused bool
}

// HeaderGroup is one primary column and the cells it spans.
type HeaderGroup struct {
	Title string
	Today bool
	Cells []HeaderCell
}

// HeaderStyles groups the header styles.
type HeaderStyles struct {
	Primary        lipgloss.Style
	Secondary      lipgloss.Style
	Today          lipgloss.Style
	Focused        lipgloss.Style
	Gutter         lipgloss.Style
	Separator      lipgloss.Style
	GroupSeparator lipgloss.Style
}

// Width returns the rendered width of the group without its leading separator.
func (g HeaderGroup) Width() int {
	w := 0
	for i, c := range g.Cells {
		if i > 0 {
			w++
		}
		w += c.Width
	}
	return w
}

// RenderHeader renders the primary and secondary title rows.
func RenderHeader(gutter string, gutterW int, groups []HeaderGroup, st HeaderStyles) string {
	var top, bottom strings.Builder
	top.WriteString(st.Gutter.Render(Fit(gutter, gutterW)))
	bottom.WriteString(st.Gutter.Render(Fit("", gutterW)))

	for _, g := range groups {
		top.WriteString(st.GroupSeparator.Render("┃"))
		style := st.Primary
		if g.Today {
			style = st.Today
		}
		top.WriteString(style.Render(Center(g.Title, g.Width())))

		for i, c := range g.Cells {
			if i == 0 {
				bottom.WriteString(st.GroupSeparator.Render("┃"))
			} else {
				bottom.WriteString(st.Separator.Render("│"))
			}
			style := st.Secondary
			switch {
			case c.Focused:
				style = st.Focused
			case c.Today:
				style = st.Today
			}
			bottom.WriteString(style.Render(Fit(c.Title, c.Width)))
		}
	}
	return top.String() + "\n" + bottom.String()
}

package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// LineKind marks a grid row drawn as a slot or hour line.
type LineKind int

const (
	LineNone LineKind = iota
	LineSlot
	LineHour
)

// Block is an event drawn inside a cell. Rows and columns are terminal
// units relative to the cell.
type Block struct {
	Row   int
	Rows  int
	Col   int
	Cols  int
	Label string
	Style lipgloss.Style
}

// GridCell is one rendered (day, resource) column.
type GridCell struct {
	Width int
	// GroupStart is set on the first cell of a primary column.
	GroupStart bool
	Blocks     []Block
	// CursorRow is the highlighted row of the focused cell, -1 otherwise.
	CursorRow int
}

// GridStyles groups the styles of the grid body.
type GridStyles struct {
	Empty          lipgloss.Style
	Cursor         lipgloss.Style
	Line           lipgloss.Style
	Gutter         lipgloss.Style
	Separator      lipgloss.Style
	GroupSeparator lipgloss.Style
}

// GridViewState holds everything needed to render the scrollable grid body.
type GridViewState struct {
	Rows    int
	Offset  int
	Height  int
	Gutter  []string
	GutterW int
	Lines   map[int]LineKind
	Cells   []GridCell
	Styles  GridStyles
}

// RenderGrid renders the visible rows of the grid body.
func RenderGrid(s GridViewState) string {
	end := min(s.Rows, s.Offset+s.Height)
	lines := make([]string, 0, max(0, end-s.Offset))

	for r := max(0, s.Offset); r < end; r++ {
		var b strings.Builder
		label := ""
		if r < len(s.Gutter) {
			label = s.Gutter[r]
		}
		b.WriteString(s.Styles.Gutter.Render(Fit(label, s.GutterW)))

		for _, c := range s.Cells {
			if c.GroupStart {
				b.WriteString(s.Styles.GroupSeparator.Render("┃"))
			} else {
				b.WriteString(s.Styles.Separator.Render("│"))
			}
			b.WriteString(renderCellRow(c, r, s.Lines[r], s.Styles))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

const (
	emptyOwner = -1
	wideTail   = rune(0)
)

func renderCellRow(c GridCell, row int, line LineKind, st GridStyles) string {
	if c.Width <= 0 {
		return ""
	}

	canvas := make([]rune, c.Width)
	owner := make([]int, c.Width)
	for x := range canvas {
		owner[x] = emptyOwner
		canvas[x] = emptyRune(line, x)
	}

	for bi, blk := range c.Blocks {
		if row < blk.Row || row >= blk.Row+blk.Rows {
			continue
		}
		right := min(c.Width, blk.Col+blk.Cols)
		for x := max(0, blk.Col); x < right; x++ {
			owner[x] = bi
			canvas[x] = ' '
		}
		if row == blk.Row {
			x := max(0, blk.Col)
			for _, r := range ansi.Truncate(blk.Label, right-x, "…") {
				w := ansi.StringWidth(string(r))
				if w == 0 {
					continue
				}
				if x+w > right {
					break
				}
				canvas[x] = r
				// Wide runes cover the following cells.
				for i := 1; i < w; i++ {
					canvas[x+i] = wideTail
				}
				x += w
			}
		}
	}

	emptyStyle := st.Empty
	switch {
	case row == c.CursorRow:
		emptyStyle = st.Cursor
	case line != LineNone:
		emptyStyle = st.Line
	}

	var b strings.Builder
	for start := 0; start < c.Width; {
		end := start + 1
		for end < c.Width && owner[end] == owner[start] {
			end++
		}
		style := emptyStyle
		if owner[start] != emptyOwner {
			style = c.Blocks[owner[start]].Style
		}
		b.WriteString(style.Render(cellText(canvas[start:end])))
		start = end
	}
	return b.String()
}

func emptyRune(line LineKind, x int) rune {
	switch line {
	case LineHour:
		return '┄'
	case LineSlot:
		if x == 0 {
			return '·'
		}
	}
	return ' '
}

func cellText(runes []rune) string {
	var b strings.Builder
	for _, r := range runes {
		if r != wideTail {
			b.WriteRune(r)
		}
	}
	return b.String()
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/resched/internal/grid"
	"github.com/javiermolinar/resched/internal/tui/view"
)

// View renders the TUI.
func (m Model) View() string {
	state := view.ViewState{
		Width:            m.width,
		Height:           m.height,
		EmptyPlaceholder: "Loading...",
	}
	if m.width == 0 || m.height == 0 {
		return view.Render(state)
	}

	state.BaseContent = m.renderAppContent()
	state.OverlayBg = m.styles.DetailBgColor
	switch {
	case m.detail != nil:
		state.OverlayContent = m.renderDetail()
		state.ShowOverlay = true
	case m.showHelp:
		state.OverlayContent = m.styles.DetailStyle.Render(m.help.FullHelpView(m.keys.FullHelp()))
		state.ShowOverlay = true
	}
	return view.Render(state)
}

func (m Model) renderAppContent() string {
	title := view.RenderTitleBar(m.width, " "+m.sched.RangeTitle(), m.infoLine(), m.styles.TitleStyle, m.styles.InfoStyle)

	var body string
	cells := m.sched.Cells()
	if len(cells) == 0 {
		body = view.PlaceBox(m.width, headerHeight+m.gridHeight(), lipgloss.Top, "  No resources configured", m.styles.colorBg)
	} else {
		widths := cellWidths(m.width, len(cells))
		header := view.RenderHeader(m.sched.Mode().String(), gutterWidth, m.headerGroups(widths), m.styles.Header)
		body = header + "\n" + view.RenderGrid(m.gridState(widths))
	}

	footer := view.RenderFooter(view.FooterViewState{
		InnerW:      m.width,
		StatusLine:  m.statusLine(),
		HelpLine:    m.help.ShortHelpView(m.keys.ShortHelp()),
		StatusStyle: m.statusStyle(),
		HelpStyle:   m.styles.HelpStyle,
		Bg:          m.styles.colorBg,
	})

	content := lipgloss.JoinVertical(lipgloss.Left, title, body)
	content = view.PadLinesWithBackground(content, m.width, m.height-footerHeight, m.styles.colorBg)
	return content + "\n" + footer
}

func (m Model) infoLine() string {
	info := fmt.Sprintf("%s · %s · %dd · %s ", m.sched.DayWindowLabel(), m.sched.Mode(), m.sched.Days(), m.sched.PrimaryAxis())
	if m.loading {
		info = m.spinner.View() + " " + info
	}
	return info
}

func (m Model) statusLine() string {
	if m.statusMsg != "" {
		return " " + m.statusMsg
	}
	n := len(m.sched.Events())
	return fmt.Sprintf(" %d events", n)
}

func (m Model) statusStyle() lipgloss.Style {
	if m.statusWarn {
		return m.styles.WarningStyle
	}
	return m.styles.StatusStyle
}

// headerGroups builds one group per primary column.
func (m Model) headerGroups(widths []int) []view.HeaderGroup {
	primary := m.sched.PrimaryColumns()
	secondary := m.sched.SecondaryColumns()

	groups := make([]view.HeaderGroup, 0, len(primary))
	idx := 0
	for i, p := range primary {
		hc, _ := m.sched.Header(false, i)
		g := view.HeaderGroup{
			Title: p.Title(),
			Today: !hc.Day.IsZero() && m.sched.IsToday(hc.Day),
		}
		for j, s := range secondary {
			if idx >= len(widths) {
				break
			}
			sc, _ := m.sched.Header(true, j)
			g.Cells = append(g.Cells, view.HeaderCell{
				Title:   s.Title(),
				Width:   widths[idx],
				Today:   !sc.Day.IsZero() && m.sched.IsToday(sc.Day),
				Focused: idx == m.focus,
			})
			idx++
		}
		groups = append(groups, g)
	}
	return groups
}

// gridState lays out every visible cell in terminal units.
func (m Model) gridState(widths []int) view.GridViewState {
	tl := m.sched.Timeline()
	rowPx, rows := timelineRows(tl)
	nSecondary := max(1, len(m.sched.SecondaryColumns()))

	slots, hours := m.sched.GridLines()

	cells := m.sched.Cells()
	gridCells := make([]view.GridCell, len(cells))
	for i, c := range cells {
		gc := view.GridCell{
			Width:      widths[i],
			GroupStart: i%nSecondary == 0,
			CursorRow:  -1,
		}
		if i == m.focus {
			gc.CursorRow = m.row
		}
		gc.Blocks = m.cellBlocks(c, widths[i], rowPx, rows, i == m.focus)
		gridCells[i] = gc
	}

	return view.GridViewState{
		Rows:    rows,
		Offset:  m.offset,
		Height:  m.gridHeight(),
		Gutter:  gutterLabels(tl, rowPx, rows),
		GutterW: gutterWidth,
		Lines:   lineRows(slots, hours, rowPx, rows),
		Cells:   gridCells,
		Styles:  m.styles.Grid,
	}
}

func (m Model) cellBlocks(c grid.Cell, width int, rowPx float64, rows int, focused bool) []view.Block {
	var selectedID string
	if focused {
		if pe, ok := m.eventAtCursor(c); ok {
			selectedID = pe.ID
		}
	}

	var blocks []view.Block
	for _, pe := range m.sched.CellEvents(c) {
		if pe.Box.Hidden {
			continue
		}
		row, n := rowSpan(pe.Box.Top, pe.Box.Height, rowPx, rows)
		col, cols := colSpan(pe.Box.LeftPercent, pe.Box.WidthPercent, width)
		blocks = append(blocks, view.Block{
			Row:   row,
			Rows:  n,
			Col:   col,
			Cols:  cols,
			Label: pe.Title,
			Style: m.styles.blockStyle(pe.Color, pe.Column, pe.ID == selectedID),
		})
	}
	return blocks
}

func (m Model) renderDetail() string {
	pe := *m.detail
	ctx := m.sched.EventContext(pe)

	lines := []view.DetailLine{
		{Text: pe.Title, Style: view.DetailLineTitle},
		{Text: fmt.Sprintf("%s %s–%s", ctx.Start.Format("Mon, Jan 2"), ctx.Start.Format("15:04"), ctx.End.Format("15:04")), Style: view.DetailLineBody},
		{Text: m.resourceTitle(ctx.ResourceID), Style: view.DetailLineBody},
	}
	if pe.RRule != "" {
		lines = append(lines, view.DetailLine{Text: "Repeats " + pe.RRule, Style: view.DetailLineMeta})
	}
	lines = append(lines,
		view.DetailLine{Text: "id " + pe.ID, Style: view.DetailLineMeta},
		view.DetailLine{Text: strings.Join(m.sched.EventClasses(pe), " "), Style: view.DetailLineMeta},
	)

	w := max(10, min(48, m.width-6))
	body := view.RenderDetailBody(lines, view.DetailStyles{
		BodyStyle:  m.styles.DetailBodyStyle,
		MetaStyle:  m.styles.DetailMetaStyle,
		TitleStyle: m.styles.DetailTitleStyle,
	}, w)
	return m.styles.DetailStyle.Width(w + 2).Render(body)
}

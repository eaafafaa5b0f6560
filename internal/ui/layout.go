package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/resched/internal/grid"
	"github.com/javiermolinar/resched/internal/scheduler"
)

// layoutReport is the machine readable result of one engine run.
type layoutReport struct {
	Title       string       `json:"title" yaml:"title"`
	Start       string       `json:"start" yaml:"start"`
	End         string       `json:"end" yaml:"end"`
	Days        int          `json:"days" yaml:"days"`
	PrimaryAxis string       `json:"primary_axis" yaml:"primary_axis"`
	Timezone    string       `json:"timezone" yaml:"timezone"`
	DayWindow   string       `json:"day_window" yaml:"day_window"`
	Cells       []layoutCell `json:"cells" yaml:"cells"`
}

type layoutCell struct {
	Primary     string        `json:"primary" yaml:"primary"`
	Day         string        `json:"day" yaml:"day"`
	ResourceID  string        `json:"resource_id" yaml:"resource_id"`
	Resource    string        `json:"resource" yaml:"resource"`
	WindowStart string        `json:"window_start" yaml:"window_start"`
	WindowEnd   string        `json:"window_end" yaml:"window_end"`
	Events      []layoutEvent `json:"events" yaml:"events"`
}

type layoutEvent struct {
	ID           string  `json:"id" yaml:"id"`
	Title        string  `json:"title" yaml:"title"`
	Start        string  `json:"start" yaml:"start"`
	End          string  `json:"end" yaml:"end"`
	Column       int     `json:"column" yaml:"column"`
	Columns      int     `json:"columns" yaml:"columns"`
	Hidden       bool    `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Top          float64 `json:"top_px" yaml:"top_px"`
	Height       float64 `json:"height_px" yaml:"height_px"`
	LeftPercent  float64 `json:"left_percent" yaml:"left_percent"`
	WidthPercent float64 `json:"width_percent" yaml:"width_percent"`
}

func (a *App) layoutCmd() *cobra.Command {
	var (
		rf      rangeFlags
		format  string
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the computed grid layout",
		Long: `Run the layout engine once over a range and print every cell with its
time window and positioned events.

Positions are in pixels from the window start (2px per minute) and in
percent of the cell width, the same values the TUI renders from.`,
		Example: `  resched layout
  resched layout --date 2026-03-02 --days 5 --axis resources
  resched layout --tz Europe/Madrid --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch format {
			case "table", "json", "yaml":
			default:
				return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
			}
			if noColor {
				DisableColor()
			}

			s, err := a.loadScheduler(context.Background(), rf)
			if err != nil {
				return err
			}
			report := buildLayoutReport(s)

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(report); err != nil {
					return err
				}
				return enc.Close()
			}
			printLayoutTable(out, report, termWidth())
			return nil
		},
	}

	rf.register(cmd, true)
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json or yaml")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

func buildLayoutReport(s *scheduler.Scheduler) layoutReport {
	vr := s.Range()
	loc := s.Mode().Location()
	at := func(t time.Time) string {
		return t.In(loc).Format(time.RFC3339)
	}
	titles := resourceTitles(s)
	primary := make(map[string]string, len(s.PrimaryColumns()))
	for _, c := range s.PrimaryColumns() {
		primary[c.Key()] = c.Title()
	}

	r := layoutReport{
		Title:       s.RangeTitle(),
		Start:       at(vr.Start),
		End:         at(vr.End),
		Days:        vr.Days,
		PrimaryAxis: string(vr.PrimaryAxis),
		Timezone:    s.Mode().String(),
		DayWindow:   s.DayWindowLabel(),
	}
	for _, cl := range s.Layout() {
		cell := layoutCell{
			Primary:     primary[cl.PrimaryKey],
			Day:         cl.Cell.DayKey(),
			ResourceID:  cl.Cell.ResourceID,
			Resource:    titles[cl.Cell.ResourceID],
			WindowStart: at(cl.Window.Start),
			WindowEnd:   at(cl.Window.End),
			Events:      []layoutEvent{},
		}
		for _, pe := range cl.Events {
			cell.Events = append(cell.Events, layoutEvent{
				ID:           pe.ID,
				Title:        pe.Title,
				Start:        at(pe.Start),
				End:          at(pe.End),
				Column:       pe.Column,
				Columns:      pe.Columns,
				Hidden:       pe.Box.Hidden,
				Top:          pe.Box.Top,
				Height:       pe.Box.Height,
				LeftPercent:  pe.Box.LeftPercent,
				WidthPercent: pe.Box.WidthPercent,
			})
		}
		r.Cells = append(r.Cells, cell)
	}
	return r
}

func printLayoutTable(out io.Writer, r layoutReport, width int) {
	fmt.Fprintf(out, "\n  %s  %s\n", formatHeader(r.Title),
		formatMuted(fmt.Sprintf("%s · %s · %dd · %s", r.DayWindow, r.Timezone, r.Days, r.PrimaryAxis)))
	fmt.Fprintln(out, strings.Repeat("─", min(width, 74)))

	// "      HH:MM-HH:MM  " + title + "  col 1/2  top 0 h 0  0-100%"
	titleW := max(12, min(width, 74)-50)

	var current string
	for _, c := range r.Cells {
		if c.Primary != current {
			if current != "" {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "  %s\n", formatHeader(c.Primary))
			current = c.Primary
		}

		label := c.Resource
		if r.PrimaryAxis == string(grid.AxisResources) {
			label = c.Day
		}
		fmt.Fprintf(out, "    %s  %s\n", formatResource(label),
			formatMuted(windowLabel(c.WindowStart, c.WindowEnd)))

		if len(c.Events) == 0 {
			fmt.Fprintf(out, "      %s\n", formatMuted("(no events)"))
			continue
		}
		for _, e := range c.Events {
			geo := fmt.Sprintf("col %d/%d  top %.0f h %.0f  %.0f-%.0f%%",
				e.Column+1, e.Columns, e.Top, e.Height, e.LeftPercent, e.LeftPercent+e.WidthPercent)
			if e.Hidden {
				geo = "hidden"
			}
			fmt.Fprintf(out, "      %s  %-*s  %s\n",
				formatTime(windowLabel(e.Start, e.End)),
				titleW, truncate(e.Title, titleW),
				formatMuted(geo),
			)
		}
	}
	fmt.Fprintln(out)
}

// windowLabel renders two RFC 3339 times as "HH:MM-HH:MM" in their own
// offset.
func windowLabel(start, end string) string {
	s, err1 := time.Parse(time.RFC3339, start)
	e, err2 := time.Parse(time.RFC3339, end)
	if err1 != nil || err2 != nil {
		return start + " - " + end
	}
	return s.Format("15:04") + "-" + e.Format("15:04")
}

package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func darkTheme() *Theme {
	return &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Event:       "#112233",
		EventAlt:    "#445566",
		Today:       "#777777",
		Warning:     "#888888",
		Grid:        "#202020",
	}
}

func TestNewPalette_EventShades(t *testing.T) {
	base := darkTheme()
	palette := NewPalette(base)

	if palette.EventBg != lipgloss.Color(darkenColor(base.Event)) {
		t.Fatalf("EventBg = %q, want %q", palette.EventBg, darkenColor(base.Event))
	}
	if palette.EventBgAlt != lipgloss.Color(darkenColor(base.EventAlt)) {
		t.Fatalf("EventBgAlt = %q, want %q", palette.EventBgAlt, darkenColor(base.EventAlt))
	}
	if palette.Grid != lipgloss.Color(base.Grid) {
		t.Fatalf("Grid = %q, want %q", palette.Grid, base.Grid)
	}
}

func TestNewPalette_SameEventColorsStillAlternate(t *testing.T) {
	base := darkTheme()
	base.EventAlt = base.Event

	palette := NewPalette(base)
	if palette.EventBg == palette.EventBgAlt {
		t.Fatalf("EventBgAlt = EventBg = %q, want distinct shades", palette.EventBg)
	}
}

func TestNewPalette_LightThemeLightensEvents(t *testing.T) {
	base := &Theme{
		Bg:          "#f5f5f5",
		BgHighlight: "#eeeeee",
		BgSelection: "#e0e0e0",
		Fg:          "#222222",
		FgMuted:     "#555555",
		Accent:      "#2f6feb",
		Event:       "#1d8a8a",
		EventAlt:    "#2f8f2f",
		Today:       "#c97b00",
		Warning:     "#c2410c",
	}

	palette := NewPalette(base)
	if relativeLuminance(string(palette.EventBg)) <= relativeLuminance(base.Event) {
		t.Fatalf("EventBg luminance = %f, want greater than Event", relativeLuminance(string(palette.EventBg)))
	}
	if palette.TextOnEvent != lipgloss.Color(base.Fg) {
		t.Fatalf("TextOnEvent = %q, want %q", palette.TextOnEvent, base.Fg)
	}
}

func TestNewPalette_NilUsesDefaultTheme(t *testing.T) {
	palette := NewPalette(nil)
	mocha, err := Load("mocha")
	if err != nil {
		t.Fatalf("Load(mocha) unexpected error: %v", err)
	}
	if palette.Bg != lipgloss.Color(mocha.Bg) {
		t.Fatalf("Bg = %q, want %q", palette.Bg, mocha.Bg)
	}
}

func TestPalette_EventColor(t *testing.T) {
	palette := NewPalette(darkTheme())

	t.Run("override", func(t *testing.T) {
		bg, _ := palette.EventColor("#f38ba8", false)
		if bg != lipgloss.Color(darkenColor("#f38ba8")) {
			t.Fatalf("bg = %q, want %q", bg, darkenColor("#f38ba8"))
		}
	})

	t.Run("invalid falls back", func(t *testing.T) {
		bg, fg := palette.EventColor("red", true)
		if bg != palette.EventBgAlt {
			t.Fatalf("bg = %q, want %q", bg, palette.EventBgAlt)
		}
		if fg != palette.TextOnEvent {
			t.Fatalf("fg = %q, want %q", fg, palette.TextOnEvent)
		}
	})
}

func TestChooseTextColorPrefersContrast(t *testing.T) {
	bg := "#f0f0f0"
	lightText := "#ffffff"
	darkText := "#111111"

	if got := chooseTextColor(bg, lightText, darkText); got != darkText {
		t.Fatalf("chooseTextColor(%q, %q, %q) = %q, want %q", bg, lightText, darkText, got, darkText)
	}
}

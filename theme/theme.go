// Package theme holds the built-in colour palettes and the lipgloss styles
// the renderer draws widgets with.
package theme

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var ErrUnknownTheme = errors.New("unknown theme")

// Palette is a Catppuccin flavour.
// https://catppuccin.com/palette
type Palette struct {
	Name string

	Rosewater lipgloss.Color
	Flamingo  lipgloss.Color
	Pink      lipgloss.Color
	Mauve     lipgloss.Color
	Red       lipgloss.Color
	Maroon    lipgloss.Color
	Peach     lipgloss.Color
	Yellow    lipgloss.Color
	Green     lipgloss.Color
	Teal      lipgloss.Color
	Sky       lipgloss.Color
	Sapphire  lipgloss.Color
	Blue      lipgloss.Color
	Lavender  lipgloss.Color

	Text     lipgloss.Color
	Subtext1 lipgloss.Color
	Subtext0 lipgloss.Color
	Overlay2 lipgloss.Color
	Overlay1 lipgloss.Color
	Overlay0 lipgloss.Color
	Surface2 lipgloss.Color
	Surface1 lipgloss.Color
	Surface0 lipgloss.Color
	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Crust    lipgloss.Color
}

// ---------------------------------------------------------------------------
// Built-in palettes
// ---------------------------------------------------------------------------

// Dark is Catppuccin Mocha.
var Dark = Palette{
	Name:      "dark",
	Rosewater: "#f5e0dc",
	Flamingo:  "#f2cdcd",
	Pink:      "#f5c2e7",
	Mauve:     "#cba6f7",
	Red:       "#f38ba8",
	Maroon:    "#eba0ac",
	Peach:     "#fab387",
	Yellow:    "#f9e2af",
	Green:     "#a6e3a1",
	Teal:      "#94e2d5",
	Sky:       "#89dceb",
	Sapphire:  "#74c7ec",
	Blue:      "#89b4fa",
	Lavender:  "#b4befe",
	Text:      "#cdd6f4",
	Subtext1:  "#bac2de",
	Subtext0:  "#a6adc8",
	Overlay2:  "#9399b2",
	Overlay1:  "#7f849c",
	Overlay0:  "#6c7086",
	Surface2:  "#585b70",
	Surface1:  "#45475a",
	Surface0:  "#313244",
	Base:      "#1e1e2e",
	Mantle:    "#181825",
	Crust:     "#11111b",
}

// Light is Catppuccin Latte.
var Light = Palette{
	Name:      "light",
	Rosewater: "#dc8a78",
	Flamingo:  "#dd7878",
	Pink:      "#ea76cb",
	Mauve:     "#8839ef",
	Red:       "#d20f39",
	Maroon:    "#e64553",
	Peach:     "#fe640b",
	Yellow:    "#df8e1d",
	Green:     "#40a02b",
	Teal:      "#179299",
	Sky:       "#04a5e5",
	Sapphire:  "#209fb5",
	Blue:      "#1e66f5",
	Lavender:  "#7287fd",
	Text:      "#4c4f69",
	Subtext1:  "#5c5f77",
	Subtext0:  "#6c6f85",
	Overlay2:  "#7c7f93",
	Overlay1:  "#8c8fa1",
	Overlay0:  "#9ca0b0",
	Surface2:  "#acb0be",
	Surface1:  "#bcc0cc",
	Surface0:  "#ccd0da",
	Base:      "#eff1f5",
	Mantle:    "#e6e9ef",
	Crust:     "#dce0e8",
}

var builtin = map[string]Palette{
	Dark.Name:  Dark,
	Light.Name: Light,
}

// Lookup returns the named built-in palette. Matching ignores case.
func Lookup(name string) (Palette, error) {
	p, ok := builtin[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Palette{}, fmt.Errorf("%q: %w", name, ErrUnknownTheme)
	}
	return p, nil
}

// Names lists the built-in palettes.
func Names() []string {
	out := make([]string, 0, len(builtin))
	for n := range builtin {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Colors returns every colour in the palette.
func (p Palette) Colors() []lipgloss.Color {
	return []lipgloss.Color{
		p.Rosewater, p.Flamingo, p.Pink, p.Mauve,
		p.Red, p.Maroon, p.Peach, p.Yellow,
		p.Green, p.Teal, p.Sky, p.Sapphire,
		p.Blue, p.Lavender,
		p.Text, p.Subtext1, p.Subtext0,
		p.Overlay2, p.Overlay1, p.Overlay0,
		p.Surface2, p.Surface1, p.Surface0,
		p.Base, p.Mantle, p.Crust,
	}
}

// Semantic aliases.
func (p Palette) Accent() lipgloss.Color { return p.Pink }
func (p Palette) Focus() lipgloss.Color  { return p.Lavender }
func (p Palette) Error() lipgloss.Color  { return p.Red }

// ---------------------------------------------------------------------------
// Widget styles
// ---------------------------------------------------------------------------

// Styles are the lipgloss styles for each widget state.
type Styles struct {
	Screen         lipgloss.Style
	Popup          lipgloss.Style
	Label          lipgloss.Style
	Entry          lipgloss.Style
	EntryFocused   lipgloss.Style
	Selection      lipgloss.Style
	Button         lipgloss.Style
	ButtonPressed  lipgloss.Style
	ButtonDisabled lipgloss.Style
	Status         lipgloss.Style
}

func (p Palette) Styles() Styles {
	return Styles{
		Screen: lipgloss.NewStyle().Foreground(p.Text).Background(p.Base),
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Focus()).
			Foreground(p.Text).
			Background(p.Mantle),
		Label:          lipgloss.NewStyle().Foreground(p.Subtext0),
		Entry:          lipgloss.NewStyle().Foreground(p.Text).Background(p.Surface0),
		EntryFocused:   lipgloss.NewStyle().Foreground(p.Text).Background(p.Surface1).Underline(true),
		Selection:      lipgloss.NewStyle().Foreground(p.Base).Background(p.Focus()),
		Button:         lipgloss.NewStyle().Foreground(p.Text).Background(p.Surface1),
		ButtonPressed:  lipgloss.NewStyle().Foreground(p.Base).Background(p.Accent()).Bold(true),
		ButtonDisabled: lipgloss.NewStyle().Foreground(p.Overlay0).Background(p.Surface0),
		Status:         lipgloss.NewStyle().Foreground(p.Overlay1).Italic(true),
	}
}

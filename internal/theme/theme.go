package theme

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type Theme struct {
	Question lipgloss.Style
	Answer   lipgloss.Style
	Hint     lipgloss.Style
	Marker   lipgloss.Style
	Synced   lipgloss.Style
	Missing  lipgloss.Style
	Info     lipgloss.Style
	Updated  lipgloss.Style
	Created  lipgloss.Style
	Error    lipgloss.Style
	Header   lipgloss.Style
}

// NewRenderer returns a renderer bound to w. Colors are dropped when plain
// is set or when w is not a color-capable terminal.
func NewRenderer(w io.Writer, plain bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if plain {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// Colorful reports whether the renderer emits any color sequences.
func Colorful(r *lipgloss.Renderer) bool {
	return r.ColorProfile() != termenv.Ascii
}

func DefaultTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	accent := lipgloss.Color("#7D56F4")

	return Theme{
		Question: r.NewStyle().Bold(true),
		Answer:   r.NewStyle().Foreground(lipgloss.Color("#5FB3B3")),
		Hint:     r.NewStyle().Foreground(lipgloss.Color("#A6A1BB")),
		Marker:   r.NewStyle().Foreground(lipgloss.Color("#6EF17E")).Bold(true),
		Synced:   r.NewStyle().Foreground(lipgloss.Color("#8A8799")),
		Missing:  r.NewStyle().Foreground(lipgloss.Color("#FBC859")),
		Info:     r.NewStyle().Foreground(lipgloss.Color("#15AABF")),
		Updated:  r.NewStyle().Foreground(lipgloss.Color("#6EF17E")).Bold(true),
		Created:  r.NewStyle().Foreground(lipgloss.Color("#33C481")),
		Error:    r.NewStyle().Foreground(lipgloss.Color("#FF6E6E")),
		Header:   r.NewStyle().Foreground(accent).Bold(true),
	}
}

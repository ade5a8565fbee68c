// Package ui holds the terminal look: palette, symbols, box drawing.
// A Theme is built once from config and handed to whoever renders;
// there is no package-global theme state.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles the Lip Gloss styles and symbols every renderer needs.
type Theme struct {
	Name string

	Title    lipgloss.Style
	Success  lipgloss.Style
	Pending  lipgloss.Style
	Accent   lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Selected lipgloss.Style
	Done     lipgloss.Style
	Help     lipgloss.Style
	Border   lipgloss.Style

	BoxChecked   string
	BoxUnchecked string
	SymOK        string
	SymFail      string
}

// NewTheme builds a theme by name: classic (default), neon, or mono.
// noColor strips all styling regardless of theme.
func NewTheme(name string, noColor bool) Theme {
	t := Theme{
		Name:         "classic",
		BoxChecked:   "☑",
		BoxUnchecked: "☐",
		SymOK:        "✔",
		SymFail:      "✖",
	}

	plain := lipgloss.NewStyle()
	if noColor || strings.EqualFold(name, "mono") {
		t.Name = "mono"
		t.Title = plain
		t.Success = plain
		t.Pending = plain
		t.Accent = plain
		t.Muted = plain
		t.Error = plain
		t.Selected = plain
		t.Done = plain
		t.Help = plain
		t.Border = plain.Border(lipgloss.NormalBorder()).Padding(0, 1)
		t.BoxChecked = "[x]"
		t.BoxUnchecked = "[ ]"
		t.SymOK = "x"
		t.SymFail = "!"
		return t
	}

	switch strings.ToLower(name) {
	case "neon":
		t.Name = "neon"
		t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
		t.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		t.BoxChecked = "◼"
		t.BoxUnchecked = "◻"
	default:
		t.Title = lipgloss.NewStyle().Bold(true)
		t.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
		t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
		t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	}

	t.Muted = lipgloss.NewStyle().Faint(true)
	t.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	t.Selected = lipgloss.NewStyle().Bold(true).Reverse(true)
	t.Done = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	t.Help = lipgloss.NewStyle().Faint(true)
	t.Border = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return t
}

// Box returns the checkbox glyph for a delivered flag.
func (t Theme) Box(checked bool) string {
	if checked {
		return t.BoxChecked
	}
	return t.BoxUnchecked
}

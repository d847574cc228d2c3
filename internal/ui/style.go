// file: internal/ui/style.go
// version: 1.0.0
// guid: 9e1a3c5d-7f9b-4e1a-8c3d-5f7b9e1a3c5d

package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/jdfalk/library-catalog/internal/catalog"
)

// Palette
var (
	ColorGreen  = lipgloss.Color("#4CAF50")
	ColorBlue   = lipgloss.Color("#2196F3")
	ColorOrange = lipgloss.Color("#FF9800")
	ColorRed    = lipgloss.Color("#F44336")
)

// Styles holds the shell's pre-configured lipgloss styles.
var Styles = struct {
	Title    lipgloss.Style
	InfoBox  lipgloss.Style
	WarnBox  lipgloss.Style
	ErrorBox lipgloss.Style
}{
	Title: lipgloss.NewStyle().Bold(true).Foreground(ColorBlue),
	InfoBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorGreen).
		Padding(0, 1),
	WarnBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorOrange).
		Padding(0, 1),
	ErrorBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorRed).
		Padding(0, 1),
}

// RenderResult boxes a catalog result, colored by outcome.
func RenderResult(title string, res catalog.Result) string {
	box := Styles.InfoBox
	switch res.Outcome {
	case catalog.Success:
	case catalog.Empty, catalog.NoMatches:
		box = Styles.WarnBox
	default:
		box = Styles.ErrorBox
	}
	return renderBox(box, title, res.Message)
}

// RenderError boxes a validation or persistence error.
func RenderError(msg string) string {
	return renderBox(Styles.ErrorBox, "Error", msg)
}

func renderBox(box lipgloss.Style, title, body string) string {
	if title == "" {
		return box.Render(body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, Styles.Title.Render(title), box.Render(body))
}

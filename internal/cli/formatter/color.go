package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ToneColor maps a card tone onto the palette.
func ToneColor(tone domain.CardTone) lipgloss.Color {
	switch tone {
	case domain.ToneIssued:
		return ColorGreen
	case domain.ToneOverdue:
		return ColorRed
	case domain.ToneInProduction:
		return ColorYellow
	default:
		return ColorBlue
	}
}

// ToneIndicator returns a colored marker such as "● OVERDUE".
func ToneIndicator(tone domain.CardTone) string {
	label := strings.ToUpper(strings.ReplaceAll(string(tone), "_", " "))
	return lipgloss.NewStyle().Foreground(ToneColor(tone)).Render("● " + label)
}

// NoticeStyle colors a notice by level.
func NoticeStyle(isError bool) lipgloss.Style {
	if isError {
		return StyleRed
	}
	return StyleGreen
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

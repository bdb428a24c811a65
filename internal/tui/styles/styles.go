package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	Magenta    = lipgloss.Color("#E879F9")
	Plum       = lipgloss.Color("#1A0F23")
	PlumLight  = lipgloss.Color("#3B2350")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Gold       = lipgloss.Color("#FACC15")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Amber      = lipgloss.Color("#F59E0B")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Magenta)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Amber)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	LogoStyle = lipgloss.NewStyle().
			Foreground(Magenta).
			Bold(true)
)

// Favorite marker
var (
	FavoriteStar = lipgloss.NewStyle().Foreground(Gold).Render("★")
	EmptyStar    = lipgloss.NewStyle().Foreground(DimGray).Render("☆")
)

// Card styles
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)

	CardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Magenta).
				Padding(0, 1)

	CardExpandedStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(Gold).
				Padding(0, 1)
)

// Panel styles
var (
	DetailPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Magenta).
				Padding(0, 2)

	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(Magenta).
				Bold(true).
				MarginTop(1)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Magenta).
			Padding(0, 1).
			Background(Plum)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(PlumLight)

	ActiveItemStyle = lipgloss.NewStyle().
			Foreground(Magenta)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Magenta)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Spinner style
var SpinnerStyle = lipgloss.NewStyle().Foreground(Magenta)

// Filter styles
var (
	FilterStyle = lipgloss.NewStyle().
			Foreground(Magenta)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(Magenta).
				Bold(true)

	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(Magenta).
				Bold(true).
				Underline(true)
)

// Truncate shortens s to width display cells with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 1 {
		return string(runes[:1])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// Pad pads s with spaces to width display cells, truncating if longer
func Pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return Truncate(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}

// HighlightMatches renders the characters starting at the matched byte
// offsets with the match style
func HighlightMatches(s string, matched []int) string {
	if len(matched) == 0 {
		return s
	}
	set := make(map[int]bool, len(matched))
	for _, i := range matched {
		set[i] = true
	}
	var b strings.Builder
	for i, r := range s {
		if set[i] {
			b.WriteString(MatchHighlightStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

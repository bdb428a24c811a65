package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/cineradar/internal/domain"
	"github.com/mmcdole/cineradar/internal/tui/styles"
)

// DetailView is everything the detail panel needs for one selection. The
// same panel serves home feeds, search results and favorites; Source names
// the list the movie was picked from.
type DetailView struct {
	Movie     domain.Movie
	Detail    domain.MovieDetail
	Source    string
	PosterURL string
	Loading   bool
	Favorite  bool
}

// DetailPanel renders the expanded information for the selected movie
type DetailPanel struct {
	width int
}

// NewDetailPanel creates a new detail panel
func NewDetailPanel() DetailPanel {
	return DetailPanel{}
}

// SetWidth sets the outer width of the panel
func (p *DetailPanel) SetWidth(width int) {
	p.width = width
}

// View renders the panel
func (p DetailPanel) View(v DetailView) string {
	frameW, _ := styles.DetailPanelStyle.GetFrameSize()
	width := p.width - frameW
	if width < 20 {
		width = 20
	}

	parts := []string{
		renderDetailHeader(v, width),
		renderDetailBody(v, width),
		renderDetailFooter(v, width),
	}
	return styles.DetailPanelStyle.Width(width).Render(strings.Join(parts, "\n"))
}

func renderDetailHeader(v DetailView, width int) string {
	var b strings.Builder

	star := styles.EmptyStar
	if v.Favorite {
		star = styles.FavoriteStar
	}
	b.WriteString(styles.TitleStyle.Render(styles.Truncate(v.Movie.DisplayTitle(), width-2)))
	b.WriteString(" ")
	b.WriteString(star)
	b.WriteString("\n")

	if v.Movie.OriginalTitle != "" && v.Movie.OriginalTitle != v.Movie.Title {
		b.WriteString(styles.SubtitleStyle.Render(styles.Truncate(v.Movie.OriginalTitle, width)))
		b.WriteString("\n")
	}

	var meta []string
	if v.Movie.ReleaseDate != "" {
		meta = append(meta, v.Movie.ReleaseDate)
	}
	meta = append(meta, ratingStyle(v.Movie.VoteAverage).Render("★ "+v.Movie.FormattedRating()))
	if v.Source != "" {
		meta = append(meta, styles.DimStyle.Render("from "+v.Source))
	}
	b.WriteString(strings.Join(meta, styles.DimStyle.Render(" · ")))
	return b.String()
}

func ratingStyle(vote float64) lipgloss.Style {
	switch {
	case vote >= 7:
		return lipgloss.NewStyle().Foreground(styles.Green)
	case vote >= 5:
		return lipgloss.NewStyle().Foreground(styles.Amber)
	default:
		return lipgloss.NewStyle().Foreground(styles.Red)
	}
}

func renderDetailBody(v DetailView, width int) string {
	var b strings.Builder

	if v.Movie.Overview != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Foreground(styles.LightGray).Render(v.Movie.Overview))
		b.WriteString("\n")
	}

	genres, cast := "-", "-"
	if v.Loading {
		genres, cast = "loading…", "loading…"
	} else if !v.Detail.IsEmpty() {
		genres, cast = v.Detail.GenreNames(), v.Detail.CastNames()
	}

	b.WriteString(styles.SectionTitleStyle.Render("Genres"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Render(genres))
	b.WriteString("\n")
	b.WriteString(styles.SectionTitleStyle.Render("Cast"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Render(cast))
	return b.String()
}

func renderDetailFooter(v DetailView, width int) string {
	var hints []string
	if v.Detail.TrailerURL != "" {
		hints = append(hints, hint("o", "trailer"))
	}
	if v.Detail.IMDbURL != "" {
		hints = append(hints, hint("i", "imdb"))
	}
	if v.PosterURL != "" {
		hints = append(hints, hint("p", "poster"))
	}
	if v.Favorite {
		hints = append(hints, hint("*", "unfavorite"))
	} else {
		hints = append(hints, hint("*", "favorite"))
	}
	hints = append(hints, hint("enter", "close"))

	return "\n" + lipgloss.NewStyle().Width(width).Render(strings.Join(hints, "  "))
}

func hint(key, desc string) string {
	return fmt.Sprintf("%s %s", styles.HelpKeyStyle.Render(key), styles.HelpDescStyle.Render(desc))
}

package components

import (
	"fmt"
	"strings"

	"github.com/mmcdole/cineradar/internal/domain"
	"github.com/mmcdole/cineradar/internal/tui/styles"
)

// renderCard draws one movie card cardWidth cells wide. matched holds title
// byte offsets to highlight from the quick filter.
func renderCard(m domain.Movie, cardWidth int, selected, favorite bool, matched []int) string {
	inner := cardWidth - BorderWidth - HorizontalPadding

	title := m.DisplayTitle()
	if len(matched) > 0 && len(title) <= inner {
		title = styles.HighlightMatches(title, matched)
	}

	year := m.YearPrefix()
	if year == "" {
		year = "----"
	}

	star := styles.EmptyStar
	if favorite {
		star = styles.FavoriteStar
	}

	body := strings.Join([]string{
		styles.TitleStyle.Render(styles.Pad(title, inner)),
		styles.SubtitleStyle.Render(styles.Pad(fmt.Sprintf("%s  %s", year, m.FormattedRating()), inner)),
		star,
	}, "\n")

	style := styles.CardStyle
	if selected {
		style = styles.CardSelectedStyle
	}
	return style.Width(cardWidth - BorderWidth).Render(body)
}

package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/cineradar/internal/domain"
	"github.com/mmcdole/cineradar/internal/service"
)

// Command factories for async operations

const (
	homeTimeout   = 30 * time.Second
	searchTimeout = 30 * time.Second
	detailTimeout = 20 * time.Second
	statusTimeout = 3 * time.Second
)

// URLOpener hands a URL to the system browser
type URLOpener interface {
	Open(rawURL string) error
}

// LoadHomeCmd fetches the four home feeds
func LoadHomeCmd(svc *service.CatalogService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), homeTimeout)
		defer cancel()

		return HomeLoadedMsg{Feeds: svc.LoadHome(ctx)}
	}
}

// ResolveCmd runs a text search or a discover browse for the given filters
func ResolveCmd(svc *service.CatalogService, seq uint64, query string, filters domain.FilterState) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()

		movies, err := svc.Resolve(ctx, query, filters)
		return SearchResultsMsg{Seq: seq, Movies: movies, Query: query, Err: err}
	}
}

// EnrichCmd loads the detail panel data for one selection. ctx is cancelled
// by the model when the selection changes.
func EnrichCmd(ctx context.Context, svc *service.CatalogService, token uint64, movieID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, detailTimeout)
		defer cancel()

		detail, err := svc.Enrich(ctx, movieID)
		if errors.Is(err, context.Canceled) {
			err = domain.ErrStaleSelection
		}
		return DetailLoadedMsg{Token: token, Detail: detail, Err: err}
	}
}

// OpenURLCmd opens rawURL in the browser
func OpenURLCmd(opener URLOpener, label, rawURL string) tea.Cmd {
	return func() tea.Msg {
		return URLOpenedMsg{Label: label, Err: opener.Open(rawURL)}
	}
}

// ClearStatusCmd clears the status after a delay
func ClearStatusCmd() tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

package tui

import (
	"github.com/mmcdole/cineradar/internal/domain"
	"github.com/mmcdole/cineradar/internal/service"
)

// Message types for the TUI

// HomeLoadedMsg carries the outcome of every home feed
type HomeLoadedMsg struct {
	Feeds service.HomeFeeds
}

// SearchResultsMsg signals that a search or discover request finished. Seq
// identifies the submission so superseded responses can be dropped.
type SearchResultsMsg struct {
	Seq    uint64
	Movies []domain.Movie
	Query  string
	Err    error
}

// DetailLoadedMsg carries enrichment for the selection identified by Token
type DetailLoadedMsg struct {
	Token  uint64
	Detail domain.MovieDetail
	Err    error
}

// URLOpenedMsg signals that the launcher handed a URL to the browser
type URLOpenedMsg struct {
	Label string
	Err   error
}

// StatusMsg displays a temporary status message
type StatusMsg struct {
	Message string
	Type    StatusType
}

// StatusType indicates the type of status message
type StatusType int

const (
	StatusInfo StatusType = iota
	StatusSuccess
	StatusWarning
	StatusError
)

// ClearStatusMsg clears the status message
type ClearStatusMsg struct{}

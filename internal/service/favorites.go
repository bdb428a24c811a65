package service

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/cineradar/internal/domain"
)

// FavoritesService keeps the ordered favorites set and writes the whole
// collection back to the store on every mutation
type FavoritesService struct {
	store  domain.KeyValueStore
	logger *slog.Logger

	mu      sync.RWMutex
	items   []domain.Movie
	warning string
}

// NewFavoritesService creates a new favorites service. Call Load once before use.
func NewFavoritesService(store domain.KeyValueStore, logger *slog.Logger) *FavoritesService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FavoritesService{
		store:  store,
		logger: logger,
	}
}

// Load reads the persisted favorites. A missing key yields an empty set.
// Unreadable data also yields an empty set and records a warning; only a
// failing store returns an error.
func (s *FavoritesService) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.warning = ""

	data, ok, err := s.store.Get(domain.FavoritesKey)
	if err != nil {
		return fmt.Errorf("failed to read favorites: %w", err)
	}
	if !ok || len(data) == 0 {
		return nil
	}

	var items []domain.Movie
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("ignoring malformed favorites data", "error", err, "bytes", len(data))
		s.warning = "Saved favorites could not be read and were reset."
		return nil
	}

	// drop duplicates left by older writers
	seen := make(map[int]bool, len(items))
	for _, m := range items {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		s.items = append(s.items, m)
	}
	s.logger.Info("loaded favorites", "count", len(s.items))
	return nil
}

// Warning returns the message recorded by Load for unreadable data, or ""
func (s *FavoritesService) Warning() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.warning
}

// Toggle adds the movie when absent and removes it when present. The in-memory
// set is left unchanged if persisting fails.
func (s *FavoritesService) Toggle(movie domain.Movie) (added bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.items
	if idx := s.indexOf(movie.ID); idx >= 0 {
		next := make([]domain.Movie, 0, len(prev)-1)
		next = append(next, prev[:idx]...)
		next = append(next, prev[idx+1:]...)
		s.items = next
	} else {
		next := make([]domain.Movie, 0, len(prev)+1)
		next = append(next, prev...)
		s.items = append(next, movie)
		added = true
	}

	if err := s.persist(); err != nil {
		s.items = prev
		return false, err
	}
	s.logger.Debug("toggled favorite", "movieID", movie.ID, "added", added)
	return added, nil
}

// Contains reports whether the movie is a favorite
func (s *FavoritesService) Contains(movieID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(movieID) >= 0
}

// List returns a copy of the favorites in insertion order
func (s *FavoritesService) List() []domain.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Movie, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of favorites
func (s *FavoritesService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Find returns favorites whose title fuzzily contains query, best match first.
// An empty query returns every favorite.
func (s *FavoritesService) Find(query string) []domain.Movie {
	if query == "" {
		return s.List()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	titles := make([]string, len(s.items))
	for i, m := range s.items {
		titles[i] = m.DisplayTitle()
	}
	ranks := fuzzy.RankFindFold(query, titles)
	sort.Stable(ranks)

	out := make([]domain.Movie, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, s.items[r.OriginalIndex])
	}
	return out
}

// Clear removes every favorite from memory and from the store
func (s *FavoritesService) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(domain.FavoritesKey); err != nil {
		return fmt.Errorf("failed to clear favorites: %w", err)
	}
	s.items = nil
	s.warning = ""
	s.logger.Info("cleared favorites")
	return nil
}

func (s *FavoritesService) indexOf(movieID int) int {
	for i, m := range s.items {
		if m.ID == movieID {
			return i
		}
	}
	return -1
}

// persist writes the full collection. Caller must hold the write lock.
func (s *FavoritesService) persist() error {
	items := s.items
	if items == nil {
		items = []domain.Movie{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	if err := s.store.Set(domain.FavoritesKey, data); err != nil {
		s.logger.Error("failed to save favorites", "error", err)
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}

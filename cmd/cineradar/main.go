package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"golang.org/x/term"
	"golang.org/x/text/language"

	"github.com/mmcdole/cineradar/internal/adapter"
	"github.com/mmcdole/cineradar/internal/domain"
	"github.com/mmcdole/cineradar/internal/service"
	"github.com/mmcdole/cineradar/internal/store"
	"github.com/mmcdole/cineradar/internal/tmdb"
	"github.com/mmcdole/cineradar/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion, resetFavorites bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&resetFavorites, "reset-favorites", false, "delete saved favorites and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("cineradar %s\n", Version)
		return
	}

	if err := run(resetFavorites); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(resetFavorites bool) error {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting cineradar", "version", Version)

	if resetFavorites {
		if err := adapter.ClearFavorites(cfg.Storage.Path); err != nil {
			return err
		}
		fmt.Println("✓ Favorites cleared")
		return nil
	}

	if !cfg.IsConfigured() {
		return runSetupFlow(cfg, logger)
	}

	kv, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open favorites store: %w", err)
	}
	defer kv.Close()

	favorites := service.NewFavoritesService(kv, logger)
	if err := favorites.Load(); err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}

	client, err := newClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create TMDB client: %w", err)
	}

	catalog := service.NewCatalogService(client, language.Make(cfg.TMDB.Language), logger)
	launcher := adapter.NewLauncher(cfg.UI.Browser, logger)

	model := tui.NewModel(catalog, favorites, launcher, tui.Options{
		PartialFeeds:   cfg.UI.PartialFeeds,
		CardWidth:      cfg.UI.CardWidth,
		ContainerRatio: cfg.UI.ContainerRatio,
		ImageBaseURL:   cfg.TMDB.ImageBaseURL,
		PosterSize:     cfg.TMDB.PosterSize,
	}, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

func newClient(cfg *adapter.Config, logger *slog.Logger) (*tmdb.Client, error) {
	return tmdb.NewClient(tmdb.Options{
		APIKey:   cfg.TMDB.APIKey,
		BaseURL:  cfg.TMDB.BaseURL,
		Language: cfg.TMDB.Language,
		Timeout:  cfg.TMDB.Timeout,
	}, logger)
}

// runSetupFlow asks for the TMDB API key when none is configured
func runSetupFlow(cfg *adapter.Config, logger *slog.Logger) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("%w: set TMDB_API_KEY (or CINERADAR_TMDB_API_KEY) or run cineradar in a terminal to enter one",
			domain.ErrMissingAPIKey)
	}

	var apiKey string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to CineRadar!").
				Description("CineRadar needs a TMDB API key (v3 auth).\n"+
					"Create one at https://www.themoviedb.org/settings/api"),
			huh.NewInput().
				Title("TMDB API key").
				EchoMode(huh.EchoModePassword).
				Value(&apiKey).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("API key cannot be empty")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("setup cancelled: %w", err)
	}
	cfg.TMDB.APIKey = strings.TrimSpace(apiKey)

	if err := checkKeyWithSpinner(cfg, logger); err != nil {
		if tmdb.IsAuthError(err) {
			return fmt.Errorf("TMDB rejected the API key: %w", err)
		}
		// Unreachable API is not fatal, the key may still be right
		fmt.Printf("! Could not verify the key: %v\n", err)
	}

	if err := adapter.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run cineradar again to start the application.")

	return nil
}

// checkKeyWithSpinner makes one cheap request with the new key
func checkKeyWithSpinner(cfg *adapter.Config, logger *slog.Logger) error {
	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var checkErr error
	if err := spinner.New().
		Title("Checking API key...").
		Type(spinner.Dots).
		Action(func() {
			_, checkErr = client.Trending(ctx)
		}).
		Run(); err != nil {
		return err
	}
	return checkErr
}

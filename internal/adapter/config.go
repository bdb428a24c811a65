package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mmcdole/cineradar/internal/domain"
	"github.com/mmcdole/cineradar/internal/store"
)

const (
	appName    = "cineradar"
	envPrefix  = "CINERADAR"
	configName = "config"
)

// Config holds all application configuration
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds API access settings
type TMDBConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	ImageBaseURL string        `mapstructure:"image_base_url"`
	PosterSize   string        `mapstructure:"poster_size"`
	Language     string        `mapstructure:"language"` // e.g. "es-ES"
	Timeout      time.Duration `mapstructure:"timeout"`
}

// StorageConfig holds local persistence settings
type StorageConfig struct {
	Path string `mapstructure:"path"` // bbolt file; empty keeps favorites in memory
}

// UIConfig holds UI configuration
type UIConfig struct {
	Browser        string  `mapstructure:"browser"`         // command used to open links, empty for the system default
	CardWidth      int     `mapstructure:"card_width"`      // columns per grid card
	ContainerRatio float64 `mapstructure:"container_ratio"` // share of the terminal used by the grid
	PartialFeeds   bool    `mapstructure:"partial_feeds"`   // show home feeds that loaded when others fail
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File   string `mapstructure:"file"`
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "text"
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:      "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p",
			PosterSize:   "w500",
			Language:     "es-ES",
			Timeout:      15 * time.Second,
		},
		Storage: StorageConfig{
			Path: filepath.Join(defaultDataPath(), "cineradar.db"),
		},
		UI: UIConfig{
			CardWidth:      26,
			ContainerRatio: 0.85,
			PartialFeeds:   true,
		},
		Logging: LoggingConfig{
			File:   filepath.Join(defaultDataPath(), "cineradar.log"),
			Level:  "INFO",
			Format: "json",
		},
	}
}

// defaultDataPath returns the data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName)
	}
}

// DefaultConfigPath returns the config directory for the current OS
func DefaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// newViper returns a viper instance reading config.yaml from dir and the
// CINERADAR_ environment, with every known key registered so env overrides
// reach Unmarshal
func newViper(dir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// the bare variable name is what .env files usually carry
	_ = v.BindEnv("tmdb.api_key", envPrefix+"_TMDB_API_KEY", "TMDB_API_KEY")

	def := DefaultConfig()
	v.SetDefault("tmdb.api_key", def.TMDB.APIKey)
	v.SetDefault("tmdb.base_url", def.TMDB.BaseURL)
	v.SetDefault("tmdb.image_base_url", def.TMDB.ImageBaseURL)
	v.SetDefault("tmdb.poster_size", def.TMDB.PosterSize)
	v.SetDefault("tmdb.language", def.TMDB.Language)
	v.SetDefault("tmdb.timeout", def.TMDB.Timeout)
	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("ui.browser", def.UI.Browser)
	v.SetDefault("ui.card_width", def.UI.CardWidth)
	v.SetDefault("ui.container_ratio", def.UI.ContainerRatio)
	v.SetDefault("ui.partial_feeds", def.UI.PartialFeeds)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	return v
}

// loadDotEnv loads .env from the working directory and the config directory.
// Variables already set in the environment win.
func loadDotEnv(dir string) error {
	for _, path := range []string{".env", filepath.Join(dir, ".env")} {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("error reading %s: %w", path, err)
		}
	}
	return nil
}

// LoadConfig loads configuration from the default config directory, .env
// files and the environment
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigPath())
}

// LoadConfigFrom loads configuration with dir as the config directory
func LoadConfigFrom(dir string) (*Config, error) {
	if err := loadDotEnv(dir); err != nil {
		return nil, err
	}

	v := newViper(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.Storage.Path = ExpandHome(cfg.Storage.Path)
	return cfg, nil
}

// SaveConfig writes the configuration to the default config directory
func SaveConfig(cfg *Config) error {
	return SaveConfigTo(DefaultConfigPath(), cfg)
}

// SaveConfigTo writes the configuration as dir/config.yaml
func SaveConfigTo(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("tmdb.api_key", cfg.TMDB.APIKey)
	v.Set("tmdb.base_url", cfg.TMDB.BaseURL)
	v.Set("tmdb.image_base_url", cfg.TMDB.ImageBaseURL)
	v.Set("tmdb.poster_size", cfg.TMDB.PosterSize)
	v.Set("tmdb.language", cfg.TMDB.Language)
	v.Set("tmdb.timeout", cfg.TMDB.Timeout.String())

	v.Set("storage.path", cfg.Storage.Path)

	v.Set("ui.browser", cfg.UI.Browser)
	v.Set("ui.card_width", cfg.UI.CardWidth)
	v.Set("ui.container_ratio", cfg.UI.ContainerRatio)
	v.Set("ui.partial_feeds", cfg.UI.PartialFeeds)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("logging.format", cfg.Logging.Format)

	configFile := filepath.Join(dir, configName+".yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// IsConfigured returns true if an API key is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.TMDB.APIKey) != ""
}

// ClearFavorites removes the persisted favorites from the store at path
func ClearFavorites(path string) error {
	if path == "" {
		return nil
	}
	kv, err := store.Open(path)
	if err != nil {
		return err
	}
	defer kv.Close()

	if err := kv.Delete(domain.FavoritesKey); err != nil {
		return fmt.Errorf("failed to clear favorites: %w", err)
	}
	return nil
}

// ExpandHome replaces a leading "~" with the user's home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

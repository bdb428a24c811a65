package adapter

import (
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
)

// Launcher opens web links (trailers, IMDb pages) in the user's browser
type Launcher struct {
	command string // configured opener, empty for the system default
	logger  *slog.Logger

	// start runs the command; replaced in tests
	start func(name string, args ...string) error
}

// openers lists the system default handler per platform, tried in order
var openers = map[string][][]string{
	"darwin":  {{"open"}},
	"windows": {{"rundll32", "url.dll,FileProtocolHandler"}, {"cmd", "/c", "start", ""}},
	"linux":   {{"xdg-open"}, {"sensible-browser"}, {"x-www-browser"}},
}

// NewLauncher creates a Launcher. command overrides the system default opener.
func NewLauncher(command string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: command,
		logger:  logger,
		start:   startDetached,
	}
}

// startDetached starts the command without waiting for it
func startDetached(name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	return exec.Command(name, args...).Start()
}

// Open opens an http(s) URL
func (l *Launcher) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("refusing to open %q: not a web URL", rawURL)
	}

	if l.command != "" {
		l.logger.Info("opening with configured command", "command", l.command, "url", rawURL)
		return l.start(l.command, rawURL)
	}

	candidates, ok := openers[runtime.GOOS]
	if !ok {
		candidates = openers["linux"]
	}

	var lastErr error
	for _, c := range candidates {
		args := append(append([]string{}, c[1:]...), rawURL)
		if err := l.start(c[0], args...); err != nil {
			l.logger.Debug("opener not available", "command", c[0], "error", err)
			lastErr = err
			continue
		}
		l.logger.Info("opened url", "command", c[0], "url", rawURL)
		return nil
	}
	return fmt.Errorf("no browser opener found: %w", lastErr)
}

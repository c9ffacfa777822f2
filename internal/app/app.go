package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/five82/creahut/internal/config"
	"github.com/five82/creahut/internal/diag"
	"github.com/five82/creahut/internal/imagegen"
	"github.com/five82/creahut/internal/prefs"
	"github.com/five82/creahut/internal/ui"
)

// Options configure the CreaHut application.
type Options struct {
	ConfigPath string
	EnvPath    string // empty reads ./.env when present
	LogPath    string // overrides log_file from config
	PrefsPath  string // empty uses default ~/.config/creahut/prefs.toml
	Debug      bool
}

// Run boots the CreaHut TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	if err := config.LoadEnv(opts.EnvPath); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg, err = applyOverrides(cfg, opts); err != nil {
		return err
	}

	logger, closer, err := diag.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open diagnostics log: %w", err)
	}
	defer func() { _ = closer.Close() }()

	client, err := newClient(cfg)
	if err != nil {
		return fmt.Errorf("init image client: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	logger.Info("starting", "endpoint", cfg.Endpoint, "size", cfg.Size, "theme", userPrefs.Theme)
	defer logger.Info("stopped")

	return ui.Run(ui.Options{
		Context:          ctx,
		Generator:        client,
		Logger:           logger,
		LogPath:          cfg.LogFile,
		ThemeName:        userPrefs.Theme,
		PrefsPath:        opts.PrefsPath,
		PlaceholderEvery: cfg.PlaceholderInterval,
	})
}

// applyOverrides layers command-line options over the loaded config.
func applyOverrides(cfg config.Config, opts Options) (config.Config, error) {
	if strings.TrimSpace(opts.LogPath) != "" {
		logFile, err := config.ExpandPath(opts.LogPath)
		if err != nil {
			return cfg, fmt.Errorf("resolve log path: %w", err)
		}
		cfg.LogFile = logFile
	}
	if opts.Debug {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// newClient builds the image client. The credential is resolved per request
// so a missing key surfaces as a failed generation rather than at startup.
func newClient(cfg config.Config) (*imagegen.Client, error) {
	return imagegen.NewClient(imagegen.Options{
		Endpoint:    cfg.Endpoint,
		Model:       cfg.Model,
		Size:        cfg.Size,
		StyleSuffix: cfg.StyleSuffix,
		Credentials: cfg.APIKey,
		Timeout:     cfg.RequestTimeout,
	})
}

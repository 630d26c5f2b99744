// Package main is the entry point for the toastyd GTK toast host.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/toasty/internal/adapter/input"
	"github.com/jmylchreest/toasty/internal/adapter/output"
	"github.com/jmylchreest/toasty/internal/audio"
	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/display"
	"github.com/jmylchreest/toasty/internal/model"
	"github.com/jmylchreest/toasty/internal/theme"
	"github.com/jmylchreest/toasty/internal/toast"
)

const (
	appID   = "io.github.jmylchreest.toastyd"
	appName = "toastyd"
)

var (
	// Build-time variables
	version = "dev"
)

// options are the command line flags.
type options struct {
	configPath   string
	format       string
	template     string
	exitWhenIdle bool
	verbose      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to config file (default: ~/.config/toasty/toasty.toml)")
	flag.StringVar(&opts.format, "format", string(output.FormatPlain), "Dismissal output format (plain, json, ids)")
	flag.StringVar(&opts.template, "template", "", "Custom Go template for plain output")
	flag.BoolVar(&opts.exitWhenIdle, "exit-when-idle", false, "Exit once standard input is closed and every toast is dismissed")
	flag.BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	listThemes := flag.Bool("list-themes", false, "List available themes and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(appName, "version", version)
		os.Exit(0)
	}

	if *listThemes {
		fmt.Println(strings.Join(theme.ListThemes(theme.ThemesDir()), "\n"))
		os.Exit(0)
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	// Standard output carries dismissal records, so logs go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	os.Exit(run(opts, logger))
}

// settings is everything loaded from the config and styles files.
type settings struct {
	cfg      *config.Config
	styles   config.Styles
	defaults config.RequestDefaults
}

func loadSettings(path string) (*settings, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	styles, err := config.LoadStyles(cfg.StylesPath())
	if err != nil {
		return nil, err
	}
	defaults, err := cfg.RequestDefaults(styles)
	if err != nil {
		return nil, fmt.Errorf("invalid [defaults]: %w", err)
	}
	return &settings{cfg: cfg, styles: styles, defaults: defaults}, nil
}

// run starts the GTK application and returns the process exit status.
func run(opts options, logger *slog.Logger) int {
	logger.Info("starting toastyd", "version", version)

	current, err := loadSettings(opts.configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return 1
	}

	formatter, err := output.NewFormatter(output.FormatType(opts.format), output.FormatterOptions{
		Template: opts.template,
	})
	if err != nil {
		logger.Error("invalid output options", "error", err)
		return 1
	}

	builder := input.NewBuilder(current.defaults, current.styles)

	// Create the libadwaita application
	app := adw.NewApplication(appID, 0)

	// Shared state between GTK main loop and signal handlers
	var (
		presenter     *display.Presenter
		coord         *toast.Coordinator
		themeLoader   *theme.Loader
		audioManager  *audio.Manager
		configWatcher *config.Watcher
		inputDone     bool
		running       atomic.Bool
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// stop runs once, from whichever of the signal handler and the
	// application shutdown gets there first.
	stop := func() {
		if !running.Swap(false) {
			return
		}
		if audioManager != nil {
			audioManager.Stop()
		}
		if themeLoader != nil {
			themeLoader.Close()
		}
		if configWatcher != nil {
			if err := configWatcher.Stop(); err != nil {
				logger.Warn("error stopping config watcher", "error", err)
			}
		}
		if coord != nil {
			if n := coord.Clear(); n > 0 {
				logger.Info("dropped queued toasts", "count", n)
			}
			coord.DismissActive(false)
		}
	}

	quitWhenIdle := func() {
		if opts.exitWhenIdle && inputDone && coord != nil && !coord.IsPresenting() {
			logger.Info("input finished and queue drained, exiting")
			app.Quit()
		}
	}

	// Set up signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()

		// Stop components in GTK main loop context
		glib.IdleAdd(func() {
			stop()
			app.Quit()
		})
	}()

	// Handle application activation
	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			return
		}
		running.Store(true)
		cfg := current.cfg

		themeLoader = theme.NewLoader(logger)
		themeLoader.Install(nil)
		if err := themeLoader.Use(ctx, cfg.Theme.Name); err != nil {
			logger.Warn("failed to load theme", "theme", cfg.Theme.Name, "error", err)
		}

		audioManager = audio.NewManager(cfg, logger)
		if err := audioManager.Start(ctx); err != nil {
			logger.Warn("failed to start audio manager", "error", err)
		}

		presenter = display.NewPresenter(&app.Application, cfg, themeLoader, logger)
		if err := presenter.Start(); err != nil {
			logger.Error("failed to start display presenter", "error", err)
			app.Quit()
			return
		}

		coord = toast.NewCoordinator(
			audio.NewPresenter(presenter, audioManager, logger),
			display.NewClock(),
			toast.WithLogger(logger),
			toast.WithHostCheck(presenter.HasHost),
			toast.WithIdleHandler(quitWhenIdle),
		)
		presenter.SetQueue(coord)

		recorder := output.NewRecorder(os.Stdout, formatter, logger)

		// Requests are parsed on the reader goroutine and queued on the
		// main loop.
		reader := input.NewStdinAdapter(builder)
		reader.SetLogger(logger)
		go func() {
			err := reader.Stream(ctx, func(r *model.Request) {
				glib.IdleAdd(func() {
					recorder.Track(r)
					coord.Enqueue(r)
				})
			})
			if err != nil && ctx.Err() == nil {
				logger.Error("failed to read requests", "error", err)
			}
			glib.IdleAdd(func() {
				logger.Debug("request input closed")
				inputDone = true
				quitWhenIdle()
			})
		}()

		configWatcher, err = config.NewWatcher(func(path string) {
			next, err := loadSettings(opts.configPath)
			if err != nil {
				logger.Warn("ignoring invalid configuration", "path", path, "error", err)
				return
			}
			glib.IdleAdd(func() {
				applySettings(ctx, current, next, presenter, audioManager, themeLoader, logger)
				builder.Update(next.defaults, next.styles)
				current = next
			})
		}, logger, configFilePath(opts.configPath), cfg.StylesPath())
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else if err := configWatcher.Start(); err != nil {
			logger.Warn("failed to start config watcher", "error", err)
		}

		logger.Info("toastyd ready", "theme", themeLoader.CurrentTheme())

		// Keep the application alive while no popup is shown.
		keepAliveWindow := gtk.NewWindow()
		keepAliveWindow.SetApplication(&app.Application)
		keepAliveWindow.SetDefaultSize(1, 1)
		keepAliveWindow.SetDecorated(false)
		keepAliveWindow.SetVisible(false)
	})

	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		stop()
	})

	status := app.Run([]string{os.Args[0]})
	if status != 0 {
		logger.Error("application exited with error", "status", status)
		return status
	}

	logger.Info("toastyd stopped")
	return 0
}

// applySettings hands a reloaded configuration to the running components.
// Toasts already on screen keep their look.
func applySettings(ctx context.Context, prev, next *settings, presenter *display.Presenter, audioManager *audio.Manager, themeLoader *theme.Loader, logger *slog.Logger) {
	presenter.UpdateConfig(next.cfg)
	audioManager.UpdateConfig(next.cfg)

	if next.cfg.Theme.Name != prev.cfg.Theme.Name {
		if err := themeLoader.Use(ctx, next.cfg.Theme.Name); err != nil {
			logger.Warn("failed to load new theme", "theme", next.cfg.Theme.Name, "error", err)
		}
	}

	logger.Info("configuration reloaded", "styles", len(next.styles), "theme", next.cfg.Theme.Name)
}

func configFilePath(path string) string {
	if path == "" {
		return config.Path()
	}
	return config.ExpandPath(path)
}

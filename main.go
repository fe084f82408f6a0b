package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rook-computer/scoreboard/internal/app"
	"github.com/rook-computer/scoreboard/internal/config"
	"github.com/rook-computer/scoreboard/internal/controller"
	"github.com/rook-computer/scoreboard/internal/feed"
	"github.com/rook-computer/scoreboard/internal/logging"
	"github.com/rook-computer/scoreboard/internal/metrics"
	"github.com/rook-computer/scoreboard/internal/render"
	"github.com/rook-computer/scoreboard/internal/state"
	"github.com/rook-computer/scoreboard/internal/store"
	"github.com/rook-computer/scoreboard/internal/system"
	"github.com/rook-computer/scoreboard/internal/web"
)

var version = "dev"

func main() {
	cfg := config.Load()
	cfg.Version = version

	team := flag.String("team", cfg.FavoriteTeam, "favorite team abbreviation")
	layoutPath := flag.String("layout", cfg.LayoutPath, "layout document (YAML or JSON); empty uses the embedded layout")
	provider := flag.String("provider", cfg.Provider, "game feed: statsapi | fixture")
	sink := flag.String("sink", cfg.Sink, "render sink: framebuffer | serial | none")
	fbDevice := flag.String("fb", render.DefaultFramebufferDevice, "framebuffer device for the framebuffer sink")
	listenAddr := flag.String("listen", cfg.ListenAddr, "http listen address")
	logLevel := flag.String("log-level", cfg.LogLevel, "debug | info | warn | error")
	logFile := flag.String("log-file", "", "append structured logs to this file instead of stderr")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via SCOREBOARD_STDIO_LOG")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	// Redirect early so a panic while the console is in graphics mode still
	// leaves a trace somewhere.
	stdioPath := *stdioLog
	if stdioPath == "" {
		stdioPath = os.Getenv("SCOREBOARD_STDIO_LOG")
	}
	if stdioPath != "" {
		if err := redirectStdIO(stdioPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	cfg.FavoriteTeam = config.NormalizeTeam(*team)
	cfg.LayoutPath = *layoutPath
	cfg.Provider = *provider
	cfg.Sink = *sink
	cfg.ListenAddr = *listenAddr
	cfg.LogLevel = *logLevel
	if err := cfg.Validate(); err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	logger, err := logging.NewZap(logging.Options{Level: cfg.LogLevel, Console: cfg.LogConsole, Path: *logFile})
	if err != nil {
		fmt.Println("logger error:", err)
		os.Exit(2)
	}
	defer logger.Sync()

	if err := run(cfg, *fbDevice, logger); err != nil {
		logger.Errorf("main", "%v", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, fbDevice string, logger *logging.ZapLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rec := metrics.NewRecorder()
	cache, err := store.Open(cfg.CachePath)
	if err != nil {
		// The cache is an optimisation; run without it.
		logger.Warnf("main", "cache unavailable, continuing without it: %v", err)
		cache = nil
	}

	loader := app.LayoutLoader{
		Path:    cfg.LayoutPath,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Cache:   cache,
		Logger:  logger,
		Metrics: rec,
	}
	schema, source, err := loader.Load()
	if err != nil {
		return err
	}
	logger.Infof("main", "layout source: %s", source)

	ctrl := controller.New(schema, controller.Options{
		FavoriteTeam:     cfg.FavoriteTeam,
		SplashDuration:   cfg.SplashDuration,
		RefreshLive:      cfg.RefreshLive,
		RefreshOffDay:    cfg.RefreshOffDay,
		OffDayAfterTicks: cfg.OffDayAfterTicks,
		ImminentStart:    cfg.ImminentStart,
		FinalHold:        cfg.FinalHold,
		Version:          cfg.Version,
		StaleAfter:       cfg.StaleAfter,
	}, logger, rec)

	st := state.NewStore()
	a := app.New(cfg.FavoriteTeam, st, ctrl, loader, logger)
	a.FrameInterval = cfg.FrameInterval
	a.Cache = cache
	a.Metrics = rec

	var prov feed.Provider
	var scenarios web.ScenarioSetter
	switch cfg.Provider {
	case config.ProviderFixture:
		fixture := feed.NewFixture(feed.ScenarioLive)
		prov, scenarios = fixture, fixture
	default:
		client := &http.Client{Timeout: 10 * time.Second}
		prov = feed.NewRetrying(feed.NewStatsAPI(cfg.StatsAPIBaseURL, client, cfg.Location()), logger, 0, 0)
	}
	a.Poller = feed.NewPoller(prov, st, cache, logger, rec, cfg.FavoriteTeam, cfg.PollInterval)

	sinkCanvas := render.NewCanvas(cfg.Width, cfg.Height, nil)
	sinkCanvas.SetBrightness(cfg.Brightness)
	switch cfg.Sink {
	case config.SinkFramebuffer:
		fb, err := render.OpenFramebuffer(fbDevice, sinkCanvas, logger)
		if err != nil {
			return fmt.Errorf("open framebuffer: %w", err)
		}
		a.Sinks = append(a.Sinks, fb)
		a.Console = system.NewConsole(logger)
	case config.SinkSerial:
		port, err := render.OpenSerial(cfg.SerialPort, cfg.SerialBaud, sinkCanvas, logger)
		if err != nil {
			return fmt.Errorf("open serial panel: %w", err)
		}
		a.Sinks = append(a.Sinks, port)
	default:
		a.Sinks = append(a.Sinks, render.NoopSink{})
	}

	serverCfg, err := web.DefaultServerConfigFromEnv(cfg.ListenAddr)
	if err != nil {
		return err
	}
	// -listen wins over the environment.
	serverCfg.ListenAddr = cfg.ListenAddr
	events := web.NewEvents(logger, rec)
	a.Events = events
	handler := web.NewHandler(web.MuxConfig{
		Source:    a,
		Canvas:    render.NewCanvas(cfg.Width, cfg.Height, nil),
		Events:    events,
		Metrics:   rec,
		Logger:    logger,
		Scenarios: scenarios,
		StaticDir: serverCfg.StaticDir,
		DevMode:   serverCfg.DevMode,
	})
	a.Web = web.NewHTTPServer(serverCfg.ListenAddr, handler, logger)

	system.WatchExitKey(ctx, logger, system.KeyF4, func() {
		a.Exit(errors.New("exit key pressed"))
	})

	logger.Infof("main", "scoreboard %s for %s, %dx%d, feed %s, sink %s", cfg.Version, cfg.FavoriteTeam, cfg.Width, cfg.Height, prov.Name(), cfg.Sink)
	runErr := a.Start(ctx)
	stopErr := a.Stop()
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logger.Infof("main", "stopping: %v", runErr)
	}
	return stopErr
}

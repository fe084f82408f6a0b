package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/rook-computer/scoreboard/internal/app"
	"github.com/rook-computer/scoreboard/internal/config"
	"github.com/rook-computer/scoreboard/internal/controller"
	"github.com/rook-computer/scoreboard/internal/feed"
	"github.com/rook-computer/scoreboard/internal/logging"
	"github.com/rook-computer/scoreboard/internal/metrics"
	"github.com/rook-computer/scoreboard/internal/render"
	"github.com/rook-computer/scoreboard/internal/state"
	"github.com/rook-computer/scoreboard/internal/store"
	"github.com/rook-computer/scoreboard/internal/web"
)

func main() {
	cfg := config.Load()
	cfg.Version = "sim"

	defaults, err := web.DefaultServerConfigFromEnv(":8080")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode; also configurable via "+web.EnvDevMode)
	staticDir := flag.String("static-dir", defaults.StaticDir, "serve static UI from this directory (optional); when empty, embedded web UI assets are served")
	scenario := flag.String("scenario", feed.ScenarioLive, "fixture scenario: "+strings.Join(feed.Scenarios(), " | "))
	team := flag.String("team", cfg.FavoriteTeam, "favorite team abbreviation")
	layoutPath := flag.String("layout", cfg.LayoutPath, "layout document (YAML or JSON); empty uses the embedded layout")
	terminal := flag.Bool("terminal", true, "preview the matrix in this terminal")
	logFile := flag.String("log-file", "scoreboard-sim.log", "log file used while the terminal preview is active")
	flag.Parse()

	cfg.FavoriteTeam = strings.ToUpper(*team)
	cfg.LayoutPath = *layoutPath

	logOpts := logging.Options{Level: cfg.LogLevel, Console: true}
	if *terminal {
		logOpts.Path = *logFile
	}
	logger, err := logging.NewZap(logOpts)
	if err != nil {
		fmt.Println("logger error:", err)
		os.Exit(2)
	}
	defer logger.Sync()

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	control, err := NewSimControl(processCtx, strings.TrimSpace(*scenario))
	if err != nil {
		fmt.Println("scenario init error:", err)
		os.Exit(2)
	}

	rec := metrics.NewRecorder()
	cache, err := store.Open(store.Memory)
	if err != nil {
		fmt.Println("cache error:", err)
		os.Exit(1)
	}
	loader := app.LayoutLoader{
		Path:    cfg.LayoutPath,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Cache:   cache,
		Logger:  logger,
		Metrics: rec,
	}
	schema, _, err := loader.Load()
	if err != nil {
		fmt.Println("layout error:", err)
		os.Exit(2)
	}

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
	a.Poller = feed.NewPoller(control, st, cache, logger, rec, cfg.FavoriteTeam, cfg.PollInterval)
	control.Attach(a.Poller)

	var screen tcell.Screen
	if *terminal {
		sink, err := render.OpenTerminal(render.NewCanvas(cfg.Width, cfg.Height, nil))
		if err != nil {
			fmt.Println("terminal preview unavailable:", err)
		} else {
			a.Sinks = append(a.Sinks, sink)
			screen = sink.Screen()
		}
	}

	events := web.NewEvents(logger, rec)
	a.Events = events
	handler := web.NewHandler(web.MuxConfig{
		Source:    a,
		Canvas:    render.NewCanvas(cfg.Width, cfg.Height, nil),
		Events:    events,
		Metrics:   rec,
		Logger:    logger,
		Scenarios: control,
		StaticDir: *staticDir,
		DevMode:   *devMode,
	})
	server := web.NewHTTPServer(*listenAddr, registerSimEndpoints(handler, control), logger)
	a.Web = server

	if screen != nil {
		go watchKeys(processCtx, screen, a, control)
	} else {
		fmt.Println("Scoreboard simulator listening on", displayAddr(*listenAddr))
		fmt.Println("Scenario:", control.Scenario())
		fmt.Println("API: http://" + displayAddr(*listenAddr) + "/api/v1/")
	}

	runErr := a.Start(processCtx)
	if err := a.Stop(); err != nil {
		fmt.Println("stop error:", err)
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) && !errors.Is(runErr, errQuit) {
		fmt.Println("simulator error:", runErr)
		os.Exit(1)
	}
}

var errQuit = errors.New("quit from terminal")

// watchKeys handles the terminal preview's keys:
// q/Esc/Ctrl-C quit, s cycles the scenario, f toggles a feed outage and
// r reloads the layout document.
func watchKeys(ctx context.Context, screen tcell.Screen, a *app.App, control *SimControl) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		switch {
		case key.Key() == tcell.KeyEscape || key.Key() == tcell.KeyCtrlC || key.Rune() == 'q':
			a.Exit(errQuit)
			return
		case key.Rune() == 's':
			name := control.Cycle()
			a.Logger.Infof("sim", "scenario %s", name)
		case key.Rune() == 'f':
			faults := control.Faults()
			faults.FetchFail = !faults.FetchFail
			control.SetFaults(faults)
			a.Logger.Infof("sim", "feed outage %v", faults.FetchFail)
		case key.Rune() == 'r':
			if err := a.ReloadLayout(ctx); err != nil {
				a.Logger.Warnf("sim", "layout reload: %v", err)
			}
		}
	}
}

func displayAddr(addr string) string {
	if addr == "" {
		return "127.0.0.1:8080"
	}
	if addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	return addr
}

package web

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rook-computer/scoreboard/internal/assets"
	"github.com/rook-computer/scoreboard/internal/feed"
	"github.com/rook-computer/scoreboard/internal/logging"
	"github.com/rook-computer/scoreboard/internal/metrics"
	"github.com/rook-computer/scoreboard/internal/render"
)

// MuxConfig collects what the HTTP surface serves.
type MuxConfig struct {
	Source  Source
	Canvas  *render.Canvas
	Events  *Events
	Metrics *metrics.Recorder
	Logger  logging.Logger
	// Scenarios enables /sim/scenario; nil on the device.
	Scenarios ScenarioSetter
	// StaticDir, when set to an existing directory, replaces the embedded UI.
	StaticDir string
	DevMode   bool
}

// NewHandler builds the standard handler used by both the device and simulator:
// - /api/v1/* for the API, /api/v1/events for the SSE stream
// - /metrics for prometheus
// - /sim/scenario/{name} when Scenarios is set
// - / for the web UI
func NewHandler(cfg MuxConfig) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiV1Router(cfg.Source, cfg.Canvas, cfg.Logger)))
	if cfg.Events != nil {
		mux.Handle("/api/v1/events", cfg.Events)
	}
	mux.Handle("/metrics", cfg.Metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	})
	if cfg.Scenarios != nil {
		mux.HandleFunc("/sim/scenario", scenarioHandler(cfg.Scenarios))
		mux.HandleFunc("/sim/scenario/", scenarioHandler(cfg.Scenarios))
	}
	mux.Handle("/", StaticUIHandler(cfg.StaticDir))

	var handler http.Handler = instrument(mux, cfg.Metrics)
	if cfg.DevMode {
		handler = WithDevCORS(handler)
	}
	return handler
}

type scenarioResponse struct {
	Scenario  string   `json:"scenario"`
	Scenarios []string `json:"scenarios"`
}

func scenarioHandler(setter ScenarioSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/sim/scenario"), "/")
		switch {
		case r.Method == http.MethodGet && name == "":
		case r.Method == http.MethodPost && name != "":
			if err := setter.SetScenario(name); err != nil {
				writeAPIError(w, http.StatusNotFound, "unknown_scenario", err.Error())
				return
			}
		default:
			writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, scenarioResponse{Scenario: setter.Scenario(), Scenarios: feed.Scenarios()})
	}
}

// StaticUIHandler serves either the embedded UI or a directory.
func StaticUIHandler(dir string) http.Handler {
	if dir == "" {
		fileServer := http.FileServer(http.FS(assets.WebUI))
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.URL.Path = filepath.ToSlash(filepath.Clean("/" + r.URL.Path))
			fileServer.ServeHTTP(w, r)
		})
	}

	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return http.NotFoundHandler()
	}
	fileServer := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = filepath.ToSlash(filepath.Clean("/" + r.URL.Path))
		fileServer.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Flush keeps the SSE stream working through the recorder.
func (s *statusRecorder) Flush() {
	if f, ok := s.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func instrument(next http.Handler, recorder *metrics.Recorder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		recorder.RecordHTTPRequest(r.Method, routeLabel(r.URL.Path), rec.status)
	})
}

var knownRoutes = map[string]bool{
	"/api/v1/scene":         true,
	"/api/v1/frame.png":     true,
	"/api/v1/state":         true,
	"/api/v1/layout":        true,
	"/api/v1/layout/reload": true,
	"/api/v1/events":        true,
	"/metrics":              true,
	"/healthz":              true,
}

// routeLabel keeps the path label bounded.
func routeLabel(path string) string {
	switch {
	case knownRoutes[path]:
		return path
	case strings.HasPrefix(path, "/api/"):
		return "/api/v1/unknown"
	case strings.HasPrefix(path, "/sim/"):
		return "/sim/scenario"
	default:
		return "/"
	}
}

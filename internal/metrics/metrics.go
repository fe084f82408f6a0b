package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns a private prometheus registry. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	registry *prometheus.Registry

	sceneBuilds      *prometheus.CounterVec
	transitions      *prometheus.CounterVec
	activeScreen     *prometheus.GaugeVec
	clamps           *prometheus.CounterVec
	layoutViolations *prometheus.CounterVec
	layoutReloads    *prometheus.CounterVec
	feedFetches      *prometheus.CounterVec
	feedLatency      *prometheus.HistogramVec
	stateAge         prometheus.Gauge
	renderLatency    *prometheus.HistogramVec
	renderErrors     *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	sceneSubscribers prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		sceneBuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "scene_builds_total",
			Help: "Scenes built by the screen controller.",
		}, []string{LabelKind, LabelReason}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "screen_transitions_total",
			Help: "Screen state machine transitions.",
		}, []string{LabelFrom, LabelTo}),
		activeScreen: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "active_screen",
			Help: "1 for the screen currently shown.",
		}, []string{LabelScreen}),
		clamps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "state_clamps_total",
			Help: "Game state fields clamped into range.",
		}, []string{LabelField}),
		layoutViolations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "layout_violations_total",
			Help: "Layout validation violations seen on load or reload.",
		}, []string{LabelKind}),
		layoutReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "layout_reloads_total",
			Help: "Layout reload attempts.",
		}, []string{LabelResult}),
		feedFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "feed_fetches_total",
			Help: "Game state fetch attempts.",
		}, []string{LabelProvider, LabelResult}),
		feedLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "feed_fetch_seconds",
			Help:    "Game state fetch latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{LabelProvider}),
		stateAge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "state_age_seconds",
			Help: "Age of the game state handed to the controller.",
		}),
		renderLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "render_seconds",
			Help:    "Time spent drawing one scene into a sink.",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		}, []string{LabelSink}),
		renderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "render_errors_total",
			Help: "Sink draw failures.",
		}, []string{LabelSink}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total",
			Help: "HTTP requests served.",
		}, []string{LabelMethod, LabelPath, LabelStatus}),
		sceneSubscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "scene_stream_subscribers",
			Help: "Open scene event streams.",
		}),
	}
	r.registry.MustRegister(
		r.sceneBuilds, r.transitions, r.activeScreen, r.clamps,
		r.layoutViolations, r.layoutReloads, r.feedFetches, r.feedLatency,
		r.stateAge, r.renderLatency, r.renderErrors, r.httpRequests, r.sceneSubscribers,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Registry exposes the registry for tests and extra collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the registry in the prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) RecordSceneBuild(kind, reason string) {
	if r == nil {
		return
	}
	r.sceneBuilds.WithLabelValues(kind, reason).Inc()
}

// RecordTransition counts the move and flips the active_screen gauge.
func (r *Recorder) RecordTransition(from, to string) {
	if r == nil {
		return
	}
	r.transitions.WithLabelValues(from, to).Inc()
	if from != "" {
		r.activeScreen.WithLabelValues(from).Set(0)
	}
	r.activeScreen.WithLabelValues(to).Set(1)
}

func (r *Recorder) RecordClamp(field string) {
	if r == nil {
		return
	}
	r.clamps.WithLabelValues(field).Inc()
}

func (r *Recorder) RecordLayoutViolation(kind string) {
	if r == nil {
		return
	}
	r.layoutViolations.WithLabelValues(kind).Inc()
}

func (r *Recorder) RecordLayoutReload(err error) {
	if r == nil {
		return
	}
	r.layoutReloads.WithLabelValues(result(err)).Inc()
}

func (r *Recorder) RecordFetch(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.feedFetches.WithLabelValues(provider, result(err)).Inc()
	r.feedLatency.WithLabelValues(provider).Observe(duration.Seconds())
}

func (r *Recorder) RecordStateAge(age time.Duration) {
	if r == nil {
		return
	}
	r.stateAge.Set(age.Seconds())
}

func (r *Recorder) RecordRender(sink string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.renderLatency.WithLabelValues(sink).Observe(duration.Seconds())
	if err != nil {
		r.renderErrors.WithLabelValues(sink).Inc()
	}
}

func (r *Recorder) RecordHTTPRequest(method, path string, status int) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

func (r *Recorder) AddSceneSubscriber(delta int) {
	if r == nil {
		return
	}
	r.sceneSubscribers.Add(float64(delta))
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

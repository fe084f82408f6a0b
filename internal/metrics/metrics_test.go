package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder
	r.RecordSceneBuild("GAME_DAY", "interval")
	r.RecordTransition("SPLASH", "GAME_DAY")
	r.RecordClamp("balls")
	r.RecordFetch("fixture", time.Millisecond, nil)
	r.RecordRender("canvas", time.Millisecond, errors.New("boom"))
	r.RecordHTTPRequest("GET", "/", 200)
	if r.Registry() != nil {
		t.Fatalf("expected nil registry for nil recorder")
	}
}

func TestRecorderCounts(t *testing.T) {
	r := NewRecorder()
	r.RecordSceneBuild("GAME_DAY", "state_change")
	r.RecordSceneBuild("GAME_DAY", "state_change")
	r.RecordClamp("balls")
	r.RecordFetch("statsapi", 20*time.Millisecond, errors.New("timeout"))
	r.RecordFetch("statsapi", 10*time.Millisecond, nil)
	r.RecordLayoutReload(nil)

	if got := testutil.ToFloat64(r.sceneBuilds.WithLabelValues("GAME_DAY", "state_change")); got != 2 {
		t.Fatalf("expected 2 scene builds, got %v", got)
	}
	if got := testutil.ToFloat64(r.clamps.WithLabelValues("balls")); got != 1 {
		t.Fatalf("expected 1 clamp, got %v", got)
	}
	if got := testutil.ToFloat64(r.feedFetches.WithLabelValues("statsapi", "error")); got != 1 {
		t.Fatalf("expected 1 failed fetch, got %v", got)
	}
	if got := testutil.ToFloat64(r.layoutReloads.WithLabelValues("ok")); got != 1 {
		t.Fatalf("expected 1 reload, got %v", got)
	}
}

func TestTransitionFlipsActiveScreen(t *testing.T) {
	r := NewRecorder()
	r.RecordTransition("", "SPLASH")
	r.RecordTransition("SPLASH", "OFF_DAY")

	if got := testutil.ToFloat64(r.activeScreen.WithLabelValues("SPLASH")); got != 0 {
		t.Fatalf("expected SPLASH inactive, got %v", got)
	}
	if got := testutil.ToFloat64(r.activeScreen.WithLabelValues("OFF_DAY")); got != 1 {
		t.Fatalf("expected OFF_DAY active, got %v", got)
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	r := NewRecorder()
	r.RecordStateAge(90 * time.Second)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "scoreboard_state_age_seconds 90") {
		t.Fatalf("expected state age in output, got:\n%s", body)
	}
}

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.FavoriteTeam != defaultTeam || cfg.Width != 64 || cfg.Height != 32 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.RefreshLive != 30*time.Second || cfg.RefreshOffDay != 10*time.Minute {
		t.Fatalf("unexpected refresh defaults %s/%s", cfg.RefreshLive, cfg.RefreshOffDay)
	}
	if cfg.OffDayAfterTicks != 3 || cfg.ImminentStart != 0 || cfg.FinalHold != 3*time.Hour {
		t.Fatalf("unexpected controller defaults %+v", cfg)
	}
	if cfg.Brightness != 0.8 {
		t.Fatalf("expected brightness 0.8, got %v", cfg.Brightness)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envTeam, "nym")
	t.Setenv(envRefreshLive, "15s")
	t.Setenv(envOffDayAfterTicks, "5")
	t.Setenv(envImminentStart, "30m")
	t.Setenv(envFinalHold, "45m")
	t.Setenv(envProvider, ProviderFixture)
	t.Setenv(envSink, SinkNone)
	t.Setenv(envBrightness, "0.5")

	cfg := Load()
	if cfg.FavoriteTeam != "NYM" {
		t.Fatalf("expected team to be upper-cased, got %s", cfg.FavoriteTeam)
	}
	if cfg.RefreshLive != 15*time.Second || cfg.OffDayAfterTicks != 5 || cfg.ImminentStart != 30*time.Minute {
		t.Fatalf("unexpected overrides %+v", cfg)
	}
	if cfg.FinalHold != 45*time.Minute {
		t.Fatalf("expected final hold override, got %s", cfg.FinalHold)
	}
	if cfg.Provider != ProviderFixture || cfg.Sink != SinkNone || cfg.Brightness != 0.5 {
		t.Fatalf("unexpected overrides %+v", cfg)
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv(envRefreshLive, "soon")
	t.Setenv(envWidth, "-64")
	t.Setenv(envBrightness, "1.5")
	t.Setenv(envSplashDuration, "0s")

	cfg := Load()
	if cfg.RefreshLive != defaultRefreshLive {
		t.Fatalf("expected default refresh, got %s", cfg.RefreshLive)
	}
	if cfg.Width != defaultWidth {
		t.Fatalf("expected default width, got %d", cfg.Width)
	}
	if cfg.Brightness != defaultBrightness {
		t.Fatalf("expected default brightness, got %v", cfg.Brightness)
	}
	if cfg.SplashDuration != defaultSplashDuration {
		t.Fatalf("expected default splash, got %s", cfg.SplashDuration)
	}
}

func TestNormalizeTeam(t *testing.T) {
	cases := map[string]string{
		"nym":   "NYM",
		" Sea ": "SEA",
		"ATL":   "ATL",
		"":      "",
	}
	for in, expected := range cases {
		if got := NormalizeTeam(in); got != expected {
			t.Fatalf("expected %q for %q, got %q", expected, in, got)
		}
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"provider", func(c *Config) { c.Provider = "espn" }},
		{"sink", func(c *Config) { c.Sink = "hdmi" }},
		{"team", func(c *Config) { c.FavoriteTeam = "" }},
		{"timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Load()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"1", true},
		{"no", false},
		{"maybe", true},
	}
	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

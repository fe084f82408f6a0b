package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

// Config holds runtime configuration for the device and the simulator.
type Config struct {
	FavoriteTeam string
	Width        int
	Height       int
	// LayoutPath is a layout document on disk; empty selects the embedded one.
	LayoutPath string

	RefreshLive      time.Duration
	RefreshOffDay    time.Duration
	SplashDuration   time.Duration
	StaleAfter       time.Duration
	OffDayAfterTicks int
	// ImminentStart treats a scheduled game starting within this window as game day. Zero disables it.
	ImminentStart time.Duration
	// FinalHold is how long a finished game stays on the game-day screen.
	FinalHold     time.Duration
	FrameInterval time.Duration
	PollInterval  time.Duration

	Provider        string
	StatsAPIBaseURL string
	Timezone        string

	Sink       string
	SerialPort string
	SerialBaud int
	Brightness float64

	CachePath  string
	ListenAddr string
	LogLevel   string
	LogConsole bool
	Version    string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		FavoriteTeam:     NormalizeTeam(envOrDefault(envTeam, defaultTeam)),
		Width:            intEnvOrDefault(envWidth, defaultWidth),
		Height:           intEnvOrDefault(envHeight, defaultHeight),
		LayoutPath:       envOrDefault(envLayoutPath, ""),
		RefreshLive:      durationEnvOrDefault(envRefreshLive, defaultRefreshLive),
		RefreshOffDay:    durationEnvOrDefault(envRefreshOffDay, defaultRefreshOffDay),
		SplashDuration:   durationEnvOrDefault(envSplashDuration, defaultSplashDuration),
		StaleAfter:       durationEnvOrDefault(envStaleAfter, defaultStaleAfter),
		OffDayAfterTicks: intEnvOrDefault(envOffDayAfterTicks, defaultOffDayAfterTicks),
		ImminentStart:    durationEnvOrDefault(envImminentStart, 0),
		FinalHold:        durationEnvOrDefault(envFinalHold, defaultFinalHold),
		FrameInterval:    durationEnvOrDefault(envFrameInterval, defaultFrameInterval),
		PollInterval:     durationEnvOrDefault(envPollInterval, defaultPollInterval),
		Provider:         envOrDefault(envProvider, defaultProvider),
		StatsAPIBaseURL:  envOrDefault(envStatsAPIBaseURL, defaultStatsAPIBaseURL),
		Timezone:         envOrDefault(envTimezone, defaultTimezone),
		Sink:             envOrDefault(envSink, defaultSink),
		SerialPort:       envOrDefault(envSerialPort, defaultSerialPort),
		SerialBaud:       intEnvOrDefault(envSerialBaud, defaultSerialBaud),
		Brightness:       floatEnvOrDefault(envBrightness, defaultBrightness),
		CachePath:        envOrDefault(envCachePath, defaultCachePath),
		ListenAddr:       envOrDefault(envListenAddr, defaultListenAddr),
		LogLevel:         envOrDefault(envLogLevel, defaultLogLevel),
		LogConsole:       boolEnvOrDefault(envLogConsole, false),
		Version:          "dev",
	}
}

// NormalizeTeam puts a team abbreviation in the form the feed and the asset
// table use.
func NormalizeTeam(abbr string) string {
	return strings.ToUpper(strings.TrimSpace(abbr))
}

// Validate rejects combinations Load cannot repair on its own.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderStatsAPI, ProviderFixture:
	default:
		return fmt.Errorf("unknown provider %q (want %s or %s)", c.Provider, ProviderStatsAPI, ProviderFixture)
	}
	switch c.Sink {
	case SinkFramebuffer, SinkSerial, SinkNone:
	default:
		return fmt.Errorf("unknown sink %q (want %s, %s or %s)", c.Sink, SinkFramebuffer, SinkSerial, SinkNone)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("matrix size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.FavoriteTeam == "" {
		return fmt.Errorf("favorite team must be set")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location resolves Timezone, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

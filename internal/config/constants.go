package config

import "time"

const (
	envTeam             = "SCOREBOARD_TEAM"
	envWidth            = "SCOREBOARD_WIDTH"
	envHeight           = "SCOREBOARD_HEIGHT"
	envLayoutPath       = "SCOREBOARD_LAYOUT"
	envRefreshLive      = "SCOREBOARD_REFRESH_LIVE"
	envRefreshOffDay    = "SCOREBOARD_REFRESH_OFF_DAY"
	envSplashDuration   = "SCOREBOARD_SPLASH"
	envStaleAfter       = "SCOREBOARD_STALE_AFTER"
	envOffDayAfterTicks = "SCOREBOARD_OFF_DAY_TICKS"
	envImminentStart    = "SCOREBOARD_IMMINENT_START"
	envFinalHold        = "SCOREBOARD_FINAL_HOLD"
	envFrameInterval    = "SCOREBOARD_FRAME_INTERVAL"
	envPollInterval     = "SCOREBOARD_POLL_INTERVAL"
	envProvider         = "SCOREBOARD_PROVIDER"
	envStatsAPIBaseURL  = "SCOREBOARD_STATSAPI_URL"
	envSink             = "SCOREBOARD_SINK"
	envSerialPort       = "SCOREBOARD_SERIAL_PORT"
	envSerialBaud       = "SCOREBOARD_SERIAL_BAUD"
	envBrightness       = "SCOREBOARD_BRIGHTNESS"
	envCachePath        = "SCOREBOARD_CACHE"
	envListenAddr       = "SCOREBOARD_LISTEN"
	envLogLevel         = "LOG_LEVEL"
	envLogConsole       = "LOG_CONSOLE"
	envTimezone         = "SCOREBOARD_TZ"

	defaultTeam             = "ATL"
	defaultWidth            = 64
	defaultHeight           = 32
	defaultRefreshLive      = 30 * time.Second
	defaultRefreshOffDay    = 10 * time.Minute
	defaultSplashDuration   = 5 * time.Second
	defaultStaleAfter       = 10 * time.Minute
	defaultOffDayAfterTicks = 3
	defaultFinalHold        = 3 * time.Hour
	defaultFrameInterval    = 100 * time.Millisecond
	// Matches the StatsAPI live feed update cadence.
	defaultPollInterval    = 30 * time.Second
	defaultProvider        = ProviderStatsAPI
	defaultStatsAPIBaseURL = "https://statsapi.mlb.com/api/v1"
	defaultSink            = SinkFramebuffer
	defaultSerialPort      = "/dev/ttyACM0"
	defaultSerialBaud      = 115200
	defaultBrightness      = 0.8
	defaultCachePath       = "/var/lib/scoreboard/cache.db"
	defaultListenAddr      = ":80"
	defaultLogLevel        = "info"
	defaultTimezone        = "America/New_York"
)

const (
	ProviderStatsAPI = "statsapi"
	ProviderFixture  = "fixture"

	SinkFramebuffer = "framebuffer"
	SinkSerial      = "serial"
	SinkNone        = "none"
)

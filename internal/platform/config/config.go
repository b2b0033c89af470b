package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config carries everything the timing subsystem needs to run: where local
// state lives, how to reach the planner API, and the notification and
// Pomodoro timing knobs.
type Config struct {
	HomePath string
	DBPath   string

	APIBaseURL     string
	RequestTimeout time.Duration

	NotifyLeadTime     time.Duration
	NotifyPollInterval time.Duration
	NotifyLeaseTTL     time.Duration
	NotifierPluginPath string

	PomodoroBreak  time.Duration
	PomodoroRounds int
}

// fileConfig is the on-disk YAML shape. Durations are plain seconds so the
// file stays editable by hand.
type fileConfig struct {
	APIBaseURL            string `yaml:"api_base_url"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`

	Notify struct {
		LeadTimeSeconds     int    `yaml:"lead_time_seconds"`
		PollIntervalSeconds int    `yaml:"poll_interval_seconds"`
		LeaseTTLSeconds     int    `yaml:"lease_ttl_seconds"`
		PluginPath          string `yaml:"plugin_path"`
	} `yaml:"notify"`

	Pomodoro struct {
		BreakMinutes int `yaml:"break_minutes"`
		Rounds       int `yaml:"rounds"`
	} `yaml:"pomodoro"`
}

const fileName = "config.yaml"

// Load reads config.yaml from the home directory when present and fills in
// defaults for everything else. A missing file is not an error.
func Load(homePath string) (Config, error) {
	if homePath == "" {
		return Config{}, fmt.Errorf("home path is required")
	}
	cfg := Config{
		HomePath:           homePath,
		DBPath:             filepath.Join(homePath, "planner.db"),
		APIBaseURL:         "http://localhost:8780/api",
		RequestTimeout:     10 * time.Second,
		NotifyLeadTime:     5 * time.Minute,
		NotifyPollInterval: 30 * time.Second,
		NotifyLeaseTTL:     45 * time.Second,
		PomodoroBreak:      5 * time.Minute,
		PomodoroRounds:     4,
	}

	raw, err := os.ReadFile(filepath.Join(homePath, fileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	fc := fileConfig{}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(fc.RequestTimeoutSeconds) * time.Second
	}
	if fc.Notify.LeadTimeSeconds > 0 {
		cfg.NotifyLeadTime = time.Duration(fc.Notify.LeadTimeSeconds) * time.Second
	}
	if fc.Notify.PollIntervalSeconds > 0 {
		cfg.NotifyPollInterval = time.Duration(fc.Notify.PollIntervalSeconds) * time.Second
	}
	if fc.Notify.LeaseTTLSeconds > 0 {
		cfg.NotifyLeaseTTL = time.Duration(fc.Notify.LeaseTTLSeconds) * time.Second
	}
	cfg.NotifierPluginPath = fc.Notify.PluginPath
	if fc.Pomodoro.BreakMinutes > 0 {
		cfg.PomodoroBreak = time.Duration(fc.Pomodoro.BreakMinutes) * time.Minute
	}
	if fc.Pomodoro.Rounds > 0 {
		cfg.PomodoroRounds = fc.Pomodoro.Rounds
	}
	if cfg.NotifyLeaseTTL <= cfg.NotifyPollInterval {
		// A lease that expires within one poll would flap between holders.
		cfg.NotifyLeaseTTL = cfg.NotifyPollInterval + 15*time.Second
	}
	return cfg, nil
}

// DefaultHome resolves the application home directory, honoring
// STUDYPLAN_HOME for tests and unusual setups.
func DefaultHome() (string, error) {
	if env := os.Getenv("STUDYPLAN_HOME"); env != "" {
		return env, nil
	}
	base, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}
	return filepath.Join(base, ".studyplan"), nil
}

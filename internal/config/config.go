package config

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Interface    string
	Addr         string
	DBPath       string
	ScanInterval time.Duration
	HistoryDepth int
	MockMode     bool
	Debug        bool
}

// Load builds configuration from, in increasing precedence: defaults, an
// optional YAML file (-config), environment variables, command line flags.
func Load() *Config {
	cfg := &Config{}

	var configFile string
	flag.StringVar(&configFile, "config", os.Getenv("AIRSENTRY_CONFIG"), "Path to YAML config file")

	// Defaults and Environment Variables
	iface := getEnv("AIRSENTRY_INTERFACE", "wlan0")
	addr := getEnv("AIRSENTRY_ADDR", ":8080")
	dbPath := getEnv("AIRSENTRY_DB", getDefaultDBPath())
	interval := getEnvInt("AIRSENTRY_INTERVAL", 30)
	historyDepth := getEnvInt("AIRSENTRY_HISTORY", 50)
	mock := getEnvBool("AIRSENTRY_MOCK", false)

	// Command Line Flags (Override Env)
	flag.StringVar(&cfg.Interface, "i", iface, "Wireless interface to scan on")
	flag.StringVar(&cfg.Addr, "addr", addr, "HTTP server address")
	flag.StringVar(&cfg.DBPath, "db", dbPath, "Path to SQLite history database")
	flag.BoolVar(&cfg.MockMode, "mock", mock, "Run in mock mode (simulation)")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable verbose debug logging")
	intervalSecs := flag.Int("interval", interval, "Seconds between scan cycles")
	depth := flag.Int("history", historyDepth, "Snapshots kept in the history window")

	flag.Parse()

	cfg.ScanInterval = time.Duration(*intervalSecs) * time.Second
	cfg.HistoryDepth = *depth

	if configFile != "" {
		if err := cfg.applyFile(configFile); err != nil {
			slog.Warn("could not load config file", "path", configFile, "error", err)
		}
	}

	return cfg
}

// fileConfig mirrors Config for YAML decoding. The interval is a string so
// the file can say "45s" or "2m".
type fileConfig struct {
	Interface    string `yaml:"interface"`
	Addr         string `yaml:"addr"`
	DBPath       string `yaml:"db_path"`
	ScanInterval string `yaml:"scan_interval"`
	HistoryDepth int    `yaml:"history_depth"`
	MockMode     bool   `yaml:"mock"`
	Debug        bool   `yaml:"debug"`
}

// applyFile overlays values from a YAML file onto fields still at their
// defaults. Flags and env always win over the file.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var raw fileConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}

	fromFile := Config{
		Interface:    raw.Interface,
		Addr:         raw.Addr,
		DBPath:       raw.DBPath,
		HistoryDepth: raw.HistoryDepth,
		MockMode:     raw.MockMode,
		Debug:        raw.Debug,
	}
	if raw.ScanInterval != "" {
		interval, err := time.ParseDuration(raw.ScanInterval)
		if err != nil {
			return fmt.Errorf("invalid scan_interval %q: %w", raw.ScanInterval, err)
		}
		fromFile.ScanInterval = interval
	}

	defaults := Config{
		Interface:    "wlan0",
		Addr:         ":8080",
		ScanInterval: 30 * time.Second,
		HistoryDepth: 50,
	}

	if c.Interface == defaults.Interface && fromFile.Interface != "" {
		c.Interface = fromFile.Interface
	}
	if c.Addr == defaults.Addr && fromFile.Addr != "" {
		c.Addr = fromFile.Addr
	}
	if fromFile.DBPath != "" && c.DBPath == getDefaultDBPath() {
		c.DBPath = fromFile.DBPath
	}
	if c.ScanInterval == defaults.ScanInterval && fromFile.ScanInterval > 0 {
		c.ScanInterval = fromFile.ScanInterval
	}
	if c.HistoryDepth == defaults.HistoryDepth && fromFile.HistoryDepth > 0 {
		c.HistoryDepth = fromFile.HistoryDepth
	}
	if fromFile.MockMode {
		c.MockMode = true
	}
	if fromFile.Debug {
		c.Debug = true
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getDefaultDBPath returns the default database path in user's home
// directory, creating ~/.airsentry if needed.
func getDefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "airsentry.db"
	}

	dir := filepath.Join(home, ".airsentry")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "airsentry.db"
	}

	return filepath.Join(dir, "airsentry.db")
}

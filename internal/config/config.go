package config

import (
	"os"
	"strconv"
	"time"
)

const (
	DefaultPort         = 32146
	DefaultHost         = "127.0.0.1"
	DefaultURL          = "https://www.messenger.com"
	DefaultAppName      = "Messenger"
	DefaultPollInterval = 5 * time.Second

	// DefaultUserAgent is sent when fetching page snapshots over HTTP.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36"

	minPollInterval = 500 * time.Millisecond
)

// Config holds the application configuration.
type Config struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// URL is the messaging page opened by "Show Messenger".
	URL       string `yaml:"url"`
	UserAgent string `yaml:"user_agent"`
	// PageOrigin is accepted by the bridge's websocket origin check in
	// addition to loopback. Derived from URL when empty.
	PageOrigin string `yaml:"page_origin"`

	PollInterval time.Duration `yaml:"poll_interval"`
	AppName      string        `yaml:"app_name"`

	SoundEnabled         bool   `yaml:"sound_enabled"`
	NotificationsEnabled bool   `yaml:"notifications_enabled"`
	SoundFile            string `yaml:"sound_file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Host:                 DefaultHost,
		Port:                 DefaultPort,
		URL:                  DefaultURL,
		UserAgent:            DefaultUserAgent,
		PollInterval:         DefaultPollInterval,
		AppName:              DefaultAppName,
		SoundEnabled:         true,
		NotificationsEnabled: true,
	}
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

func (c *Config) applyEnv() {
	// MESSENGER_TRAY_PORT - override the bridge port
	if portStr := os.Getenv("MESSENGER_TRAY_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 && port < 65536 {
			c.Port = port
		}
	}

	// MESSENGER_TRAY_HOST - override the bridge host (loopback is safest)
	if host := os.Getenv("MESSENGER_TRAY_HOST"); host != "" {
		c.Host = host
	}

	if u := os.Getenv("MESSENGER_TRAY_URL"); u != "" {
		c.URL = u
	}

	// MESSENGER_TRAY_INTERVAL accepts a Go duration ("5s", "1500ms")
	if iv := os.Getenv("MESSENGER_TRAY_INTERVAL"); iv != "" {
		if d, err := time.ParseDuration(iv); err == nil && d >= minPollInterval {
			c.PollInterval = d
		}
	}

	if v := os.Getenv("MESSENGER_TRAY_SOUND"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.SoundEnabled = b
		}
	}

	if v := os.Getenv("MESSENGER_TRAY_NOTIFY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.NotificationsEnabled = b
		}
	}
}

// Address returns the formatted host:port address string.
func (c *Config) Address() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// BridgeURL returns the websocket URL the page-side extractor connects to.
func (c *Config) BridgeURL() string {
	return "ws://" + c.Address() + "/ws"
}

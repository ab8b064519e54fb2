package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	dirName  = "messenger-tray"
	fileName = "config.yaml"
)

// DefaultPath returns <UserConfigDir>/messenger-tray/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dirName, fileName), nil
}

// fileConfig mirrors Config with pointer fields so that keys absent from
// the file leave the defaults alone.
type fileConfig struct {
	Host                 *string `yaml:"host"`
	Port                 *int    `yaml:"port"`
	URL                  *string `yaml:"url"`
	UserAgent            *string `yaml:"user_agent"`
	PageOrigin           *string `yaml:"page_origin"`
	PollInterval         *string `yaml:"poll_interval"`
	AppName              *string `yaml:"app_name"`
	SoundEnabled         *bool   `yaml:"sound_enabled"`
	NotificationsEnabled *bool   `yaml:"notifications_enabled"`
	SoundFile            *string `yaml:"sound_file"`
}

// LoadFile builds the configuration from defaults, then the YAML file at
// path (if it exists), then environment overrides.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := cfg.applyYAML(data); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyYAML(data []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}

	if fc.Host != nil && *fc.Host != "" {
		c.Host = *fc.Host
	}
	if fc.Port != nil {
		if *fc.Port <= 0 || *fc.Port >= 65536 {
			return fmt.Errorf("port %d out of range", *fc.Port)
		}
		c.Port = *fc.Port
	}
	if fc.URL != nil && *fc.URL != "" {
		if _, err := url.Parse(*fc.URL); err != nil {
			return fmt.Errorf("invalid url: %w", err)
		}
		c.URL = *fc.URL
	}
	if fc.UserAgent != nil && *fc.UserAgent != "" {
		c.UserAgent = *fc.UserAgent
	}
	if fc.PageOrigin != nil {
		c.PageOrigin = *fc.PageOrigin
	}
	if fc.PollInterval != nil {
		d, err := time.ParseDuration(*fc.PollInterval)
		if err != nil {
			return fmt.Errorf("invalid poll_interval: %w", err)
		}
		if d < minPollInterval {
			return fmt.Errorf("poll_interval %s is below %s", d, minPollInterval)
		}
		c.PollInterval = d
	}
	if fc.AppName != nil && *fc.AppName != "" {
		c.AppName = *fc.AppName
	}
	if fc.SoundEnabled != nil {
		c.SoundEnabled = *fc.SoundEnabled
	}
	if fc.NotificationsEnabled != nil {
		c.NotificationsEnabled = *fc.NotificationsEnabled
	}
	if fc.SoundFile != nil {
		c.SoundFile = *fc.SoundFile
	}
	return nil
}

// Origin returns the origin the page is served from, preferring an
// explicit PageOrigin.
func (c *Config) Origin() string {
	if c.PageOrigin != "" {
		return c.PageOrigin
	}
	u, err := url.Parse(c.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// Package config loads the client configuration: the bundled default.json
// asset, overlaid by an optional YAML file.
package config

import (
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed default.json
var defaultAsset []byte

// Config holds all application configuration.
type Config struct {
	API          APIConfig          `json:"API" yaml:"api"`
	HTTP         HTTPConfig         `json:"-" yaml:"http"`
	Notification NotificationConfig `json:"-" yaml:"notification"`
	Store        StoreConfig        `json:"-" yaml:"store"`
	Log          LogConfig          `json:"-" yaml:"log"`
}

// APIConfig mirrors the API block of the bundled asset.
type APIConfig struct {
	BaseURL string `json:"BASE_URL" yaml:"base_url"`
	Login   string `json:"LOGIN" yaml:"login"`
	Logout  string `json:"LOGOUT" yaml:"logout"`
}

type HTTPConfig struct {
	ConnectTimeoutMillis int `yaml:"connect_timeout_ms"`
	MaxRedirections      int `yaml:"max_redirections"`
}

type NotificationConfig struct {
	Title string `yaml:"title"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultPath returns ~/.config/rh-chat/config.yaml.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "rh-chat", "config.yaml")
}

// Load decodes the bundled asset and overlays the YAML file at path.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(defaultAsset, &cfg); err != nil {
		return nil, errors.Wrap(err, "parsing bundled default.json")
	}

	if path == "" {
		return &cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, errors.Wrap(err, "reading config file")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config file '%s'", path)
	}
	return &cfg, nil
}

// ApplyDefaults sets default values for empty configuration fields.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ConnectTimeoutMillis <= 0 {
		c.HTTP.ConnectTimeoutMillis = 5000
	}
	// A negative value is kept: it disables redirects.
	if c.HTTP.MaxRedirections == 0 {
		c.HTTP.MaxRedirections = 5
	}
	if c.Notification.Title == "" {
		c.Notification.Title = "RH-Chat"
	}
	if c.Store.Path == "" {
		c.Store.Path = filepath.Join(os.Getenv("HOME"), ".config", "rh-chat", "rh-chat.json")
	}
	c.Store.Path = expandPath(c.Store.Path, os.Getenv("HOME"))
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func expandPath(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

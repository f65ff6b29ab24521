package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/etherdesk/etherwm/internal/dock"
	"github.com/etherdesk/etherwm/internal/layout"
	"github.com/etherdesk/etherwm/internal/state"
	"github.com/etherdesk/etherwm/internal/types"
)

const (
	DefaultConfigDir  = ".config/etherwm"
	DefaultConfigFile = "config.yaml"
	DefaultSocketPath = "/tmp/etherwm.sock"
	DefaultTimeout    = 5 * time.Second
)

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() *Config {
	opts := state.DefaultOptions()
	dc := dock.DefaultConfig()
	autoHide, autosave := true, true

	return &Config{
		Desktop: DesktopConfig{
			Width:         opts.Desktop.Width,
			Height:        opts.Desktop.Height,
			MenuBarHeight: opts.Desktop.MenuBarHeight,
		},
		Windows: WindowConfig{
			MinWidth:  opts.MinSize.Width,
			MinHeight: opts.MinSize.Height,
			Stagger:   opts.Stagger,
			OriginX:   opts.Origin.X,
			OriginY:   opts.Origin.Y,
		},
		Dock: DockConfig{
			AutoHide:     &autoHide,
			Height:       dc.Height,
			IconSlot:     dc.IconSlot,
			Padding:      dc.Padding,
			BottomOffset: dc.BottomOffset,
			Margin:       dc.Margin,
		},
		Server: ServerConfig{
			SocketPath: DefaultSocketPath,
			Timeout:    DefaultTimeout.String(),
		},
		State: StateConfig{
			Path:     state.GetStatePath(),
			Autosave: &autosave,
		},
	}
}

// LoadConfig loads configuration from the specified path or default location.
// If path is empty, uses ~/.config/etherwm/config.yaml (or config.json) and
// falls back to defaults when neither exists. An explicit path must exist.
// Values missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		// Try YAML first, then JSON
		yamlPath := filepath.Join(home, DefaultConfigDir, "config.yaml")
		jsonPath := filepath.Join(home, DefaultConfigDir, "config.json")

		if _, err := os.Stat(yamlPath); err == nil {
			path = yamlPath
		} else if _, err := os.Stat(jsonPath); err == nil {
			path = jsonPath
		} else {
			return DefaultConfig(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return LoadConfigFromBytes(data, ext)
}

// LoadConfigFromBytes loads configuration from raw bytes on top of the
// defaults. format should be "yaml" or "json".
func LoadConfigFromBytes(data []byte, format string) (*Config, error) {
	cfg := DefaultConfig()

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
}

// SessionOptions converts the desktop and window sections into session options
func (c *Config) SessionOptions() state.Options {
	opts := state.DefaultOptions()
	opts.Desktop = layout.Desktop{
		Width:         c.Desktop.Width,
		Height:        c.Desktop.Height,
		MenuBarHeight: c.Desktop.MenuBarHeight,
	}
	opts.MinSize = types.Size{Width: c.Windows.MinWidth, Height: c.Windows.MinHeight}
	opts.Origin = types.Point{X: c.Windows.OriginX, Y: c.Windows.OriginY}
	opts.Stagger = c.Windows.Stagger

	if len(c.AppRules) > 0 {
		opts.DefaultSizes = make(map[string]types.Size, len(c.AppRules))
		for _, rule := range c.AppRules {
			if rule.Width > 0 && rule.Height > 0 {
				opts.DefaultSizes[rule.App] = types.Size{Width: rule.Width, Height: rule.Height}
			}
		}
	}
	return opts
}

// DockConfig converts the dock section for the visibility heuristic
func (c *Config) DockConfig() dock.Config {
	return dock.Config{
		AutoHide:     c.Dock.AutoHide == nil || *c.Dock.AutoHide,
		Height:       c.Dock.Height,
		IconSlot:     c.Dock.IconSlot,
		Padding:      c.Dock.Padding,
		BottomOffset: c.Dock.BottomOffset,
		Margin:       c.Dock.Margin,
	}
}

// Autosave reports whether the daemon saves after every mutating request
func (c *Config) Autosave() bool {
	return c.State.Autosave == nil || *c.State.Autosave
}

// ServerTimeout returns the client request timeout, or DefaultTimeout
// if unset.
func (c *Config) ServerTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

// GetAppRule finds the rule for an app id
func (c *Config) GetAppRule(appID string) *AppRule {
	for _, rule := range c.AppRules {
		if rule.App == appID {
			return &rule
		}
	}
	return nil
}

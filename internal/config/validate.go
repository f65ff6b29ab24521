package config

import (
	"fmt"
	"time"

	"github.com/etherdesk/etherwm/internal/apps"
)

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if err := validateDesktop(&c.Desktop); err != nil {
		return fmt.Errorf("desktop: %w", err)
	}
	if err := validateWindows(&c.Windows); err != nil {
		return fmt.Errorf("windows: %w", err)
	}
	if err := validateDock(&c.Dock); err != nil {
		return fmt.Errorf("dock: %w", err)
	}

	if c.Server.SocketPath == "" {
		return fmt.Errorf("server: socketPath must not be empty")
	}
	if c.Server.Timeout != "" {
		if _, err := time.ParseDuration(c.Server.Timeout); err != nil {
			return fmt.Errorf("server: invalid timeout %q: %w", c.Server.Timeout, err)
		}
	}

	// Validate app rules
	seen := make(map[string]bool)
	for i, rule := range c.AppRules {
		if rule.App == "" {
			return fmt.Errorf("appRule %d: missing app identifier", i)
		}
		if _, err := apps.Parse(rule.App); err != nil {
			return fmt.Errorf("appRule %d: %w", i, err)
		}
		if seen[rule.App] {
			return fmt.Errorf("appRule %d: duplicate rule for %s", i, rule.App)
		}
		seen[rule.App] = true
		if rule.Width < 0 || rule.Height < 0 {
			return fmt.Errorf("appRule %s: size must not be negative", rule.App)
		}
	}

	return nil
}

func validateDesktop(d *DesktopConfig) error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %vx%v", d.Width, d.Height)
	}
	if d.MenuBarHeight < 0 {
		return fmt.Errorf("menuBarHeight must not be negative")
	}
	if d.MenuBarHeight >= d.Height {
		return fmt.Errorf("menuBarHeight %v leaves no room on a %v high desktop", d.MenuBarHeight, d.Height)
	}
	return nil
}

func validateWindows(w *WindowConfig) error {
	if w.MinWidth <= 0 || w.MinHeight <= 0 {
		return fmt.Errorf("minimum size must be positive, got %vx%v", w.MinWidth, w.MinHeight)
	}
	if w.Stagger < 0 {
		return fmt.Errorf("stagger must not be negative")
	}
	return nil
}

func validateDock(d *DockConfig) error {
	checks := []struct {
		name  string
		value float64
	}{
		{"height", d.Height},
		{"iconSlot", d.IconSlot},
		{"padding", d.Padding},
		{"bottomOffset", d.BottomOffset},
		{"margin", d.Margin},
	}
	for _, c := range checks {
		if c.value < 0 {
			return fmt.Errorf("%s must not be negative", c.name)
		}
	}
	return nil
}

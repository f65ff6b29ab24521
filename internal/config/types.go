package config

// Config is the root configuration structure
type Config struct {
	Desktop  DesktopConfig `yaml:"desktop" json:"desktop"`
	Windows  WindowConfig  `yaml:"windows" json:"windows"`
	Dock     DockConfig    `yaml:"dock" json:"dock"`
	Server   ServerConfig  `yaml:"server" json:"server"`
	State    StateConfig   `yaml:"state" json:"state"`
	AppRules []AppRule     `yaml:"appRules" json:"appRules"`
}

// DesktopConfig describes the viewport windows are laid out in
type DesktopConfig struct {
	Width         float64 `yaml:"width" json:"width"`
	Height        float64 `yaml:"height" json:"height"`
	MenuBarHeight float64 `yaml:"menuBarHeight" json:"menuBarHeight"`
}

// WindowConfig holds placement and resize constraints
type WindowConfig struct {
	MinWidth  float64 `yaml:"minWidth" json:"minWidth"`
	MinHeight float64 `yaml:"minHeight" json:"minHeight"`
	Stagger   float64 `yaml:"stagger" json:"stagger"` // Cascade offset per launched window
	OriginX   float64 `yaml:"originX" json:"originX"` // Launch position of the first window
	OriginY   float64 `yaml:"originY" json:"originY"`
}

// DockConfig holds dock geometry and auto-hide behavior
type DockConfig struct {
	AutoHide     *bool   `yaml:"autoHide,omitempty" json:"autoHide,omitempty"` // Default true
	Height       float64 `yaml:"height" json:"height"`
	IconSlot     float64 `yaml:"iconSlot" json:"iconSlot"`
	Padding      float64 `yaml:"padding" json:"padding"`
	BottomOffset float64 `yaml:"bottomOffset" json:"bottomOffset"`
	Margin       float64 `yaml:"margin" json:"margin"`
}

// ServerConfig configures the session daemon socket
type ServerConfig struct {
	SocketPath string `yaml:"socketPath" json:"socketPath"`
	Timeout    string `yaml:"timeout" json:"timeout"` // Go duration string, e.g. "5s"
}

// StateConfig configures session persistence
type StateConfig struct {
	Path     string `yaml:"path" json:"path"`
	Autosave *bool  `yaml:"autosave,omitempty" json:"autosave,omitempty"` // Default true
}

// AppRule overrides per-app window behavior
type AppRule struct {
	App    string  `yaml:"app" json:"app"`                         // App id, e.g. "terminal"
	Width  float64 `yaml:"width,omitempty" json:"width,omitempty"` // Default width override
	Height float64 `yaml:"height,omitempty" json:"height,omitempty"`
}

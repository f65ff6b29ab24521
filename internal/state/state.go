// Package state owns the desktop session: the window registry, the active
// window, and desktop preferences, plus their persistence across reloads.
//
// A Session is created once when the shell starts (Open), handed to every
// component that needs it, and serialized on shutdown (Shutdown). All
// commands are single read-modify-write transactions under one mutex.
package state

import (
	"sync"
	"time"

	"github.com/etherdesk/etherwm/internal/apps"
	"github.com/etherdesk/etherwm/internal/layout"
	"github.com/etherdesk/etherwm/internal/types"
)

const (
	// StateVersion is the current state file format version
	StateVersion = 1
)

// Options configures window placement and constraints for a Session
type Options struct {
	Desktop layout.Desktop
	MinSize types.Size  // Smallest size a resize may produce
	Origin  types.Point // Launch position of the first window
	Stagger float64     // Per-window launch offset

	// DefaultSizes overrides the app registry default size per app id
	DefaultSizes map[string]types.Size

	// Clock is used for window id generation; defaults to time.Now
	Clock func() time.Time
}

// DefaultOptions returns the stock 1920x1080 desktop configuration
func DefaultOptions() Options {
	return Options{
		Desktop: layout.Desktop{Width: 1920, Height: 1080, MenuBarHeight: 32},
		MinSize: types.Size{Width: 300, Height: 200},
		Origin:  types.Point{X: 100, Y: 50},
		Stagger: 30,
		Clock:   time.Now,
	}
}

// Theme holds the appearance preferences persisted with the session
type Theme struct {
	Wallpaper  string `json:"wallpaper"`
	DarkMode   bool   `json:"darkMode"`
	Brightness int    `json:"brightness"` // 0-100
	Volume     int    `json:"volume"`     // 0-100
}

// DesktopState is the non-window desktop state persisted with the session
type DesktopState struct {
	Theme        Theme `json:"theme"`
	LauncherOpen bool  `json:"launcherOpen"`
}

// DefaultDesktopState returns the first-boot desktop preferences
func DefaultDesktopState() DesktopState {
	return DesktopState{
		Theme: Theme{
			Wallpaper:  "ventura",
			DarkMode:   true,
			Brightness: 100,
			Volume:     50,
		},
	}
}

// Session is the authoritative window registry
type Session struct {
	mu          sync.RWMutex
	windows     []*types.Window // Registry order (launch order)
	activeID    string
	desktop     DesktopState
	opts        Options
	path        string // Persistence path, empty for in-memory sessions
	lastUpdated time.Time
	issued      map[string]bool // Every id handed out or restored, never pruned

	subMu   sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

// New creates an empty in-memory session
func New(opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Session{
		windows:     make([]*types.Window, 0),
		desktop:     DefaultDesktopState(),
		opts:        opts,
		lastUpdated: opts.Clock(),
		issued:      make(map[string]bool),
		subs:        make(map[int]func(Event)),
	}
}

// Options returns the placement options the session was created with
func (s *Session) Options() Options {
	return s.opts
}

// DefaultSize returns the size used when a window's stored size is 0x0
func (s *Session) DefaultSize(appID string) types.Size {
	if size, ok := s.opts.DefaultSizes[appID]; ok {
		return size
	}
	return apps.DefaultSize(apps.ID(appID))
}

// find returns the live record for id. Caller must hold mu.
func (s *Session) find(id string) (*types.Window, int) {
	for i, w := range s.windows {
		if w.ID == id {
			return w, i
		}
	}
	return nil, -1
}

// values copies the registry. Caller must hold mu.
func (s *Session) values() []types.Window {
	out := make([]types.Window, len(s.windows))
	for i, w := range s.windows {
		out[i] = *w
	}
	return out
}

func (s *Session) touch() {
	s.lastUpdated = s.opts.Clock()
}

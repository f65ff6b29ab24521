package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/etherdesk/etherwm/internal/apps"
	"github.com/etherdesk/etherwm/internal/focus"
	"github.com/etherdesk/etherwm/internal/layout"
	"github.com/etherdesk/etherwm/internal/logging"
	"github.com/etherdesk/etherwm/internal/reconcile"
	"github.com/etherdesk/etherwm/internal/types"
)

const (
	// DefaultStateDir is the directory under $HOME for state files
	DefaultStateDir = ".local/state/etherwm"
	// DefaultStateFile is the state file name
	DefaultStateFile = "state.json"
)

// GetStatePath returns the full path to the state file
func GetStatePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultStateDir, DefaultStateFile)
}

// document is the on-disk shape. launchArgs is never written.
type document struct {
	Version        int            `json:"version"`
	Windows        []windowRecord `json:"windows"`
	ActiveWindowID string         `json:"activeWindowId,omitempty"`
	Desktop        DesktopState   `json:"desktop"`
	LastUpdated    time.Time      `json:"lastUpdated"`
}

type windowRecord struct {
	ID          string      `json:"id"`
	AppID       string      `json:"appId"`
	Title       string      `json:"title"`
	Position    types.Point `json:"position"`
	Size        types.Size  `json:"size"`
	IsMinimized bool        `json:"isMinimized"`
	IsMaximized bool        `json:"isMaximized"`
	ZIndex      int         `json:"zIndex"`
}

// rawFields is a JSON object decoded one level deep. Restore reads every
// field on its own so a wrongly typed value only loses that value.
type rawFields map[string]json.RawMessage

// field decodes fields[key] into out. It reports false when the key is
// absent, null, or of the wrong type, leaving out untouched.
func field[T any](fields rawFields, key string, out *T) bool {
	raw, ok := fields[key]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return false
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logging.Warn().Err(err).Str("field", key).Msg("Ignoring malformed state field")
		return false
	}
	*out = v
	return true
}

// looseWindow is a window record after per-field decoding. Pointer fields
// are nil when the record had no usable value for them.
type looseWindow struct {
	ID          string
	AppID       string
	Title       *string
	Position    *types.Point
	Size        *types.Size
	IsMinimized bool
	IsMaximized bool
	ZIndex      *int
}

func decodeWindow(fields rawFields) looseWindow {
	var lw looseWindow
	field(fields, "id", &lw.ID)
	field(fields, "appId", &lw.AppID)
	field(fields, "isMinimized", &lw.IsMinimized)
	field(fields, "isMaximized", &lw.IsMaximized)

	var title string
	if field(fields, "title", &title) {
		lw.Title = &title
	}
	var pos types.Point
	if field(fields, "position", &pos) {
		lw.Position = &pos
	}
	var size types.Size
	if field(fields, "size", &size) {
		lw.Size = &size
	}
	var z int
	if field(fields, "zIndex", &z) {
		lw.ZIndex = &z
	}
	return lw
}

// Open creates a session bound to path and restores whatever was persisted
// there. A missing file gives an empty session. A corrupt file gives an
// empty session and a logged warning. Only I/O failures are returned.
func Open(path string, opts Options) (*Session, error) {
	s := New(opts)
	s.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	s.restore(data)
	return s, nil
}

// Path returns the persistence path, or "" for in-memory sessions
func (s *Session) Path() string {
	return s.path
}

// restore replaces the registry with the decoded contents of data
func (s *Session) restore(data []byte) {
	var doc rawFields
	if err := json.Unmarshal(data, &doc); err != nil {
		logging.Warn().Err(err).Str("path", s.path).Msg("State file is corrupt, starting with an empty desktop")
		return
	}

	var version int
	if field(doc, "version", &version) && version > StateVersion {
		logging.Warn().Int("version", version).Msg("State file is from a newer version, unknown fields are ignored")
	}

	var records []json.RawMessage
	field(doc, "windows", &records)

	windows := make([]types.Window, 0, len(records))
	missingZ := make(map[string]bool) // ids whose surviving record had no zIndex
	seen := make(map[string]bool)
	var onDisk []string
	for i, raw := range records {
		var fields rawFields
		if err := json.Unmarshal(raw, &fields); err != nil {
			logging.Warn().Err(err).Int("index", i).Msg("Dropping malformed window record")
			continue
		}
		lw := decodeWindow(fields)
		if lw.ID != "" {
			onDisk = append(onDisk, lw.ID)
		}
		windows = append(windows, s.fromRecord(lw, len(windows)))
		if !seen[lw.ID] && apps.Known(apps.ID(lw.AppID)) {
			seen[lw.ID] = true
			missingZ[lw.ID] = lw.ZIndex == nil
		}
	}

	var activeID string
	field(doc, "activeWindowId", &activeID)

	windows, active, report := reconcile.Restore(windows, activeID)
	if report.Changed() {
		logging.Warn().
			Int("missing_id", report.MissingID).
			Strs("unknown_apps", report.UnknownApps).
			Strs("duplicates", report.Duplicates).
			Bool("active_cleared", report.ActiveCleared).
			Msg("Reconciled persisted windows")
	}

	// Records without a zIndex stack above the rest, in registry order
	for i := range windows {
		if missingZ[windows[i].ID] {
			windows[i].ZIndex = focus.NextZ(windows)
		}
	}

	var desktop rawFields
	field(doc, "desktop", &desktop)
	var lastUpdated time.Time
	field(doc, "lastUpdated", &lastUpdated)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.windows = make([]*types.Window, 0, len(windows))
	for i := range windows {
		w := windows[i]
		s.windows = append(s.windows, &w)
	}
	// Ids seen on disk stay reserved even when their record was dropped
	for _, id := range onDisk {
		s.issued[id] = true
	}
	s.activeID = active
	s.desktop = resolveDesktop(desktop)
	if !lastUpdated.IsZero() {
		s.lastUpdated = lastUpdated
	}

	logging.Info().Int("windows", len(s.windows)).Str("active", s.activeID).Msg("Restored session")
}

// fromRecord applies per-field defaults to a decoded window. slot is the
// record's position in the restored list, used for the cascade fallback.
func (s *Session) fromRecord(lw looseWindow, slot int) types.Window {
	w := types.Window{
		ID:          lw.ID,
		AppID:       lw.AppID,
		IsMinimized: lw.IsMinimized,
		IsMaximized: lw.IsMaximized,
	}
	if lw.Title != nil {
		w.Title = *lw.Title
	} else {
		w.Title = apps.Name(apps.ID(lw.AppID))
	}
	if lw.Position != nil {
		w.Position = *lw.Position
	} else {
		w.Position = layout.Cascade(slot, s.opts.Origin, s.opts.Stagger)
	}
	if lw.Size != nil {
		w.Size = *lw.Size
	}
	if lw.ZIndex != nil {
		w.ZIndex = *lw.ZIndex
	}
	return w
}

// resolveDesktop applies theme fields that decode and keeps defaults for
// the rest. The launcher is always closed after a restore.
func resolveDesktop(desktop rawFields) DesktopState {
	out := DefaultDesktopState()
	var theme rawFields
	if !field(desktop, "theme", &theme) {
		return out
	}
	field(theme, "wallpaper", &out.Theme.Wallpaper)
	field(theme, "darkMode", &out.Theme.DarkMode)
	if field(theme, "brightness", &out.Theme.Brightness) {
		out.Theme.Brightness = clampPercent(out.Theme.Brightness)
	}
	if field(theme, "volume", &out.Theme.Volume) {
		out.Theme.Volume = clampPercent(out.Theme.Volume)
	}
	return out
}

// Save persists the session to its path. In-memory sessions are not saved.
func (s *Session) Save() error {
	if s.path == "" {
		return nil
	}
	return s.SaveTo(s.path)
}

// SaveTo persists the session to a specific path
func (s *Session) SaveTo(path string) error {
	s.mu.RLock()
	doc := document{
		Version:        StateVersion,
		Windows:        make([]windowRecord, 0, len(s.windows)),
		ActiveWindowID: s.activeID,
		Desktop:        s.desktop,
		LastUpdated:    s.lastUpdated,
	}
	for _, w := range s.windows {
		doc.Windows = append(doc.Windows, windowRecord{
			ID:          w.ID,
			AppID:       w.AppID,
			Title:       w.Title,
			Position:    w.Position,
			Size:        w.Size,
			IsMinimized: w.IsMinimized,
			IsMaximized: w.IsMaximized,
			ZIndex:      w.ZIndex,
		})
	}
	s.mu.RUnlock()

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	// Write atomically using temp file + rename
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename state file: %w", err)
	}

	return nil
}

// Shutdown serializes the session one last time. Gestures in flight are
// the caller's concern; their last committed write is what gets saved.
func (s *Session) Shutdown() error {
	if err := s.Save(); err != nil {
		return err
	}
	logging.Info().Str("path", s.path).Str("summary", s.Summary()).Msg("Session saved on shutdown")
	return nil
}

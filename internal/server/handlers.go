package server

import (
	"fmt"
	"sort"
	"time"

	"github.com/etherdesk/etherwm/internal/apps"
	"github.com/etherdesk/etherwm/internal/dock"
	"github.com/etherdesk/etherwm/internal/focus"
	"github.com/etherdesk/etherwm/internal/models"
	"github.com/etherdesk/etherwm/internal/types"
	"github.com/etherdesk/etherwm/internal/window"
)

type handler struct {
	fn      func(params map[string]interface{}) (map[string]interface{}, error)
	mutates bool
}

func (s *Server) routes() map[string]handler {
	return map[string]handler{
		models.MethodPing:          {fn: s.handlePing},
		models.MethodServerInfo:    {fn: s.handleServerInfo},
		models.MethodDump:          {fn: s.handleDump},
		models.MethodList:          {fn: s.handleList},
		models.MethodLaunch:        {fn: s.handleLaunch, mutates: true},
		models.MethodClose:         {fn: s.windowCommand(s.session.Close), mutates: true},
		models.MethodFocus:         {fn: s.windowCommand(s.session.Focus), mutates: true},
		models.MethodMinimize:      {fn: s.windowCommand(s.session.Minimize), mutates: true},
		models.MethodMaximize:      {fn: s.windowCommand(s.session.Maximize), mutates: true},
		models.MethodSetPosition:   {fn: s.handleSetPosition, mutates: true},
		models.MethodSetSize:       {fn: s.handleSetSize, mutates: true},
		models.MethodSetTitle:      {fn: s.handleSetTitle, mutates: true},
		models.MethodCycleFocus:    {fn: s.handleCycleFocus, mutates: true},
		models.MethodFocusDir:      {fn: s.handleFocusDirection, mutates: true},
		models.MethodTakeLaunchArg: {fn: s.handleTakeLaunchArgs},
		models.MethodPointerDown:   {fn: s.handlePointerDown, mutates: true},
		models.MethodPointerMove:   {fn: s.handlePointerMove},
		models.MethodPointerUp:     {fn: s.handlePointerUp, mutates: true},
		models.MethodDockState:     {fn: s.handleDockState},
		models.MethodDesktopGet:    {fn: s.handleDesktop},
		models.MethodSetTheme:      {fn: s.handleSetTheme, mutates: true},
		models.MethodToggleLaunch:  {fn: s.handleToggleLauncher, mutates: true},
		models.MethodStateSave:     {fn: s.handleStateSave},
		models.MethodStateReset:    {fn: s.handleStateReset, mutates: true},
	}
}

// Methods returns the served method names, sorted
func (s *Server) Methods() []string {
	names := make([]string, 0, len(s.handlers))
	for name := range s.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Server) handlePing(map[string]interface{}) (map[string]interface{}, error) {
	return map[string]interface{}{"pong": true}, nil
}

func (s *Server) handleServerInfo(map[string]interface{}) (map[string]interface{}, error) {
	return map[string]interface{}{
		"name":          "etherwm",
		"version":       Version,
		"socketPath":    s.opts.SocketPath,
		"statePath":     s.session.Path(),
		"autosave":      s.opts.Autosave,
		"uptimeSeconds": int64(time.Since(s.startTime).Seconds()),
		"windowCount":   s.session.Len(),
		"summary":       s.session.Summary(),
		"methods":       s.Methods(),
	}, nil
}

func (s *Server) handleDump(map[string]interface{}) (map[string]interface{}, error) {
	return models.Encode(s.State())
}

func (s *Server) handleList(map[string]interface{}) (map[string]interface{}, error) {
	return models.Encode(struct {
		Windows []*models.Window `json:"windows"`
	}{s.windows()})
}

func (s *Server) handleLaunch(params map[string]interface{}) (map[string]interface{}, error) {
	raw, err := models.GetString(params, "appId")
	if err != nil {
		return nil, err
	}
	appID, err := apps.Parse(raw)
	if err != nil {
		return nil, &models.ParamError{Key: "appId", Reason: err.Error()}
	}

	id := s.session.Launch(appID, params["args"])
	return map[string]interface{}{"id": id}, nil
}

// windowCommand adapts an id-only session command
func (s *Server) windowCommand(cmd func(id string) bool) func(map[string]interface{}) (map[string]interface{}, error) {
	return func(params map[string]interface{}) (map[string]interface{}, error) {
		id, err := models.GetString(params, "id")
		if err != nil {
			return nil, err
		}
		return changed(cmd(id)), nil
	}
}

func (s *Server) handleSetPosition(params map[string]interface{}) (map[string]interface{}, error) {
	id, err := models.GetString(params, "id")
	if err != nil {
		return nil, err
	}
	p, err := models.GetPoint(params)
	if err != nil {
		return nil, err
	}
	return changed(s.session.SetPosition(id, p.X, p.Y)), nil
}

func (s *Server) handleSetSize(params map[string]interface{}) (map[string]interface{}, error) {
	id, err := models.GetString(params, "id")
	if err != nil {
		return nil, err
	}
	w, err := models.GetFloat(params, "width")
	if err != nil {
		return nil, err
	}
	h, err := models.GetFloat(params, "height")
	if err != nil {
		return nil, err
	}
	if w < 0 || h < 0 {
		return nil, &models.ParamError{Key: "width", Reason: "and height must not be negative"}
	}
	return changed(s.session.SetSize(id, w, h)), nil
}

func (s *Server) handleSetTitle(params map[string]interface{}) (map[string]interface{}, error) {
	id, err := models.GetString(params, "id")
	if err != nil {
		return nil, err
	}
	title, err := models.GetString(params, "title")
	if err != nil {
		return nil, err
	}
	return changed(s.session.SetTitle(id, title)), nil
}

func (s *Server) handleCycleFocus(params map[string]interface{}) (map[string]interface{}, error) {
	forward, err := models.GetOptionalBool(params, "forward", true)
	if err != nil {
		return nil, err
	}
	id, ok := s.session.CycleFocus(forward)
	return map[string]interface{}{"id": id, "changed": ok}, nil
}

func (s *Server) handleFocusDirection(params map[string]interface{}) (map[string]interface{}, error) {
	raw, err := models.GetString(params, "direction")
	if err != nil {
		return nil, err
	}
	dir, ok := types.ParseDirection(raw)
	if !ok {
		return nil, &models.ParamError{Key: "direction", Reason: fmt.Sprintf("must be left, right, up or down; got %q", raw)}
	}
	wrap, err := models.GetOptionalBool(params, "wrap", false)
	if err != nil {
		return nil, err
	}
	id, ok := s.session.FocusDirection(dir, wrap)
	return map[string]interface{}{"id": id, "changed": ok}, nil
}

func (s *Server) handleTakeLaunchArgs(params map[string]interface{}) (map[string]interface{}, error) {
	id, err := models.GetString(params, "id")
	if err != nil {
		return nil, err
	}
	args, ok := s.session.TakeLaunchArgs(id)
	return map[string]interface{}{"args": args, "ok": ok}, nil
}

func (s *Server) handlePointerDown(params map[string]interface{}) (map[string]interface{}, error) {
	p, err := models.GetPoint(params)
	if err != nil {
		return nil, err
	}
	mode, err := models.GetOptionalString(params, "mode", models.PointerAuto)
	if err != nil {
		return nil, err
	}

	switch mode {
	case models.PointerDrag:
		id, err := models.GetString(params, "id")
		if err != nil {
			return nil, err
		}
		return s.gestureResult(s.controller.BeginDrag(id, p)), nil

	case models.PointerResize:
		id, err := models.GetString(params, "id")
		if err != nil {
			return nil, err
		}
		raw, err := models.GetString(params, "edge")
		if err != nil {
			return nil, err
		}
		edge, ok := types.ParseEdge(raw)
		if !ok {
			return nil, &models.ParamError{Key: "edge", Reason: fmt.Sprintf("must be one of n, s, e, w, ne, nw, se, sw; got %q", raw)}
		}
		return s.gestureResult(s.controller.BeginResize(id, edge, p)), nil

	case models.PointerAuto:
		onControl, err := models.GetOptionalBool(params, "onControl", false)
		if err != nil {
			return nil, err
		}
		return s.click(p, onControl), nil

	default:
		return nil, &models.ParamError{Key: "mode", Reason: fmt.Sprintf("must be drag, resize or auto; got %q", mode)}
	}
}

// click emulates a pointer-down on the desktop: the topmost window under
// the pointer is hit-tested and the press is routed to its chrome.
func (s *Server) click(p types.Point, onControl bool) map[string]interface{} {
	windows := focus.Order(s.session.Windows())
	for i := len(windows) - 1; i >= 0; i-- {
		w := windows[i]
		r, ok := s.session.EffectiveRect(w.ID)
		if !ok || !r.Contains(p) {
			continue
		}

		desc, _ := apps.Lookup(apps.ID(w.AppID))
		hit := window.HitTest(desc, r, w.IsMaximized, p)
		result := map[string]interface{}{"windowId": w.ID, "region": hit.Region.String()}

		switch {
		case hit.Region == window.RegionEdge:
			result["started"] = s.controller.BeginResize(w.ID, hit.Edge, p)
			result["edge"] = string(hit.Edge)
		case window.DragRegion(desc, hit, onControl):
			result["started"] = s.controller.BeginDrag(w.ID, p)
		case hit.Region == window.RegionClose:
			result["started"] = false
			result["changed"] = s.session.Close(w.ID)
		case hit.Region == window.RegionMinimize:
			result["started"] = false
			result["changed"] = s.session.Minimize(w.ID)
		case hit.Region == window.RegionMaximize:
			result["started"] = false
			result["changed"] = s.session.Maximize(w.ID)
		default:
			// Any other press inside a window focuses it
			result["started"] = false
			result["changed"] = s.session.Focus(w.ID)
		}
		result["mode"] = s.controller.Mode().String()
		return result
	}

	return map[string]interface{}{"started": false, "region": window.RegionOutside.String(), "mode": s.controller.Mode().String()}
}

func (s *Server) gestureResult(started bool) map[string]interface{} {
	g := s.controller.Active()
	return map[string]interface{}{
		"started":  started,
		"mode":     g.Mode.String(),
		"windowId": g.WindowID,
	}
}

func (s *Server) handlePointerMove(params map[string]interface{}) (map[string]interface{}, error) {
	p, err := models.GetPoint(params)
	if err != nil {
		return nil, err
	}
	s.controller.Move(p)

	result := map[string]interface{}{"mode": s.controller.Mode().String()}
	if g := s.controller.Active(); g.WindowID != "" {
		if w, ok := s.session.Window(g.WindowID); ok {
			result["position"] = w.Position
			result["size"] = w.Size
		}
	}
	return result, nil
}

func (s *Server) handlePointerUp(map[string]interface{}) (map[string]interface{}, error) {
	return map[string]interface{}{"ended": s.controller.End()}, nil
}

func (s *Server) handleDockState(map[string]interface{}) (map[string]interface{}, error) {
	return models.Encode(s.dockState())
}

func (s *Server) handleDesktop(map[string]interface{}) (map[string]interface{}, error) {
	return models.Encode(s.desktop())
}

func (s *Server) handleSetTheme(params map[string]interface{}) (map[string]interface{}, error) {
	theme := s.session.Desktop().Theme

	if v, ok := params["wallpaper"]; ok && v != nil {
		wp, err := models.GetString(params, "wallpaper")
		if err != nil {
			return nil, err
		}
		theme.Wallpaper = wp
	}
	dark, err := models.GetOptionalBool(params, "darkMode", theme.DarkMode)
	if err != nil {
		return nil, err
	}
	theme.DarkMode = dark
	if theme.Brightness, err = models.GetOptionalInt(params, "brightness", theme.Brightness); err != nil {
		return nil, err
	}
	if theme.Volume, err = models.GetOptionalInt(params, "volume", theme.Volume); err != nil {
		return nil, err
	}

	s.session.SetTheme(theme)
	return models.Encode(s.desktop())
}

func (s *Server) handleToggleLauncher(map[string]interface{}) (map[string]interface{}, error) {
	return map[string]interface{}{"open": s.session.ToggleLauncher()}, nil
}

func (s *Server) handleStateSave(map[string]interface{}) (map[string]interface{}, error) {
	if err := s.session.Save(); err != nil {
		return nil, err
	}
	return map[string]interface{}{"path": s.session.Path(), "saved": s.session.Path() != ""}, nil
}

func (s *Server) handleStateReset(map[string]interface{}) (map[string]interface{}, error) {
	s.controller.End()
	s.session.Reset()
	return map[string]interface{}{"windowCount": s.session.Len()}, nil
}

func changed(ok bool) map[string]interface{} {
	return map[string]interface{}{"changed": ok}
}

// State builds the dump result
func (s *Server) State() *models.State {
	g := s.controller.Active()
	return &models.State{
		Windows:        s.windows(),
		ActiveWindowID: s.session.ActiveWindowID(),
		Desktop:        s.desktop(),
		Dock:           s.dockState(),
		Gesture: models.Gesture{
			Mode:     g.Mode.String(),
			WindowID: g.WindowID,
			Edge:     string(g.Edge),
		},
		Metadata: models.Metadata{
			ServerVersion: Version,
			StatePath:     s.session.Path(),
			LastUpdated:   s.session.LastUpdated(),
			Timestamp:     time.Now(),
		},
	}
}

func (s *Server) windows() []*models.Window {
	active := s.session.ActiveWindowID()
	desktop := s.session.Options().Desktop

	list := s.session.Windows()
	out := make([]*models.Window, 0, len(list))
	for _, w := range list {
		mw := &models.Window{
			ID:          w.ID,
			AppID:       w.AppID,
			AppName:     apps.Name(apps.ID(w.AppID)),
			Title:       w.Title,
			Position:    w.Position,
			Size:        w.Size,
			IsMinimized: w.IsMinimized,
			IsMaximized: w.IsMaximized,
			ZIndex:      w.ZIndex,
			IsActive:    w.ID == active,
		}
		if r, ok := desktop.EffectiveRect(w, s.session.DefaultSize(w.AppID)); ok {
			mw.Bounds = &r
		}
		out = append(out, mw)
	}
	return out
}

func (s *Server) desktop() models.Desktop {
	d := s.session.Desktop()
	vp := s.session.Options().Desktop
	return models.Desktop{
		Width:         vp.Width,
		Height:        vp.Height,
		MenuBarHeight: vp.MenuBarHeight,
		Theme: models.Theme{
			Wallpaper:  d.Theme.Wallpaper,
			DarkMode:   d.Theme.DarkMode,
			Brightness: d.Theme.Brightness,
			Volume:     d.Theme.Volume,
		},
		LauncherOpen: d.LauncherOpen,
	}
}

func (s *Server) dockState() models.Dock {
	windows := s.session.Windows()
	res := dock.EvaluateSized(windows, s.session.Options().Desktop, s.opts.Dock, s.session.DefaultSize)

	items := dock.Items(windows)
	out := models.Dock{
		Hidden:      res.Hidden,
		AutoHide:    s.opts.Dock.AutoHide,
		Region:      res.Region,
		Obstructing: res.Obstructing,
		Items:       make([]models.DockItem, len(items)),
	}
	for i, it := range items {
		out.Items[i] = models.DockItem{ID: it.ID, Name: it.Name, Running: it.Running}
	}
	return out
}

// Gesture returns the interaction state, for callers embedding the server
func (s *Server) Gesture() window.Gesture {
	return s.controller.Active()
}

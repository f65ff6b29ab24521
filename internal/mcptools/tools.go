// Package mcptools exposes the session daemon as Model Context Protocol
// tools over stdio.
package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/etherdesk/etherwm/internal/apps"
	"github.com/etherdesk/etherwm/internal/client"
	"github.com/etherdesk/etherwm/internal/models"
	"github.com/etherdesk/etherwm/internal/mouse"
	"github.com/etherdesk/etherwm/internal/types"
)

// Server wraps an MCP server whose tools forward to the daemon
type Server struct {
	client *client.Client
	mcp    *mcpserver.MCPServer
}

// New creates an MCP server with every etherwm tool registered
func New(c *client.Client, version string) *Server {
	s := &Server{
		client: c,
		mcp:    mcpserver.NewMCPServer("etherwm", version),
	}
	s.registerTools()
	return s
}

// ServeStdio serves MCP requests on stdin/stdout until EOF
func (s *Server) ServeStdio() error {
	return mcpserver.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	id := mcp.WithString("id", mcp.Required(), mcp.Description("Window id, e.g. 'notes-1700000000000'"))

	s.mcp.AddTool(mcp.NewTool("list_windows",
		mcp.WithDescription("List open windows with their bounds, stacking order and flags"),
	), s.handleList)

	s.mcp.AddTool(mcp.NewTool("list_apps",
		mcp.WithDescription("List the apps that can be launched"),
	), s.handleApps)

	s.mcp.AddTool(mcp.NewTool("launch_app",
		mcp.WithDescription("Open a new window for an app and focus it"),
		mcp.WithString("app", mcp.Required(), mcp.Description("App id, e.g. 'notes' or 'terminal'")),
		mcp.WithObject("args", mcp.Description("Optional payload handed to the app once")),
	), s.handleLaunch)

	s.mcp.AddTool(mcp.NewTool("close_window",
		mcp.WithDescription("Close a window"), id,
	), s.windowCommand(s.client.CloseWindow))

	s.mcp.AddTool(mcp.NewTool("focus_window",
		mcp.WithDescription("Raise a window to the top and make it active, restoring it if minimized"), id,
	), s.windowCommand(s.client.Focus))

	s.mcp.AddTool(mcp.NewTool("minimize_window",
		mcp.WithDescription("Toggle a window's minimized flag"), id,
	), s.windowCommand(s.client.Minimize))

	s.mcp.AddTool(mcp.NewTool("maximize_window",
		mcp.WithDescription("Toggle a window's maximized flag"), id,
	), s.windowCommand(s.client.Maximize))

	s.mcp.AddTool(mcp.NewTool("move_window",
		mcp.WithDescription("Set a window's top-left corner in desktop pixels"), id,
		mcp.WithNumber("x", mcp.Required()),
		mcp.WithNumber("y", mcp.Required()),
	), s.handleMove)

	s.mcp.AddTool(mcp.NewTool("resize_window",
		mcp.WithDescription("Set a window's size in pixels; 0x0 restores the app default"), id,
		mcp.WithNumber("width", mcp.Required()),
		mcp.WithNumber("height", mcp.Required()),
	), s.handleResize)

	s.mcp.AddTool(mcp.NewTool("drag_window",
		mcp.WithDescription("Drag a window by its title bar from one point to another, as a user would"), id,
		mcp.WithNumber("from_x", mcp.Required()),
		mcp.WithNumber("from_y", mcp.Required()),
		mcp.WithNumber("to_x", mcp.Required()),
		mcp.WithNumber("to_y", mcp.Required()),
		mcp.WithString("edge", mcp.Description("Resize from this edge (n, s, e, w, ne, nw, se, sw) instead of moving")),
	), s.handleDrag)

	s.mcp.AddTool(mcp.NewTool("cycle_focus",
		mcp.WithDescription("Focus the next (or previous) window in stacking order"),
		mcp.WithBoolean("backward", mcp.Description("Cycle toward lower windows")),
	), s.handleCycle)

	s.mcp.AddTool(mcp.NewTool("focus_direction",
		mcp.WithDescription("Focus the nearest window in a direction from the active one"),
		mcp.WithString("direction", mcp.Required(), mcp.Enum("left", "right", "up", "down")),
		mcp.WithBoolean("wrap", mcp.Description("Wrap around the desktop edge")),
	), s.handleFocusDirection)

	s.mcp.AddTool(mcp.NewTool("dock_state",
		mcp.WithDescription("Report whether the dock is hidden and which windows obstruct it"),
	), s.handleDock)

	s.mcp.AddTool(mcp.NewTool("desktop_state",
		mcp.WithDescription("Report desktop size, theme and launcher state"),
	), s.handleDesktop)

	s.mcp.AddTool(mcp.NewTool("set_theme",
		mcp.WithDescription("Update theme preferences; omitted fields keep their value"),
		mcp.WithString("wallpaper"),
		mcp.WithBoolean("darkMode"),
		mcp.WithNumber("brightness", mcp.Description("0-100")),
		mcp.WithNumber("volume", mcp.Description("0-100")),
	), s.handleSetTheme)
}

// resultToText serializes a tool result to YAML
func resultToText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func textResult(v interface{}) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(resultToText(v)), nil
}

func errorResult(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func (s *Server) windowCommand(fn func(context.Context, string) (bool, error)) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := models.GetString(request.GetArguments(), "id")
		if err != nil {
			return errorResult(err)
		}
		changed, err := fn(ctx, id)
		if err != nil {
			return errorResult(err)
		}
		return textResult(map[string]interface{}{"id": id, "changed": changed})
	}
}

func (s *Server) handleList(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	windows, err := s.client.List(ctx)
	if err != nil {
		return errorResult(err)
	}
	if len(windows) == 0 {
		return mcp.NewToolResultText("no windows open\n"), nil
	}
	return textResult(windows)
}

func (s *Server) handleApps(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type appEntry struct {
		ID   string `yaml:"id"`
		Name string `yaml:"name"`
	}
	var entries []appEntry
	for _, d := range apps.LauncherApps() {
		entries = append(entries, appEntry{ID: string(d.ID), Name: d.Name})
	}
	return textResult(entries)
}

func (s *Server) handleLaunch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	app, err := models.GetString(params, "app")
	if err != nil {
		return errorResult(err)
	}
	id, err := s.client.Launch(ctx, app, params["args"])
	if err != nil {
		return errorResult(err)
	}
	return textResult(map[string]interface{}{"id": id})
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id, err := models.GetString(params, "id")
	if err != nil {
		return errorResult(err)
	}
	p, err := models.GetPoint(params)
	if err != nil {
		return errorResult(err)
	}
	changed, err := s.client.SetPosition(ctx, id, p.X, p.Y)
	if err != nil {
		return errorResult(err)
	}
	return textResult(map[string]interface{}{"id": id, "changed": changed})
}

func (s *Server) handleResize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id, err := models.GetString(params, "id")
	if err != nil {
		return errorResult(err)
	}
	width, err := models.GetFloat(params, "width")
	if err != nil {
		return errorResult(err)
	}
	height, err := models.GetFloat(params, "height")
	if err != nil {
		return errorResult(err)
	}
	changed, err := s.client.SetSize(ctx, id, width, height)
	if err != nil {
		return errorResult(err)
	}
	return textResult(map[string]interface{}{"id": id, "changed": changed})
}

func (s *Server) handleDrag(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id, err := models.GetString(params, "id")
	if err != nil {
		return errorResult(err)
	}
	var coords [4]float64
	for i, key := range []string{"from_x", "from_y", "to_x", "to_y"} {
		if coords[i], err = models.GetFloat(params, key); err != nil {
			return errorResult(err)
		}
	}
	from := types.Point{X: coords[0], Y: coords[1]}
	to := types.Point{X: coords[2], Y: coords[3]}

	edgeName, err := models.GetOptionalString(params, "edge", "")
	if err != nil {
		return errorResult(err)
	}
	if edgeName == "" {
		err = mouse.Drag(ctx, s.client, id, from, to, mouse.DefaultSteps)
	} else {
		edge, ok := types.ParseEdge(edgeName)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid edge %q", edgeName)), nil
		}
		err = mouse.ResizeEdge(ctx, s.client, id, edge, from, to, mouse.DefaultSteps)
	}
	if err != nil {
		return errorResult(err)
	}

	windows, err := s.client.List(ctx)
	if err != nil {
		return errorResult(err)
	}
	for _, w := range windows {
		if w.ID == id {
			return textResult(w)
		}
	}
	return mcp.NewToolResultError(fmt.Sprintf("window %s closed during the gesture", id)), nil
}

func (s *Server) handleCycle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	backward, err := models.GetOptionalBool(request.GetArguments(), "backward", false)
	if err != nil {
		return errorResult(err)
	}
	id, err := s.client.CycleFocus(ctx, !backward)
	if err != nil {
		return errorResult(err)
	}
	return textResult(map[string]interface{}{"active": id})
}

func (s *Server) handleFocusDirection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	name, err := models.GetString(params, "direction")
	if err != nil {
		return errorResult(err)
	}
	dir, ok := types.ParseDirection(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid direction %q", name)), nil
	}
	wrap, err := models.GetOptionalBool(params, "wrap", false)
	if err != nil {
		return errorResult(err)
	}
	id, err := s.client.FocusDirection(ctx, dir, wrap)
	if err != nil {
		return errorResult(err)
	}
	return textResult(map[string]interface{}{"active": id})
}

func (s *Server) handleDock(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d, err := s.client.DockState(ctx)
	if err != nil {
		return errorResult(err)
	}
	return textResult(d)
}

func (s *Server) handleDesktop(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d, err := s.client.Desktop(ctx)
	if err != nil {
		return errorResult(err)
	}
	return textResult(d)
}

func (s *Server) handleSetTheme(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	updates := make(map[string]interface{})
	for key, v := range request.GetArguments() {
		switch key {
		case "wallpaper", "darkMode", "brightness", "volume":
			updates[key] = v
		}
	}
	d, err := s.client.SetTheme(ctx, updates)
	if err != nil {
		return errorResult(err)
	}
	return textResult(d.Theme)
}

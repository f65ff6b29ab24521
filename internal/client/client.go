package client

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/etherdesk/etherwm/internal/models"
	"github.com/etherdesk/etherwm/internal/types"
)

const (
	DefaultSocketPath = "/tmp/etherwm.sock"
	DefaultTimeout    = 5 * time.Second
)

// Client talks to the etherwm session daemon
type Client struct {
	conn *Connection
}

// NewClient creates a new daemon client
func NewClient(socketPath string, timeout time.Duration) *Client {
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		conn: NewConnection(socketPath, timeout),
	}
}

// Connect establishes connection to the server
func (c *Client) Connect() error {
	return c.conn.Connect()
}

// Close closes the connection
func (c *Client) Close() error {
	return c.conn.Close()
}

// request is a helper to send a request and get the response
func (c *Client) request(ctx context.Context, method string, params map[string]interface{}) (*models.Response, error) {
	if !c.conn.IsConnected() {
		if err := c.Connect(); err != nil {
			return nil, err
		}
	}

	req := models.NewRequest(uuid.New().String(), method, params)
	return c.conn.SendRequest(ctx, req)
}

// CallMethod sends a generic RPC request with the given method and parameters
func (c *Client) CallMethod(ctx context.Context, method string, params map[string]interface{}) (map[string]interface{}, error) {
	resp, err := c.request(ctx, method, params)
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, fmt.Errorf("server error: %s", resp.GetError())
	}

	return resp.Result, nil
}

// Ping sends a ping request to test connectivity
func (c *Client) Ping(ctx context.Context) (map[string]interface{}, error) {
	return c.CallMethod(ctx, models.MethodPing, nil)
}

// GetServerInfo retrieves server information
func (c *Client) GetServerInfo(ctx context.Context) (map[string]interface{}, error) {
	return c.CallMethod(ctx, models.MethodServerInfo, nil)
}

// Dump retrieves the complete session state
func (c *Client) Dump(ctx context.Context) (map[string]interface{}, error) {
	return c.CallMethod(ctx, models.MethodDump, map[string]interface{}{})
}

// Launch opens a window for appID and returns the new window id.
// args is an optional JSON value handed to the app once.
func (c *Client) Launch(ctx context.Context, appID string, args interface{}) (string, error) {
	params := map[string]interface{}{"appId": appID}
	if args != nil {
		params["args"] = args
	}
	result, err := c.CallMethod(ctx, models.MethodLaunch, params)
	if err != nil {
		return "", err
	}
	id, _ := result["id"].(string)
	return id, nil
}

// windowCommand sends a command that targets one window and reports
// whether anything changed.
func (c *Client) windowCommand(ctx context.Context, method, id string, extra map[string]interface{}) (bool, error) {
	params := map[string]interface{}{"id": id}
	for k, v := range extra {
		params[k] = v
	}
	result, err := c.CallMethod(ctx, method, params)
	if err != nil {
		return false, err
	}
	changed, _ := result["changed"].(bool)
	return changed, nil
}

// CloseWindow removes a window
func (c *Client) CloseWindow(ctx context.Context, id string) (bool, error) {
	return c.windowCommand(ctx, models.MethodClose, id, nil)
}

// Focus raises a window and makes it active
func (c *Client) Focus(ctx context.Context, id string) (bool, error) {
	return c.windowCommand(ctx, models.MethodFocus, id, nil)
}

// Minimize toggles a window's minimized flag
func (c *Client) Minimize(ctx context.Context, id string) (bool, error) {
	return c.windowCommand(ctx, models.MethodMinimize, id, nil)
}

// Maximize toggles a window's maximized flag
func (c *Client) Maximize(ctx context.Context, id string) (bool, error) {
	return c.windowCommand(ctx, models.MethodMaximize, id, nil)
}

// SetPosition moves a window's top-left corner
func (c *Client) SetPosition(ctx context.Context, id string, x, y float64) (bool, error) {
	return c.windowCommand(ctx, models.MethodSetPosition, id, map[string]interface{}{"x": x, "y": y})
}

// SetSize resizes a window without enforcing minimums
func (c *Client) SetSize(ctx context.Context, id string, width, height float64) (bool, error) {
	return c.windowCommand(ctx, models.MethodSetSize, id, map[string]interface{}{"width": width, "height": height})
}

// SetTitle changes a window title
func (c *Client) SetTitle(ctx context.Context, id, title string) (bool, error) {
	return c.windowCommand(ctx, models.MethodSetTitle, id, map[string]interface{}{"title": title})
}

// List returns every window in registry order
func (c *Client) List(ctx context.Context) ([]*models.Window, error) {
	result, err := c.CallMethod(ctx, models.MethodList, nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Windows []*models.Window `json:"windows"`
	}
	if err := models.Decode(result, &out); err != nil {
		return nil, fmt.Errorf("failed to parse window list: %w", err)
	}
	return out.Windows, nil
}

// CycleFocus focuses the next or previous visible window
func (c *Client) CycleFocus(ctx context.Context, forward bool) (string, error) {
	result, err := c.CallMethod(ctx, models.MethodCycleFocus, map[string]interface{}{"forward": forward})
	if err != nil {
		return "", err
	}
	id, _ := result["id"].(string)
	return id, nil
}

// FocusDirection focuses the nearest window in a direction
func (c *Client) FocusDirection(ctx context.Context, dir types.Direction, wrap bool) (string, error) {
	result, err := c.CallMethod(ctx, models.MethodFocusDir, map[string]interface{}{
		"direction": dir.String(),
		"wrap":      wrap,
	})
	if err != nil {
		return "", err
	}
	id, _ := result["id"].(string)
	return id, nil
}

// PointerDown starts a gesture. mode is drag, resize or auto; edge is
// only used for resize.
func (c *Client) PointerDown(ctx context.Context, id, mode string, edge types.Edge, p types.Point) (bool, error) {
	params := map[string]interface{}{"x": p.X, "y": p.Y, "mode": mode}
	if id != "" {
		params["id"] = id
	}
	if edge != "" {
		params["edge"] = string(edge)
	}
	result, err := c.CallMethod(ctx, models.MethodPointerDown, params)
	if err != nil {
		return false, err
	}
	started, _ := result["started"].(bool)
	return started, nil
}

// PointerMove feeds a pointer-move to the active gesture
func (c *Client) PointerMove(ctx context.Context, p types.Point) error {
	_, err := c.CallMethod(ctx, models.MethodPointerMove, map[string]interface{}{"x": p.X, "y": p.Y})
	return err
}

// PointerUp ends the active gesture
func (c *Client) PointerUp(ctx context.Context) (bool, error) {
	result, err := c.CallMethod(ctx, models.MethodPointerUp, nil)
	if err != nil {
		return false, err
	}
	ended, _ := result["ended"].(bool)
	return ended, nil
}

// DockState returns the dock visibility verdict
func (c *Client) DockState(ctx context.Context) (*models.Dock, error) {
	result, err := c.CallMethod(ctx, models.MethodDockState, nil)
	if err != nil {
		return nil, err
	}
	var dock models.Dock
	if err := models.Decode(result, &dock); err != nil {
		return nil, fmt.Errorf("failed to parse dock state: %w", err)
	}
	return &dock, nil
}

// Desktop returns the desktop preferences
func (c *Client) Desktop(ctx context.Context) (*models.Desktop, error) {
	result, err := c.CallMethod(ctx, models.MethodDesktopGet, nil)
	if err != nil {
		return nil, err
	}
	var desktop models.Desktop
	if err := models.Decode(result, &desktop); err != nil {
		return nil, fmt.Errorf("failed to parse desktop: %w", err)
	}
	return &desktop, nil
}

// SetTheme updates theme preferences. Only the keys present in updates
// are changed.
func (c *Client) SetTheme(ctx context.Context, updates map[string]interface{}) (*models.Desktop, error) {
	result, err := c.CallMethod(ctx, models.MethodSetTheme, updates)
	if err != nil {
		return nil, err
	}
	var desktop models.Desktop
	if err := models.Decode(result, &desktop); err != nil {
		return nil, fmt.Errorf("failed to parse desktop: %w", err)
	}
	return &desktop, nil
}

// ToggleLauncher flips the launcher overlay and returns whether it is open
func (c *Client) ToggleLauncher(ctx context.Context) (bool, error) {
	result, err := c.CallMethod(ctx, models.MethodToggleLaunch, nil)
	if err != nil {
		return false, err
	}
	open, _ := result["open"].(bool)
	return open, nil
}

// SaveState asks the daemon to persist the session now
func (c *Client) SaveState(ctx context.Context) (map[string]interface{}, error) {
	return c.CallMethod(ctx, models.MethodStateSave, nil)
}

// ResetState closes every window and restores desktop defaults
func (c *Client) ResetState(ctx context.Context) (map[string]interface{}, error) {
	return c.CallMethod(ctx, models.MethodStateReset, nil)
}

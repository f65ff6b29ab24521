package mcptools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/etherdesk/etherwm/internal/client"
	"github.com/etherdesk/etherwm/internal/dock"
	"github.com/etherdesk/etherwm/internal/server"
	"github.com/etherdesk/etherwm/internal/state"
)

// startDaemon runs a daemon on a temp socket and returns a connected client
func startDaemon(t *testing.T) *client.Client {
	t.Helper()
	dir, err := os.MkdirTemp("", "etherwm-mcp")
	if err != nil {
		t.Fatal(err)
	}

	sess, err := state.Open(filepath.Join(dir, "state.json"), state.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	socket := filepath.Join(dir, "s.sock")
	srv := server.New(sess, server.Options{SocketPath: socket, Dock: dock.DefaultConfig()})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	c := client.NewClient(socket, 2*time.Second)
	for i := 0; i < 50; i++ {
		if _, err = c.Ping(context.Background()); err == nil {
			break
		}
		c.Close()
		c = client.NewClient(socket, 2*time.Second)
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("daemon never came up: %v", err)
	}

	t.Cleanup(func() {
		c.Close()
		cancel()
		<-done
		os.RemoveAll(dir)
	})
	return c
}

func request(args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", res.Content[0])
	}
	return tc.Text
}

func TestLaunchAndList(t *testing.T) {
	s := New(startDaemon(t), "test")
	ctx := context.Background()

	res, err := s.handleList(ctx, request(nil))
	if err != nil {
		t.Fatal(err)
	}
	if got := text(t, res); !strings.Contains(got, "no windows") {
		t.Errorf("empty list = %q", got)
	}

	res, err = s.handleLaunch(ctx, request(map[string]interface{}{"app": "notes"}))
	if err != nil || res.IsError {
		t.Fatalf("launch failed: %v %s", err, text(t, res))
	}
	if !strings.Contains(text(t, res), "id: notes-") {
		t.Errorf("launch result = %q", text(t, res))
	}

	res, _ = s.handleList(ctx, request(nil))
	if got := text(t, res); !strings.Contains(got, "title: Notes") {
		t.Errorf("list = %q", got)
	}
}

func TestLaunchUnknownApp(t *testing.T) {
	s := New(startDaemon(t), "test")
	res, err := s.handleLaunch(context.Background(), request(map[string]interface{}{"app": "solitaire"}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("unknown app should be a tool error")
	}
}

func TestWindowCommandRequiresID(t *testing.T) {
	s := New(startDaemon(t), "test")
	res, err := s.windowCommand(s.client.Focus)(context.Background(), request(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError || !strings.Contains(text(t, res), "id") {
		t.Errorf("missing id result = %+v", res)
	}
}

func TestMoveAndDrag(t *testing.T) {
	c := startDaemon(t)
	s := New(c, "test")
	ctx := context.Background()

	id, err := c.Launch(ctx, "notes", nil)
	if err != nil {
		t.Fatal(err)
	}

	res, _ := s.handleMove(ctx, request(map[string]interface{}{"id": id, "x": 100.0, "y": 100.0}))
	if res.IsError || !strings.Contains(text(t, res), "changed: true") {
		t.Fatalf("move = %q", text(t, res))
	}

	res, _ = s.handleDrag(ctx, request(map[string]interface{}{
		"id": id, "from_x": 150.0, "from_y": 110.0, "to_x": 290.0, "to_y": 250.0,
	}))
	if res.IsError {
		t.Fatalf("drag error: %s", text(t, res))
	}

	windows, err := c.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if p := windows[0].Position; p.X != 240 || p.Y != 240 {
		t.Errorf("position after drag = %v, want 240,240", p)
	}

	res, _ = s.handleDrag(ctx, request(map[string]interface{}{
		"id": id, "from_x": 0.0, "from_y": 0.0, "to_x": 1.0, "to_y": 1.0, "edge": "middle",
	}))
	if !res.IsError {
		t.Error("invalid edge should be a tool error")
	}
}

func TestResizeByEdge(t *testing.T) {
	c := startDaemon(t)
	s := New(c, "test")
	ctx := context.Background()

	id, _ := c.Launch(ctx, "notes", nil)
	if _, err := c.SetSize(ctx, id, 600, 400); err != nil {
		t.Fatal(err)
	}
	res, _ := s.handleDrag(ctx, request(map[string]interface{}{
		"id": id, "from_x": 0.0, "from_y": 0.0, "to_x": 50.0, "to_y": 20.0, "edge": "se",
	}))
	if res.IsError {
		t.Fatalf("resize error: %s", text(t, res))
	}
	windows, _ := c.List(ctx)
	if sz := windows[0].Size; sz.Width != 650 || sz.Height != 420 {
		t.Errorf("size = %v, want 650x420", sz)
	}
}

func TestThemeAndDock(t *testing.T) {
	s := New(startDaemon(t), "test")
	ctx := context.Background()

	res, _ := s.handleSetTheme(ctx, request(map[string]interface{}{"brightness": 250.0, "bogus": true}))
	if res.IsError || !strings.Contains(text(t, res), "brightness: 100") {
		t.Errorf("set theme = %q", text(t, res))
	}

	res, _ = s.handleDock(ctx, request(nil))
	if res.IsError || !strings.Contains(text(t, res), "hidden: false") {
		t.Errorf("dock = %q", text(t, res))
	}

	res, _ = s.handleApps(ctx, request(nil))
	if !strings.Contains(text(t, res), "name: Finder") {
		t.Errorf("apps = %q", text(t, res))
	}
}

func TestFocusDirectionInvalid(t *testing.T) {
	s := New(startDaemon(t), "test")
	res, _ := s.handleFocusDirection(context.Background(), request(map[string]interface{}{"direction": "sideways"}))
	if !res.IsError {
		t.Error("invalid direction should be a tool error")
	}
}

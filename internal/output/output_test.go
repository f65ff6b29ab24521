package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/etherdesk/etherwm/internal/apps"
	"github.com/etherdesk/etherwm/internal/models"
	"github.com/etherdesk/etherwm/internal/types"
)

func rect(x, y, w, h float64) *types.Rect {
	return &types.Rect{X: x, Y: y, Width: w, Height: h}
}

func testState() *models.State {
	return &models.State{
		Windows: []*models.Window{
			{ID: "finder-1", AppID: "finder", AppName: "Finder", Title: "Back", Bounds: rect(128, 96, 256, 192), ZIndex: 1},
			{ID: "notes-1", AppID: "notes", AppName: "Notes", Title: "Front", Bounds: rect(64, 64, 640, 480), ZIndex: 3, IsActive: true},
			{ID: "clock-1", AppID: "clock", AppName: "Clock", Title: "Hidden", IsMinimized: true, ZIndex: 2},
		},
		ActiveWindowID: "notes-1",
		Desktop:        models.Desktop{Width: 1024, Height: 768, MenuBarHeight: 32},
		Dock:           models.Dock{Region: types.Rect{X: 300, Y: 680, Width: 424, Height: 80}},
	}
}

func TestCanvasDrawWindowOccludes(t *testing.T) {
	c := NewCanvas(10, 6, false)
	c.DrawText(2, 2, "xyz")
	c.DrawWindow(1, 1, 6, 4, false)

	if got := c.GetCell(2, 2); got != ' ' {
		t.Errorf("interior cell = %q, want blank", got)
	}
	if got := c.GetCell(1, 1); got != '+' {
		t.Errorf("corner = %q, want +", got)
	}
	if got := c.GetCell(4, 2); got != ' ' {
		t.Errorf("interior cell = %q, want blank", got)
	}
}

func TestCanvasTitleBarDivider(t *testing.T) {
	c := NewCanvas(8, 6, false)
	c.DrawWindow(0, 0, 8, 6, true)
	if got := c.GetCell(0, 2); got != '+' {
		t.Errorf("divider tee = %q, want +", got)
	}
	if got := c.GetCell(3, 2); got != '-' {
		t.Errorf("divider = %q, want -", got)
	}
}

func TestCanvasRenderPaintsMarks(t *testing.T) {
	c := NewCanvas(3, 1, false)
	c.DrawText(0, 0, "abc")
	c.MarkRect(1, 0, 1, 1, MarkActive)

	got := c.Render(func(m Mark, s string) string { return "<" + s + ">" })
	if got != "a<b>c" {
		t.Errorf("Render() = %q, want %q", got, "a<b>c")
	}
	if c.String() != "abc" {
		t.Errorf("String() = %q, want abc", c.String())
	}
}

func TestCanvasOutOfBounds(t *testing.T) {
	c := NewCanvas(2, 2, true)
	c.SetCell(-1, 0, 'x')
	c.SetCell(5, 5, 'x')
	if got := c.GetCell(5, 5); got != ' ' {
		t.Errorf("GetCell out of bounds = %q", got)
	}
	if c.MarkAt(-1, -1) != MarkNone {
		t.Error("MarkAt out of bounds should be MarkNone")
	}
}

func TestDrawTextCenteredTruncates(t *testing.T) {
	c := NewCanvas(6, 1, false)
	c.DrawTextCentered(0, 0, 4, "abcdef")
	if got := c.String(); got != "abcd  " {
		t.Errorf("got %q", got)
	}

	c = NewCanvas(6, 1, false)
	c.DrawTextCentered(0, 0, 6, "ab")
	if got := c.String(); got != "  ab  " {
		t.Errorf("got %q", got)
	}
}

func TestScalingContext(t *testing.T) {
	sc := NewScalingContext(types.Size{Width: 1024, Height: 768}, 130, 60)
	if sc.ScaleX != 0.125 || sc.ScaleY != 0.0625 {
		t.Fatalf("scale = %v,%v", sc.ScaleX, sc.ScaleY)
	}
	if sc.TermWidth != 130 || sc.TermHeight != 50 {
		t.Errorf("term size = %dx%d, want 130x50", sc.TermWidth, sc.TermHeight)
	}

	x, y := sc.PixelToTerminal(64, 64)
	if x != 9 || y != 5 {
		t.Errorf("PixelToTerminal = %d,%d, want 9,5", x, y)
	}

	w, h := sc.ScaleSize(8, 8)
	if w != 3 || h != 2 {
		t.Errorf("ScaleSize minimum = %dx%d, want 3x2", w, h)
	}
}

func TestScalingContextHeightBound(t *testing.T) {
	// A short terminal limits the scale by rows
	sc := NewScalingContext(types.Size{Width: 1024, Height: 768}, 500, 26)
	if sc.ScaleY*768 > 24 {
		t.Errorf("desktop rows = %v, want <= 24", sc.ScaleY*768)
	}
	if sc.ScaleX != sc.ScaleY*AspectRatio {
		t.Errorf("aspect not preserved: %v vs %v", sc.ScaleX, sc.ScaleY)
	}
}

func TestClampToCanvas(t *testing.T) {
	sc := NewScalingContext(types.Size{Width: 1024, Height: 768}, 130, 60)

	tests := []struct {
		name       string
		x, y, w, h int
		want       [4]int
	}{
		{"inside", 2, 2, 10, 5, [4]int{2, 2, 10, 5}},
		{"left overflow", -4, 2, 10, 5, [4]int{0, 2, 6, 5}},
		{"right overflow", 125, 2, 10, 5, [4]int{125, 2, 5, 5}},
		{"fully off", 140, 2, 10, 5, [4]int{140, 2, 0, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, w, h := sc.ClampToCanvas(tt.x, tt.y, tt.w, tt.h)
			if got := [4]int{x, y, w, h}; got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPaintOrder(t *testing.T) {
	order := PaintOrder(testState().Windows)
	if len(order) != 2 {
		t.Fatalf("got %d windows, want 2", len(order))
	}
	if order[0].ID != "finder-1" || order[1].ID != "notes-1" {
		t.Errorf("order = %s, %s", order[0].ID, order[1].ID)
	}
}

func TestVisualizeDesktop(t *testing.T) {
	opts := VisualizationOptions{ShowDock: true, MaxWidth: 130, MaxHeight: 60}
	out := VisualizeDesktop(testState(), opts).String()

	if !strings.Contains(out, "Front") {
		t.Error("topmost window label missing")
	}
	if strings.Contains(out, "Back") {
		t.Error("covered window label should be hidden")
	}
	if strings.Contains(out, "Hidden") {
		t.Error("minimized window should not be drawn")
	}
	if !strings.Contains(out, "dock") {
		t.Error("dock region missing")
	}
}

func TestVisualizeDesktopMarksActive(t *testing.T) {
	opts := VisualizationOptions{MaxWidth: 130, MaxHeight: 60}
	c := VisualizeDesktop(testState(), opts)
	// notes-1 spans cells 9..88 x 5..34
	if got := c.MarkAt(10, 10); got != MarkActive {
		t.Errorf("mark = %v, want MarkActive", got)
	}
	if got := c.MarkAt(100, 40); got == MarkActive {
		t.Error("cell outside the active window marked active")
	}
}

func TestRenderVisualizationFooter(t *testing.T) {
	st := testState()
	st.Dock.Hidden = true
	out := RenderVisualization(st, VisualizationOptions{ShowIDs: true, ShowDock: true, MaxWidth: 130, MaxHeight: 60})

	for _, want := range []string{
		"Desktop 1024x768",
		"Total: 3 windows, active: notes-1, dock: hidden",
		"Minimized: clock-1",
		"Front [notes-1]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestPrintWindowsTable(t *testing.T) {
	var buf bytes.Buffer
	PrintWindowsTable(&buf, testState().Windows)
	out := buf.String()

	notes := strings.Index(out, "notes-1")
	finder := strings.Index(out, "finder-1")
	if notes < 0 || finder < 0 {
		t.Fatalf("table missing rows:\n%s", out)
	}
	if notes > finder {
		t.Error("topmost window should be listed first")
	}
	if !strings.Contains(out, "minimized") {
		t.Error("state column missing")
	}
}

func TestPrintAppsTable(t *testing.T) {
	var buf bytes.Buffer
	PrintAppsTable(&buf, apps.All(), testState().Windows)
	out := buf.String()
	for _, want := range []string{"Calculator", "320x450", "Task Manager"} {
		if !strings.Contains(out, want) {
			t.Errorf("apps table missing %q", want)
		}
	}
}

func TestPrintDockTable(t *testing.T) {
	var buf bytes.Buffer
	PrintDockTable(&buf, models.Dock{
		Hidden:      true,
		AutoHide:    true,
		Obstructing: []string{"notes-1"},
		Items:       []models.DockItem{{ID: "finder", Name: "Finder", Running: true}},
	})
	out := buf.String()
	for _, want := range []string{"Dock: hidden", "notes-1", "Finder"} {
		if !strings.Contains(out, want) {
			t.Errorf("dock output missing %q", want)
		}
	}
}

func TestPrintWindowDetail(t *testing.T) {
	var buf bytes.Buffer
	PrintWindowDetail(&buf, testState().Windows[2])
	out := buf.String()
	for _, want := range []string{"Window ID: clock-1", "Size: default", "Bounds: -", "State: minimized"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail missing %q", want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"a long title", 8, "a lon..."},
		{"abc", 2, "ab"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

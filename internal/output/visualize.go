package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/sys/unix"

	"github.com/etherdesk/etherwm/internal/apps"
	"github.com/etherdesk/etherwm/internal/models"
	"github.com/etherdesk/etherwm/internal/types"
)

// VisualizationOptions controls the appearance of the visualization
type VisualizationOptions struct {
	UseUnicode bool
	ShowIDs    bool
	ShowDock   bool
	MaxWidth   int
	MaxHeight  int
}

// DefaultVisualizationOptions returns sensible defaults
func DefaultVisualizationOptions() VisualizationOptions {
	width, height := getTerminalSize()
	return VisualizationOptions{
		UseUnicode: supportsUnicode(),
		ShowIDs:    true,
		ShowDock:   true,
		MaxWidth:   width,
		MaxHeight:  height - 4, // header and footer lines
	}
}

// VisualizeDesktop renders the desktop as a canvas with windows drawn in
// paint order, so the topmost window covers the ones beneath it.
func VisualizeDesktop(state *models.State, opts VisualizationOptions) *Canvas {
	desktop := types.Size{Width: state.Desktop.Width, Height: state.Desktop.Height}
	sc := NewScalingContext(desktop, opts.MaxWidth, opts.MaxHeight)
	canvas := NewCanvas(sc.TermWidth, sc.TermHeight, opts.UseUnicode)

	canvas.DrawBox(0, 0, sc.TermWidth, sc.TermHeight)

	// Menu bar row
	if state.Desktop.MenuBarHeight > 0 {
		_, y := sc.PixelToTerminal(0, state.Desktop.MenuBarHeight)
		if y > Border && y < sc.TermHeight-1 {
			canvas.DrawHLine(Border, y, sc.TermWidth-2*Border)
			canvas.MarkRect(Border, Border, sc.TermWidth-2*Border, y-Border+1, MarkMenuBar)
		}
	}

	if opts.ShowDock && !state.Dock.Hidden && state.Dock.Region.Width > 0 {
		x, y, w, h := sc.RectToTerminal(state.Dock.Region)
		canvas.DrawDashedBox(x, y, w, h)
		canvas.DrawTextCentered(x+1, y+h/2, w-2, "dock")
		canvas.MarkRect(x, y, w, h, MarkDock)
	}

	for _, win := range PaintOrder(state.Windows) {
		if win.Bounds == nil {
			continue
		}
		x, y, w, h := sc.RectToTerminal(*win.Bounds)
		if w < 3 || h < 2 {
			continue
		}

		chrome := !apps.Chromeless(apps.ID(win.AppID))
		canvas.DrawWindow(x, y, w, h, chrome && !win.IsMaximized)

		mark := MarkWindow
		if win.IsActive {
			mark = MarkActive
		}
		canvas.MarkRect(x, y, w, h, mark)

		if h >= 3 {
			canvas.DrawText(x+1, y+1, truncate(createWindowLabel(win, opts.ShowIDs), w-2))
		}
	}

	return canvas
}

// PaintOrder returns the non-minimized windows sorted bottom to top
func PaintOrder(windows []*models.Window) []*models.Window {
	out := make([]*models.Window, 0, len(windows))
	for _, w := range windows {
		if !w.IsMinimized {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ZIndex < out[j].ZIndex
	})
	return out
}

// createWindowLabel creates a label for a window
func createWindowLabel(win *models.Window, showID bool) string {
	title := win.Title
	if title == "" {
		title = win.AppName
	}
	if title == "" {
		title = "Unknown"
	}

	if showID {
		return fmt.Sprintf("%s [%s]", title, win.ID)
	}
	return title
}

// header describes the desktop above the canvas
func header(state *models.State) string {
	theme := state.Desktop.Theme
	mode := "light"
	if theme.DarkMode {
		mode = "dark"
	}
	return fmt.Sprintf("Desktop %.0fx%.0f (%s, wallpaper %s)",
		state.Desktop.Width, state.Desktop.Height, mode, theme.Wallpaper)
}

// footer summarizes what the canvas cannot show
func footer(state *models.State) string {
	var minimized []string
	for _, w := range state.Windows {
		if w.IsMinimized {
			minimized = append(minimized, w.ID)
		}
	}

	active := state.ActiveWindowID
	if active == "" {
		active = "none"
	}
	dock := "visible"
	if state.Dock.Hidden {
		dock = "hidden"
	}

	line := fmt.Sprintf("Total: %d windows, active: %s, dock: %s", len(state.Windows), active, dock)
	if len(minimized) > 0 {
		line += "\nMinimized: " + strings.Join(minimized, ", ")
	}
	if state.Gesture.Mode != "" && state.Gesture.Mode != "idle" {
		line += fmt.Sprintf("\nGesture: %s %s %s", state.Gesture.Mode, state.Gesture.WindowID, state.Gesture.Edge)
	}
	return line
}

// RenderVisualization renders header, canvas and footer as plain text
func RenderVisualization(state *models.State, opts VisualizationOptions) string {
	canvas := VisualizeDesktop(state, opts)
	return header(state) + "\n" + canvas.String() + "\n" + footer(state) + "\n"
}

// PrintVisualization prints a colored visualization
func PrintVisualization(w io.Writer, state *models.State, opts VisualizationOptions) {
	canvas := VisualizeDesktop(state, opts)

	var paint func(Mark, string) string
	if !color.NoColor {
		palette := map[Mark]*color.Color{
			MarkWindow:  color.New(color.FgCyan),
			MarkActive:  color.New(color.FgGreen, color.Bold),
			MarkDock:    color.New(color.FgYellow),
			MarkMenuBar: color.New(color.FgHiBlack),
		}
		paint = func(m Mark, s string) string {
			if c, ok := palette[m]; ok {
				return c.Sprint(s)
			}
			return s
		}
	}

	fmt.Fprintln(w, header(state))
	fmt.Fprintln(w, canvas.Render(paint))
	fmt.Fprintln(w, footer(state))
}

// getTerminalSize returns the current terminal dimensions
func getTerminalSize() (width, height int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// supportsUnicode checks if the terminal supports Unicode
func supportsUnicode() bool {
	lang := os.Getenv("LANG")
	lcAll := os.Getenv("LC_ALL")

	return strings.Contains(lang, "UTF-8") || strings.Contains(lcAll, "UTF-8")
}

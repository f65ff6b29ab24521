package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/etherdesk/etherwm/internal/apps"
	"github.com/etherdesk/etherwm/internal/models"
)

// PrintWindowsTable prints windows in a table format, topmost first
func PrintWindowsTable(w io.Writer, windows []*models.Window) {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Title", "App", "Bounds", "Z", "State", "Active")

	sorted := make([]*models.Window, len(windows))
	copy(sorted, windows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ZIndex > sorted[j].ZIndex
	})

	for _, win := range sorted {
		table.Append(
			win.ID,
			truncate(win.Title, 30),
			truncate(win.AppName, 20),
			win.FormatBounds(),
			fmt.Sprintf("%d", win.ZIndex),
			win.State(),
			yesNo(win.IsActive),
		)
	}

	table.Render()
}

// PrintAppsTable prints the app registry with a running-window count per app
func PrintAppsTable(w io.Writer, descriptors []apps.Descriptor, windows []*models.Window) {
	running := make(map[string]int)
	for _, win := range windows {
		running[win.AppID]++
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Default Size", "Title Bar", "Dock", "Windows")

	for _, d := range descriptors {
		table.Append(
			string(d.ID),
			d.Name,
			fmt.Sprintf("%.0fx%.0f", d.DefaultSize.Width, d.DefaultSize.Height),
			yesNo(!d.HideTitleBar),
			yesNo(!d.HideFromDock),
			fmt.Sprintf("%d", running[string(d.ID)]),
		)
	}

	table.Render()
}

// PrintDockTable prints the dock verdict followed by its icons
func PrintDockTable(w io.Writer, dock models.Dock) {
	status := "visible"
	if dock.Hidden {
		status = "hidden"
	}
	r := dock.Region
	fmt.Fprintf(w, "Dock: %s (auto-hide: %v)\n", status, dock.AutoHide)
	fmt.Fprintf(w, "Region: %.0f,%.0f %.0fx%.0f\n", r.X, r.Y, r.Width, r.Height)
	if len(dock.Obstructing) > 0 {
		fmt.Fprintf(w, "Obstructed by: %v\n", dock.Obstructing)
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Running")
	for _, item := range dock.Items {
		table.Append(item.ID, item.Name, yesNo(item.Running))
	}
	table.Render()
}

// PrintWindowDetail prints detailed information about a window
func PrintWindowDetail(w io.Writer, win *models.Window) {
	fmt.Fprintf(w, "Window ID: %s\n", win.ID)
	fmt.Fprintf(w, "Title: %s\n", win.Title)
	fmt.Fprintf(w, "Application: %s (%s)\n", win.AppName, win.AppID)
	fmt.Fprintf(w, "Position: (%.0f, %.0f)\n", win.Position.X, win.Position.Y)
	if win.Size.Width == 0 && win.Size.Height == 0 {
		fmt.Fprintln(w, "Size: default")
	} else {
		fmt.Fprintf(w, "Size: %.0fx%.0f\n", win.Size.Width, win.Size.Height)
	}
	fmt.Fprintf(w, "Bounds: %s\n", win.FormatBounds())
	fmt.Fprintf(w, "Z-Index: %d\n", win.ZIndex)
	fmt.Fprintf(w, "State: %s\n", win.State())
	fmt.Fprintf(w, "Active: %v\n", win.IsActive)
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:max(maxLen, 0)])
	}
	return string(runes[:maxLen-3]) + "..."
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

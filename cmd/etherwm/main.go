package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/etherdesk/etherwm/internal/apps"
	"github.com/etherdesk/etherwm/internal/client"
	"github.com/etherdesk/etherwm/internal/config"
	"github.com/etherdesk/etherwm/internal/logging"
	"github.com/etherdesk/etherwm/internal/models"
	"github.com/etherdesk/etherwm/internal/mouse"
	"github.com/etherdesk/etherwm/internal/output"
	"github.com/etherdesk/etherwm/internal/server"
	"github.com/etherdesk/etherwm/internal/types"
	"github.com/etherdesk/etherwm/internal/window"
)

var (
	socketPath string
	timeout    time.Duration
	jsonOutput bool
	noColor    bool
	debugMode  bool

	// Color functions
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	keyColor     = color.New(color.FgYellow)
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "etherwm",
	Short: "Window and desktop session manager for the Ether desktop",
	Long: `etherwm keeps the window registry of a simulated desktop: which apps are
open, where their windows sit, their stacking order and flags, the dock
auto-hide verdict and the theme preferences.

Run 'etherwm serve' to start the session daemon; the other commands talk
to it over a Unix socket.`,
	Version:       server.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyConfigDefaults(cmd)
	},
}

// pingCmd tests server connectivity
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Test connection to the session daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		defer c.Close()

		start := time.Now()
		result, err := c.Ping(context.Background())
		elapsed := time.Since(start)
		if err != nil {
			return fmt.Errorf("ping failed: %w", err)
		}

		if jsonOutput {
			return printJSON(result)
		}

		successColor.Println("✓ Pong received")
		fmt.Printf("Response time: %v\n", elapsed)
		return nil
	},
}

// infoCmd gets server information
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Get session daemon information",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		defer c.Close()

		result, err := c.GetServerInfo(context.Background())
		if err != nil {
			return fmt.Errorf("failed to get server info: %w", err)
		}

		if jsonOutput {
			return printJSON(result)
		}

		for _, key := range []string{"name", "version", "socketPath", "statePath", "autosave", "uptimeSeconds", "summary"} {
			if v, ok := result[key]; ok {
				keyColor.Printf("%s: ", key)
				fmt.Println(v)
			}
		}
		if methods, ok := result["methods"].([]interface{}); ok {
			keyColor.Println("\nMethods:")
			for _, m := range methods {
				fmt.Printf("  %v\n", m)
			}
		}
		return nil
	},
}

var dumpYAML bool

// dumpCmd dumps the complete state
var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the complete session state",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		defer c.Close()

		result, err := c.Dump(context.Background())
		if err != nil {
			return fmt.Errorf("failed to dump state: %w", err)
		}

		if dumpYAML {
			b, err := yaml.Marshal(result)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(b)
			return err
		}
		return printJSON(result)
	},
}

// Visualization flags
var (
	showASCII   bool
	showUnicode bool
	showNoIDs   bool
	showNoDock  bool
	showWidth   int
	showHeight  int
)

// showCmd draws the desktop
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Draw the desktop with its windows",
	Long: `Displays an ASCII/Unicode drawing of the desktop. Windows are drawn in
stacking order so the topmost window covers the ones beneath it; the
active window is highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := getState()
		if err != nil {
			return err
		}
		output.PrintVisualization(os.Stdout, state, getVisualizationOptions())
		return nil
	},
}

// listCmd lists windows
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List open windows",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		defer c.Close()

		windows, err := c.List(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list windows: %w", err)
		}

		if jsonOutput {
			return printJSON(windows)
		}
		if len(windows) == 0 {
			infoColor.Println("No windows open")
			return nil
		}
		output.PrintWindowsTable(os.Stdout, windows)
		return nil
	},
}

// appsCmd lists the app registry
var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List launchable apps",
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			return printJSON(apps.All())
		}

		// Running counts are best effort; the registry is static
		var windows []*models.Window
		c := newClient()
		defer c.Close()
		if ws, err := c.List(context.Background()); err == nil {
			windows = ws
		} else {
			logging.Debug().Err(err).Msg("apps: daemon unavailable, showing registry only")
		}

		output.PrintAppsTable(os.Stdout, apps.All(), windows)
		return nil
	},
}

// MARK: - Window Commands

var launchArgs string

// launchCmd opens a window
var launchCmd = &cobra.Command{
	Use:   "launch <app>",
	Short: "Launch an app in a new window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var payload interface{}
		if launchArgs != "" {
			if err := json.Unmarshal([]byte(launchArgs), &payload); err != nil {
				return fmt.Errorf("--args must be JSON: %w", err)
			}
		}

		c := newClient()
		defer c.Close()

		id, err := c.Launch(context.Background(), args[0], payload)
		if err != nil {
			return fmt.Errorf("failed to launch %s: %w", args[0], err)
		}

		if jsonOutput {
			return printJSON(map[string]string{"id": id})
		}
		successColor.Printf("✓ Launched %s\n", id)
		return nil
	},
}

// idCommand builds a subcommand that applies a single-window command
func idCommand(use, short, verb string, fn func(*client.Client, context.Context, string) (bool, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <window-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			defer c.Close()

			changed, err := fn(c, context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to %s window: %w", use, err)
			}
			return reportChange(args[0], verb, changed)
		},
	}
}

var (
	closeCmd    = idCommand("close", "Close a window", "closed", (*client.Client).CloseWindow)
	minimizeCmd = idCommand("minimize", "Toggle a window's minimized flag", "minimize toggled", (*client.Client).Minimize)
	maximizeCmd = idCommand("maximize", "Toggle a window's maximized flag", "maximize toggled", (*client.Client).Maximize)
)

// moveCmd sets a window position
var moveCmd = &cobra.Command{
	Use:   "move <window-id> <x> <y>",
	Short: "Move a window's top-left corner",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		xy, err := parseFloats(args[1:])
		if err != nil {
			return err
		}

		c := newClient()
		defer c.Close()

		changed, err := c.SetPosition(context.Background(), args[0], xy[0], xy[1])
		if err != nil {
			return fmt.Errorf("failed to move window: %w", err)
		}
		return reportChange(args[0], "moved", changed)
	},
}

// resizeCmd sets a window size
var resizeCmd = &cobra.Command{
	Use:   "resize <window-id> <width> <height>",
	Short: "Resize a window (0 0 restores the app default)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		wh, err := parseFloats(args[1:])
		if err != nil {
			return err
		}

		c := newClient()
		defer c.Close()

		changed, err := c.SetSize(context.Background(), args[0], wh[0], wh[1])
		if err != nil {
			return fmt.Errorf("failed to resize window: %w", err)
		}
		return reportChange(args[0], "resized", changed)
	},
}

// titleCmd renames a window
var titleCmd = &cobra.Command{
	Use:   "title <window-id> <title>",
	Short: "Set a window's title",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		defer c.Close()

		changed, err := c.SetTitle(context.Background(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to set title: %w", err)
		}
		return reportChange(args[0], "retitled", changed)
	},
}

// getCmd shows one window
var getCmd = &cobra.Command{
	Use:   "get <window-id>",
	Short: "Show a window's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := getState()
		if err != nil {
			return err
		}

		win := state.FindWindowByID(args[0])
		if win == nil {
			return fmt.Errorf("window %s not found", args[0])
		}

		if jsonOutput {
			return printJSON(win)
		}
		output.PrintWindowDetail(os.Stdout, win)
		return nil
	},
}

var (
	dragFrom  string
	dragTo    string
	dragBy    string
	dragSteps int
)

// dragCmd scripts a title-bar drag
var dragCmd = &cobra.Command{
	Use:   "drag <window-id> --to x,y",
	Short: "Drag a window by its title bar with the pointer",
	Long: `Presses at --from (default: the middle of the title bar), moves to --to
and releases, as a pointer would. The window keeps the grab offset, so it
ends up where the title bar was dropped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		to, err := parsePoint(dragTo)
		if err != nil {
			return fmt.Errorf("--to: %w", err)
		}

		c := newClient()
		defer c.Close()
		ctx := context.Background()

		var from types.Point
		if dragFrom != "" {
			if from, err = parsePoint(dragFrom); err != nil {
				return fmt.Errorf("--from: %w", err)
			}
		} else {
			b, err := windowBounds(ctx, c, args[0])
			if err != nil {
				return err
			}
			from = types.Point{X: b.X + b.Width/2, Y: b.Y + window.TitleBarHeight/2}
		}

		if err := mouse.Drag(ctx, c, args[0], from, to, dragSteps); err != nil {
			return fmt.Errorf("drag failed: %w", err)
		}
		return reportChange(args[0], "dragged", true)
	},
}

// resizeEdgeCmd scripts an edge or corner resize
var resizeEdgeCmd = &cobra.Command{
	Use:   "resize-edge <window-id> <edge> --by dx,dy",
	Short: "Resize a window by dragging one of its edges or corners",
	Long: `Presses on the given edge (n, s, e, w, ne, nw, se, sw), moves the pointer
by --by and releases. The opposite edge stays put and the size never drops
below the minimum.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		edge, ok := types.ParseEdge(args[1])
		if !ok {
			return fmt.Errorf("invalid edge %q (use n, s, e, w, ne, nw, se, sw)", args[1])
		}
		by, err := parsePoint(dragBy)
		if err != nil {
			return fmt.Errorf("--by: %w", err)
		}

		c := newClient()
		defer c.Close()
		ctx := context.Background()

		b, err := windowBounds(ctx, c, args[0])
		if err != nil {
			return err
		}
		from := edgePoint(b, edge)

		if err := mouse.ResizeEdge(ctx, c, args[0], edge, from, from.Add(by), dragSteps); err != nil {
			return fmt.Errorf("resize failed: %w", err)
		}
		return reportChange(args[0], "resized", true)
	},
}

// clickCmd clicks on the desktop
var clickCmd = &cobra.Command{
	Use:   "click <x> <y>",
	Short: "Click at a desktop point",
	Long: `Presses and releases at a point. Clicking a window focuses it; clicking
its traffic-light buttons closes, minimizes or maximizes it.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		xy, err := parseFloats(args)
		if err != nil {
			return err
		}

		c := newClient()
		defer c.Close()

		return mouse.Click(context.Background(), c, types.Point{X: xy[0], Y: xy[1]})
	},
}

// atCmd reports the topmost window under a point
var atCmd = &cobra.Command{
	Use:   "at <x> <y>",
	Short: "Show the topmost window under a desktop point",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		xy, err := parseFloats(args)
		if err != nil {
			return err
		}

		snap, err := getSnapshot()
		if err != nil {
			return err
		}

		win := snap.WindowAt(types.Point{X: xy[0], Y: xy[1]})
		if win == nil {
			if jsonOutput {
				return printJSON(nil)
			}
			infoColor.Println("Desktop (no window)")
			return nil
		}
		if jsonOutput {
			return printJSON(win)
		}
		output.PrintWindowDetail(os.Stdout, win)
		return nil
	},
}

// MARK: - Focus Commands

// focusCmd focuses a window by id, or moves focus with a subcommand
var focusCmd = &cobra.Command{
	Use:   "focus [window-id]",
	Short: "Raise and activate a window, or move focus between windows",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}

		c := newClient()
		defer c.Close()

		changed, err := c.Focus(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to focus window: %w", err)
		}
		return reportChange(args[0], "focused", changed)
	},
}

// focusCycleCmd builds next/prev
func focusCycleCmd(use string, forward bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Focus the %s window in stacking order", use),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			defer c.Close()

			id, err := c.CycleFocus(context.Background(), forward)
			if err != nil {
				return fmt.Errorf("failed to cycle focus: %w", err)
			}
			return reportFocus(id)
		},
	}
}

// focusDirectionCmd builds left/right/up/down
func focusDirectionCmd(dir types.Direction) *cobra.Command {
	cmd := &cobra.Command{
		Use:   dir.String(),
		Short: fmt.Sprintf("Focus the nearest window to the %s", dir),
		RunE: func(cmd *cobra.Command, args []string) error {
			wrap, _ := cmd.Flags().GetBool("wrap")

			c := newClient()
			defer c.Close()

			id, err := c.FocusDirection(context.Background(), dir, wrap)
			if err != nil {
				return fmt.Errorf("failed to focus %s: %w", dir, err)
			}
			return reportFocus(id)
		},
	}
	cmd.Flags().Bool("wrap", false, "Wrap around to the opposite edge")
	return cmd
}

// MARK: - Desktop Commands

// dockCmd shows the dock verdict
var dockCmd = &cobra.Command{
	Use:   "dock",
	Short: "Show dock visibility and icons",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		defer c.Close()

		d, err := c.DockState(context.Background())
		if err != nil {
			return fmt.Errorf("failed to get dock state: %w", err)
		}

		if jsonOutput {
			return printJSON(d)
		}
		output.PrintDockTable(os.Stdout, *d)
		return nil
	},
}

// desktopCmd is the parent command for desktop subcommands
var desktopCmd = &cobra.Command{
	Use:   "desktop",
	Short: "Show and change desktop preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		defer c.Close()

		d, err := c.Desktop(context.Background())
		if err != nil {
			return fmt.Errorf("failed to get desktop: %w", err)
		}
		return printDesktop(d)
	},
}

// themeCmd updates the theme
var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Update theme preferences",
	Long:  `Only the flags given are changed. Brightness and volume are clamped to 0-100.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		updates := make(map[string]interface{})
		flags := cmd.Flags()
		if flags.Changed("wallpaper") {
			v, _ := flags.GetString("wallpaper")
			updates["wallpaper"] = v
		}
		if flags.Changed("dark") {
			v, _ := flags.GetBool("dark")
			updates["darkMode"] = v
		}
		for _, key := range []string{"brightness", "volume"} {
			if flags.Changed(key) {
				v, _ := flags.GetInt(key)
				updates[key] = v
			}
		}
		if len(updates) == 0 {
			return fmt.Errorf("nothing to change (use --wallpaper, --dark, --brightness or --volume)")
		}

		c := newClient()
		defer c.Close()

		d, err := c.SetTheme(context.Background(), updates)
		if err != nil {
			return fmt.Errorf("failed to set theme: %w", err)
		}
		return printDesktop(d)
	},
}

// desktopLauncherCmd toggles the launcher overlay
var desktopLauncherCmd = &cobra.Command{
	Use:   "launcher",
	Short: "Toggle the app launcher overlay",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		defer c.Close()

		open, err := c.ToggleLauncher(context.Background())
		if err != nil {
			return fmt.Errorf("failed to toggle launcher: %w", err)
		}

		if jsonOutput {
			return printJSON(map[string]bool{"open": open})
		}
		if open {
			successColor.Println("✓ Launcher opened")
		} else {
			successColor.Println("✓ Launcher closed")
		}
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", client.DefaultSocketPath, "Unix socket path")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", client.DefaultTimeout, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	// Add top-level commands
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(appsCmd)
	rootCmd.AddCommand(clickCmd)
	rootCmd.AddCommand(dockCmd)

	dumpCmd.Flags().BoolVar(&dumpYAML, "yaml", false, "Output YAML instead of JSON")

	// Show flags
	showCmd.Flags().BoolVar(&showASCII, "ascii", false, "Force ASCII mode (no Unicode)")
	showCmd.Flags().BoolVar(&showUnicode, "unicode", false, "Force Unicode mode")
	showCmd.Flags().BoolVar(&showNoIDs, "no-ids", false, "Hide window IDs")
	showCmd.Flags().BoolVar(&showNoDock, "no-dock", false, "Do not draw the dock")
	showCmd.Flags().IntVar(&showWidth, "width", 0, "Override terminal width")
	showCmd.Flags().IntVar(&showHeight, "height", 0, "Override terminal height")

	// Window commands
	rootCmd.AddCommand(launchCmd)
	rootCmd.AddCommand(closeCmd)
	rootCmd.AddCommand(minimizeCmd)
	rootCmd.AddCommand(maximizeCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(resizeCmd)
	rootCmd.AddCommand(titleCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(atCmd)
	rootCmd.AddCommand(dragCmd)
	rootCmd.AddCommand(resizeEdgeCmd)

	launchCmd.Flags().StringVar(&launchArgs, "args", "", "JSON payload handed to the app once")
	dragCmd.Flags().StringVar(&dragTo, "to", "", "Drop point x,y")
	dragCmd.Flags().StringVar(&dragFrom, "from", "", "Press point x,y (default: middle of the title bar)")
	_ = dragCmd.MarkFlagRequired("to")
	resizeEdgeCmd.Flags().StringVar(&dragBy, "by", "", "Pointer movement dx,dy")
	_ = resizeEdgeCmd.MarkFlagRequired("by")
	for _, c := range []*cobra.Command{dragCmd, resizeEdgeCmd} {
		c.Flags().IntVar(&dragSteps, "steps", mouse.DefaultSteps, "Pointer moves between press and release")
	}

	// Focus commands
	rootCmd.AddCommand(focusCmd)
	focusCmd.AddCommand(focusCycleCmd("next", true))
	focusCmd.AddCommand(focusCycleCmd("prev", false))
	for _, dir := range []types.Direction{types.DirLeft, types.DirRight, types.DirUp, types.DirDown} {
		focusCmd.AddCommand(focusDirectionCmd(dir))
	}

	// Desktop commands
	rootCmd.AddCommand(desktopCmd)
	rootCmd.AddCommand(themeCmd)
	desktopCmd.AddCommand(desktopLauncherCmd)

	themeCmd.Flags().String("wallpaper", "", "Wallpaper name")
	themeCmd.Flags().Bool("dark", false, "Dark mode")
	themeCmd.Flags().Int("brightness", 100, "Brightness (0-100)")
	themeCmd.Flags().Int("volume", 50, "Volume (0-100)")

	addDaemonCommands()

	// Disable color if requested, enable debug logging if requested
	cobra.OnInitialize(func() {
		if noColor {
			color.NoColor = true
		}
		if debugMode {
			logging.SetConsole()
			logging.SetDebug(true)
		}
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(err.Error())
		logging.Close()
		os.Exit(1)
	}
	logging.Close()
}

// Helper functions

// applyConfigDefaults takes the socket and timeout from the config file
// unless they were given as flags
func applyConfigDefaults(cmd *cobra.Command) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Debug().Err(err).Msg("config not applied")
		return
	}
	if !cmd.Flags().Changed("socket") && cfg.Server.SocketPath != "" {
		socketPath = cfg.Server.SocketPath
	}
	if !cmd.Flags().Changed("timeout") {
		timeout = cfg.ServerTimeout()
	}
}

func newClient() *client.Client {
	return client.NewClient(socketPath, timeout)
}

func printJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printError(msg string) {
	if noColor {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	} else {
		errorColor.Fprint(os.Stderr, "✗ Error: ")
		fmt.Fprintln(os.Stderr, msg)
	}
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out[i] = f
	}
	return out, nil
}

// parsePoint parses "x,y"
func parsePoint(s string) (types.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return types.Point{}, fmt.Errorf("want x,y, got %q", s)
	}
	xy, err := parseFloats([]string{strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])})
	if err != nil {
		return types.Point{}, err
	}
	return types.Point{X: xy[0], Y: xy[1]}, nil
}

// windowBounds returns a window's on-screen rect
func windowBounds(ctx context.Context, c *client.Client, id string) (types.Rect, error) {
	windows, err := c.List(ctx)
	if err != nil {
		return types.Rect{}, fmt.Errorf("failed to list windows: %w", err)
	}
	for _, w := range windows {
		if w.ID != id {
			continue
		}
		if w.Bounds == nil {
			return types.Rect{}, fmt.Errorf("window %s is minimized", id)
		}
		return *w.Bounds, nil
	}
	return types.Rect{}, fmt.Errorf("window %s not found", id)
}

// edgePoint returns the point on r's border that an edge handle sits on
func edgePoint(r types.Rect, edge types.Edge) types.Point {
	p := r.Center()
	switch {
	case edge.HasWest():
		p.X = r.X
	case edge.HasEast():
		p.X = r.Right()
	}
	switch {
	case edge.HasNorth():
		p.Y = r.Y
	case edge.HasSouth():
		p.Y = r.Bottom()
	}
	return p
}

func reportChange(id, verb string, changed bool) error {
	if jsonOutput {
		return printJSON(map[string]interface{}{"id": id, "changed": changed})
	}
	if changed {
		successColor.Printf("✓ Window %s %s\n", id, verb)
	} else {
		infoColor.Printf("Window %s unchanged (unknown id or no-op)\n", id)
	}
	return nil
}

func reportFocus(id string) error {
	if jsonOutput {
		return printJSON(map[string]string{"active": id})
	}
	if id == "" {
		infoColor.Println("No window to focus")
		return nil
	}
	successColor.Printf("✓ Focused %s\n", id)
	return nil
}

func printDesktop(d *models.Desktop) error {
	if jsonOutput {
		return printJSON(d)
	}
	keyColor.Print("Size: ")
	fmt.Printf("%.0fx%.0f (menu bar %.0f)\n", d.Width, d.Height, d.MenuBarHeight)
	keyColor.Print("Wallpaper: ")
	fmt.Println(d.Theme.Wallpaper)
	keyColor.Print("Dark mode: ")
	fmt.Println(d.Theme.DarkMode)
	keyColor.Print("Brightness: ")
	fmt.Println(d.Theme.Brightness)
	keyColor.Print("Volume: ")
	fmt.Println(d.Theme.Volume)
	keyColor.Print("Launcher: ")
	if d.LauncherOpen {
		fmt.Println("open")
	} else {
		fmt.Println("closed")
	}
	return nil
}

// getState retrieves and parses the current state from the server
func getState() (*models.State, error) {
	snap, err := getSnapshot()
	if err != nil {
		return nil, err
	}
	return snap.State, nil
}

func getSnapshot() (*server.Snapshot, error) {
	c := newClient()
	defer c.Close()

	snap, err := server.Fetch(context.Background(), c)
	if err != nil {
		return nil, fmt.Errorf("failed to get state: %w", err)
	}
	return snap, nil
}

// getVisualizationOptions builds options from flags
func getVisualizationOptions() output.VisualizationOptions {
	opts := output.DefaultVisualizationOptions()

	if showASCII {
		opts.UseUnicode = false
	}
	if showUnicode {
		opts.UseUnicode = true
	}
	if showNoIDs {
		opts.ShowIDs = false
	}
	if showNoDock {
		opts.ShowDock = false
	}
	if showWidth > 0 {
		opts.MaxWidth = showWidth
	}
	if showHeight > 0 {
		opts.MaxHeight = showHeight
	}
	return opts
}

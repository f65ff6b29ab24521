package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/etherdesk/etherwm/internal/config"
	"github.com/etherdesk/etherwm/internal/logging"
	"github.com/etherdesk/etherwm/internal/mcptools"
	"github.com/etherdesk/etherwm/internal/server"
	"github.com/etherdesk/etherwm/internal/state"
)

// Daemon flags
var (
	configPath   string
	statePath    string
	logToConsole bool
	noAutosave   bool
)

// serveCmd runs the session daemon
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the session daemon",
	Long: `Restores the saved session, serves it on a Unix socket until interrupted,
then saves it again. Mutating requests are saved as they happen unless
autosave is disabled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if logToConsole {
			logging.SetConsole()
		} else if err := logging.Init(); err != nil {
			logging.SetConsole()
			logging.Warn().Err(err).Msg("log file unavailable, logging to stderr")
		}
		logging.SetDebug(debugMode)

		path := statePath
		if path == "" {
			path = cfg.State.Path
		}
		if path == "" {
			path = state.GetStatePath()
		}

		socket := socketPath

		sess, err := state.Open(path, cfg.SessionOptions())
		if err != nil {
			return fmt.Errorf("failed to open session: %w", err)
		}

		srv := server.New(sess, server.Options{
			SocketPath: socket,
			Dock:       cfg.DockConfig(),
			Autosave:   cfg.Autosave() && !noAutosave,
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logging.Info().
			Str("socket", socket).
			Str("state", path).
			Int("windows", sess.Len()).
			Msg("session daemon starting")
		infoColor.Fprintf(os.Stderr, "etherwm %s listening on %s\n", server.Version, socket)

		if err := srv.Serve(ctx); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		logging.Info().Msg("session daemon stopped")
		return nil
	},
}

// mcpCmd exposes the daemon to MCP clients
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the daemon as MCP tools over stdio",
	Long: `Starts a Model Context Protocol server on stdin/stdout whose tools forward
to the running session daemon, so an assistant can open, arrange and
inspect windows.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		defer c.Close()

		return mcptools.New(c, server.Version).ServeStdio()
	},
}

// MARK: - State Commands

// stateCmd is the parent command for state subcommands
var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Manage the saved session",
}

// statePathCmd prints the state file location
var statePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the state file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		path := cfg.State.Path
		if path == "" {
			path = state.GetStatePath()
		}
		fmt.Println(path)
		return nil
	},
}

// stateShowCmd reads the state file without a daemon
var stateShowCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Summarize a saved session file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := state.GetStatePath()
		if len(args) > 0 {
			path = args[0]
		}

		sess, err := state.Open(path, state.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to load state: %w", err)
		}

		if jsonOutput {
			return printJSON(map[string]interface{}{
				"path":        path,
				"windows":     sess.Windows(),
				"desktop":     sess.Desktop(),
				"lastUpdated": sess.LastUpdated(),
			})
		}

		keyColor.Print("Path: ")
		fmt.Println(path)
		keyColor.Print("Session: ")
		fmt.Println(sess.Summary())
		for _, w := range sess.Windows() {
			fmt.Printf("  %s  %q at %.0f,%.0f z=%d\n", w.ID, w.Title, w.Position.X, w.Position.Y, w.ZIndex)
		}
		return nil
	},
}

// stateSaveCmd asks the daemon to save now
var stateSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the running session now",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		defer c.Close()

		result, err := c.SaveState(context.Background())
		if err != nil {
			return fmt.Errorf("failed to save state: %w", err)
		}
		if jsonOutput {
			return printJSON(result)
		}
		successColor.Printf("✓ Saved to %v\n", result["path"])
		return nil
	},
}

// stateResetCmd clears the running session
var stateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Close every window and restore desktop defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		defer c.Close()

		result, err := c.ResetState(context.Background())
		if err != nil {
			return fmt.Errorf("failed to reset state: %w", err)
		}
		if jsonOutput {
			return printJSON(result)
		}
		successColor.Printf("✓ Session reset (%v windows closed)\n", result["windowCount"])
		return nil
	},
}

// MARK: - Config Commands

// configCmd is the parent command for config subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

// configShowCmd shows current config
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return printJSON(cfg)
	},
}

// configValidateCmd validates a config file
var configValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if len(args) > 0 {
			path = args[0]
		}

		cfg, err := config.LoadConfig(path)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		successColor.Println("✓ Configuration is valid")
		fmt.Printf("  Desktop: %.0fx%.0f\n", cfg.Desktop.Width, cfg.Desktop.Height)
		fmt.Printf("  Dock auto-hide: %v\n", cfg.DockConfig().AutoHide)
		fmt.Printf("  App Rules: %d\n", len(cfg.AppRules))
		return nil
	},
}

const defaultConfigYAML = `# etherwm configuration
desktop:
  width: 1920
  height: 1080
  menuBarHeight: 32

windows:
  minWidth: 300
  minHeight: 200
  stagger: 30
  originX: 100
  originY: 50

dock:
  autoHide: true

server:
  socketPath: /tmp/etherwm.sock
  timeout: 5s

state:
  autosave: true

appRules:
  - app: terminal
    width: 720
    height: 460
`

// configInitCmd creates a default config
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.GetConfigPath()

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s", path)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigYAML), 0644); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		successColor.Printf("✓ Created default config at: %s\n", path)
		return nil
	},
}

func addDaemonCommands() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/etherwm/config.yaml)")

	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&statePath, "state", "", "State file (default ~/.local/state/etherwm/state.json)")
	serveCmd.Flags().BoolVar(&logToConsole, "console", false, "Log to stderr instead of the log file")
	serveCmd.Flags().BoolVar(&noAutosave, "no-autosave", false, "Only save on shutdown and state save")

	rootCmd.AddCommand(mcpCmd)

	rootCmd.AddCommand(stateCmd)
	stateCmd.AddCommand(statePathCmd)
	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateSaveCmd)
	stateCmd.AddCommand(stateResetCmd)

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configInitCmd)
}

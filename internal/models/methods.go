package models

// RPC method names served by the session daemon
const (
	MethodPing          = "ping"
	MethodServerInfo    = "getServerInfo"
	MethodDump          = "dump"
	MethodLaunch        = "window.launch"
	MethodClose         = "window.close"
	MethodFocus         = "window.focus"
	MethodMinimize      = "window.minimize"
	MethodMaximize      = "window.maximize"
	MethodSetPosition   = "window.setPosition"
	MethodSetSize       = "window.setSize"
	MethodSetTitle      = "window.setTitle"
	MethodList          = "window.list"
	MethodCycleFocus    = "window.cycle"
	MethodFocusDir      = "window.focusDirection"
	MethodPointerDown   = "pointer.down"
	MethodPointerMove   = "pointer.move"
	MethodPointerUp     = "pointer.up"
	MethodDockState     = "dock.state"
	MethodDesktopGet    = "desktop.get"
	MethodSetTheme      = "desktop.setTheme"
	MethodToggleLaunch  = "launcher.toggle"
	MethodStateSave     = "state.save"
	MethodStateReset    = "state.reset"
	MethodTakeLaunchArg = "window.takeLaunchArgs"
)

// Pointer-down modes
const (
	PointerDrag   = "drag"
	PointerResize = "resize"
	PointerAuto   = "auto" // Hit-test the topmost window under the pointer
)

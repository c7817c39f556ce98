package tui

import (
	"runtime"
	"strings"
)

// OSType represents the operating system type
type OSType int

const (
	OSMac OSType = iota
	OSLinux
	OSWindows
	OSUnknown
)

// GetOS returns the current operating system type
func GetOS() OSType {
	switch runtime.GOOS {
	case "darwin":
		return OSMac
	case "linux":
		return OSLinux
	case "windows":
		return OSWindows
	default:
		return OSUnknown
	}
}

// ShortcutKey represents a keyboard shortcut with OS-specific variations
type ShortcutKey struct {
	Mac     string
	Linux   string
	Windows string
	Default string // Fallback if OS-specific not defined
}

// Get returns the appropriate shortcut for the current OS
func (s ShortcutKey) Get() string {
	switch GetOS() {
	case OSMac:
		if s.Mac != "" {
			return s.Mac
		}
	case OSLinux:
		if s.Linux != "" {
			return s.Linux
		}
	case OSWindows:
		if s.Windows != "" {
			return s.Windows
		}
	}
	return s.Default
}

// Shortcuts are the editor and list bindings that clash with terminal
// control keys on some systems
var Shortcuts = struct {
	Save         ShortcutKey
	Undo         ShortcutKey
	Copy         ShortcutKey
	Delete       ShortcutKey
	ExternalEdit ShortcutKey
}{
	Save: ShortcutKey{
		Mac:     "ctrl+s",
		Linux:   "alt+s", // XOFF
		Windows: "alt+s",
		Default: "ctrl+s",
	},
	Undo: ShortcutKey{
		Mac:     "ctrl+z",
		Linux:   "alt+z", // SIGTSTP
		Windows: "alt+z",
		Default: "ctrl+z",
	},
	Copy: ShortcutKey{
		Mac:     "ctrl+y",
		Linux:   "alt+y",
		Windows: "alt+y",
		Default: "ctrl+y",
	},
	Delete: ShortcutKey{
		Default: "D",
	},
	ExternalEdit: ShortcutKey{
		Mac:     "ctrl+x",
		Linux:   "alt+x",
		Windows: "alt+x",
		Default: "ctrl+x",
	},
}

// FormatShortcutForHelp formats a shortcut key for display in help text
func FormatShortcutForHelp(key ShortcutKey) string {
	shortcut := key.Get()
	if GetOS() == OSLinux || GetOS() == OSWindows {
		shortcut = strings.ReplaceAll(shortcut, "alt+", "M-")
	} else {
		shortcut = strings.ReplaceAll(shortcut, "alt+", "⌥")
	}
	shortcut = strings.ReplaceAll(shortcut, "ctrl+", "^")
	shortcut = strings.ReplaceAll(shortcut, "shift+", "⇧")
	return shortcut
}

// GetTerminalSetupMessage returns OS-specific terminal setup instructions
func GetTerminalSetupMessage() string {
	switch GetOS() {
	case OSLinux:
		return "TIP: Run 'stty -ixon' to enable Ctrl+S in your terminal"
	case OSWindows:
		return "TIP: For mouse support use Windows Terminal"
	default:
		return ""
	}
}

// Package plugin defines the API plugins use to talk to the widget and the
// manager that owns their lifecycle.
package plugin

import (
	"github.com/fatemehkarimi/theodore/internal/event"
	"github.com/fatemehkarimi/theodore/internal/selection"
	"github.com/fatemehkarimi/theodore/internal/theme"
	"github.com/fatemehkarimi/theodore/internal/tree"
)

// CommandFunc is a command registered by a plugin. args are the words
// typed after the command name.
type CommandFunc func(args []string) error

// EditorAPI is the subset of the application exposed to plugins.
type EditorAPI interface {
	// --- Document (read-only) ---
	Tree() tree.Tree
	Text() string
	Selection() *selection.Selection
	IsEmpty() bool

	// --- Editing ---
	// Edits go through the widget so history and events stay consistent.
	InsertText(text string) error
	InsertEmoji(glyph string) error

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})

	// --- Theme Access ---
	SetTheme(name string) error
	GetTheme() *theme.Theme
	ListThemes() []string
}

// Plugin is implemented by every plugin.
type Plugin interface {
	// Name returns the unique name of the plugin.
	Name() string

	// Initialize is called once before the first frame. Plugins register
	// commands and subscribe to events here.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the application exits.
	Shutdown() error
}

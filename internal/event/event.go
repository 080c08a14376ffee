// internal/event/event.go
package event

import (
	"github.com/fatemehkarimi/theodore/internal/selection"
	"github.com/gdamore/tcell/v2"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Editor events
	TypeContentChanged   // Tree changed by an edit, undo, redo or reset
	TypeSelectionChanged // Selection moved or was cleared

	// Input events
	TypeKeyPressed // Raw key press forwarded

	// Application lifecycle
	TypeAppReady
	TypeAppQuit

	TypeThemeChanged
)

func (t Type) String() string {
	switch t {
	case TypeContentChanged:
		return "content-changed"
	case TypeSelectionChanged:
		return "selection-changed"
	case TypeKeyPressed:
		return "key-pressed"
	case TypeAppReady:
		return "app-ready"
	case TypeAppQuit:
		return "app-quit"
	case TypeThemeChanged:
		return "theme-changed"
	default:
		return "unknown"
	}
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// ContentChangedData describes the document after an edit.
type ContentChangedData struct {
	Op            string // "insert-text", "undo", ...
	TransactionID int
	Empty         bool
}

// SelectionChangedData carries a copy of the new selection, nil when cleared.
type SelectionChangedData struct {
	Selection *selection.Selection
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// ThemeChangedData names the theme that became active.
type ThemeChangedData struct {
	Name string
}

// Package host connects the editing engine to whatever displays it. The
// display side provides the capabilities below; Widget is the handle it
// drives the engine through.
package host

import "github.com/fatemehkarimi/theodore/internal/selection"

// EmojiRenderer turns a glyph into its display form. Render must return the
// same string for the same glyph.
type EmojiRenderer interface {
	Render(glyph string) string
}

// CursorPlacement shows the caret or a selected range. Each method reports
// false when the node is not currently rendered.
type CursorPlacement interface {
	PlaceCaretAt(nodeIndex, offset int) bool
	PlaceCaretAfter(nodeIndex int) bool
	SelectRange(startIndex, startOffset, endIndex, endOffset int) bool
}

// Scroller is implemented by placements that can scroll a node into view.
type Scroller interface {
	ScrollIntoView(nodeIndex int)
}

// Clipboard stores copied text.
type Clipboard interface {
	Write(text string) error
	ReadText() (string, error)
}

// SelectionMapper maps a host position, such as a mouse click, to the
// nearest editor point.
type SelectionMapper interface {
	EditorPoint(x, y int) (selection.Point, bool)
}

// Capabilities bundles what a host provides. Any field may be nil.
type Capabilities struct {
	Cursor    CursorPlacement
	Clipboard Clipboard
	Mapper    SelectionMapper
}

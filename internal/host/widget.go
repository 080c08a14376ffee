package host

import (
	"github.com/fatemehkarimi/theodore/internal/editor"
	"github.com/fatemehkarimi/theodore/internal/event"
	"github.com/fatemehkarimi/theodore/internal/logger"
	"github.com/fatemehkarimi/theodore/internal/node"
	"github.com/fatemehkarimi/theodore/internal/selection"
	"github.com/fatemehkarimi/theodore/internal/tree"
)

// Widget is the handle a host holds on an editing engine. Every committed
// edit dispatches event.TypeContentChanged and every selection change
// dispatches event.TypeSelectionChanged on the bus.
type Widget struct {
	engine *editor.Engine
	events *event.Manager
	caps   Capabilities
}

// NewWidget wraps engine. events may be nil, in which case a private bus
// is created.
func NewWidget(engine *editor.Engine, events *event.Manager, caps Capabilities) *Widget {
	if events == nil {
		events = event.NewManager()
	}
	w := &Widget{engine: engine, events: events, caps: caps}
	engine.OnSelectionChange(func(s *selection.Selection) {
		w.events.Dispatch(event.TypeSelectionChanged, event.SelectionChangedData{Selection: s})
	})
	return w
}

// SetCapabilities replaces the host capabilities, for hosts that create
// them after the widget.
func (w *Widget) SetCapabilities(caps Capabilities) {
	w.caps = caps
}

// Events returns the bus the widget dispatches on.
func (w *Widget) Events() *event.Manager { return w.events }

// Subscribe is a shortcut for Events().Subscribe.
func (w *Widget) Subscribe(t event.Type, h event.Handler) {
	w.events.Subscribe(t, h)
}

// OnSelectionChange registers fn for every selection change.
func (w *Widget) OnSelectionChange(fn func(*selection.Selection)) {
	w.engine.OnSelectionChange(fn)
}

// Tree returns a copy of the document.
func (w *Widget) Tree() tree.Tree { return w.engine.Tree() }

func (w *Widget) Selection() *selection.Selection { return w.engine.Selection() }
func (w *Widget) Text() string                    { return w.engine.Text() }
func (w *Widget) SelectedText() string            { return w.engine.SelectedText() }
func (w *Widget) IsEmpty() bool                   { return w.engine.IsEmpty() }
func (w *Widget) CanUndo() bool                   { return w.engine.CanUndo() }
func (w *Widget) CanRedo() bool                   { return w.engine.CanRedo() }

// mutate runs fn and announces the change if it committed a transaction.
func (w *Widget) mutate(op string, fn func() error) error {
	before := w.engine.TransactionID()
	err := fn()
	if w.engine.TransactionID() != before {
		w.changed(op)
	}
	return err
}

func (w *Widget) changed(op string) {
	w.events.Dispatch(event.TypeContentChanged, event.ContentChangedData{
		Op:            op,
		TransactionID: w.engine.TransactionID(),
		Empty:         w.engine.IsEmpty(),
	})
}

func (w *Widget) InsertText(text string) error {
	return w.mutate("insert-text", func() error { return w.engine.InsertText(text) })
}

func (w *Widget) InsertEmoji(glyph string) error {
	return w.mutate("insert-emoji", func() error { return w.engine.InsertEmoji(glyph) })
}

func (w *Widget) InsertNewParagraph() error {
	return w.mutate("insert-paragraph", w.engine.InsertNewParagraph)
}

func (w *Widget) Delete(dir editor.Direction) error {
	return w.mutate("delete", func() error { return w.engine.Delete(dir) })
}

// SetContent replaces the whole document as one undoable transaction.
func (w *Widget) SetContent(text string) error {
	return w.mutate("set-content", func() error { return w.engine.SetContent(text) })
}

// Reset loads text as the initial document without undo history.
func (w *Widget) Reset(text string) error {
	if err := w.engine.Reset(text); err != nil {
		return err
	}
	w.changed("reset")
	return nil
}

// PasteText inserts text delivered by the host, such as a bracketed paste.
func (w *Widget) PasteText(text string) error {
	return w.mutate("paste", func() error { return w.engine.PasteText(text) })
}

// Paste inserts the clipboard contents. An empty or missing clipboard is
// not an error.
func (w *Widget) Paste() error {
	if w.caps.Clipboard == nil {
		return nil
	}
	text, err := w.caps.Clipboard.ReadText()
	if err != nil || text == "" {
		logger.DebugTagf("host", "nothing to paste: %v", err)
		return nil
	}
	return w.PasteText(text)
}

// Copy writes the selected text to the clipboard.
func (w *Widget) Copy() error {
	text := w.engine.Copy()
	if text == "" || w.caps.Clipboard == nil {
		return nil
	}
	return w.caps.Clipboard.Write(text)
}

// Cut copies the selection to the clipboard and removes it.
func (w *Widget) Cut() error {
	var text string
	err := w.mutate("cut", func() error {
		var err error
		text, err = w.engine.Cut()
		return err
	})
	if err != nil || text == "" || w.caps.Clipboard == nil {
		return err
	}
	return w.caps.Clipboard.Write(text)
}

func (w *Widget) Undo() error {
	ok, err := w.engine.Undo()
	if ok {
		w.changed("undo")
	}
	return err
}

func (w *Widget) Redo() error {
	ok, err := w.engine.Redo()
	if ok {
		w.changed("redo")
	}
	return err
}

// Caret motion passes straight through; it never touches history.

func (w *Widget) MoveCaret(dir editor.Direction, extend bool)     { w.engine.MoveCaret(dir, extend) }
func (w *Widget) MoveParagraph(dir editor.Direction, extend bool) { w.engine.MoveParagraph(dir, extend) }
func (w *Widget) MoveHome(extend bool)                            { w.engine.MoveHome(extend) }
func (w *Widget) MoveEnd(extend bool)                             { w.engine.MoveEnd(extend) }
func (w *Widget) SelectAll()                                      { w.engine.SelectAll() }

// SelectFromHost moves the caret to the host position (x, y). With extend
// the current anchor is kept. Unknown positions are ignored.
func (w *Widget) SelectFromHost(x, y int, extend bool) bool {
	if w.caps.Mapper == nil {
		return false
	}
	p, ok := w.caps.Mapper.EditorPoint(x, y)
	if !ok {
		logger.DebugTagf("host", "no editor point at %d,%d", x, y)
		return false
	}
	if cur := w.engine.Selection(); extend && cur != nil {
		return w.engine.SetSelection(cur.Start, p)
	}
	return w.engine.SetSelection(p)
}

// Layout runs after the host has drawn the document. It moves a caret
// sitting right after an emoji into the following text node, places the
// caret or range, and scrolls it into view.
func (w *Widget) Layout() {
	w.engine.SettleCaret()

	sel := w.engine.Selection()
	if sel == nil || w.caps.Cursor == nil {
		return
	}

	var placed bool
	if selection.IsCollapsed(sel) {
		placed = w.placeCaret(sel.End)
	} else {
		placed = w.caps.Cursor.SelectRange(sel.Start.NodeIndex, sel.Start.Offset, sel.End.NodeIndex, sel.End.Offset)
	}
	if !placed {
		logger.DebugTagf("host", "selection %+v is not rendered", sel)
		return
	}
	if s, ok := w.caps.Cursor.(Scroller); ok {
		s.ScrollIntoView(sel.End.NodeIndex)
	}
}

// placeCaret uses PlaceCaretAfter for the far side of an emoji, which has
// no text offset of its own.
func (w *Widget) placeCaret(p selection.Point) bool {
	if n, ok := tree.Find(w.engine.Tree(), p.NodeIndex); ok && n.Kind() == node.KindEmoji && p.Offset > 0 {
		return w.caps.Cursor.PlaceCaretAfter(p.NodeIndex)
	}
	return w.caps.Cursor.PlaceCaretAt(p.NodeIndex, p.Offset)
}

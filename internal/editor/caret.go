package editor

import (
	"github.com/fatemehkarimi/theodore/internal/node"
	"github.com/fatemehkarimi/theodore/internal/selection"
	"github.com/fatemehkarimi/theodore/internal/tree"
)

// MoveCaret moves the caret one grapheme in dir, crossing paragraph
// boundaries. With extend the anchor stays put and the range grows; without
// it a range collapses to its edge in dir.
func (e *Engine) MoveCaret(dir Direction, extend bool) {
	sel := e.caretOrEnd()
	if !extend && !selection.IsCollapsed(sel) {
		start, end := selection.Ordered(e.tree, sel)
		if dir == Backward {
			e.selection.SetSelection(selection.Collapsed(start))
		} else {
			e.selection.SetSelection(selection.Collapsed(end))
		}
		return
	}

	para, off, ok := paragraphOffset(e.tree, sel.End)
	if !ok {
		return
	}
	switch {
	case dir == Backward && off > 0:
		off--
	case dir == Backward && para > 0:
		para--
		off = e.tree[para].Len()
	case dir == Forward && off < e.tree[para].Len():
		off++
	case dir == Forward && para+1 < len(e.tree):
		para++
		off = 0
	default:
		return
	}
	e.moveFocus(sel, pointAt(e.tree[para], off), extend)
}

// MoveParagraph moves the caret to the same offset in the previous or next
// paragraph, clamped to its length.
func (e *Engine) MoveParagraph(dir Direction, extend bool) {
	sel := e.caretOrEnd()
	para, off, ok := paragraphOffset(e.tree, sel.End)
	if !ok {
		return
	}
	if dir == Backward {
		para--
	} else {
		para++
	}
	if para < 0 || para >= len(e.tree) {
		return
	}
	e.moveFocus(sel, pointAt(e.tree[para], min(off, e.tree[para].Len())), extend)
}

// MoveHome moves the caret to the start of its paragraph.
func (e *Engine) MoveHome(extend bool) {
	sel := e.caretOrEnd()
	para, _, ok := paragraphOffset(e.tree, sel.End)
	if !ok {
		return
	}
	e.moveFocus(sel, pointAt(e.tree[para], 0), extend)
}

// MoveEnd moves the caret to the end of its paragraph.
func (e *Engine) MoveEnd(extend bool) {
	sel := e.caretOrEnd()
	para, _, ok := paragraphOffset(e.tree, sel.End)
	if !ok {
		return
	}
	e.moveFocus(sel, afterPoint(e.tree[para].Last()), extend)
}

// SelectAll selects the whole document.
func (e *Engine) SelectAll() {
	e.selection.Set(pointAt(e.tree[0], 0), documentEnd(e.tree))
}

func (e *Engine) moveFocus(sel *selection.Selection, to selection.Point, extend bool) {
	if extend {
		e.selection.Set(sel.Start, to)
		return
	}
	e.selection.Set(to)
}

// SettleCaret moves a caret sitting right after an emoji onto the start of
// the text node that follows it, so typing continues in that node. It
// reports whether the caret moved.
func (e *Engine) SettleCaret() bool {
	sel := e.selection.Get()
	if sel == nil || !selection.IsCollapsed(sel) || sel.Start.Offset != 1 {
		return false
	}
	n, ok := tree.Find(e.tree, sel.Start.NodeIndex)
	if !ok || n.Kind() != node.KindEmoji {
		return false
	}
	next := tree.NodeAfter(e.tree, n.Index())
	if next == nil || next.Kind() != node.KindText {
		return false
	}
	e.selection.Set(selection.Point{NodeIndex: next.Index()})
	return true
}

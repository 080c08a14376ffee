package editor

import (
	"strings"

	"github.com/fatemehkarimi/theodore/internal/history"
	"github.com/fatemehkarimi/theodore/internal/node"
	"github.com/fatemehkarimi/theodore/internal/segment"
	"github.com/fatemehkarimi/theodore/internal/selection"
	"github.com/fatemehkarimi/theodore/internal/tree"
)

// PasteText inserts plain text at the caret as one transaction. Line breaks
// start new paragraphs and emoji become emoji nodes.
func (e *Engine) PasteText(text string) error {
	if text == "" {
		return nil
	}
	x := e.begin("paste")
	pt, err := e.removeRange(x, e.caretOrEnd(), true)
	if err != nil {
		return e.fail(x.op, err)
	}
	pt, err = e.pasteAt(x, pt, text)
	if err != nil {
		return e.fail(x.op, err)
	}
	return e.apply(x, selection.Collapsed(pt))
}

// SetContent replaces the whole document with text as one transaction.
func (e *Engine) SetContent(text string) error {
	x := e.begin("set content")
	all := &selection.Selection{
		Start: selection.Point{NodeIndex: x.t[0].Head().ID},
		End:   documentEnd(x.t),
	}
	pt, err := e.removeRange(x, all, true)
	if err != nil {
		return e.fail(x.op, err)
	}
	if text != "" {
		if pt, err = e.pasteAt(x, pt, text); err != nil {
			return e.fail(x.op, err)
		}
	}
	if len(x.records) == 0 {
		return nil
	}
	return e.apply(x, selection.Collapsed(pt))
}

// buildFragments turns text into node runs. The first fragment continues
// the paragraph at the caret; each line break opens a fragment headed by a
// new ParagraphNode.
func (e *Engine) buildFragments(text string) []tree.Fragment {
	frags := []tree.Fragment{{}}
	var run strings.Builder
	flush := func() {
		if run.Len() == 0 {
			return
		}
		last := len(frags) - 1
		frags[last] = append(frags[last], node.Text{ID: e.nextID(), Content: run.String()})
		run.Reset()
	}
	for _, cluster := range segment.SegmentText(text) {
		switch {
		case segment.IsNewline(cluster):
			flush()
			frags = append(frags, tree.Fragment{node.Paragraph{ID: e.nextID()}})
		case segment.IsEmoji(cluster):
			flush()
			last := len(frags) - 1
			frags[last] = append(frags[last], node.Emoji{ID: e.nextID(), Glyph: cluster})
		default:
			run.WriteString(cluster)
		}
	}
	flush()
	return frags
}

// pasteAt splices text in at pt. The caret paragraph is snapshotted first so
// undo can restore nodes that moved into a new paragraph; then one record per
// created paragraph and node follows.
func (e *Engine) pasteAt(x *edit, pt selection.Point, text string) (selection.Point, error) {
	c, err := resolve(x.t, pt)
	if err != nil {
		return selection.Point{}, err
	}
	frags := e.buildFragments(text)
	snapshot := x.t[c.para].Clone()

	var prevID, nextID int
	var rest *node.Text
	if c.interior() {
		txt := c.n.(node.Text)
		head, tail := segment.SplitAt(txt.Content, c.offset)
		t, err := tree.Replace(x.t, txt.WithContent(head))
		if err != nil {
			return selection.Point{}, err
		}
		rest = &node.Text{ID: e.nextID(), Content: tail}
		if t, err = tree.InsertAt(t, c.para, c.pos+1, *rest); err != nil {
			return selection.Point{}, err
		}
		x.t = t
		prevID, nextID = txt.ID, rest.ID
	} else {
		p := x.t[c.para]
		g := c.gap()
		prevID = p[g-1].Index()
		if g < len(p) {
			nextID = p[g].Index()
		}
	}

	t, err := tree.InsertBetween(x.t, frags, prevID, nextID)
	if err != nil {
		return selection.Point{}, err
	}
	x.t = t

	x.push(history.Record{Command: history.ReplaceParagraph, NodeIndex: snapshot.Head().ID, PrevState: snapshot})
	var last node.Node
	for _, f := range frags {
		for _, n := range f {
			if node.IsParagraph(n) {
				x.push(history.Record{Command: history.InsertParagraph, NodeIndex: n.Index()})
			}
			last = n
		}
	}
	for _, f := range frags {
		for _, n := range f {
			switch n.Kind() {
			case node.KindText:
				x.push(history.Record{Command: history.InsertText, NodeIndex: n.Index()})
			case node.KindEmoji:
				x.push(history.Record{Command: history.InsertNode, NodeIndex: n.Index()})
			}
		}
	}
	if rest != nil {
		x.push(history.Record{Command: history.InsertText, NodeIndex: rest.ID})
	}

	if last == nil {
		// Nothing but ignorable clusters; keep the caret where it was.
		return pt, nil
	}
	return afterPoint(last), nil
}

// SelectedText returns the plain text of the selected range.
func (e *Engine) SelectedText() string {
	sel := e.selection.Get()
	if selection.IsCollapsed(sel) || !selection.Valid(e.tree, sel) {
		return ""
	}
	start, end := selection.Ordered(e.tree, sel)
	return textBetween(e.tree, start, end)
}

// Copy returns the selected text for the host clipboard.
func (e *Engine) Copy() string {
	return e.SelectedText()
}

// Cut removes the selected range and returns its text for the host
// clipboard. A caret cuts nothing.
func (e *Engine) Cut() (string, error) {
	text := e.SelectedText()
	if text == "" && selection.IsCollapsed(e.selection.Get()) {
		return "", nil
	}
	x := e.begin("cut")
	pt, err := e.removeRange(x, e.caretOrEnd(), true)
	if err != nil {
		return "", e.fail(x.op, err)
	}
	if err := e.apply(x, selection.Collapsed(pt)); err != nil {
		return "", err
	}
	return text, nil
}

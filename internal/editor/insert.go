package editor

import (
	"fmt"
	"strings"

	"github.com/fatemehkarimi/theodore/internal/history"
	"github.com/fatemehkarimi/theodore/internal/node"
	"github.com/fatemehkarimi/theodore/internal/segment"
	"github.com/fatemehkarimi/theodore/internal/selection"
	"github.com/fatemehkarimi/theodore/internal/tree"
)

// InsertText types text at the caret, replacing the selected range. Text
// holding a line break or an emoji goes through PasteText so it is split
// into the right nodes.
func (e *Engine) InsertText(text string) error {
	if text == "" {
		return nil
	}
	if sel := e.caretOrEnd(); selection.IsCollapsed(sel) {
		if start, cluster, ok := e.extendsCluster(sel.End, text); ok {
			return e.joinCluster(start, sel.End, cluster+text)
		}
	}
	if strings.ContainsAny(text, "\r\n") {
		return e.PasteText(text)
	}
	if _, ok := segment.FirstEmoji(text); ok {
		return e.PasteText(text)
	}

	x := e.begin("insert text")
	pt, err := e.removeRange(x, e.caretOrEnd(), false)
	if err != nil {
		return e.fail(x.op, err)
	}
	pt, err = e.insertTextAt(x, pt, text)
	if err != nil {
		return e.fail(x.op, err)
	}
	return e.apply(x, selection.Collapsed(pt))
}

// extendsCluster reports whether text continues the emoji cluster ending at
// pt, as when a host delivers a skin tone, ZWJ, regional indicator or
// variation selector as its own key event. It returns the point where that
// cluster starts and the cluster itself.
func (e *Engine) extendsCluster(pt selection.Point, text string) (selection.Point, string, bool) {
	para, off, ok := paragraphOffset(e.tree, pt)
	if !ok || off == 0 {
		return selection.Point{}, "", false
	}
	start := pointAt(e.tree[para], off-1)
	end := pointAt(e.tree[para], off)
	cluster := textBetween(e.tree, start, end)
	if cluster == "" {
		return selection.Point{}, "", false
	}
	first := segment.SegmentText(cluster + text)[0]
	if len(first) <= len(cluster) || !strings.HasPrefix(first, cluster) {
		return selection.Point{}, "", false
	}
	if !segment.IsEmoji(cluster) && !segment.IsEmoji(first) {
		// Plain text clusters already merge inside the text node.
		return selection.Point{}, "", false
	}
	return start, cluster, true
}

// joinCluster swaps the cluster between start and end for joined in one
// transaction, so the grown cluster lands in a single emoji node.
func (e *Engine) joinCluster(start, end selection.Point, joined string) error {
	x := e.begin("insert text")
	pt, err := e.removeRange(x, &selection.Selection{Start: start, End: end}, true)
	if err != nil {
		return e.fail(x.op, err)
	}
	if pt, err = e.pasteAt(x, pt, joined); err != nil {
		return e.fail(x.op, err)
	}
	return e.apply(x, selection.Collapsed(pt))
}

// insertTextAt splices text into the text node at pt, or into a text node
// touching the gap at pt, or into a new text node.
func (e *Engine) insertTextAt(x *edit, pt selection.Point, text string) (selection.Point, error) {
	c, err := resolve(x.t, pt)
	if err != nil {
		return selection.Point{}, err
	}
	if txt, ok := c.n.(node.Text); ok && (c.interior() || txt.Content == "") {
		return spliceText(x, txt, c.offset, text)
	}

	p := x.t[c.para]
	g := c.gap()
	if left, ok := p[g-1].(node.Text); ok {
		return spliceText(x, left, left.Len(), text)
	}
	if g < len(p) {
		if right, ok := p[g].(node.Text); ok {
			return spliceText(x, right, 0, text)
		}
	}

	created := node.Text{ID: e.nextID(), Content: text}
	t, err := tree.InsertAt(x.t, c.para, g, created)
	if err != nil {
		return selection.Point{}, err
	}
	x.t = t
	x.push(history.Record{Command: history.InsertText, NodeIndex: created.ID})
	return afterPoint(created), nil
}

func spliceText(x *edit, txt node.Text, offset int, text string) (selection.Point, error) {
	head, tail := segment.SplitAt(txt.Content, offset)
	t, err := tree.Replace(x.t, txt.WithContent(head+text+tail))
	if err != nil {
		return selection.Point{}, err
	}
	x.t = t
	x.push(history.Record{Command: history.InsertText, NodeIndex: txt.ID, PrevState: txt.Content})
	return selection.Point{NodeIndex: txt.ID, Offset: segment.GraphemeCount(head + text)}, nil
}

// InsertEmoji puts glyph at the caret as an emoji node, splitting the text
// node when the caret is inside one. The caret ends after the emoji.
func (e *Engine) InsertEmoji(glyph string) error {
	if glyph == "" {
		return nil
	}
	x := e.begin("insert emoji")
	if segment.GraphemeCount(glyph) != 1 {
		return e.fail(x.op, fmt.Errorf("%q is not a single grapheme", glyph))
	}

	pt, err := e.removeRange(x, e.caretOrEnd(), true)
	if err != nil {
		return e.fail(x.op, err)
	}
	c, err := resolve(x.t, pt)
	if err != nil {
		return e.fail(x.op, err)
	}

	emoji := node.Emoji{ID: e.nextID(), Glyph: glyph}
	pos := c.gap()
	if c.interior() {
		txt := c.n.(node.Text)
		head, tail := segment.SplitAt(txt.Content, c.offset)
		if err := replaceText(x, txt, head); err != nil {
			return e.fail(x.op, err)
		}
		rest := node.Text{ID: e.nextID(), Content: tail}
		t, err := tree.InsertAt(x.t, c.para, c.pos+1, rest)
		if err != nil {
			return e.fail(x.op, err)
		}
		x.t = t
		x.push(history.Record{Command: history.InsertText, NodeIndex: rest.ID})
		pos = c.pos + 1
	}

	t, err := tree.InsertAt(x.t, c.para, pos, emoji)
	if err != nil {
		return e.fail(x.op, err)
	}
	x.t = t
	x.push(history.Record{Command: history.InsertNode, NodeIndex: emoji.ID})
	return e.apply(x, selection.Collapsed(afterPoint(emoji)))
}

// InsertNewParagraph splits the paragraph at the caret. The caret moves to
// the start of the new paragraph.
func (e *Engine) InsertNewParagraph() error {
	x := e.begin("insert paragraph")
	pt, err := e.removeRange(x, e.caretOrEnd(), true)
	if err != nil {
		return e.fail(x.op, err)
	}
	c, err := resolve(x.t, pt)
	if err != nil {
		return e.fail(x.op, err)
	}

	snapshot := x.t[c.para].Clone()
	paragraphID := e.nextID()
	textID := 0
	if c.interior() {
		textID = e.nextID()
	}
	t, err := tree.SplitParagraph(x.t, c.n.Index(), c.offset, paragraphID, textID)
	if err != nil {
		return e.fail(x.op, err)
	}
	x.t = t
	x.push(
		history.Record{Command: history.ReplaceParagraph, NodeIndex: snapshot.Head().ID, PrevState: snapshot},
		history.Record{Command: history.InsertParagraph, NodeIndex: paragraphID},
	)

	created := x.t[c.para+1]
	caretPt := selection.Point{NodeIndex: paragraphID}
	if content := created.Content(); len(content) > 0 {
		caretPt = selection.Point{NodeIndex: content[0].Index()}
	}
	return e.apply(x, selection.Collapsed(caretPt))
}

package editor

import (
	"github.com/fatemehkarimi/theodore/internal/history"
	"github.com/fatemehkarimi/theodore/internal/node"
	"github.com/fatemehkarimi/theodore/internal/segment"
	"github.com/fatemehkarimi/theodore/internal/selection"
	"github.com/fatemehkarimi/theodore/internal/tree"
)

// Delete removes the selected range, or one unit next to the caret in dir:
// a grapheme of text, a whole emoji, or the paragraph boundary.
func (e *Engine) Delete(dir Direction) error {
	x := e.begin("delete " + dir.String())
	sel := e.caretOrEnd()

	if !selection.IsCollapsed(sel) {
		pt, err := e.removeRange(x, sel, true)
		if err != nil {
			return e.fail(x.op, err)
		}
		return e.apply(x, selection.Collapsed(pt))
	}

	c, err := resolve(x.t, sel.Start)
	if err != nil {
		return e.fail(x.op, err)
	}
	pt, changed, err := deleteAt(x, c, dir)
	if err != nil {
		return e.fail(x.op, err)
	}
	if !changed {
		return nil
	}
	return e.apply(x, selection.Collapsed(pt))
}

func deleteAt(x *edit, c caret, dir Direction) (selection.Point, bool, error) {
	here := selection.Point{NodeIndex: c.n.Index(), Offset: c.offset}

	// Inside a text node: the grapheme next to the caret.
	if txt, ok := c.n.(node.Text); ok {
		if dir == Backward && c.offset > 0 {
			pt, err := trimText(x, c.para, c.pos, txt, c.offset-1)
			return pt, true, err
		}
		if dir == Forward && c.offset < txt.Len() {
			pt, err := trimText(x, c.para, c.pos, txt, c.offset)
			return pt, true, err
		}
	}

	p := x.t[c.para]
	g := c.gap()
	if dir == Backward {
		target := g - 1
		if target == 0 {
			return mergeBackward(x, c.para)
		}
		switch n := p[target].(type) {
		case node.Text:
			pt, err := trimText(x, c.para, target, n, n.Len()-1)
			return pt, true, err
		default:
			pt, err := dropNode(x, c.para, target)
			return pt, true, err
		}
	}

	if g >= len(p) {
		if c.n.Kind() == node.KindParagraph {
			// Forward delete from a paragraph node never merges.
			return here, false, nil
		}
		return mergeForward(x, c.para, here)
	}
	switch n := p[g].(type) {
	case node.Text:
		if _, err := trimText(x, c.para, g, n, 0); err != nil {
			return selection.Point{}, false, err
		}
		return here, true, nil
	default:
		pt, err := dropNode(x, c.para, g)
		if err != nil {
			return selection.Point{}, false, err
		}
		if n.Index() == c.n.Index() {
			return pt, true, nil
		}
		return here, true, nil
	}
}

// trimText removes the grapheme at index from txt, or the whole node when it
// is the last one. It returns the caret at the removal point.
func trimText(x *edit, para, pos int, txt node.Text, index int) (selection.Point, error) {
	if txt.Len() <= 1 {
		return dropNode(x, para, pos)
	}
	content := segment.SliceGraphemes(txt.Content, 0, index) + segment.SliceGraphemes(txt.Content, index+1, txt.Len())
	t, err := tree.Replace(x.t, txt.WithContent(content))
	if err != nil {
		return selection.Point{}, err
	}
	x.t = t
	x.push(history.Record{Command: history.InsertText, NodeIndex: txt.ID, PrevState: txt.Content})
	return selection.Point{NodeIndex: txt.ID, Offset: index}, nil
}

// mergeBackward joins paragraph para into the one before it. The caret ends
// after the previous paragraph's last node.
func mergeBackward(x *edit, para int) (selection.Point, bool, error) {
	if para == 0 {
		return selection.Point{}, false, nil
	}
	prevLast := x.t[para-1].Last()
	if err := mergeInto(x, para-1, para); err != nil {
		return selection.Point{}, false, err
	}
	return afterPoint(prevLast), true, nil
}

// mergeForward pulls the paragraph after para into it.
func mergeForward(x *edit, para int, here selection.Point) (selection.Point, bool, error) {
	if para+1 >= len(x.t) {
		return here, false, nil
	}
	if err := mergeInto(x, para, para+1); err != nil {
		return selection.Point{}, false, err
	}
	return here, true, nil
}

// mergeInto concatenates paragraph from onto paragraph into (from == into+1).
// A paragraph with content is recorded as a removed ParagraphNode anchored
// between the two runs; an empty one as a whole paragraph to reinsert.
func mergeInto(x *edit, into, from int) error {
	absorbed := x.t[from]
	head := absorbed.Head()
	if content := absorbed.Content(); len(content) > 0 {
		x.push(history.Record{
			Command:       history.RemoveNodes,
			NodeIndex:     head.ID,
			PrevState:     []tree.Fragment{{head}},
			PrevNodeIndex: x.t[into].Last().Index(),
			NextNodeIndex: content[0].Index(),
		})
	} else {
		x.push(history.Record{
			Command:       history.InsertParagraphAfter,
			NodeIndex:     head.ID,
			PrevState:     absorbed.Clone(),
			PrevNodeIndex: x.t[into].Head().ID,
		})
	}
	t, err := tree.ConcatParagraph(x.t, head.ID, tree.Backward)
	if err != nil {
		return err
	}
	x.t = t
	return nil
}

package editor

import (
	"github.com/fatemehkarimi/theodore/internal/history"
	"github.com/fatemehkarimi/theodore/internal/node"
	"github.com/fatemehkarimi/theodore/internal/segment"
	"github.com/fatemehkarimi/theodore/internal/selection"
	"github.com/fatemehkarimi/theodore/internal/tree"
)

// dropNode removes the content node at para/pos and returns the caret that
// replaces it: the end of the node before it.
func dropNode(x *edit, para, pos int) (selection.Point, error) {
	p := x.t[para]
	n := p[pos]
	prev := p[pos-1]
	next := 0
	if pos+1 < len(p) {
		next = p[pos+1].Index()
	}
	t, err := tree.Remove(x.t, n.Index())
	if err != nil {
		return selection.Point{}, err
	}
	x.t = t
	x.push(history.Record{
		Command:       history.RemoveNodes,
		NodeIndex:     n.Index(),
		PrevState:     []tree.Fragment{{n}},
		PrevNodeIndex: prev.Index(),
		NextNodeIndex: next,
	})
	return afterPoint(prev), nil
}

// replaceText swaps txt's content, recording the old node.
func replaceText(x *edit, txt node.Text, content string) error {
	t, err := tree.Replace(x.t, txt.WithContent(content))
	if err != nil {
		return err
	}
	x.t = t
	x.push(history.Record{Command: history.ReplaceText, NodeIndex: txt.ID, PrevState: txt})
	return nil
}

// removeRange deletes everything covered by sel and returns the collapsed
// caret left behind. Dropped nodes, whole paragraphs included, go into one
// RemoveNodes record anchored by the survivors on either side; trimmed
// survivors get a ReplaceText record each.
//
// With removeEmpty false a text node at the start of the range is kept with
// empty content so the caller can type into it. The caller must fill it in
// the same transaction.
func (e *Engine) removeRange(x *edit, sel *selection.Selection, removeEmpty bool) (selection.Point, error) {
	startPt, endPt := selection.Ordered(x.t, sel)
	if selection.IsCollapsed(sel) {
		return startPt, nil
	}
	s, err := resolve(x.t, startPt)
	if err != nil {
		return selection.Point{}, err
	}
	en, err := resolve(x.t, endPt)
	if err != nil {
		return selection.Point{}, err
	}

	if txt, ok := s.n.(node.Text); ok && s.n.Index() == en.n.Index() {
		return removeWithinText(x, s, txt, en.offset, removeEmpty)
	}

	startPara := x.t[s.para].Clone()
	endPara := startPara
	if en.para != s.para {
		endPara = x.t[en.para].Clone()
	}

	var trims []history.Record
	trim := func(p tree.Paragraph, pos int, content string) {
		txt := p[pos].(node.Text)
		trims = append(trims, history.Record{Command: history.ReplaceText, NodeIndex: txt.ID, PrevState: txt})
		p[pos] = txt.WithContent(content)
	}

	sg := s.gap()
	caretPt := selection.Point{}
	keepStart := false
	switch {
	case s.interior():
		head, _ := segment.SplitAt(s.n.(node.Text).Content, s.offset)
		trim(startPara, s.pos, head)
		sg = s.pos + 1
		caretPt = selection.Point{NodeIndex: s.n.Index(), Offset: s.offset}
		keepStart = true
	case !removeEmpty && s.n.Kind() == node.KindText && s.offset <= 0:
		trim(startPara, s.pos, "")
		sg = s.pos + 1
		caretPt = selection.Point{NodeIndex: s.n.Index()}
		keepStart = true
	}

	eg := en.gap()
	if en.interior() {
		_, tail := segment.SplitAt(en.n.(node.Text).Content, en.offset)
		trim(endPara, en.pos, tail)
		eg = en.pos
	}

	prev := startPara[sg-1]
	next := 0
	if eg < len(endPara) {
		next = endPara[eg].Index()
	}

	var frags []tree.Fragment
	dropped := 0
	if en.para == s.para {
		if sg < eg {
			frags = append(frags, cloneFragment(startPara[sg:eg]))
			dropped = eg - sg
		}
	} else {
		frags = append(frags, cloneFragment(startPara[sg:]))
		for k := s.para + 1; k < en.para; k++ {
			frags = append(frags, cloneFragment(x.t[k]))
		}
		frags = append(frags, cloneFragment(endPara[:eg]))
		dropped = len(startPara) - sg + eg
	}

	merged := make(tree.Paragraph, 0, sg+len(endPara)-eg)
	merged = append(merged, startPara[:sg]...)
	merged = append(merged, endPara[eg:]...)

	out := make(tree.Tree, 0, len(x.t)-(en.para-s.para))
	out = append(out, x.t[:s.para]...)
	out = append(out, merged)
	out = append(out, x.t[en.para+1:]...)
	x.t = out

	x.push(trims...)
	if dropped > 0 {
		first := firstNode(frags)
		x.push(history.Record{
			Command:       history.RemoveNodes,
			NodeIndex:     first,
			PrevState:     frags,
			PrevNodeIndex: prev.Index(),
			NextNodeIndex: next,
		})
	}
	if !keepStart {
		caretPt = afterPoint(prev)
	}
	return caretPt, nil
}

// removeWithinText handles a range inside a single text node.
func removeWithinText(x *edit, s caret, txt node.Text, endOffset int, removeEmpty bool) (selection.Point, error) {
	from, to := s.offset, endOffset
	if from > to {
		from, to = to, from
	}
	content := segment.SliceGraphemes(txt.Content, 0, from) + segment.SliceGraphemes(txt.Content, to, txt.Len())
	if content != "" || !removeEmpty {
		if err := replaceText(x, txt, content); err != nil {
			return selection.Point{}, err
		}
		return selection.Point{NodeIndex: txt.ID, Offset: from}, nil
	}
	return dropNode(x, s.para, s.pos)
}

func cloneFragment(nodes []node.Node) tree.Fragment {
	out := make(tree.Fragment, len(nodes))
	copy(out, nodes)
	return out
}

func firstNode(frags []tree.Fragment) int {
	for _, f := range frags {
		if len(f) > 0 {
			return f[0].Index()
		}
	}
	return 0
}

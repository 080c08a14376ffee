package tree

import (
	"fmt"

	"github.com/fatemehkarimi/theodore/internal/node"
	"github.com/fatemehkarimi/theodore/internal/segment"
)

// InsertAt inserts n into paragraph para before position pos. Position 0 is
// reserved for the ParagraphNode.
func InsertAt(t Tree, para, pos int, n node.Node) (Tree, error) {
	if para < 0 || para >= len(t) || pos < 1 || pos > len(t[para]) {
		return t, fmt.Errorf("%w: position %d/%d", ErrNodeNotFound, para, pos)
	}
	if node.IsParagraph(n) {
		return t, fmt.Errorf("%w: paragraph node inserted as content", ErrInvariant)
	}
	src := t[para]
	p := make(Paragraph, 0, len(src)+1)
	p = append(p, src[:pos]...)
	p = append(p, n)
	p = append(p, src[pos:]...)
	out := t.shallow()
	out[para] = p
	return out, nil
}

// Replace swaps the node carrying n's index for n.
func Replace(t Tree, n node.Node) (Tree, error) {
	pi, ni, ok := Locate(t, n.Index())
	if !ok {
		return t, fmt.Errorf("%w: %d", ErrNodeNotFound, n.Index())
	}
	if t[pi][ni].Kind() != n.Kind() {
		return t, fmt.Errorf("%w: replacing %s %d with %s", ErrInvariant, t[pi][ni].Kind(), n.Index(), n.Kind())
	}
	p := t[pi].Clone()
	p[ni] = n
	out := t.shallow()
	out[pi] = p
	return out, nil
}

// Remove deletes exactly one content node. The paragraph survives even when
// it loses its last content node.
func Remove(t Tree, id int) (Tree, error) {
	pi, ni, ok := Locate(t, id)
	if !ok {
		return t, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	if ni == 0 {
		return t, fmt.Errorf("%w: paragraph node %d is not removable", ErrInvariant, id)
	}
	src := t[pi]
	p := make(Paragraph, 0, len(src)-1)
	p = append(p, src[:ni]...)
	p = append(p, src[ni+1:]...)
	out := t.shallow()
	out[pi] = p
	return out, nil
}

// RemoveParagraph deletes the paragraph headed by paragraphID together with
// its content.
func RemoveParagraph(t Tree, paragraphID int) (Tree, error) {
	pi, ni, ok := Locate(t, paragraphID)
	if !ok {
		return t, fmt.Errorf("%w: %d", ErrNodeNotFound, paragraphID)
	}
	if ni != 0 {
		return t, fmt.Errorf("%w: %d is not a paragraph node", ErrInvariant, paragraphID)
	}
	out := make(Tree, 0, len(t)-1)
	out = append(out, t[:pi]...)
	out = append(out, t[pi+1:]...)
	return Normalize(out), nil
}

// ReplaceParagraph puts snapshot in place of the paragraph with the same head.
func ReplaceParagraph(t Tree, snapshot Paragraph) (Tree, error) {
	if len(snapshot) == 0 || !node.IsParagraph(snapshot[0]) {
		return t, fmt.Errorf("%w: paragraph snapshot without head", ErrInvariant)
	}
	pi, ni, ok := Locate(t, snapshot[0].Index())
	if !ok || ni != 0 {
		return t, fmt.Errorf("%w: paragraph %d", ErrNodeNotFound, snapshot[0].Index())
	}
	out := t.shallow()
	out[pi] = snapshot.Clone()
	return out, nil
}

// InsertParagraphAfter inserts snapshot after the paragraph holding afterID,
// or at the head of the document when afterID is 0.
func InsertParagraphAfter(t Tree, afterID int, snapshot Paragraph) (Tree, error) {
	if len(snapshot) == 0 || !node.IsParagraph(snapshot[0]) {
		return t, fmt.Errorf("%w: paragraph snapshot without head", ErrInvariant)
	}
	at := 0
	if afterID != 0 {
		pi, _, ok := Locate(t, afterID)
		if !ok {
			return t, fmt.Errorf("%w: %d", ErrNodeNotFound, afterID)
		}
		at = pi + 1
	}
	out := make(Tree, 0, len(t)+1)
	out = append(out, t[:at]...)
	out = append(out, snapshot.Clone())
	out = append(out, t[at:]...)
	return out, nil
}

// SplitParagraph breaks the paragraph holding id at offset inside that node.
// Nodes after the split point move to a new paragraph headed by
// newParagraphID. When offset falls inside a text node, its tail becomes a
// new text node with newTextID.
func SplitParagraph(t Tree, id, offset, newParagraphID, newTextID int) (Tree, error) {
	pi, ni, ok := Locate(t, id)
	if !ok {
		return t, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	src := t[pi]

	var moved []node.Node
	keep := ni + 1
	switch n := src[ni].(type) {
	case node.Paragraph:
		keep = 1
	case node.Emoji:
		if offset <= 0 {
			keep = ni
		}
	case node.Text:
		switch {
		case offset <= 0:
			keep = ni
		case offset >= n.Len():
		default:
			head, tail := segment.SplitAt(n.Content, offset)
			moved = append(moved, node.Text{ID: newTextID, Content: tail})
			src = src.Clone()
			src[ni] = n.WithContent(head)
		}
	}

	oldPara := make(Paragraph, keep)
	copy(oldPara, src[:keep])
	newPara := make(Paragraph, 0, 1+len(moved)+len(src)-keep)
	newPara = append(newPara, node.Paragraph{ID: newParagraphID})
	newPara = append(newPara, moved...)
	newPara = append(newPara, src[keep:]...)

	out := make(Tree, 0, len(t)+1)
	out = append(out, t[:pi]...)
	out = append(out, oldPara, newPara)
	out = append(out, t[pi+1:]...)
	return out, nil
}

// ConcatParagraph merges two adjacent paragraphs. Backward moves the content
// of the paragraph headed by paragraphID into the previous one; Forward pulls
// the next paragraph into it. The absorbed ParagraphNode is discarded. At a
// document edge it is a no-op.
func ConcatParagraph(t Tree, paragraphID int, dir Direction) (Tree, error) {
	pi, ni, ok := Locate(t, paragraphID)
	if !ok {
		return t, fmt.Errorf("%w: %d", ErrNodeNotFound, paragraphID)
	}
	if ni != 0 {
		return t, fmt.Errorf("%w: %d is not a paragraph node", ErrInvariant, paragraphID)
	}
	into, from := pi-1, pi
	if dir == Forward {
		into, from = pi, pi+1
	}
	if into < 0 || from >= len(t) {
		return t, nil
	}
	merged := make(Paragraph, 0, len(t[into])+len(t[from])-1)
	merged = append(merged, t[into]...)
	merged = append(merged, t[from].Content()...)

	out := make(Tree, 0, len(t)-1)
	out = append(out, t[:into]...)
	out = append(out, merged)
	out = append(out, t[from+1:]...)
	return out, nil
}

// InsertBetween splices fragments into the tree right after prevID. nextID
// must be the node that currently follows prevID in its paragraph, or 0 when
// prevID ends its paragraph. A fragment starting with a ParagraphNode opens a
// new paragraph; the nodes that followed prevID are appended to the last
// paragraph produced.
func InsertBetween(t Tree, fragments []Fragment, prevID, nextID int) (Tree, error) {
	pi, ni, ok := Locate(t, prevID)
	if !ok {
		return t, fmt.Errorf("%w: anchor %d", ErrNodeNotFound, prevID)
	}
	src := t[pi]
	tail := src[ni+1:]
	switch {
	case nextID == 0 && len(tail) != 0:
		return t, fmt.Errorf("%w: anchor %d is not the paragraph end", ErrInvariant, prevID)
	case nextID != 0 && (len(tail) == 0 || tail[0].Index() != nextID):
		return t, fmt.Errorf("%w: %d does not follow %d", ErrInvariant, nextID, prevID)
	}

	built := make([]Paragraph, 0, len(fragments)+1)
	current := make(Paragraph, 0, ni+1)
	current = append(current, src[:ni+1]...)
	for _, frag := range fragments {
		if len(frag) == 0 {
			continue
		}
		if node.IsParagraph(frag[0]) {
			built = append(built, current)
			current = make(Paragraph, 0, len(frag)+len(tail))
		}
		current = append(current, frag...)
	}
	current = append(current, tail...)
	built = append(built, current)

	out := make(Tree, 0, len(t)+len(built)-1)
	out = append(out, t[:pi]...)
	out = append(out, built...)
	out = append(out, t[pi+1:]...)
	return out, nil
}

// ParagraphDirection returns the writing direction of p, decided by the
// first text node.
func ParagraphDirection(p Paragraph) segment.Direction {
	content := p.Content()
	if len(content) == 0 {
		return segment.LTR
	}
	txt, ok := content[0].(node.Text)
	if !ok {
		return segment.LTR
	}
	d, _ := segment.DirectionOf(txt.Content)
	return d
}

package editor

import (
	"fmt"
	"strings"

	"github.com/fatemehkarimi/theodore/internal/node"
	"github.com/fatemehkarimi/theodore/internal/segment"
	"github.com/fatemehkarimi/theodore/internal/selection"
	"github.com/fatemehkarimi/theodore/internal/tree"
)

// caret is a selection point resolved against a tree.
type caret struct {
	para   int
	pos    int
	n      node.Node
	offset int
}

func resolve(t tree.Tree, p selection.Point) (caret, error) {
	pi, ni, ok := tree.Locate(t, p.NodeIndex)
	if !ok {
		return caret{}, fmt.Errorf("%w: caret node %d", tree.ErrNodeNotFound, p.NodeIndex)
	}
	return caret{para: pi, pos: ni, n: t[pi][ni], offset: p.Offset}, nil
}

// interior reports whether c sits strictly inside a text node.
func (c caret) interior() bool {
	return c.n.Kind() == node.KindText && c.offset > 0 && c.offset < c.n.Len()
}

// gap returns the insertion position in the paragraph for a caret that is
// not inside a text node: before the node at offset 0, after it otherwise.
// A paragraph node maps to the gap before its first content node.
func (c caret) gap() int {
	if c.n.Kind() == node.KindParagraph {
		return 1
	}
	if c.offset <= 0 {
		return c.pos
	}
	return c.pos + 1
}

// paragraphOffset converts p into a grapheme offset within its paragraph.
func paragraphOffset(t tree.Tree, p selection.Point) (para, offset int, ok bool) {
	pi, ni, found := tree.Locate(t, p.NodeIndex)
	if !found {
		return 0, 0, false
	}
	if ni == 0 {
		return pi, 0, true
	}
	for _, n := range t[pi][1:ni] {
		offset += n.Len()
	}
	return pi, offset + min(p.Offset, t[pi][ni].Len()), true
}

// pointAt maps a grapheme offset within paragraph p back to a point,
// preferring the end of a text node over the start of the next node.
func pointAt(p tree.Paragraph, offset int) selection.Point {
	cum := 0
	for _, n := range p.Content() {
		l := n.Len()
		if offset <= cum+l {
			if n.Kind() == node.KindEmoji {
				if offset <= cum {
					return selection.Point{NodeIndex: n.Index()}
				}
				return selection.Point{NodeIndex: n.Index(), Offset: 1}
			}
			return selection.Point{NodeIndex: n.Index(), Offset: max(offset-cum, 0)}
		}
		cum += l
	}
	return afterPoint(p.Last())
}

// textBetween returns the plain text from start to end, which must be in
// document order.
func textBetween(t tree.Tree, start, end selection.Point) string {
	sp, so, ok := paragraphOffset(t, start)
	if !ok {
		return ""
	}
	ep, eo, ok := paragraphOffset(t, end)
	if !ok {
		return ""
	}
	var b strings.Builder
	for pi := sp; pi <= ep; pi++ {
		if pi > sp {
			b.WriteByte('\n')
		}
		from, to := 0, t[pi].Len()
		if pi == sp {
			from = so
		}
		if pi == ep {
			to = eo
		}
		cum := 0
		for _, n := range t[pi].Content() {
			l := n.Len()
			switch v := n.(type) {
			case node.Text:
				if from < cum+l && to > cum {
					b.WriteString(segment.SliceGraphemes(v.Content, max(from-cum, 0), min(to-cum, l)))
				}
			case node.Emoji:
				if from <= cum && to >= cum+1 {
					b.WriteString(v.Glyph)
				}
			}
			cum += l
		}
	}
	return b.String()
}

// Package tree stores the document as an ordered list of paragraphs.
//
// Every function in this package is pure: it returns a new Tree and never
// writes into a slice reachable from its input. Unchanged paragraphs are
// shared between the input and the result, which keeps snapshots held by the
// undo history valid.
package tree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatemehkarimi/theodore/internal/node"
)

var (
	ErrNodeNotFound = errors.New("tree: node not found")
	ErrInvariant    = errors.New("tree: invariant violation")
)

// RootParagraphIndex is reserved for the initial paragraph.
const RootParagraphIndex = 1

// Paragraph is a ParagraphNode followed by its content nodes.
type Paragraph []node.Node

// Fragment is a run of nodes detached from a tree. A fragment that begins
// with a ParagraphNode describes a whole paragraph.
type Fragment []node.Node

// Tree is the whole document.
type Tree []Paragraph

// Direction selects the neighbour an operation works on.
type Direction int

const (
	Backward Direction = iota
	Forward
)

func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "backward"
}

// New returns a tree holding a single empty paragraph.
func New() Tree {
	return Tree{Paragraph{node.Paragraph{ID: RootParagraphIndex}}}
}

// Head returns the ParagraphNode of p.
func (p Paragraph) Head() node.Paragraph {
	if len(p) == 0 {
		return node.Paragraph{}
	}
	head, _ := p[0].(node.Paragraph)
	return head
}

// Content returns the nodes after the ParagraphNode.
func (p Paragraph) Content() []node.Node {
	if len(p) <= 1 {
		return nil
	}
	return p[1:]
}

// Last returns the last node of p, which is the ParagraphNode when p is empty.
func (p Paragraph) Last() node.Node {
	if len(p) == 0 {
		return nil
	}
	return p[len(p)-1]
}

// Len returns the grapheme length of the paragraph content.
func (p Paragraph) Len() int {
	n := 0
	for _, c := range p.Content() {
		n += c.Len()
	}
	return n
}

// Clone returns a copy of p that shares no backing array with it.
func (p Paragraph) Clone() Paragraph {
	out := make(Paragraph, len(p))
	copy(out, p)
	return out
}

// Clone returns a deep copy of the paragraph slices of t.
func (t Tree) Clone() Tree {
	out := make(Tree, len(t))
	for i, p := range t {
		out[i] = p.Clone()
	}
	return out
}

// shallow copies the outer slice only.
func (t Tree) shallow() Tree {
	out := make(Tree, len(t))
	copy(out, t)
	return out
}

// Locate returns the paragraph index and position of the node with id.
func Locate(t Tree, id int) (para, pos int, ok bool) {
	for pi, p := range t {
		for ni, n := range p {
			if n.Index() == id {
				return pi, ni, true
			}
		}
	}
	return -1, -1, false
}

// Find returns the node with id.
func Find(t Tree, id int) (node.Node, bool) {
	pi, ni, ok := Locate(t, id)
	if !ok {
		return nil, false
	}
	return t[pi][ni], true
}

// NodeBefore returns the node preceding id in document order, crossing
// paragraph boundaries. It returns nil at the document start.
func NodeBefore(t Tree, id int) node.Node {
	pi, ni, ok := Locate(t, id)
	if !ok {
		return nil
	}
	if ni > 0 {
		return t[pi][ni-1]
	}
	if pi == 0 {
		return nil
	}
	return t[pi-1].Last()
}

// NodeAfter returns the node following id in document order, crossing
// paragraph boundaries. It returns nil at the document end.
func NodeAfter(t Tree, id int) node.Node {
	pi, ni, ok := Locate(t, id)
	if !ok {
		return nil
	}
	if ni+1 < len(t[pi]) {
		return t[pi][ni+1]
	}
	if pi+1 >= len(t) {
		return nil
	}
	return t[pi+1][0]
}

// Text converts the tree to plain text, one line per paragraph.
func Text(t Tree) string {
	var b strings.Builder
	for i, p := range t {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, n := range p.Content() {
			b.WriteString(node.PlainText(n))
		}
	}
	return b.String()
}

// IsEmpty reports whether the document holds no content at all.
func IsEmpty(t Tree) bool {
	for _, p := range t {
		if len(p.Content()) > 0 {
			return false
		}
	}
	return len(t) <= 1
}

// Validate checks the structural invariants of t.
func Validate(t Tree) error {
	if len(t) == 0 {
		return fmt.Errorf("%w: tree has no paragraph", ErrInvariant)
	}
	seen := make(map[int]struct{})
	for pi, p := range t {
		if len(p) == 0 {
			return fmt.Errorf("%w: paragraph %d is empty", ErrInvariant, pi)
		}
		for ni, n := range p {
			if (ni == 0) != node.IsParagraph(n) {
				return fmt.Errorf("%w: paragraph %d has %s at position %d", ErrInvariant, pi, n.Kind(), ni)
			}
			if txt, ok := n.(node.Text); ok && txt.Content == "" {
				return fmt.Errorf("%w: empty text node %d", ErrInvariant, n.Index())
			}
			if _, dup := seen[n.Index()]; dup {
				return fmt.Errorf("%w: duplicate node index %d", ErrInvariant, n.Index())
			}
			seen[n.Index()] = struct{}{}
		}
	}
	return nil
}

// Normalize restores the non-empty invariant, recreating the root paragraph
// when the tree collapsed, and drops paragraphs that lost their head.
func Normalize(t Tree) Tree {
	out := make(Tree, 0, len(t))
	for _, p := range t {
		if len(p) > 0 {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return New()
	}
	return out
}

// Package history provides undo/redo via a stack of reversible records
// grouped into transactions.
package history

import (
	"fmt"

	"github.com/fatemehkarimi/theodore/internal/node"
	"github.com/fatemehkarimi/theodore/internal/selection"
	"github.com/fatemehkarimi/theodore/internal/tree"
)

// Command names the edit a record reverses.
type Command int

const (
	InsertText Command = iota
	ReplaceText
	InsertNode
	InsertParagraph
	ReplaceParagraph
	RemoveNodes
	InsertParagraphAfter
)

func (c Command) String() string {
	switch c {
	case InsertText:
		return "insert-text"
	case ReplaceText:
		return "replace-text"
	case InsertNode:
		return "insert-node"
	case InsertParagraph:
		return "insert-paragraph"
	case ReplaceParagraph:
		return "replace-paragraph"
	case RemoveNodes:
		return "remove-nodes"
	case InsertParagraphAfter:
		return "insert-paragraph-after"
	default:
		return fmt.Sprintf("command(%d)", int(c))
	}
}

// Record is one reversible step. PrevState depends on Command:
//
//	InsertText            nil (node was created) or string (prior content)
//	ReplaceText           node.Text snapshot
//	InsertNode            nil
//	InsertParagraph       nil
//	ReplaceParagraph      tree.Paragraph snapshot
//	RemoveNodes           []tree.Fragment
//	InsertParagraphAfter  tree.Paragraph snapshot
//
// PrevNodeIndex and NextNodeIndex anchor reinsertion; 0 means unset.
type Record struct {
	Command       Command
	NodeIndex     int
	PrevState     any
	TransactionID int
	Selection     *selection.Selection
	PrevNodeIndex int
	NextNodeIndex int
}

// Revert applies the inverse of r to t.
func (r Record) Revert(t tree.Tree) (tree.Tree, error) {
	switch r.Command {
	case InsertText:
		switch prev := r.PrevState.(type) {
		case nil:
			return tree.Remove(t, r.NodeIndex)
		case string:
			n, ok := tree.Find(t, r.NodeIndex)
			if !ok {
				return t, fmt.Errorf("%w: %s on %d", tree.ErrNodeNotFound, r.Command, r.NodeIndex)
			}
			txt, ok := n.(node.Text)
			if !ok {
				return t, fmt.Errorf("%w: %s on %s node %d", tree.ErrInvariant, r.Command, n.Kind(), r.NodeIndex)
			}
			return tree.Replace(t, txt.WithContent(prev))
		}
	case ReplaceText:
		if snap, ok := r.PrevState.(node.Text); ok {
			return tree.Replace(t, snap)
		}
	case InsertNode:
		return tree.Remove(t, r.NodeIndex)
	case InsertParagraph:
		return tree.RemoveParagraph(t, r.NodeIndex)
	case ReplaceParagraph:
		if snap, ok := r.PrevState.(tree.Paragraph); ok {
			return tree.ReplaceParagraph(t, snap)
		}
	case RemoveNodes:
		if frags, ok := r.PrevState.([]tree.Fragment); ok {
			return tree.InsertBetween(t, frags, r.PrevNodeIndex, r.NextNodeIndex)
		}
	case InsertParagraphAfter:
		if snap, ok := r.PrevState.(tree.Paragraph); ok {
			return tree.InsertParagraphAfter(t, r.PrevNodeIndex, snap)
		}
	}
	return t, fmt.Errorf("%w: %s with prev state %T", tree.ErrInvariant, r.Command, r.PrevState)
}
